// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/aidash/internal/platform/constants"
)

// deleteIfScript compares one field and deletes the given fields in a single
// server-side step. KEYS[1] is the hash, ARGV[1] the compared field, ARGV[2]
// the expected value, ARGV[3..] the fields to delete.
const deleteIfScript = `
local current = redis.call("HGET", KEYS[1], ARGV[1])
if current == false then
  current = ""
end
if current ~= ARGV[2] then
  return 0
end
for i = 3, #ARGV do
  redis.call("HDEL", KEYS[1], ARGV[i])
end
return 1
`

var deleteIfLua = redis.NewScript(deleteIfScript)

// RedisArea stores values in one Redis hash per profile.
//
// Writes run inside MULTI/EXEC so the token and user fields change together.
// The hash expires after ttl of write inactivity; zero disables expiry.
type RedisArea struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisArea creates a Redis-backed [Area] for the given profile.
func NewRedisArea(client *redis.Client, profile string, ttl time.Duration) *RedisArea {
	return &RedisArea{
		client: client,
		key:    constants.RedisPrefixSession + profile,
		ttl:    ttl,
	}
}

// Key returns the hash key holding this profile's values.
func (area *RedisArea) Key() string { return area.key }

/*
GetAll implements [Area].

Description: A single HMGET, so the fields come from one version of the hash.
Missing fields and a missing hash are omitted from the result.
*/
func (area *RedisArea) GetAll(ctx context.Context, keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	fields, err := area.client.HMGet(ctx, area.key, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}
	for i, field := range fields {
		if value, ok := field.(string); ok {
			values[keys[i]] = value
		}
	}
	return values, nil
}

/*
SetAll implements [Area].

Description: HSET and EXPIRE are queued in a single transaction.
*/
func (area *RedisArea) SetAll(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(values))
	for key, value := range values {
		fields[key] = value
	}

	_, err := area.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, area.key, fields)
		if area.ttl > 0 {
			pipe.Expire(ctx, area.key, area.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

// Delete implements [Area].
func (area *RedisArea) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := area.client.HDel(ctx, area.key, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

// DeleteIf implements [Area].
func (area *RedisArea) DeleteIf(ctx context.Context, key, expected string, keys ...string) (bool, error) {
	args := make([]interface{}, 0, len(keys)+2)
	args = append(args, key, expected)
	for _, name := range keys {
		args = append(args, name)
	}

	matched, err := deleteIfLua.Run(ctx, area.client, []string{area.key}, args...).Int64()
	if err != nil {
		return false, fmt.Errorf("redis_session_delete_if_failed: %w", err)
	}
	return matched == 1, nil
}
