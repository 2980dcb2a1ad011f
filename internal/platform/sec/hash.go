// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedHashCost is the bcrypt cost for the stub directory's seeded accounts,
// which are rehashed on every stub start.
const SeedHashCost = bcrypt.MinCost

/*
HashPassword hashes a seeded account password for the stub user directory.

Returns:
  - string: The bcrypt hash
  - error: sec_hash_failed wrapping the bcrypt cause (e.g. a password over 72 bytes)
*/
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), SeedHashCost)
	if err != nil {
		return "", fmt.Errorf("sec_hash_failed: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches a hash from [HashPassword].
// A malformed hash never matches.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
