// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values. A local .env file,
when present, is merged into the environment first via 'joho/godotenv'.

Usage:

	config.LoadDotEnv()
	cfg, err := config.LoadClient()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (gateway, session storage) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Session Backends

// Supported SESSION_BACKEND values.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// # Configuration Schema

// Client holds all runtime configuration for the dashboard client.
type Client struct {

	// Remote API
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:5001"`
	APITimeout time.Duration `env:"API_TIMEOUT"  envDefault:"60s"`

	// Session storage area
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionDir     string        `env:"SESSION_DIR"`
	SessionProfile string        `env:"SESSION_PROFILE" envDefault:"default"`
	SessionTTL     time.Duration `env:"SESSION_TTL"     envDefault:"12h"`

	// Key-Value store for the redis backend
	RedisURL string `env:"REDIS_URL"`

	// NavFile optionally replaces the built-in navigation table.
	NavFile string `env:"NAV_FILE"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// Stub holds runtime configuration for the stub remote API server.
type Stub struct {
	ServerPort  string `env:"STUB_PORT"   envDefault:"5001"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Token signing
	JWTSecret string        `env:"STUB_JWT_SECRET" envDefault:"aidash-dev-secret"`
	TokenTTL  time.Duration `env:"STUB_TOKEN_TTL"  envDefault:"1h"`

	// Users seeds the directory as "username:password:role" entries.
	Users []string `env:"STUB_USERS" envSeparator:";" envDefault:"hr.manager:password123:HR Manager;employee:password123:Employee"`
}

// # Configuration Loading

// LoadDotEnv merges .env files into the process environment.
// A missing file is not an error; variables already set are preserved.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to load .env: %w", err)
	}
	return nil
}

// LoadClient parses environment variables into a [Client] struct.
func LoadClient() (*Client, error) {
	cfg := &Client{}

	// Map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStub parses environment variables into a [Stub] struct.
func LoadStub() (*Stub, error) {
	cfg := &Stub{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Client) Validate() error {
	switch c.SessionBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when SESSION_BACKEND=%s", BackendRedis)
		}
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionProfile == "" {
		return fmt.Errorf("config: SESSION_PROFILE must not be empty")
	}
	return nil
}

// IsDevelopment reports whether the stub server is running in development mode.
func (c *Stub) IsDevelopment() bool {
	return c.Environment == "development"
}
