// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the DishHub runtime settings from environment
variables with caarlos0/env.

	cfg, err := config.Load()

Load fails fast: a missing required variable or an inconsistent combination
(an s3 driver without a bucket, say) is reported before any connection is
opened. The returned *Config is treated as read-only and handed to
constructors; nothing in the tree reads it from a package variable.
*/
package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
)

// STORAGE_DRIVER values.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the full set of settings. Field tags carry the variable names
// and defaults.
type Config struct {
	// HTTP
	ServerHost   string `env:"SERVER_HOST"`
	ServerPort   string `env:"SERVER_PORT" envDefault:"8080"`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
	Debug        bool   `env:"DEBUG"`
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// PostgreSQL and its migrations
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Redis holds login sessions
	RedisURL string `env:"REDIS_URL,required"`

	// Access tokens
	JWTSecret      string        `env:"JWT_SECRET,required,unset"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// Dish images
	StorageDriver   string `env:"STORAGE_DRIVER" envDefault:"local"`
	ImageDir        string `env:"IMAGE_DIR" envDefault:"./dish_images"`
	ImagePublicPath string `env:"IMAGE_PUBLIC_PATH" envDefault:"/dish_images"`

	// S3 compatible bucket, used when StorageDriver is "s3"
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION" envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY,unset"`

	// Optional rotating log file next to stdout
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
	LogCompress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

// Load parses the environment and checks the cross-field rules.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// check reports every rule the struct tags cannot express, joined.
func (c *Config) check() error {
	var problems []error

	switch c.StorageDriver {
	case StorageLocal:
		if c.ImageDir == "" {
			problems = append(problems, errors.New("config: IMAGE_DIR is required for the local storage driver"))
		}
	case StorageS3:
		if c.S3Bucket == "" {
			problems = append(problems, errors.New("config: S3_BUCKET is required for the s3 storage driver"))
		}
	default:
		problems = append(problems, fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if c.AccessTokenTTL <= 0 {
		problems = append(problems, errors.New("config: ACCESS_TOKEN_TTL must be positive"))
	}

	return errors.Join(problems...)
}

// Addr is the http.Server listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
