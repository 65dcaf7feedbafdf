// Package config loads the application configuration from the environment,
// an optional .env file, and command-line flag overrides.
package config

import (
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Backend selectors for the durable store.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds the runtime options. Environment variables carry the
// AUTOSHOP_ prefix (AUTOSHOP_ADDR, AUTOSHOP_BACKEND, ...).
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `envconfig:"ADDR" default:"localhost:8080"`
	// Backend selects the durable store: file, postgres, redis or memory.
	Backend string `envconfig:"BACKEND" default:"file"`
	// DataDir is the namespace directory for the file backend.
	DataDir string `envconfig:"DATA_DIR" default:"data"`
	// DatabaseDSN is the Postgres connection string for the postgres backend.
	DatabaseDSN string `envconfig:"DATABASE_DSN"`
	// RedisURL is the connection URL for the redis backend.
	RedisURL string `envconfig:"REDIS_URL"`
	// LogLevel sets the zap level: debug, info, warn or error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the optional .env file, processes the environment, then lets
// command-line flags override the result. args is os.Args[1:].
func Load(args []string) (*Config, error) {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("autoshop", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address (ip:port)")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "durable store backend")
	fs.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "data directory for the file backend")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres connection string")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendFile, BackendPostgres, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return &cfg, nil
}
