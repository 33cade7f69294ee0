package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
	MaxConns        int32
}

const (
	defaultRunAddress      = ":8081"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
)

// Load parses configuration from flags, environment variables and an optional
// dotenv file. Real environment variables win over the file.
func Load() (*Config, error) {
	lookup, err := withEnvFile(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withEnvFile falls back to values from ENV_FILE (default .env). A missing file is ignored.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", defaultLogLevel)
		maxConns           = getInt(lookup, "DB_MAX_CONNS", 0)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn or error")
	fs.IntVar(&maxConns, "max-conns", maxConns, "Maximum PostgreSQL pool size, 0 keeps the driver default")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if maxConns > math.MaxInt32 {
		return nil, fmt.Errorf("invalid max conns: %d exceeds %d", maxConns, math.MaxInt32)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
