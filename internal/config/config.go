// Package config loads client settings from flags, environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Authentication backends.
const (
	AuthMock      = "mock"
	AuthDirectory = "directory"
)

// Config holds runtime settings for the client.
type Config struct {
	AuthMode   string        // mock or directory
	LoginDelay time.Duration // simulated latency of the mock backend
	JWTKey     string        // HS256 signing key for session tokens
	TokenTTL   time.Duration // access token lifetime
	LogLevel   string        // debug, info, warn, error
	DarkTheme  bool          // start in dark theme

	ExtraDoctors int    // synthetic doctors appended to the catalog
	CatalogSeed  uint64 // seed for synthetic doctors

	MaxLoginFails int           // failures before lockout (directory mode)
	FailWindow    time.Duration // window failures are counted in
	LockoutFor    time.Duration // lockout duration
}

// Load parses args (without the program name). Flag defaults come from
// MEDHUB_* environment variables, which may be provided by a .env file in
// the working directory.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	fs := flag.NewFlagSet("medhub", flag.ContinueOnError)
	fs.StringVar(&cfg.AuthMode, "auth", getEnv("MEDHUB_AUTH", AuthMock), "auth backend: mock|directory")
	fs.DurationVar(&cfg.LoginDelay, "login-delay", getDuration("MEDHUB_LOGIN_DELAY", time.Second), "mock login latency")
	fs.StringVar(&cfg.JWTKey, "jwt-key", getEnv("MEDHUB_JWT_KEY", ""), "HS256 signing key for session tokens")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", getDuration("MEDHUB_TOKEN_TTL", time.Hour), "access token TTL")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("MEDHUB_LOG_LEVEL", "info"), "log level")
	fs.BoolVar(&cfg.DarkTheme, "dark", getBool("MEDHUB_DARK", false), "start in dark theme")
	fs.IntVar(&cfg.ExtraDoctors, "extra-doctors", getInt("MEDHUB_EXTRA_DOCTORS", 0), "synthetic doctors added to the catalog")
	fs.Uint64Var(&cfg.CatalogSeed, "catalog-seed", getUint("MEDHUB_CATALOG_SEED", 1), "seed for synthetic doctors")
	fs.IntVar(&cfg.MaxLoginFails, "max-login-fails", getInt("MEDHUB_MAX_LOGIN_FAILS", 5), "failed logins before lockout")
	fs.DurationVar(&cfg.FailWindow, "fail-window", getDuration("MEDHUB_FAIL_WINDOW", 15*time.Minute), "failed login counting window")
	fs.DurationVar(&cfg.LockoutFor, "lockout", getDuration("MEDHUB_LOCKOUT", 15*time.Minute), "lockout duration")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch cfg.AuthMode {
	case AuthMock, AuthDirectory:
	default:
		return Config{}, fmt.Errorf("unknown auth backend %q", cfg.AuthMode)
	}
	if cfg.LoginDelay < 0 {
		return Config{}, errors.New("login-delay must not be negative")
	}
	if cfg.ExtraDoctors < 0 {
		return Config{}, errors.New("extra-doctors must not be negative")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token-ttl must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getUint(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
