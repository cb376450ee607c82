package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// RateLimit configures the redis-backed limiter in front of game creation.
// It is disabled when Addr is empty.
type RateLimit struct {
	Addr     string
	Password string
	DB       int
	Max      int
	Window   time.Duration
}

func (r RateLimit) Enabled() bool {
	return r.Addr != ""
}

func NewRateLimit() (*RateLimit, error) {
	rl := &RateLimit{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		Max:      60,
		Window:   time.Minute,
	}

	if dbStr, ok := os.LookupEnv("REDIS_DB"); ok {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("unable to convert REDIS_DB to int: %w", err)
		}
		rl.DB = db
	}

	if maxStr, ok := os.LookupEnv("RATE_LIMIT_MAX"); ok {
		max, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("unable to convert RATE_LIMIT_MAX to int: %w", err)
		}
		if max <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", max)
		}
		rl.Max = max
	}

	if windowStr, ok := os.LookupEnv("RATE_LIMIT_WINDOW"); ok {
		window, err := time.ParseDuration(windowStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse RATE_LIMIT_WINDOW: %w", err)
		}
		if window < time.Second {
			return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", window)
		}
		rl.Window = window
	}

	return rl, nil
}
