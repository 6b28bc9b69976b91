package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN string
}

type PrivacyConfig struct {
	URL     string
	Timeout time.Duration
}

type SweepConfig struct {
	ProofInterval     time.Duration
	RateLimitInterval time.Duration
}

type RateLimitConfig struct {
	Max      int
	Window   time.Duration
	BlockFor time.Duration
}

type AppConfig struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Privacy   PrivacyConfig
	Sweep     SweepConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DATABASE_DSN", "data/reputation.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PRIVACY_API_URL", "http://localhost:8090")
	viper.SetDefault("PRIVACY_TIMEOUT", "30s")
	viper.SetDefault("PROOF_SWEEP_INTERVAL", "5m")
	viper.SetDefault("RATE_LIMIT_MAX", 30)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("RATE_LIMIT_BLOCK", "5m")
	viper.SetDefault("RATE_LIMIT_SWEEP_INTERVAL", "1m")

	privacyTimeout, err := time.ParseDuration(viper.GetString("PRIVACY_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid privacy timeout: %w", err)
	}

	proofSweep, err := time.ParseDuration(viper.GetString("PROOF_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid proof sweep interval: %w", err)
	}

	limitWindow, err := time.ParseDuration(viper.GetString("RATE_LIMIT_WINDOW"))
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	limitBlock, err := time.ParseDuration(viper.GetString("RATE_LIMIT_BLOCK"))
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit block: %w", err)
	}

	limitSweep, err := time.ParseDuration(viper.GetString("RATE_LIMIT_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit sweep interval: %w", err)
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			DSN: viper.GetString("DATABASE_DSN"),
		},
		Privacy: PrivacyConfig{
			URL:     viper.GetString("PRIVACY_API_URL"),
			Timeout: privacyTimeout,
		},
		Sweep: SweepConfig{
			ProofInterval:     proofSweep,
			RateLimitInterval: limitSweep,
		},
		RateLimit: RateLimitConfig{
			Max:      viper.GetInt("RATE_LIMIT_MAX"),
			Window:   limitWindow,
			BlockFor: limitBlock,
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.RateLimit.Max <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}

	return cfg, nil
}
