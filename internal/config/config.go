package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/engine"
)

// Duration decodes JSON strings such as "24h" or "90s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"24h\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database      string    `json:"database"`
	LogLevel      string    `json:"log_level"`
	GameTTL       *Duration `json:"game_ttl"`
	SweepInterval *Duration `json:"sweep_interval"`
	SolveTimeout  *Duration `json:"solve_timeout"`
	Rules         *struct {
		HandSize   int `json:"hand_size"`
		EnemySlots int `json:"enemy_slots"`
	} `json:"rules"`
}

// LoadedConfig contains everything the server needs to start.
type LoadedConfig struct {
	ServerAddress string        `env:"HEARTBREAKER_ADDR"`
	DatabasePath  string        `env:"HEARTBREAKER_DB"`
	LogLevel      string        `env:"HEARTBREAKER_LOG_LEVEL"`
	GameTTL       time.Duration `env:"HEARTBREAKER_GAME_TTL"`
	SweepInterval time.Duration `env:"HEARTBREAKER_SWEEP_INTERVAL"`
	SolveTimeout  time.Duration `env:"HEARTBREAKER_SOLVE_TIMEOUT"`
	Rules         engine.Rules  `env:"-"`
}

func defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: constants.DefaultAddress,
		DatabasePath:  constants.DefaultDatabasePath,
		LogLevel:      "info",
		GameTTL:       24 * time.Hour,
		SweepInterval: 10 * time.Minute,
		SolveTimeout:  5 * time.Second,
		Rules:         engine.DefaultRules,
	}
}

// LoadConfig reads the configuration file at path, when it exists, and then
// applies HEARTBREAKER_* environment overrides. A missing file is not an
// error; every field has a default.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.applyFile(path, b); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *LoadedConfig) applyFile(path string, b []byte) error {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != "" {
		cfg.DatabasePath = rc.Database
	}
	if rc.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(rc.LogLevel))
	}
	if rc.GameTTL != nil {
		cfg.GameTTL = time.Duration(*rc.GameTTL)
	}
	if rc.SweepInterval != nil {
		cfg.SweepInterval = time.Duration(*rc.SweepInterval)
	}
	if rc.SolveTimeout != nil {
		cfg.SolveTimeout = time.Duration(*rc.SolveTimeout)
	}
	if rc.Rules != nil {
		if rc.Rules.HandSize != 0 {
			cfg.Rules.HandSize = rc.Rules.HandSize
		}
		if rc.Rules.EnemySlots != 0 {
			cfg.Rules.EnemySlots = rc.Rules.EnemySlots
		}
	}
	return nil
}

func (cfg *LoadedConfig) validate() error {
	if cfg.GameTTL <= 0 {
		return fmt.Errorf("game_ttl must be positive, got %s", cfg.GameTTL)
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %s", cfg.SweepInterval)
	}
	if cfg.SolveTimeout <= 0 {
		return fmt.Errorf("solve_timeout must be positive, got %s", cfg.SolveTimeout)
	}
	if cfg.Rules.HandSize < 1 || cfg.Rules.EnemySlots < 1 {
		return fmt.Errorf("rules: hand_size and enemy_slots must be at least 1")
	}
	// 53 cards remain once the spade king is in hand.
	if cfg.Rules.HandSize+cfg.Rules.EnemySlots > 53 {
		return fmt.Errorf("rules: hand_size + enemy_slots exceeds the deck")
	}
	return nil
}

// ClientConfig configures the HTTP client used by the terminal frontend.
type ClientConfig struct {
	ServerURL string        `env:"HEARTBREAKER_URL"`
	Timeout   time.Duration `env:"HEARTBREAKER_TIMEOUT"`
	Retries   uint          `env:"HEARTBREAKER_RETRIES"`
}

// LoadClientConfig returns the client configuration from the environment.
func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		ServerURL: constants.DefaultServerURL,
		Timeout:   10 * time.Second,
		Retries:   3,
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("%s must not be empty", constants.EnvServerURL)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%s must be positive", constants.EnvClientTimeout)
	}
	return cfg, nil
}
