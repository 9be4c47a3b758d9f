// Package config loads the server configuration from an optional YAML
// file, with environment variable overrides for deployment knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server struct {
		Port           string        `yaml:"port"`
		DataDir        string        `yaml:"data_dir"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	Annotator struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"annotator"`

	Lexicon struct {
		Dir string `yaml:"dir"`
	} `yaml:"lexicon"`

	Scoring struct {
		ConfigPath string `yaml:"config_path"`
	} `yaml:"scoring"`

	Cache struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	RateLimit struct {
		IPLimitPerMin   int `yaml:"ip_limit_per_min"`
		BurstMultiplier int `yaml:"burst_multiplier"`
	} `yaml:"rate_limit"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Server.DataDir = "./data"
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Server.MaxBodyBytes = 1 << 20
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	cfg.Annotator.URL = "http://localhost:9005"
	cfg.Annotator.Timeout = 30 * time.Second
	cfg.Lexicon.Dir = "./lexicon"
	cfg.Cache.TTL = 15 * time.Minute
	cfg.RateLimit.IPLimitPerMin = 60
	cfg.RateLimit.BurstMultiplier = 2
	return cfg
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path loads defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnv overrides deployment settings from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Server.DataDir = v
	}
	if v := os.Getenv("ANNOTATOR_URL"); v != "" {
		cfg.Annotator.URL = v
	}
	if v := os.Getenv("LEXICON_DIR"); v != "" {
		cfg.Lexicon.Dir = v
	}
	if v := os.Getenv("SCORING_CONFIG"); v != "" {
		cfg.Scoring.ConfigPath = v
	}
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Annotator.URL == "" {
		return fmt.Errorf("annotator url must not be empty")
	}
	if c.Lexicon.Dir == "" {
		return fmt.Errorf("lexicon dir must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.RateLimit.IPLimitPerMin <= 0 {
		return fmt.Errorf("ip rate limit must be positive")
	}
	return nil
}
