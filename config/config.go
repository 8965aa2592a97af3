// Package config loads service configuration from an optional YAML
// file with environment variable overrides. Missing files fall back to
// defaults so the service starts with zero configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Catalog CatalogConfig `yaml:"catalog"`
	Agents  AgentsConfig  `yaml:"agents"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ModelConfig selects and configures the completion provider.
type ModelConfig struct {
	// Provider is one of bedrock, anthropic, openai, or mock.
	Provider string `yaml:"provider"`

	// Mode selects the invocation style. Only "direct" is supported.
	Mode string `yaml:"mode"`

	ModelID     string  `yaml:"model_id"`
	Region      string  `yaml:"region"`
	APIKey      string  `yaml:"api_key"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	// RPS rate-limits outbound completion calls. Zero disables it.
	RPS float64 `yaml:"rps"`

	// MaxCallsPerRun caps completion calls per guidance request. Zero
	// means unlimited.
	MaxCallsPerRun int `yaml:"max_calls_per_run"`
}

// JobsConfig configures the job posting source.
type JobsConfig struct {
	// URL points at a postings endpoint. Empty selects the built-in
	// sample source.
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CatalogConfig configures the course catalog source and cache.
type CatalogConfig struct {
	// URL points at a catalog endpoint. Empty selects the built-in
	// static catalog.
	URL string `yaml:"url"`

	// CacheTTL bounds how long a catalog snapshot is served before a
	// refresh. Zero caches forever.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// AgentsConfig holds per-agent and orchestration deadlines.
type AgentsConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	OverallTimeout time.Duration `yaml:"overall_timeout"`

	// Narrative toggles the cross-agent synthesis paragraph.
	Narrative bool `yaml:"narrative"`
}

// SessionConfig configures the session store.
type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// LoggingConfig configures the service logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the baseline configuration used when no file or
// environment overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Model: ModelConfig{
			Provider:    "mock",
			Mode:        "direct",
			Region:      "us-east-1",
			MaxTokens:   4000,
			Temperature: 0.7,
		},
		Jobs: JobsConfig{
			Timeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			CacheTTL: 15 * time.Minute,
		},
		Agents: AgentsConfig{
			Timeout:        15 * time.Second,
			OverallTimeout: 60 * time.Second,
			Narrative:      true,
		},
		Session: SessionConfig{
			TTL: time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML file at path, falling back to defaults when the
// file does not exist, and applies COMPASS_* environment overrides.
// An empty path consults COMPASS_CONFIG and then config/compass.yaml.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("COMPASS_CONFIG")
	}
	if path == "" {
		path = "config/compass.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot honor.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "bedrock", "anthropic", "openai", "mock":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if c.Model.Mode != "" && c.Model.Mode != "direct" {
		return fmt.Errorf("unsupported invocation mode %q", c.Model.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COMPASS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COMPASS_MODEL_PROVIDER"); v != "" {
		cfg.Model.Provider = v
	}
	if v := os.Getenv("COMPASS_MODEL_ID"); v != "" {
		cfg.Model.ModelID = v
	}
	if v := os.Getenv("COMPASS_MODEL_REGION"); v != "" {
		cfg.Model.Region = v
	}
	if v := os.Getenv("AWS_DEFAULT_REGION"); v != "" && cfg.Model.Provider == "bedrock" {
		cfg.Model.Region = v
	}
	if v := os.Getenv("BEDROCK_MODEL_ID"); v != "" && cfg.Model.Provider == "bedrock" {
		cfg.Model.ModelID = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && cfg.Model.Provider == "anthropic" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Model.Provider == "openai" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("COMPASS_JOBS_URL"); v != "" {
		cfg.Jobs.URL = v
	}
	if v := os.Getenv("COMPASS_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("COMPASS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("COMPASS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("COMPASS_OVERALL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Agents.OverallTimeout = d
		}
	}
	if v := os.Getenv("COMPASS_AGENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Agents.Timeout = d
		}
	}
}
