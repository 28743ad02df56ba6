package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the recommendation backend. It is
// constructed once at process start and passed by reference into each
// service constructor.
type Config struct {
	General  GeneralConfig  `mapstructure:"general"`
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Normalize applies defaults for unset server values.
func (s ServerConfig) Normalize() ServerConfig {
	if strings.TrimSpace(s.Listen) == "" {
		s.Listen = ":8000"
	}
	if s.Listen[0] != ':' && !strings.Contains(s.Listen, ":") {
		s.Listen = ":" + s.Listen
	}
	if len(s.AllowOrigins) == 0 {
		s.AllowOrigins = []string{"*"}
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
	return s
}

// LLMConfig contains the external model provider configuration
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai, anthropic, gemini
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Normalize applies defaults for unset LLM values. The timeout also bounds
// streaming chat calls; a hung upstream degrades to an empty result rather
// than blocking the request forever.
func (l LLMConfig) Normalize() LLMConfig {
	if strings.TrimSpace(l.Provider) == "" {
		l.Provider = "openai"
	}
	if strings.TrimSpace(l.Model) == "" {
		l.Model = "gpt-4o-mini"
	}
	if l.Timeout <= 0 {
		l.Timeout = 60 * time.Second
	}
	return l
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key required (DREAMCAR_LLM_API_KEY)")
	}
	return nil
}

// DatasetConfig points at the vehicle CSV file
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

func (d DatasetConfig) Validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("dataset.path required")
	}
	return nil
}

// DefaultsConfig holds the user-facing fallback values substituted at the
// API boundary when inference leaves a field absent.
type DefaultsConfig struct {
	TopN       int       `mapstructure:"top_n"`
	PriceRange []float64 `mapstructure:"price_range"`
	MPGRange   []float64 `mapstructure:"mpg_range"`
}

// Normalize applies the observed fallback ranges when values are omitted.
func (d DefaultsConfig) Normalize() DefaultsConfig {
	if d.TopN <= 0 {
		d.TopN = 5
	}
	if len(d.PriceRange) != 2 {
		d.PriceRange = []float64{15000, 90000}
	}
	if len(d.MPGRange) != 2 {
		d.MPGRange = []float64{15, 60}
	}
	return d
}

// LoadConfig loads config from file with DREAMCAR_* env overrides. A missing
// config file is fine when no explicit path is given; env and defaults carry
// the standalone case.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("server.listen", ":8000")
	v.SetDefault("llm.provider", "openai")
	// Registered so the env-only override (DREAMCAR_LLM_API_KEY) is seen by
	// Unmarshal even when no config file mentions the key.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("dataset.path", "./data/toyota_vehicles.csv")
	v.SetDefault("defaults.top_n", 5)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("DREAMCAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Server = cfg.Server.Normalize()
	cfg.LLM = cfg.LLM.Normalize()
	cfg.Defaults = cfg.Defaults.Normalize()

	if err := cfg.LLM.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Dataset.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
