// Package projectconfig provides the Config struct and loader for
// .metriqai.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source
// of truth — New() references them and no other code should duplicate
// them.
const (
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8000

	DefaultCacheTTLMinutes = 60

	DefaultMaxModelsPerTask = 30
	DefaultHubRatePerSec    = 5
	DefaultHubRateBurst     = 10
)

// ServerConfig holds API server settings.
type ServerConfig struct {
	Host           string   `yaml:"host,omitempty"`
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes,omitempty"`
}

// SourcesConfig holds upstream registry settings.
type SourcesConfig struct {
	HubBaseURL       string `yaml:"hub_base_url,omitempty"`
	SOTABaseURL      string `yaml:"sota_base_url,omitempty"`
	MaxModelsPerTask int    `yaml:"max_models_per_task,omitempty"`
	HubRatePerSec    int    `yaml:"hub_rate_per_sec,omitempty"`
	HubRateBurst     int    `yaml:"hub_rate_burst,omitempty"`
	DisableSOTA      bool   `yaml:"disable_sota,omitempty"`
}

// Config is the root of .metriqai.yaml.
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
	Sources SourcesConfig `yaml:"sources,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
		},
		Cache: CacheConfig{
			TTLMinutes: DefaultCacheTTLMinutes,
		},
		Sources: SourcesConfig{
			MaxModelsPerTask: DefaultMaxModelsPerTask,
			HubRatePerSec:    DefaultHubRatePerSec,
			HubRateBurst:     DefaultHubRateBurst,
		},
	}
}

// Load reads path and merges it over the defaults. A missing file is not
// an error: defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.merge(&overlay)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Server.Host != "" {
		c.Server.Host = o.Server.Host
	}
	if o.Server.Port != 0 {
		c.Server.Port = o.Server.Port
	}
	if len(o.Server.AllowedOrigins) > 0 {
		c.Server.AllowedOrigins = o.Server.AllowedOrigins
	}
	if o.Cache.TTLMinutes != 0 {
		c.Cache.TTLMinutes = o.Cache.TTLMinutes
	}
	if o.Sources.HubBaseURL != "" {
		c.Sources.HubBaseURL = o.Sources.HubBaseURL
	}
	if o.Sources.SOTABaseURL != "" {
		c.Sources.SOTABaseURL = o.Sources.SOTABaseURL
	}
	if o.Sources.MaxModelsPerTask != 0 {
		c.Sources.MaxModelsPerTask = o.Sources.MaxModelsPerTask
	}
	if o.Sources.HubRatePerSec != 0 {
		c.Sources.HubRatePerSec = o.Sources.HubRatePerSec
	}
	if o.Sources.HubRateBurst != 0 {
		c.Sources.HubRateBurst = o.Sources.HubRateBurst
	}
	c.Sources.DisableSOTA = c.Sources.DisableSOTA || o.Sources.DisableSOTA
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Cache.TTLMinutes < 1 {
		return fmt.Errorf("cache.ttl_minutes must be positive, got %d", c.Cache.TTLMinutes)
	}
	if c.Sources.MaxModelsPerTask < 1 {
		return fmt.Errorf("sources.max_models_per_task must be positive, got %d", c.Sources.MaxModelsPerTask)
	}
	return nil
}
