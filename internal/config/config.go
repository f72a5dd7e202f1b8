package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/almehdi/jobview/internal/aggregate"
	"github.com/almehdi/jobview/internal/geocode"
)

// Config is the root configuration for jobview.
type Config struct {
	Geocoder GeocoderConfig
	Remote   RemoteConfig
	Snapshot SnapshotConfig
	Stats    StatsConfig
}

// GeocoderConfig controls the lookup service and the pacing of requests.
type GeocoderConfig struct {
	BaseURL        string        // lookup endpoint, defaults to public Nominatim
	UserAgent      string        // identifying agent string, required by Nominatim
	MinInterval    time.Duration // spacing between consecutive lookup starts
	Timeout        time.Duration // per-request HTTP timeout
	RetryTransport bool          // retry a transport failure once, under the same spacing
}

// RemoteConfig points at the hosted application store.
type RemoteConfig struct {
	BaseURL string `yaml:"base_url"` // realtime-database root URL; empty disables `fetch`
}

// SnapshotConfig controls the local archive database.
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// StatsConfig holds chart defaults.
type StatsConfig struct {
	DefaultDimension string `yaml:"default_dimension"`
}

// rawConfig is used for YAML unmarshaling (snake_case, durations as strings).
type rawConfig struct {
	Geocoder rawGeocoderConfig `yaml:"geocoder"`
	Remote   RemoteConfig      `yaml:"remote"`
	Snapshot SnapshotConfig    `yaml:"snapshot"`
	Stats    StatsConfig       `yaml:"stats"`
}

type rawGeocoderConfig struct {
	BaseURL        string `yaml:"base_url"`
	UserAgent      string `yaml:"user_agent"`
	MinInterval    string `yaml:"min_interval"`
	Timeout        string `yaml:"timeout"`
	RetryTransport *bool  `yaml:"retry_transport"`
}

// Default returns the configuration used when no config file exists.
// Importing a file should work with zero setup.
func Default() *Config {
	return &Config{
		Geocoder: GeocoderConfig{
			BaseURL:        geocode.DefaultBaseURL,
			UserAgent:      "jobview/0.1",
			MinInterval:    1 * time.Second,
			Timeout:        10 * time.Second,
			RetryTransport: true,
		},
		Snapshot: SnapshotConfig{Path: "jobview.db"},
		Stats:    StatsConfig{DefaultDimension: string(aggregate.ByCompany)},
	}
}

// Load reads and parses the YAML config file at path, applies defaults for
// omitted fields, validates, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Geocoder.BaseURL != "" {
		cfg.Geocoder.BaseURL = raw.Geocoder.BaseURL
	}
	if raw.Geocoder.UserAgent != "" {
		cfg.Geocoder.UserAgent = raw.Geocoder.UserAgent
	}
	if raw.Geocoder.MinInterval != "" {
		d, err := time.ParseDuration(raw.Geocoder.MinInterval)
		if err != nil {
			return nil, fmt.Errorf("parse geocoder.min_interval %q: %w", raw.Geocoder.MinInterval, err)
		}
		cfg.Geocoder.MinInterval = d
	}
	if raw.Geocoder.Timeout != "" {
		d, err := time.ParseDuration(raw.Geocoder.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse geocoder.timeout %q: %w", raw.Geocoder.Timeout, err)
		}
		cfg.Geocoder.Timeout = d
	}
	if raw.Geocoder.RetryTransport != nil {
		cfg.Geocoder.RetryTransport = *raw.Geocoder.RetryTransport
	}

	cfg.Remote = raw.Remote
	if raw.Snapshot.Path != "" {
		cfg.Snapshot.Path = raw.Snapshot.Path
	}
	if raw.Stats.DefaultDimension != "" {
		cfg.Stats.DefaultDimension = raw.Stats.DefaultDimension
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Geocoder.MinInterval < 0 {
		return fmt.Errorf("geocoder.min_interval must not be negative, got %v", cfg.Geocoder.MinInterval)
	}
	if cfg.Geocoder.Timeout <= 0 {
		return fmt.Errorf("geocoder.timeout must be positive, got %v", cfg.Geocoder.Timeout)
	}
	if _, err := aggregate.ParseDimension(cfg.Stats.DefaultDimension); err != nil {
		return fmt.Errorf("stats.default_dimension: %w", err)
	}
	return nil
}
