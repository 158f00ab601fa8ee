package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides (take precedence over the config file).
const (
	EnvBaseURL     = "LUMENIK_API_URL"
	EnvSessionFile = "LUMENIK_SESSION_FILE"
)

type (
	// Config holds the client settings.
	Config struct {
		// Backend base URL (the /api prefix included)
		BaseURL string `yaml:"base_url"`
		// Session file path (token + profile)
		SessionFile string `yaml:"session_file"`
		// Platform shown when no explicit choice was made
		DefaultPlatform string `yaml:"default_platform"`
		// Catalog poll period for the watcher
		PollInterval time.Duration `yaml:"poll_interval"`
		// Per-request HTTP timeout
		RequestTimeout time.Duration `yaml:"request_timeout"`
		// Storage budget choices offered to the user [GB]
		CapacityOptions []float64 `yaml:"capacity_options"`
		// Platforms whose catalog demands the large minimum capacity
		LargeCatalogPlatforms []string `yaml:"large_catalog_platforms"`
		// Minimum capacity [GB] for large-catalog platforms
		MinLargeCatalogGB float64 `yaml:"min_large_catalog_gb"`
		// Catalog page size
		PageSize int `yaml:"page_size"`
	}
)

// Default returns the stock client configuration.
func Default() Config {
	return Config{
		BaseURL:               "http://localhost:5000/api",
		SessionFile:           filepath.Join(os.TempDir(), "lumenik_session.json"),
		DefaultPlatform:       "PS4",
		PollInterval:          30 * time.Second,
		RequestTimeout:        15 * time.Second,
		CapacityOptions:       []float64{64, 128, 256, 500, 1000, 2000},
		LargeCatalogPlatforms: []string{"PS3", "PS4"},
		MinLargeCatalogGB:     128,
		PageSize:              25,
	}
}

// Load builds the configuration: defaults, then the optional YAML file,
// then .env/environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvSessionFile); v != "" {
		cfg.SessionFile = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s: must be set", "base_url")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s: must be GT 0", "poll_interval")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%s: must be GT 0", "request_timeout")
	}
	if c.MinLargeCatalogGB <= 0 {
		return fmt.Errorf("%s: must be GT 0", "min_large_catalog_gb")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%s: must be GTE 1", "page_size")
	}

	return nil
}

// LargeCatalog reports whether the platform demands the large minimum capacity.
func (c Config) LargeCatalog(platform string) bool {
	for _, p := range c.LargeCatalogPlatforms {
		if p == platform {
			return true
		}
	}

	return false
}
