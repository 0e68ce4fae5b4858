package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is used when neither the config file nor the environment
// names a backend.
const DefaultAPIURL = "http://localhost:8000"

// Environment variables that override file values.
const (
	EnvAPIURL  = "A360_API_URL"
	EnvTimeout = "A360_TIMEOUT"
)

// Config holds CLI configuration stored at ~/.a360/config.
type Config struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Theme   string        `yaml:"theme,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".a360", "config")
}

// Load reads the config file, then applies environment overrides. A missing
// file is not an error: env vars or defaults fill in. A present but
// world-readable file is rejected.
func Load() (*Config, error) {
	cfg := &Config{}

	path := Path()
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm := info.Mode().Perm()
		if perm != 0600 {
			return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// env vars or defaults fill in below
	default:
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIURL = url
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.Timeout = d
		}
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
