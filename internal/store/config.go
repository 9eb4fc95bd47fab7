package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEndpointNotConfigured means the remote store URL is absent or still the
// placeholder. Saving and loading are impossible until the user fixes it; no
// retry will help.
var ErrEndpointNotConfigured = errors.New("web_app_url is not configured")

type Config struct {
	WebAppURL          string `yaml:"web_app_url"`
	SettingsDB         string `yaml:"settings_db"`
	DefaultInstrument  string `yaml:"default_instrument"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
	Dashboard          struct {
		Host         string   `yaml:"host"`
		Port         int      `yaml:"port"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"dashboard"`
}

func (c *Config) Validate() error {
	if c.WebAppURL == "" || strings.Contains(c.WebAppURL, "REPLACE") {
		return ErrEndpointNotConfigured
	}
	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("http_timeout_seconds must be >= 0, got %d", c.HTTPTimeoutSeconds)
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard port out of range: %d", c.Dashboard.Port)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// Env wins over file for the endpoint so a .env deployment works
	// without editing config.yaml.
	if v := os.Getenv("WEB_APP_URL"); v != "" {
		c.WebAppURL = v
	}

	if c.SettingsDB == "" {
		c.SettingsDB = "settings.db"
	}
	if c.DefaultInstrument == "" {
		c.DefaultInstrument = "NIFTY"
	}
	if c.HTTPTimeoutSeconds == 0 {
		c.HTTPTimeoutSeconds = 30
	}
	if c.Dashboard.Host == "" {
		c.Dashboard.Host = "127.0.0.1"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if len(c.Dashboard.AllowOrigins) == 0 {
		c.Dashboard.AllowOrigins = []string{"http://localhost:3000"}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
