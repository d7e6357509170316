// Package config loads the persisted CLI configuration.
//
// Configuration lives in a YAML file of string sections at
// $XDG_CONFIG_HOME/toggl-cli/config.yml; a handful of environment variables
// override it so the token never has to be written to disk.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Well-known sections and keys.
const (
	SectionAuth    = "auth"
	SectionOptions = "options"

	KeyAPIToken        = "api_token"
	KeyAPIURL          = "api_url"
	KeyTimezone        = "timezone"
	KeyContinueCreates = "continue_creates"
)

// Environment variable overrides.
const (
	EnvAPIToken = "TOGGL_API_TOKEN"
	EnvAPIURL   = "TOGGL_API_URL"
)

// DefaultAPIURL is the Toggl API base used when none is configured.
const DefaultAPIURL = "https://api.track.toggl.com/api/v8"

// Config holds the loaded configuration sections.
type Config struct {
	sections map[string]map[string]string
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	path, err := xdg.ConfigFile("toggl-cli/config.yml")
	if err != nil {
		return ".togglrc.yml"
	}
	return path
}

// Load reads the config file at path. A missing file is not an error; the
// result then contains only defaults and environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{sections: map[string]map[string]string{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg.sections); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// New returns a config built from the given sections, for tests and callers
// that do not use a file.
func New(sections map[string]map[string]string) *Config {
	cfg := &Config{sections: map[string]map[string]string{}}
	for name, kv := range sections {
		section := map[string]string{}
		for k, v := range kv {
			section[k] = v
		}
		cfg.sections[name] = section
	}
	return cfg
}

func (c *Config) applyEnv() {
	if token := os.Getenv(EnvAPIToken); token != "" {
		c.set(SectionAuth, KeyAPIToken, token)
	}
	if url := os.Getenv(EnvAPIURL); url != "" {
		c.set(SectionOptions, KeyAPIURL, url)
	}
}

func (c *Config) set(section, key, value string) {
	if c.sections[section] == nil {
		c.sections[section] = map[string]string{}
	}
	c.sections[section][key] = value
}

// Get returns the string value at section/key, or "" when unset.
func (c *Config) Get(section, key string) string {
	return c.sections[section][key]
}

// APIToken returns the configured API token, or "" when unset.
func (c *Config) APIToken() string {
	return c.Get(SectionAuth, KeyAPIToken)
}

// APIURL returns the configured API base URL.
func (c *Config) APIURL() string {
	if url := c.Get(SectionOptions, KeyAPIURL); url != "" {
		return url
	}
	return DefaultAPIURL
}

// Timezone returns the configured IANA timezone name, or "" for local time.
func (c *Config) Timezone() string {
	return c.Get(SectionOptions, KeyTimezone)
}

// ContinueCreates reports whether continuing an entry should always create a
// new one. Stored as a boolean-like string; anything but "true" is false.
func (c *Config) ContinueCreates() bool {
	return strings.EqualFold(c.Get(SectionOptions, KeyContinueCreates), "true")
}
