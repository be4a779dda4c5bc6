package internal

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the CLI's persisted state: where the server lives, who is
// logged in, and which consultation session is active. The client library
// itself stays stateless; this file is how the CLI threads the session id
// between invocations.
type Config struct {
	ServerURL      string `yaml:"server_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	Username       string `yaml:"username,omitempty"`
	ActiveSession  int    `yaml:"active_session,omitempty"` // 0 = none
}

const configFileName = "config.yaml"

// DefaultConfigDir returns ~/.hukumchat, honoring the HUKUMCHAT_HOME
// override (used by tests and CI).
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv("HUKUMCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hukumchat"), nil
}

// LoadConfig reads the config file from dir. A missing file is not an
// error; it yields a zero config so first runs work without setup.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the config file, creating dir if needed.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0644)
}

// Timeout converts the configured seconds to a duration, falling back to
// the client default when unset.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ArchivePath returns the transcript archive location under dir.
func ArchivePath(dir string) string {
	return filepath.Join(dir, "archive.db")
}

// ClearSession drops the active session so the next chat starts fresh.
func (c *Config) ClearSession() {
	c.ActiveSession = 0
}
