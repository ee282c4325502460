package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultURL = "http://localhost:8080"

	// EnvPath names an explicit config file, bypassing the user config dir.
	EnvPath     = "CONTENTCTL_CONFIG"
	EnvServer   = "CONTENTCTL_SERVER"
	EnvCustomer = "CONTENTCTL_CUSTOMER"
)

var ErrNoCustomer = errors.New(`no customer configured: run "contentctl config set-customer <uuid>" or pass --customer`)

// Config is what contentctl remembers between runs.
type Config struct {
	ServerURL  string `json:"server_url"`
	CustomerID string `json:"customer_id,omitempty"`
}

// Path returns where the config lives: $CONTENTCTL_CONFIG when set,
// otherwise contentctl/config.json under the user config dir.
func Path() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv(EnvPath)); explicit != "" {
		return explicit, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "contentctl", "config.json"), nil
}

// Load reads the saved config and layers CONTENTCTL_SERVER and
// CONTENTCTL_CUSTOMER over it. A missing file is not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	p, err := Path()
	if err == nil {
		data, readErr := os.ReadFile(p)
		switch {
		case readErr == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
		case !errors.Is(readErr, os.ErrNotExist):
			return nil, readErr
		}
	}

	if server, ok := os.LookupEnv(EnvServer); ok && server != "" {
		cfg.ServerURL = server
	}
	if customer, ok := os.LookupEnv(EnvCustomer); ok && customer != "" {
		cfg.CustomerID = customer
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultURL
	}
	return cfg, nil
}

// Save writes cfg through a temporary file so a failed write never leaves a
// truncated config behind.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".config-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// SetServer normalises and stores a server URL.
func (c *Config) SetServer(raw string) error {
	server := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		return fmt.Errorf("server URL must start with http:// or https://")
	}
	c.ServerURL = server
	return nil
}

// SetCustomer stores a customer id in canonical form.
func (c *Config) SetCustomer(raw string) error {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return fmt.Errorf("invalid customer id %q", raw)
	}
	c.CustomerID = id.String()
	return nil
}

// Customer returns the configured customer id, or ErrNoCustomer.
func (c *Config) Customer() (uuid.UUID, error) {
	if c == nil || c.CustomerID == "" {
		return uuid.Nil, ErrNoCustomer
	}
	id, err := uuid.Parse(c.CustomerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid customer id %q", c.CustomerID)
	}
	return id, nil
}
