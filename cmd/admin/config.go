package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// adminConfig is persisted by login and removed by logout.
type adminConfig struct {
	FunctionsURL string `yaml:"functionsUrl"`
	Token        string `yaml:"token"`
}

var errNotLoggedIn = errors.New("not logged in, run 'admin login' first")

// configPath is ~/.mechanicbook/admin.yaml unless MECHANICBOOK_ADMIN_CONFIG is set.
func configPath() string {
	if p := os.Getenv("MECHANICBOOK_ADMIN_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mechanicbook", "admin.yaml")
	}
	return filepath.Join(home, ".mechanicbook", "admin.yaml")
}

func loadConfig(path string) (*adminConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg adminConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Token == "" {
		return nil, errNotLoggedIn
	}
	return &cfg, nil
}

func saveConfig(path string, cfg *adminConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func removeConfig(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
