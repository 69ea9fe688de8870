package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

// FileConfig is the persisted subset of the configuration, stored as YAML at
// ~/.bittensor/config.yml. Empty fields are omitted so the file only records
// what the user actually set.
type FileConfig struct {
	Network       string          `yaml:"network,omitempty"`
	GatewayURL    string          `yaml:"gateway_url,omitempty"`
	WalletName    string          `yaml:"wallet_name,omitempty"`
	WalletHotkey  string          `yaml:"wallet_hotkey,omitempty"`
	WalletPath    string          `yaml:"wallet_path,omitempty"`
	MetagraphCols map[string]bool `yaml:"metagraph_cols,omitempty"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(wallet.ExpandPath(DefaultBittensorDir), "config.yml")
}

// LoadFile parses the YAML config at path. A missing file is not an error
// and yields an empty FileConfig.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(wallet.ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config YAML to path, creating parent directories.
func (f *FileConfig) Save(path string) error {
	path = wallet.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
