package config

import (
	"context"
	"fmt"
	"sort"

	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

const (
	DefaultNetwork      = "finney"
	DefaultGatewayHost  = "127.0.0.1"
	DefaultGatewayPort  = "3000"
	DefaultBittensorDir = "~/.bittensor"
)

// ChainEndpoints maps network names to the public subtensor endpoints the
// gateway dials for each of them.
var ChainEndpoints = map[string]string{
	"finney":  "wss://entrypoint-finney.opentensor.ai:443",
	"test":    "wss://test.finney.opentensor.ai:443",
	"local":   "ws://127.0.0.1:9944",
	"archive": "wss://archive.chain.opentensor.ai:443",
}

// KnownNetwork reports whether name is a recognized subtensor network.
func KnownNetwork(name string) bool {
	_, ok := ChainEndpoints[name]
	return ok
}

// Networks returns the recognized network names, sorted.
func Networks() []string {
	names := make([]string, 0, len(ChainEndpoints))
	for name := range ChainEndpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config is the fully resolved configuration after merging defaults, the
// config file and the environment. Flag overrides are applied by the CLI.
type Config struct {
	Network       string
	GatewayURL    string
	WalletName    string
	WalletHotkey  string
	WalletPath    string
	MetagraphCols map[string]bool

	// Path is the config file location this Config was resolved from.
	Path string
}

// Load resolves the configuration from path (DefaultPath when empty), then
// overlays environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{
		Network:      DefaultNetwork,
		GatewayURL:   fmt.Sprintf("http://%s:%s", DefaultGatewayHost, DefaultGatewayPort),
		WalletName:   wallet.DefaultName,
		WalletHotkey: wallet.DefaultHotkey,
		WalletPath:   wallet.DefaultWalletsDir,
		Path:         path,
	}

	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyFile(file)

	envCfg, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(envCfg)

	if !KnownNetwork(cfg.Network) {
		return nil, fmt.Errorf("unknown network %q, expected one of %v", cfg.Network, Networks())
	}
	return cfg, nil
}

func (c *Config) applyFile(f *FileConfig) {
	if f.Network != "" {
		c.Network = f.Network
	}
	if f.GatewayURL != "" {
		c.GatewayURL = f.GatewayURL
	}
	if f.WalletName != "" {
		c.WalletName = f.WalletName
	}
	if f.WalletHotkey != "" {
		c.WalletHotkey = f.WalletHotkey
	}
	if f.WalletPath != "" {
		c.WalletPath = f.WalletPath
	}
	if len(f.MetagraphCols) > 0 {
		c.MetagraphCols = f.MetagraphCols
	}
}

func (c *Config) applyEnv(e *EnvConfig) {
	if e.SubtensorNetwork != "" {
		c.Network = e.SubtensorNetwork
	}
	if url := e.gatewayURL(); url != "" {
		c.GatewayURL = url
	}
	if e.BittensorDir != "" {
		c.WalletPath = wallet.BaseDirFromEnv(context.Background())
	}
	if e.WalletColdkey != "" {
		c.WalletName = e.WalletColdkey
	}
	if e.WalletHotkey != "" {
		c.WalletHotkey = e.WalletHotkey
	}
}

// Wallet builds the wallet selected by this configuration, with optional
// name and hotkey overrides from flags.
func (c *Config) Wallet(name, hotkey string) *wallet.Wallet {
	if name == "" {
		name = c.WalletName
	}
	if hotkey == "" {
		hotkey = c.WalletHotkey
	}
	return wallet.New(name, hotkey, c.WalletPath)
}

// FileConfig projects the resolved config back into its persisted form,
// used by `config set` to rewrite the file.
func (c *Config) FileConfig() *FileConfig {
	return &FileConfig{
		Network:       c.Network,
		GatewayURL:    c.GatewayURL,
		WalletName:    c.WalletName,
		WalletHotkey:  c.WalletHotkey,
		WalletPath:    c.WalletPath,
		MetagraphCols: c.MetagraphCols,
	}
}
