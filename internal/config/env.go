// Package config defines the layered CLI configuration: built-in defaults,
// the persistent config.yml, then environment variables. Command flags
// overlay the result at the CLI layer.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the environment overrides recognized by the CLI. Fields
// stay empty unless the variable is present, so the merge can tell an
// override from a default.
type EnvConfig struct {
	SubtensorNetwork string `env:"SUBTENSOR_NETWORK"`
	GatewayURL       string `env:"GATEWAY_URL"`
	GatewayHost      string `env:"GATEWAY_HOST"`
	GatewayPort      string `env:"GATEWAY_PORT"`
	BittensorDir     string `env:"BITTENSOR_DIR"`
	WalletColdkey    string `env:"WALLET_COLDKEY"`
	WalletHotkey     string `env:"WALLET_HOTKEY"`
}

// ParseEnv reads the environment overrides.
func ParseEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return cfg, nil
}

// gatewayURL composes the gateway base URL from the environment, preferring
// a full GATEWAY_URL over the host/port pair.
func (e *EnvConfig) gatewayURL() string {
	if e.GatewayURL != "" {
		return e.GatewayURL
	}
	if e.GatewayHost == "" && e.GatewayPort == "" {
		return ""
	}
	host := e.GatewayHost
	if host == "" {
		host = DefaultGatewayHost
	}
	port := e.GatewayPort
	if port == "" {
		port = DefaultGatewayPort
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}
