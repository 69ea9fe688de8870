package wallet

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

// EnvConfig carries the wallet environment overrides.
type EnvConfig struct {
	BittensorDir string `env:"BITTENSOR_DIR"`
}

// BaseDirFromEnv resolves the wallets base directory: BITTENSOR_DIR/wallets
// when the variable is set, DefaultWalletsDir otherwise.
func BaseDirFromEnv(ctx context.Context) string {
	var envCfg EnvConfig
	if err := envconfig.Process(ctx, &envCfg); err != nil {
		log.Error().Err(err).Msg("Failed to process environment variables for wallet")
		return ExpandPath(DefaultWalletsDir)
	}

	if envCfg.BittensorDir == "" {
		log.Debug().
			Str("default", DefaultWalletsDir).
			Msg("BITTENSOR_DIR not set, using default")
		return ExpandPath(DefaultWalletsDir)
	}
	return filepath.Join(ExpandPath(envCfg.BittensorDir), "wallets")
}
