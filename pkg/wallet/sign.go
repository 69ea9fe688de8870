package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/rs/zerolog/log"
)

// SignMessage signs the message with the keypair and returns the signature
// as a 0x-prefixed hex string.
func SignMessage(keypair *sr25519.Keypair, message []byte) (string, error) {
	if keypair == nil {
		return "", fmt.Errorf("keypair not initialized")
	}
	signature, err := keypair.Sign(message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign message")
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return "0x" + hex.EncodeToString(signature), nil
}
