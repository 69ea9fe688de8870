package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

// VerifySignature checks a 0x-prefixed sr25519 signature against the public
// key encoded in the SS58 address.
func VerifySignature(message []byte, signature, ss58Address string) (bool, error) {
	if !strings.HasPrefix(signature, "0x") {
		return false, fmt.Errorf("signature does not start with '0x'")
	}
	sigBytes, err := hex.DecodeString(signature[2:])
	if err != nil {
		return false, fmt.Errorf("failed to decode signature hex: %w", err)
	}
	if len(sigBytes) != 64 {
		return false, fmt.Errorf("invalid signature length: expected 64 bytes, got %d", len(sigBytes))
	}

	_, pubKeyBytes, err := subkey.SS58Decode(ss58Address)
	if err != nil {
		return false, fmt.Errorf("failed to decode SS58 address to derive public key: %w", err)
	}
	publicKey, err := sr25519.NewPublicKey(pubKeyBytes)
	if err != nil {
		return false, fmt.Errorf("failed to create public key: %w", err)
	}

	return publicKey.Verify(message, sigBytes)
}
