package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	bip39 "github.com/cosmos/go-bip39"
)

// NewMnemonic generates a fresh BIP-39 mnemonic with the given word count.
// Valid counts are 12, 15, 18, 21 and 24.
func NewMnemonic(words int) (string, error) {
	switch words {
	case 12, 15, 18, 21, 24:
	default:
		return "", fmt.Errorf("mnemonic word count must be one of 12, 15, 18, 21 or 24, got %d", words)
	}
	entropy, err := bip39.NewEntropy(words * 32 / 3)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidMnemonic reports whether the phrase is a well-formed BIP-39 mnemonic.
func ValidMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(strings.TrimSpace(mnemonic))
}

// KeypairFromMnemonic derives the sr25519 keypair for a mnemonic using the
// substrate derivation.
func KeypairFromMnemonic(mnemonic string) (*sr25519.Keypair, error) {
	keypair, err := sr25519.NewKeypairFromMnenomic(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create keypair from mnemonic: %w", err)
	}
	return keypair, nil
}

// KeypairFromSeedHex rebuilds a keypair from a 32-byte hex seed, with or
// without the 0x prefix.
func KeypairFromSeedHex(seedHex string) (*sr25519.Keypair, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(seedHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed hex: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("invalid seed length: expected 32 bytes, got %d", len(raw))
	}
	keypair, err := sr25519.NewKeypairFromSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create keypair from seed: %w", err)
	}
	return keypair, nil
}
