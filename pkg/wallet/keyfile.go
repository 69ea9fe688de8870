package wallet

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// Keyfile is the JSON document stored on disk for each key. The public
// variant written next to the coldkey omits the secret fields.
type Keyfile struct {
	AccountID    string `json:"accountId"`
	PublicKey    string `json:"publicKey"`
	SecretPhrase string `json:"secretPhrase,omitempty"`
	SecretSeed   string `json:"secretSeed,omitempty"`
	SS58Address  string `json:"ss58Address"`
}

// ReadKeyfile parses the keyfile JSON at path, expanding a leading ~.
func ReadKeyfile(path string) (*Keyfile, error) {
	path = ExpandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile: %w", err)
	}
	var kf Keyfile
	if err := sonic.Unmarshal(data, &kf); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to parse keyfile JSON")
		return nil, fmt.Errorf("failed to parse keyfile JSON: %w", err)
	}
	return &kf, nil
}

// Keypair rebuilds the sr25519 keypair from the stored secret, preferring
// the mnemonic over the raw seed.
func (k *Keyfile) Keypair() (*sr25519.Keypair, error) {
	switch {
	case k.SecretPhrase != "":
		return KeypairFromMnemonic(k.SecretPhrase)
	case k.SecretSeed != "":
		return KeypairFromSeedHex(k.SecretSeed)
	default:
		return nil, fmt.Errorf("keyfile holds no secret material")
	}
}

// Public returns a copy with the secret fields cleared, as stored in
// coldkeypub.txt.
func (k *Keyfile) Public() *Keyfile {
	return &Keyfile{
		AccountID:   k.AccountID,
		PublicKey:   k.PublicKey,
		SS58Address: k.SS58Address,
	}
}

// Write stores the keyfile at path with the given mode, creating parent
// directories. Returns ErrExists when the file is present and overwrite is
// false.
func (k *Keyfile) Write(path string, mode os.FileMode, overwrite bool) error {
	path = ExpandPath(path)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create wallet directory: %w", err)
	}
	data, err := sonic.MarshalIndent(k, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode keyfile: %w", err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write keyfile: %w", err)
	}
	return nil
}

// KeyfileFromMnemonic derives the full keyfile document for a mnemonic,
// including the substrate mini secret seed.
func KeyfileFromMnemonic(mnemonic string) (*Keyfile, error) {
	ms, err := schnorrkel.MiniSecretKeyFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("failed to derive mini secret from mnemonic: %w", err)
	}
	seed := ms.Encode()
	kp, err := sr25519.NewKeypairFromSeed(seed[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create keypair from seed: %w", err)
	}
	pub := "0x" + hex.EncodeToString(kp.Public().Encode())
	return &Keyfile{
		AccountID:    pub,
		PublicKey:    pub,
		SecretPhrase: mnemonic,
		SecretSeed:   "0x" + hex.EncodeToString(seed[:]),
		SS58Address:  Address(kp),
	}, nil
}

// KeyfileFromSeedHex derives a keyfile from a raw 32-byte hex seed. The
// mnemonic field stays empty since it cannot be recovered from the seed.
func KeyfileFromSeedHex(seedHex string) (*Keyfile, error) {
	kp, err := KeypairFromSeedHex(seedHex)
	if err != nil {
		return nil, err
	}
	pub := "0x" + hex.EncodeToString(kp.Public().Encode())
	if !strings.HasPrefix(seedHex, "0x") {
		seedHex = "0x" + seedHex
	}
	return &Keyfile{
		AccountID:   pub,
		PublicKey:   pub,
		SecretSeed:  seedHex,
		SS58Address: Address(kp),
	}, nil
}

// ExpandPath replaces a leading ~/ with the current user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}
