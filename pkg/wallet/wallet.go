// Package wallet manages bittensor key material on disk: coldkey and hotkey
// keyfiles under the wallets directory, BIP-39 mnemonic generation, and
// sr25519 signing helpers.
package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

const (
	// SubstrateNetworkID is the SS58 prefix used when encoding addresses.
	SubstrateNetworkID = 42

	DefaultWalletsDir = "~/.bittensor/wallets"
	DefaultName       = "default"
	DefaultHotkey     = "default"
)

// ErrExists reports that a keyfile is already present and overwrite was not
// requested.
var ErrExists = errors.New("keyfile already exists")

// Wallet addresses one coldkey directory, and optionally one hotkey inside
// it, under the wallets base path.
type Wallet struct {
	Name   string
	Hotkey string
	Path   string
}

// New builds a Wallet, applying defaults for empty fields and expanding a
// leading ~ in the base path.
func New(name, hotkey, path string) *Wallet {
	if name == "" {
		name = DefaultName
	}
	if hotkey == "" {
		hotkey = DefaultHotkey
	}
	if path == "" {
		path = DefaultWalletsDir
	}
	return &Wallet{Name: name, Hotkey: hotkey, Path: ExpandPath(path)}
}

// Dir returns the directory holding this wallet's keyfiles.
func (w *Wallet) Dir() string { return filepath.Join(w.Path, w.Name) }

func (w *Wallet) ColdkeyPath() string    { return filepath.Join(w.Dir(), "coldkey") }
func (w *Wallet) ColdkeypubPath() string { return filepath.Join(w.Dir(), "coldkeypub.txt") }
func (w *Wallet) HotkeyPath() string     { return filepath.Join(w.Dir(), "hotkeys", w.Hotkey) }

// Coldkey loads the coldkey keypair from disk.
func (w *Wallet) Coldkey() (*sr25519.Keypair, error) {
	kf, err := ReadKeyfile(w.ColdkeyPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load coldkey for wallet %q: %w", w.Name, err)
	}
	return kf.Keypair()
}

// HotkeyKeypair loads the selected hotkey keypair from disk.
func (w *Wallet) HotkeyKeypair() (*sr25519.Keypair, error) {
	kf, err := ReadKeyfile(w.HotkeyPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load hotkey %q for wallet %q: %w", w.Hotkey, w.Name, err)
	}
	return kf.Keypair()
}

// ColdkeypubAddress returns the coldkey SS58 address without touching secret
// material.
func (w *Wallet) ColdkeypubAddress() (string, error) {
	kf, err := ReadKeyfile(w.ColdkeypubPath())
	if err != nil {
		return "", fmt.Errorf("failed to load coldkeypub for wallet %q: %w", w.Name, err)
	}
	return kf.SS58Address, nil
}

// HotkeyAddress returns the selected hotkey's SS58 address.
func (w *Wallet) HotkeyAddress() (string, error) {
	kf, err := ReadKeyfile(w.HotkeyPath())
	if err != nil {
		return "", fmt.Errorf("failed to load hotkey %q for wallet %q: %w", w.Hotkey, w.Name, err)
	}
	return kf.SS58Address, nil
}

// CreateColdkey derives a keypair from the mnemonic and writes the coldkey
// and coldkeypub keyfiles. The public file is always refreshed to match.
func (w *Wallet) CreateColdkey(mnemonic string, overwrite bool) (*Keyfile, error) {
	kf, err := KeyfileFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	if err := kf.Write(w.ColdkeyPath(), 0o600, overwrite); err != nil {
		return nil, err
	}
	if err := kf.Public().Write(w.ColdkeypubPath(), 0o644, true); err != nil {
		return nil, err
	}
	return kf, nil
}

// CreateColdkeyFromSeed is CreateColdkey for a raw hex seed. The resulting
// keyfile carries no mnemonic.
func (w *Wallet) CreateColdkeyFromSeed(seedHex string, overwrite bool) (*Keyfile, error) {
	kf, err := KeyfileFromSeedHex(seedHex)
	if err != nil {
		return nil, err
	}
	if err := kf.Write(w.ColdkeyPath(), 0o600, overwrite); err != nil {
		return nil, err
	}
	if err := kf.Public().Write(w.ColdkeypubPath(), 0o644, true); err != nil {
		return nil, err
	}
	return kf, nil
}

// CreateHotkey derives a keypair from the mnemonic and writes it under
// hotkeys/<name>.
func (w *Wallet) CreateHotkey(mnemonic string, overwrite bool) (*Keyfile, error) {
	kf, err := KeyfileFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	if err := kf.Write(w.HotkeyPath(), 0o600, overwrite); err != nil {
		return nil, err
	}
	return kf, nil
}

// CreateHotkeyFromSeed is CreateHotkey for a raw hex seed.
func (w *Wallet) CreateHotkeyFromSeed(seedHex string, overwrite bool) (*Keyfile, error) {
	kf, err := KeyfileFromSeedHex(seedHex)
	if err != nil {
		return nil, err
	}
	if err := kf.Write(w.HotkeyPath(), 0o600, overwrite); err != nil {
		return nil, err
	}
	return kf, nil
}

// Address encodes the keypair's public key as an SS58 address.
func Address(keypair *sr25519.Keypair) string {
	return subkey.SS58Encode(keypair.Public().Encode(), SubstrateNetworkID)
}

// ValidAddress reports whether s decodes as an SS58 address.
func ValidAddress(s string) bool {
	_, _, err := subkey.SS58Decode(s)
	return err == nil
}

// HotkeyInfo names one hotkey keyfile and its address.
type HotkeyInfo struct {
	Name        string
	SS58Address string
}

// Info summarizes one wallet directory.
type Info struct {
	Name           string
	ColdkeyAddress string
	Hotkeys        []HotkeyInfo
}

// List enumerates the wallet directories under path, in directory order.
// Wallets without a readable coldkeypub file are reported with an empty
// address rather than skipped.
func List(path string) ([]Info, error) {
	path = ExpandPath(path)
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wallets directory: %w", err)
	}
	var infos []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		w := New(e.Name(), "", path)
		info := Info{Name: e.Name()}
		if kf, err := ReadKeyfile(w.ColdkeypubPath()); err == nil {
			info.ColdkeyAddress = kf.SS58Address
		}
		hotkeyDir := filepath.Join(w.Dir(), "hotkeys")
		hotkeys, err := os.ReadDir(hotkeyDir)
		if err == nil {
			for _, h := range hotkeys {
				if h.IsDir() {
					continue
				}
				hk := HotkeyInfo{Name: h.Name()}
				if kf, err := ReadKeyfile(filepath.Join(hotkeyDir, h.Name())); err == nil {
					hk.SS58Address = kf.SS58Address
				}
				info.Hotkeys = append(info.Hotkeys, hk)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
