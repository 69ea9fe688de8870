package wallet

import (
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestCreateAndLoadColdkey(t *testing.T) {
	mnemonic, err := NewMnemonic(12)
	if err != nil {
		t.Fatalf("Failed to generate mnemonic: %v", err)
	}

	w := New("alice", "", t.TempDir())
	kf, err := w.CreateColdkey(mnemonic, false)
	if err != nil {
		t.Fatalf("Failed to create coldkey: %v", err)
	}
	if kf.SS58Address == "" {
		t.Fatal("Expected keyfile to carry an SS58 address")
	}
	if kf.SecretPhrase != mnemonic {
		t.Errorf("Keyfile mnemonic = %q, want %q", kf.SecretPhrase, mnemonic)
	}

	keypair, err := w.Coldkey()
	if err != nil {
		t.Fatalf("Failed to load coldkey: %v", err)
	}
	if got := Address(keypair); got != kf.SS58Address {
		t.Errorf("Loaded coldkey address = %q, want %q", got, kf.SS58Address)
	}

	addr, err := w.ColdkeypubAddress()
	if err != nil {
		t.Fatalf("Failed to load coldkeypub: %v", err)
	}
	if addr != kf.SS58Address {
		t.Errorf("Coldkeypub address = %q, want %q", addr, kf.SS58Address)
	}

	pub, err := ReadKeyfile(w.ColdkeypubPath())
	if err != nil {
		t.Fatalf("Failed to read coldkeypub keyfile: %v", err)
	}
	if pub.SecretPhrase != "" || pub.SecretSeed != "" {
		t.Error("Coldkeypub keyfile must not carry secret material")
	}
}

func TestCreateAndLoadHotkey(t *testing.T) {
	mnemonic, err := NewMnemonic(12)
	if err != nil {
		t.Fatalf("Failed to generate mnemonic: %v", err)
	}

	w := New("alice", "worker", t.TempDir())
	kf, err := w.CreateHotkey(mnemonic, false)
	if err != nil {
		t.Fatalf("Failed to create hotkey: %v", err)
	}

	keypair, err := w.HotkeyKeypair()
	if err != nil {
		t.Fatalf("Failed to load hotkey: %v", err)
	}
	if got := Address(keypair); got != kf.SS58Address {
		t.Errorf("Loaded hotkey address = %q, want %q", got, kf.SS58Address)
	}

	addr, err := w.HotkeyAddress()
	if err != nil {
		t.Fatalf("Failed to read hotkey address: %v", err)
	}
	if addr != kf.SS58Address {
		t.Errorf("Hotkey address = %q, want %q", addr, kf.SS58Address)
	}
}

func TestSeedRoundTrip(t *testing.T) {
	mnemonic, err := NewMnemonic(12)
	if err != nil {
		t.Fatalf("Failed to generate mnemonic: %v", err)
	}

	kf, err := KeyfileFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("Failed to derive keyfile: %v", err)
	}
	if !strings.HasPrefix(kf.SecretSeed, "0x") {
		t.Fatalf("Secret seed %q missing 0x prefix", kf.SecretSeed)
	}

	// The stored seed must rebuild the same keypair as the mnemonic.
	keypair, err := KeypairFromSeedHex(kf.SecretSeed)
	if err != nil {
		t.Fatalf("Failed to rebuild keypair from seed: %v", err)
	}
	if got := Address(keypair); got != kf.SS58Address {
		t.Errorf("Seed-derived address = %q, want %q", got, kf.SS58Address)
	}
}

func TestKeyfileFromMnemonicUsesMiniSecret(t *testing.T) {
	mnemonic, err := NewMnemonic(12)
	if err != nil {
		t.Fatalf("Failed to generate mnemonic: %v", err)
	}

	kf, err := KeyfileFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("Failed to derive keyfile: %v", err)
	}

	// The stored seed is the 32-byte substrate mini secret, not the 64-byte
	// BIP-39 seed.
	raw, err := hex.DecodeString(strings.TrimPrefix(kf.SecretSeed, "0x"))
	if err != nil {
		t.Fatalf("Secret seed %q is not hex: %v", kf.SecretSeed, err)
	}
	if len(raw) != 32 {
		t.Fatalf("Secret seed is %d bytes, want 32", len(raw))
	}

	// The keyfile must land on the same keypair as the substrate mnemonic
	// derivation.
	keypair, err := KeypairFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("Failed to derive keypair from mnemonic: %v", err)
	}
	if got := Address(keypair); got != kf.SS58Address {
		t.Errorf("Mnemonic-derived address = %q, want %q", got, kf.SS58Address)
	}
}

func TestWriteRefusesOverwrite(t *testing.T) {
	mnemonic, err := NewMnemonic(12)
	if err != nil {
		t.Fatalf("Failed to generate mnemonic: %v", err)
	}

	w := New("alice", "", t.TempDir())
	if _, err := w.CreateColdkey(mnemonic, false); err != nil {
		t.Fatalf("Failed to create coldkey: %v", err)
	}
	if _, err := w.CreateColdkey(mnemonic, false); !errors.Is(err, ErrExists) {
		t.Fatalf("Expected ErrExists on second create, got %v", err)
	}
	if _, err := w.CreateColdkey(mnemonic, true); err != nil {
		t.Fatalf("Overwrite create failed: %v", err)
	}
}

func TestList(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"bob", "alice"} {
		mnemonic, err := NewMnemonic(12)
		if err != nil {
			t.Fatalf("Failed to generate mnemonic: %v", err)
		}
		w := New(name, "h1", base)
		if _, err := w.CreateColdkey(mnemonic, false); err != nil {
			t.Fatalf("Failed to create coldkey %s: %v", name, err)
		}
		if _, err := w.CreateHotkey(mnemonic, false); err != nil {
			t.Fatalf("Failed to create hotkey for %s: %v", name, err)
		}
	}
	// Stray files in the base directory are not wallets.
	if err := os.WriteFile(base+"/notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}

	infos, err := List(base)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List returned %d wallets, want 2", len(infos))
	}
	if infos[0].Name != "alice" || infos[1].Name != "bob" {
		t.Errorf("List order = %q, %q; want alice, bob", infos[0].Name, infos[1].Name)
	}
	for _, info := range infos {
		if info.ColdkeyAddress == "" {
			t.Errorf("Wallet %s missing coldkey address", info.Name)
		}
		if len(info.Hotkeys) != 1 || info.Hotkeys[0].Name != "h1" {
			t.Errorf("Wallet %s hotkeys = %+v, want one h1", info.Name, info.Hotkeys)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	infos, err := List(t.TempDir() + "/nope")
	if err != nil {
		t.Fatalf("List on missing directory returned error: %v", err)
	}
	if infos != nil {
		t.Fatalf("List on missing directory = %+v, want nil", infos)
	}
}

func TestNewMnemonicWordCounts(t *testing.T) {
	for _, words := range []int{12, 15, 18, 21, 24} {
		mnemonic, err := NewMnemonic(words)
		if err != nil {
			t.Fatalf("NewMnemonic(%d) failed: %v", words, err)
		}
		if got := len(strings.Fields(mnemonic)); got != words {
			t.Errorf("NewMnemonic(%d) produced %d words", words, got)
		}
		if !ValidMnemonic(mnemonic) {
			t.Errorf("NewMnemonic(%d) produced invalid mnemonic", words)
		}
	}
	if _, err := NewMnemonic(13); err == nil {
		t.Error("Expected error for unsupported word count")
	}
}

func TestKeypairFromSeedHexErrors(t *testing.T) {
	if _, err := KeypairFromSeedHex("0xzz"); err == nil {
		t.Error("Expected error for invalid hex")
	}
	if _, err := KeypairFromSeedHex("0xdeadbeef"); err == nil {
		t.Error("Expected error for short seed")
	}
}
