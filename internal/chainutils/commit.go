package chainutils

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/gossamer/lib/common"
	"github.com/vedhavyas/go-subkey"
)

// CommitHash derives the weight commitment digest for the commit-reveal
// scheme: blake2b-256 over the signer's public key, the netuid, the
// length-prefixed uid/weight/salt vectors and the version key, all
// little-endian. The reveal must reproduce these values exactly.
func CommitHash(hotkeySS58 string, netuid int, uids, weights, salt []int, versionKey int) (string, error) {
	if len(uids) != len(weights) {
		return "", fmt.Errorf("uids and weights must have the same length, got %d and %d", len(uids), len(weights))
	}
	_, pubkey, err := subkey.SS58Decode(hotkeySS58)
	if err != nil {
		return "", fmt.Errorf("failed to decode hotkey address: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(pubkey)
	binary.Write(&buf, binary.LittleEndian, uint16(netuid))

	writeU16Vec := func(vals []int) {
		binary.Write(&buf, binary.LittleEndian, uint32(len(vals)))
		for _, v := range vals {
			binary.Write(&buf, binary.LittleEndian, uint16(v))
		}
	}
	writeU16Vec(uids)
	writeU16Vec(weights)
	writeU16Vec(salt)
	binary.Write(&buf, binary.LittleEndian, uint64(versionKey))

	hash, err := common.Blake2bHash(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to hash commit: %w", err)
	}
	return hash.String(), nil
}

// NewSalt draws n random u16 salt values for a weight commitment.
func NewSalt(n int) ([]int, error) {
	raw := make([]byte, 2*n)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := make([]int, n)
	for i := range salt {
		salt[i] = int(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return salt, nil
}
