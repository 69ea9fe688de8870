package chainutils

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"net"
	"strings"
)

// DecodeIP renders an axon IP for display. The chain stores addresses as
// integers; most gateways decode them before forwarding, but raw integer
// strings still show up and are converted here. Anything already in dotted
// or colon notation passes through unchanged.
func DecodeIP(s string, ipType int) string {
	if s == "" || strings.ContainsAny(s, ".:") {
		return s
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return s
	}
	size := net.IPv4len
	if ipType == 6 {
		size = net.IPv6len
	}
	raw := v.Bytes()
	if len(raw) > size {
		return s
	}
	buf := make([]byte, size)
	copy(buf[size-len(raw):], raw)
	return net.IP(buf).String()
}

// IPToInt converts an IP address string to the integer form the chain
// stores, returning the value and the ip type (4 or 6).
func IPToInt(s string) (*big.Int, int, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, 0, fmt.Errorf("invalid ip address %q", s)
	}
	if ip4 := ip.To4(); ip4 != nil {
		return big.NewInt(int64(binary.BigEndian.Uint32(ip4))), 4, nil
	}
	return new(big.Int).SetBytes(ip.To16()), 6, nil
}
