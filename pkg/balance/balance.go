// Package balance provides the fixed-point TAO balance type used across the CLI.
// Chain amounts are integers denominated in rao; one TAO is 1e9 rao.
package balance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// RaoPerTao is the number of rao in one TAO.
	RaoPerTao = 1_000_000_000

	// TaoSymbol is the display symbol for TAO amounts.
	TaoSymbol = "τ" // τ
	// RaoSymbol is the display symbol for raw rao amounts.
	RaoSymbol = "ρ" // ρ
)

// Balance is an on-chain amount in rao. Arithmetic and comparisons work
// directly on the underlying integer, so sums of balances never lose
// precision the way float TAO math would.
type Balance int64

// FromRao builds a Balance from a raw rao amount.
func FromRao(rao int64) Balance {
	return Balance(rao)
}

// FromTao builds a Balance from a TAO amount, rounding to the nearest rao.
func FromTao(tao float64) Balance {
	return Balance(math.Round(tao * RaoPerTao))
}

// Rao returns the raw rao amount.
func (b Balance) Rao() int64 {
	return int64(b)
}

// Tao returns the amount in TAO.
func (b Balance) Tao() float64 {
	return float64(b) / RaoPerTao
}

// String renders the balance as TAO with four decimal places, e.g. "τ 1,234.5678".
func (b Balance) String() string {
	return TaoSymbol + " " + formatTao(b.Tao(), 4)
}

// RaoString renders the raw rao amount, e.g. "ρ1234567890".
func (b Balance) RaoString() string {
	return RaoSymbol + strconv.FormatInt(int64(b), 10)
}

// FormatUnit renders the balance with a subnet token symbol instead of τ,
// used for alpha amounts on dynamic subnets.
func (b Balance) FormatUnit(symbol string) string {
	if symbol == "" || symbol == TaoSymbol {
		return b.String()
	}
	return formatTao(b.Tao(), 4) + " " + symbol
}

// MarshalJSON encodes the balance as its rao integer, the representation the
// gateway uses on the wire.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(b), 10)), nil
}

// UnmarshalJSON accepts a rao integer, either bare or quoted. Quoted values
// show up when the gateway forwards u64 amounts that exceed JSON's safe
// integer range.
func (b *Balance) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*b = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid rao amount %q: %w", s, err)
	}
	*b = Balance(v)
	return nil
}

// formatTao renders a TAO float with the given precision and thousands
// separators in the integer part.
func formatTao(tao float64, prec int) string {
	neg := tao < 0
	if neg {
		tao = -tao
	}
	s := strconv.FormatFloat(tao, 'f', prec, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if fracPart != "" {
		sb.WriteByte('.')
		sb.WriteString(fracPart)
	}
	return sb.String()
}
