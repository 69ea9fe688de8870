package chainutils

import (
	"fmt"
	"math"
)

// ProportionToU64 converts a stake proportion in (0, 1] to the u64-normalized
// form child hotkey assignments use. The full-proportion boundary maps
// exactly to 2^64-1.
func ProportionToU64(p float64) (uint64, error) {
	if p <= 0 || p > 1 {
		return 0, fmt.Errorf("proportion must be in (0, 1], got %v", p)
	}
	if p == 1 {
		return math.MaxUint64, nil
	}
	v := math.Round(p * float64(math.MaxUint64))
	if v >= float64(math.MaxUint64) {
		return math.MaxUint64, nil
	}
	return uint64(v), nil
}

// U64ToProportion converts a u64-normalized proportion back to a float in
// [0, 1].
func U64ToProportion(v uint64) float64 {
	return float64(v) / float64(math.MaxUint64)
}

// TakeToU16 converts a take fraction in [0, 1] to its u16-normalized form.
func TakeToU16(take float64) (int, error) {
	if take < 0 || take > 1 {
		return 0, fmt.Errorf("take must be in [0, 1], got %v", take)
	}
	return int(math.Round(take * U16MAX)), nil
}

// U16ToTake converts a u16-normalized take back to a fraction.
func U16ToTake(v int) float64 {
	return float64(v) / U16MAX
}
