// Package chainutils holds the numeric conversions between CLI-level values
// (float weights, proportions, takes) and the fixed-point forms the chain
// stores.
package chainutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	U16MAX = 65535
)

// ConvertWeightsAndUidsForEmit max-normalizes float weights to u16 and drops
// zero entries, returning the parallel uid and weight slices the chain
// expects. Negative uids or weights are rejected.
func ConvertWeightsAndUidsForEmit(uids []int64, weights []float64) ([]int, []int, error) {
	if len(uids) != len(weights) {
		return nil, nil, fmt.Errorf("uids and weights must have the same length, got %d and %d", len(uids), len(weights))
	}
	if len(uids) == 0 {
		return []int{}, []int{}, nil
	}

	for i, w := range weights {
		if w < 0 {
			return nil, nil, fmt.Errorf("weights cannot be negative: %v", weights)
		}
		if uids[i] < 0 {
			return nil, nil, fmt.Errorf("uids cannot be negative: %v", uids)
		}
	}

	maxWeight := floats.Max(weights)
	if maxWeight == 0 {
		return []int{}, []int{}, nil
	}

	weightUids := make([]int, 0, len(uids))
	weightVals := make([]int, 0, len(weights))

	for i, w := range weights {
		uint16Val := int(math.Round((w / maxWeight) * float64(U16MAX)))

		if uint16Val > 0 {
			weightUids = append(weightUids, int(uids[i]))
			weightVals = append(weightVals, uint16Val)
		}
	}

	return weightUids, weightVals, nil
}

// Normalize scales weights to sum to one. All-zero input yields a uniform
// distribution.
func Normalize(weights []float64) []float64 {
	out := make([]float64, len(weights))
	if len(weights) == 0 {
		return out
	}
	copy(out, weights)
	sum := floats.Sum(out)
	if sum == 0 {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	floats.Scale(1/sum, out)
	return out
}

// NormalizeMaxWeight scales weights to sum to one while capping every entry
// at limit, redistributing the excess over the uncapped entries. limit must
// be at least 1/len(weights) for a solution to exist; when it is not, the
// result is uniform.
func NormalizeMaxWeight(weights []float64, limit float64) []float64 {
	out := Normalize(weights)
	n := len(out)
	if n == 0 || floats.Max(out) <= limit {
		return out
	}
	if limit*float64(n) <= 1 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out
	}

	capped := make([]bool, n)
	for range out {
		cappedMass := 0.0
		uncappedSum := 0.0
		for i := range out {
			if capped[i] {
				cappedMass += limit
			} else {
				uncappedSum += out[i]
			}
		}
		if uncappedSum == 0 {
			break
		}
		scale := (1 - cappedMass) / uncappedSum

		grew := false
		for i := range out {
			if !capped[i] && out[i]*scale > limit {
				capped[i] = true
				grew = true
			}
		}
		if !grew {
			for i := range out {
				if capped[i] {
					out[i] = limit
				} else {
					out[i] *= scale
				}
			}
			break
		}
	}
	return out
}
