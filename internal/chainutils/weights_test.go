package chainutils

import (
	"math"
	"testing"
)

func TestConvertWeightsAndUidsForEmit(t *testing.T) {
	uids := []int64{0, 1, 2, 3}
	weights := []float64{0.0, 0.25, 0.5, 1.0}

	gotUids, gotWeights, err := ConvertWeightsAndUidsForEmit(uids, weights)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	// Zero-weight uid 0 is dropped, the max weight maps to U16MAX.
	wantUids := []int{1, 2, 3}
	wantWeights := []int{16384, 32768, 65535}
	if len(gotUids) != len(wantUids) {
		t.Fatalf("got %d uids, want %d", len(gotUids), len(wantUids))
	}
	for i := range wantUids {
		if gotUids[i] != wantUids[i] {
			t.Errorf("uid[%d] = %d, want %d", i, gotUids[i], wantUids[i])
		}
		if gotWeights[i] != wantWeights[i] {
			t.Errorf("weight[%d] = %d, want %d", i, gotWeights[i], wantWeights[i])
		}
	}
}

func TestConvertWeightsRejectsNegatives(t *testing.T) {
	if _, _, err := ConvertWeightsAndUidsForEmit([]int64{0}, []float64{-0.1}); err == nil {
		t.Error("expected error for negative weight")
	}
	if _, _, err := ConvertWeightsAndUidsForEmit([]int64{-1}, []float64{0.5}); err == nil {
		t.Error("expected error for negative uid")
	}
}

func TestConvertWeightsLengthMismatch(t *testing.T) {
	if _, _, err := ConvertWeightsAndUidsForEmit([]int64{0, 1}, []float64{0.5}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestConvertWeightsEmptyAndZero(t *testing.T) {
	gotUids, gotWeights, err := ConvertWeightsAndUidsForEmit([]int64{}, []float64{})
	if err != nil || len(gotUids) != 0 || len(gotWeights) != 0 {
		t.Fatalf("empty input: %v %v %v", gotUids, gotWeights, err)
	}

	gotUids, gotWeights, err = ConvertWeightsAndUidsForEmit([]int64{0, 1}, []float64{0, 0})
	if err != nil || len(gotUids) != 0 || len(gotWeights) != 0 {
		t.Fatalf("all-zero input: %v %v %v", gotUids, gotWeights, err)
	}
}

func TestNormalize(t *testing.T) {
	out := Normalize([]float64{1, 1, 2})
	if math.Abs(out[0]-0.25) > 1e-12 || math.Abs(out[2]-0.5) > 1e-12 {
		t.Fatalf("normalize = %v", out)
	}

	uniform := Normalize([]float64{0, 0, 0, 0})
	for _, v := range uniform {
		if math.Abs(v-0.25) > 1e-12 {
			t.Fatalf("zero input should normalize uniform, got %v", uniform)
		}
	}
}

func TestNormalizeMaxWeightUnderLimit(t *testing.T) {
	out := NormalizeMaxWeight([]float64{1, 1, 2}, 0.75)
	if math.Abs(out[2]-0.5) > 1e-12 {
		t.Fatalf("weights under the limit must only be sum-normalized, got %v", out)
	}
}

func TestNormalizeMaxWeightCapsAndRedistributes(t *testing.T) {
	out := NormalizeMaxWeight([]float64{0.8, 0.1, 0.1}, 0.5)
	if math.Abs(out[0]-0.5) > 1e-12 {
		t.Fatalf("max weight not capped: %v", out)
	}
	if math.Abs(out[1]-0.25) > 1e-12 || math.Abs(out[2]-0.25) > 1e-12 {
		t.Fatalf("excess not redistributed evenly: %v", out)
	}
	sum := out[0] + out[1] + out[2]
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("sum = %v, want 1", sum)
	}
}

func TestNormalizeMaxWeightInfeasibleLimit(t *testing.T) {
	out := NormalizeMaxWeight([]float64{10, 1, 1, 1}, 0.2)
	for _, v := range out {
		if math.Abs(v-0.25) > 1e-12 {
			t.Fatalf("infeasible limit should yield uniform weights, got %v", out)
		}
	}
}
