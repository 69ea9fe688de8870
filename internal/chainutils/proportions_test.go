package chainutils

import (
	"math"
	"testing"
)

func TestProportionToU64Boundary(t *testing.T) {
	v, err := ProportionToU64(1.0)
	if err != nil {
		t.Fatalf("full proportion failed: %v", err)
	}
	if v != math.MaxUint64 {
		t.Fatalf("full proportion = %d, want MaxUint64", v)
	}
}

func TestProportionToU64Range(t *testing.T) {
	if _, err := ProportionToU64(0); err == nil {
		t.Error("expected error for zero proportion")
	}
	if _, err := ProportionToU64(-0.5); err == nil {
		t.Error("expected error for negative proportion")
	}
	if _, err := ProportionToU64(1.5); err == nil {
		t.Error("expected error for proportion above one")
	}
}

func TestProportionRoundTrip(t *testing.T) {
	for _, p := range []float64{0.1, 0.25, 0.5, 0.75, 0.999} {
		v, err := ProportionToU64(p)
		if err != nil {
			t.Fatalf("ProportionToU64(%v): %v", p, err)
		}
		back := U64ToProportion(v)
		if math.Abs(back-p) > 1e-9 {
			t.Errorf("round trip %v -> %d -> %v", p, v, back)
		}
	}
}

func TestTakeToU16(t *testing.T) {
	// The common 18% delegate take.
	v, err := TakeToU16(0.18)
	if err != nil {
		t.Fatalf("TakeToU16 failed: %v", err)
	}
	if v != 11796 {
		t.Fatalf("take = %d, want 11796", v)
	}
	if back := U16ToTake(v); math.Abs(back-0.18) > 1e-4 {
		t.Fatalf("round trip take = %v", back)
	}

	if _, err := TakeToU16(1.1); err == nil {
		t.Error("expected error for take above one")
	}
	if _, err := TakeToU16(-0.1); err == nil {
		t.Error("expected error for negative take")
	}
}
