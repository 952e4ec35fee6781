package numeric

import "testing"

func TestAlmostZero(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{1e-12, true},
		{-1e-12, true},
		{1e-6, false},
		{1, false},
	}
	for _, tc := range tests {
		if got := AlmostZero(tc.v); got != tc.want {
			t.Fatalf("AlmostZero(%v)=%v want=%v", tc.v, got, tc.want)
		}
	}
}

func TestGt(t *testing.T) {
	if !Gt(1, 0) {
		t.Fatalf("expected 1 > 0")
	}
	if Gt(1, 1) {
		t.Fatalf("did not expect 1 > 1")
	}
	if Gt(1+1e-12, 1) {
		t.Fatalf("did not expect a sub-epsilon difference to count as greater")
	}
}

func TestDistinctFrom(t *testing.T) {
	if DistinctFrom(1, 1) {
		t.Fatalf("did not expect equal values to be distinct")
	}
	if !DistinctFrom(1, 1.1) {
		t.Fatalf("expected 1 and 1.1 to be distinct")
	}
}
