package flame

import "testing"

func TestPreHeatingFlameDurationClampsToWindow(t *testing.T) {
	p := PreHeatingFlame{Start: 2, End: 10}

	if got, want := p.Duration(20), 8.0; got != want {
		t.Fatalf("Duration(20)=%v want=%v", got, want)
	}
	if got, want := p.Duration(5), 3.0; got != want {
		t.Fatalf("Duration(5)=%v want=%v", got, want)
	}
	if got := p.Duration(1); got != 0 {
		t.Fatalf("expected zero duration before the flame starts, got %v", got)
	}
}
