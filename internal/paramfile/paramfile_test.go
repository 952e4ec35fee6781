package paramfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
)

func TestParseCollectsRepeatedKeys(t *testing.T) {
	pf, err := Parse(strings.NewReader(`
# a comment
name = alpha
name = beta
slope = 0.1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names, ok := pf.All("name")
	if !ok || len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("expected repeated keys to accumulate in file order, got %+v ok=%v", names, ok)
	}
}

func TestParseRejectsLineWithoutEquals(t *testing.T) {
	_, err := Parse(strings.NewReader("not a key value line"))
	if !errors.Is(err, fmerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a missing '=', got %v", err)
	}
}

func TestNormalizeKeyIgnoresPunctuationAndCase(t *testing.T) {
	pf, err := Parse(strings.NewReader("Leaf-Width = 0.01"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := pf.First("leaf_width"); !ok {
		t.Fatalf("expected 'leaf_width' to resolve the same key as 'Leaf-Width'")
	}
}

func TestAllFuzzyMatchesNearKey(t *testing.T) {
	pf, err := Parse(strings.NewReader("slop = 0.2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := pf.First("slope")
	if !ok || v != "0.2" {
		t.Fatalf("expected a one-letter typo to fuzzy-match, got %q ok=%v", v, ok)
	}
}

func TestAllBreaksFuzzyTiesDeterministically(t *testing.T) {
	pf, err := Parse(strings.NewReader("cat = first\nbat = second\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// "hat" is Levenshtein distance 1 from both "cat" and "bat"; the
	// lexicographically smaller key must win regardless of Go's
	// randomized map iteration order.
	for i := 0; i < 20; i++ {
		v, ok := pf.First("hat")
		if !ok || v != "second" {
			t.Fatalf("attempt %d: expected the tie to resolve to \"bat\"=\"second\", got %q ok=%v", i, v, ok)
		}
	}
}

func TestAllDoesNotMatchTooFarAway(t *testing.T) {
	pf, err := Parse(strings.NewReader("slope = 0.2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := pf.First("completely different key"); ok {
		t.Fatalf("did not expect an unrelated key to fuzzy-match")
	}
}

type fakeFallback map[string]string

func (f fakeFallback) Value(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func TestValueAssignmentsFallsBackThenFails(t *testing.T) {
	pf, err := Parse(strings.NewReader("slope = 0.2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	va := ValueAssignments{Params: pf, Fallback: fakeFallback{"air temperature": "25"}}

	got, err := va.Lookup("air temperature")
	if err != nil || got != "25" {
		t.Fatalf("expected fallback lookup to succeed with 25, got %q err=%v", got, err)
	}

	if _, err := va.Lookup("nonexistent key"); !errors.Is(err, fmerr.ErrMissingFallback) {
		t.Fatalf("expected ErrMissingFallback for a key in neither params nor fallback, got %v", err)
	}
}
