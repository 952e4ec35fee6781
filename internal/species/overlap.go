package species

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/appengine-ltd/flamepath/internal/fmerr"
)

// StratumOverlapType records whether two strata's canopies are known to
// overlap, known not to, or left for the model to decide geometrically.
type StratumOverlapType int

const (
	// Overlapping marks two strata whose canopies are known to overlap.
	Overlapping StratumOverlapType = iota
	// NotOverlapping marks two strata whose canopies are known not to
	// overlap.
	NotOverlapping
	// Undefined defers the decision to the model's geometric overlap
	// test.
	Undefined
)

// canonicalOverlapNames gives each StratumOverlapType its normalized,
// lowercase, spaceless/hyphenless name, matching the "overlapped",
// "not overlapped", "automatic" vocabulary of the parameter file format.
var canonicalOverlapNames = map[StratumOverlapType]string{
	Overlapping:    "overlapped",
	NotOverlapping: "notoverlapped",
	Undefined:      "automatic",
}

// Name returns the canonical, normalized name of t.
func (t StratumOverlapType) Name() string {
	if n, ok := canonicalOverlapNames[t]; ok {
		return n
	}
	return "unknown"
}

func normalizeOverlapToken(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if r == ' ' || r == '-' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fuzzyOverlapMatchDistance is the maximum Levenshtein distance a
// normalized token may be from a canonical name and still be accepted,
// absorbing small typos in parameter files.
const fuzzyOverlapMatchDistance = 2

// ParseOverlapType normalizes raw (case-insensitive; whitespace and
// hyphens ignored) and resolves it to a StratumOverlapType. It fails
// with ErrInvalidOverlapType when raw does not resolve, even loosely, to
// any recognized kind.
func ParseOverlapType(raw string) (StratumOverlapType, error) {
	norm := normalizeOverlapToken(raw)

	for t, name := range canonicalOverlapNames {
		if norm == name {
			return t, nil
		}
	}

	best := StratumOverlapType(-1)
	bestName := ""
	bestDist := fuzzyOverlapMatchDistance + 1
	for t, name := range canonicalOverlapNames {
		d := levenshtein.ComputeDistance(norm, name)
		if d < bestDist || (d == bestDist && name < bestName) {
			best, bestName, bestDist = t, name, d
		}
	}
	if bestDist <= fuzzyOverlapMatchDistance {
		return best, nil
	}

	return 0, fmt.Errorf("overlap type %q: %w", raw, fmerr.ErrInvalidOverlapType)
}
