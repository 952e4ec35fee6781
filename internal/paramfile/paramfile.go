// Package paramfile parses the flat parameter-file format the fire
// model's inputs are supplied in: one "key = value" assignment per
// line, keys matched case- and punctuation-insensitively and, failing
// an exact match, corrected against the nearest known key.
package paramfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
)

// ParamFile is a flat mapping of normalized parameter names to every
// value assigned to them, in file order. Repeated keys (one per
// species, for example) accumulate rather than overwrite.
type ParamFile map[string][]string

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeKey lowercases a key and collapses whitespace/hyphens/
// underscores to single spaces, so "Leaf-Width", "leaf_width", and
// "leaf  width" all resolve to the same key.
func normalizeKey(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.NewReplacer("-", " ", "_", " ").Replace(raw)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
}

// Parse reads a parameter file from r. Blank lines and lines starting
// with '#' are ignored. Every other line must contain '=' separating a
// key from its value.
func Parse(r io.Reader) (ParamFile, error) {
	pf := ParamFile{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, fmt.Errorf("paramfile: line %d: missing '=' in %q: %w", lineNo, line, fmerr.ErrInvalidInput)
		}
		key := normalizeKey(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			return nil, fmt.Errorf("paramfile: line %d: blank key: %w", lineNo, fmerr.ErrInvalidInput)
		}
		pf[key] = append(pf[key], value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("paramfile: %w", err)
	}
	return pf, nil
}

// All returns every value assigned to key, trying a fuzzy key match
// against pf's own keys when there is no exact match.
func (pf ParamFile) All(key string) ([]string, bool) {
	nk := normalizeKey(key)
	if vs, ok := pf[nk]; ok {
		return vs, true
	}
	if match, ok := nearestKey(nk, pf.keys()); ok {
		return pf[match], true
	}
	return nil, false
}

// First returns the first value assigned to key, if any.
func (pf ParamFile) First(key string) (string, bool) {
	vs, ok := pf.All(key)
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (pf ParamFile) keys() []string {
	out := make([]string, 0, len(pf))
	for k := range pf {
		out = append(out, k)
	}
	return out
}

// fuzzyKeyMatchDistance is the maximum Levenshtein distance at which an
// unrecognized key is corrected to a known one.
const fuzzyKeyMatchDistance = 2

func nearestKey(key string, candidates []string) (string, bool) {
	best := ""
	bestDist := fuzzyKeyMatchDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(key, c)
		if d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if bestDist > fuzzyKeyMatchDistance {
		return "", false
	}
	return best, true
}

// FallbackProvider supplies a default value for a key the parameter
// file itself does not define, such as a built-in species library.
type FallbackProvider interface {
	Value(key string) (string, bool)
}

// ValueAssignments resolves a key against a parameter file first, and
// a fallback provider second, per §7's MissingFallback contract.
type ValueAssignments struct {
	Params   ParamFile
	Fallback FallbackProvider
}

// Lookup resolves key to its first value. It fails with
// ErrMissingFallback when the key is in neither the parameter file nor
// the fallback provider.
func (v ValueAssignments) Lookup(key string) (string, error) {
	if val, ok := v.Params.First(key); ok {
		return val, nil
	}
	if v.Fallback != nil {
		if val, ok := v.Fallback.Value(key); ok {
			return val, nil
		}
	}
	return "", fmt.Errorf("paramfile: no value for %q in params or fallback: %w", key, fmerr.ErrMissingFallback)
}

// LookupAll resolves every value assigned to key in the parameter
// file, falling back to a single-value result from the fallback
// provider when the file has none.
func (v ValueAssignments) LookupAll(key string) ([]string, error) {
	if vs, ok := v.Params.All(key); ok {
		return vs, nil
	}
	if v.Fallback != nil {
		if val, ok := v.Fallback.Value(key); ok {
			return []string{val}, nil
		}
	}
	return nil, fmt.Errorf("paramfile: no value for %q in params or fallback: %w", key, fmerr.ErrMissingFallback)
}
