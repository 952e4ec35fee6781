// Package weighted aggregates a stratum's best per-species ignition
// paths into a single time-indexed flame series, weighted by each
// species' composition within the stratum.
package weighted

import (
	"sort"

	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/ignition"
)

// Path pairs one species' best ignition path with its composition
// weight within the stratum.
type Path struct {
	Weight float64
	Path   ignition.IgnitionPath
}

// Entry is one time step of an aggregated flame series.
type Entry struct {
	TimeStep         int
	Length           float64
	DepthIgnited     float64
	Origin           geom.Coord
	DeltaTemperature float64
}

// Series is a stratum's weighted flame series together with its
// ignition timing.
type Series struct {
	Entries []Entry

	// IgnitionTime is the time step at which the first species ignited,
	// or 0 if none did.
	IgnitionTime int
	// TimeToLongestFlame is the number of steps between IgnitionTime
	// and the entry with the greatest Length.
	TimeToLongestFlame int
}

// HasIgnition reports whether the series ignited at all.
func (s Series) HasIgnition() bool { return len(s.Entries) > 0 }

// Aggregate builds a weighted Series from paths. An empty or
// all-zero-weight input yields the empty Series.
func Aggregate(paths []Path) Series {
	total := 0.0
	for _, p := range paths {
		total += p.Weight
	}
	if total <= 0 {
		return Series{}
	}

	byStep := map[int][]ignition.IgnitedSegment{}
	ignitionTime := 0
	for _, p := range paths {
		if !p.Path.HasIgnition() {
			continue
		}
		if it := p.Path.IgnitionTime(); ignitionTime == 0 || it < ignitionTime {
			ignitionTime = it
		}
		for _, seg := range p.Path.Segments {
			byStep[seg.TimeStep] = append(byStep[seg.TimeStep], seg)
		}
	}
	if len(byStep) == 0 {
		return Series{}
	}

	steps := make([]int, 0, len(byStep))
	for step := range byStep {
		steps = append(steps, step)
	}
	sort.Ints(steps)

	entries := make([]Entry, 0, len(steps))
	for _, step := range steps {
		entries = append(entries, weightedEntry(step, paths, total))
	}

	longest := 0
	for i, e := range entries {
		if e.Length > entries[longest].Length {
			longest = i
		}
	}

	return Series{
		Entries:            entries,
		IgnitionTime:       ignitionTime,
		TimeToLongestFlame: entries[longest].TimeStep - ignitionTime,
	}
}

func weightedEntry(step int, paths []Path, total float64) Entry {
	e := Entry{TimeStep: step}
	var ox, oy float64
	for _, p := range paths {
		w := p.Weight / total
		seg, ok := segmentAt(p.Path, step)
		if !ok {
			continue
		}
		e.Length += w * seg.Flame.Length
		e.DepthIgnited += w * seg.Flame.DepthIgnited
		e.DeltaTemperature += w * seg.Flame.DeltaTemperature
		ox += w * seg.Flame.Origin.X
		oy += w * seg.Flame.Origin.Y
	}
	e.Origin = geom.Coord{X: ox, Y: oy}
	return e
}

func segmentAt(p ignition.IgnitionPath, step int) (ignition.IgnitedSegment, bool) {
	for _, seg := range p.Segments {
		if seg.TimeStep == step {
			return seg, true
		}
	}
	return ignition.IgnitedSegment{}, false
}
