// Package ignition implements the per-species ignition-path simulator:
// a time-stepped geometric/thermal state machine that propagates
// ignition through a plant's crown under the influence of incident,
// pre-heating, and self-generated plant flames.
package ignition

import (
	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/species"
)

// RunType selects which crown an ignition-path simulation runs inside:
// a plant's real crown, or the artificial wide "pseudo-canopy" crown
// used by a stratum run.
type RunType int

const (
	// PlantRun simulates ignition through a species' real crown.
	PlantRun RunType = iota
	// StratumRun simulates ignition through the artificial rectangular
	// crown standing in for the whole stratum.
	StratumRun
)

func (t RunType) String() string {
	if t == StratumRun {
		return "stratum run"
	}
	return "plant run"
}

// IgnitedSegment is one segment of a crown ignited during a given time
// step.
type IgnitedSegment struct {
	TimeStep   int
	Start, End geom.Coord
	Flame      flame.Flame
}

// Length returns the Euclidean length of the ignited segment.
func (s IgnitedSegment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// PreIgnitionKind distinguishes the two PreIgnitionData variants.
type PreIgnitionKind int

const (
	// PreHeatingDrying records a drying contribution from a pre-heating
	// flame.
	PreHeatingDrying PreIgnitionKind = iota
	// IncidentDrying records a drying contribution from an incident or
	// plant flame.
	IncidentDrying
)

// PreIgnitionData is a tagged record of one drying event observed
// before the species' first ignition. Kind selects which fields apply:
//
//	PreHeatingDrying: Time, PreHeating, Dist, Factor, Temp, Duration
//	IncidentDrying:    Time, Source,     Dist, Factor, Temp, IDT
type PreIgnitionData struct {
	Kind PreIgnitionKind
	Time int

	PreHeating flame.PreHeatingFlame
	Source     flame.Flame

	Dist   float64
	Factor float64
	Temp   float64

	Duration float64
	IDT      float64
}

// Context carries the fixed, per-run parameters an ignition path was
// produced under.
type Context struct {
	RunType      RunType
	StratumLevel species.StratumLevel
	Slope        float64
	AmbientTemp  float64
}

// IgnitionPath is the time-ordered record of ignited segments, and any
// pre-ignition drying data accumulated before the first segment, for one
// species in one run.
type IgnitionPath struct {
	Context          Context
	Species          species.Species
	InitialPoint     geom.Coord
	PreIgnitionData  []PreIgnitionData
	Segments         []IgnitedSegment
}

// HasIgnition reports whether the path ever ignited.
func (p IgnitionPath) HasIgnition() bool {
	return len(p.Segments) > 0
}

// IgnitionTime returns the time step of the path's first ignited
// segment, or 0 if it never ignited.
func (p IgnitionPath) IgnitionTime() int {
	if !p.HasIgnition() {
		return 0
	}
	return p.Segments[0].TimeStep
}

// MaxSegmentLength returns the length of the path's longest ignited
// segment, or 0 if it never ignited.
func (p IgnitionPath) MaxSegmentLength() float64 {
	max := 0.0
	for _, s := range p.Segments {
		if l := s.Length(); l > max {
			max = l
		}
	}
	return max
}

// MaxDryingTemperature returns the greatest temperature recorded across
// the path's pre-ignition drying data, or 0 if none was recorded.
func (p IgnitionPath) MaxDryingTemperature() float64 {
	max := 0.0
	for _, d := range p.PreIgnitionData {
		if d.Temp > max {
			max = d.Temp
		}
	}
	return max
}

// SegmentsByLengthAndTime returns the path's segments sorted by
// descending length, ties broken by ascending time step.
func (p IgnitionPath) SegmentsByLengthAndTime() []IgnitedSegment {
	out := append([]IgnitedSegment(nil), p.Segments...)
	sortSegments(out)
	return out
}
