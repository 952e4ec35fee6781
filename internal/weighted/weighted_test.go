package weighted

import (
	"math"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/ignition"
)

func pathWithSegments(segs ...ignition.IgnitedSegment) ignition.IgnitionPath {
	return ignition.IgnitionPath{Segments: segs}
}

func TestAggregateWeightsByComposition(t *testing.T) {
	a := pathWithSegments(ignition.IgnitedSegment{TimeStep: 1, Flame: flame.Flame{Length: 2}})
	b := pathWithSegments(ignition.IgnitedSegment{TimeStep: 1, Flame: flame.Flame{Length: 6}})

	series := Aggregate([]Path{
		{Weight: 1, Path: a},
		{Weight: 3, Path: b},
	})
	if !series.HasIgnition() {
		t.Fatalf("expected the aggregated series to have ignited")
	}
	want := (1.0*2 + 3.0*6) / 4
	if math.Abs(series.Entries[0].Length-want) > 1e-9 {
		t.Fatalf("Entries[0].Length=%v want=%v", series.Entries[0].Length, want)
	}
}

func TestAggregateSkipsSpeciesAbsentAtStep(t *testing.T) {
	a := pathWithSegments(
		ignition.IgnitedSegment{TimeStep: 1, Flame: flame.Flame{Length: 4}},
		ignition.IgnitedSegment{TimeStep: 2, Flame: flame.Flame{Length: 5}},
	)
	b := pathWithSegments(ignition.IgnitedSegment{TimeStep: 1, Flame: flame.Flame{Length: 2}})

	series := Aggregate([]Path{
		{Weight: 1, Path: a},
		{Weight: 1, Path: b},
	})
	if len(series.Entries) != 2 {
		t.Fatalf("expected one entry per distinct time step across both paths, got %d", len(series.Entries))
	}
	step2 := series.Entries[1]
	want := 0.5 * 5.0
	if math.Abs(step2.Length-want) > 1e-9 {
		t.Fatalf("expected the absent species to contribute zero at step 2: got %v want %v", step2.Length, want)
	}
}

func TestAggregateEmptyWhenNoPathIgnites(t *testing.T) {
	series := Aggregate([]Path{{Weight: 1, Path: ignition.IgnitionPath{}}})
	if series.HasIgnition() {
		t.Fatalf("expected an empty series when no path ignited")
	}
}

func TestAggregateStepsAreStrictlyIncreasing(t *testing.T) {
	a := pathWithSegments(
		ignition.IgnitedSegment{TimeStep: 3, Flame: flame.Flame{Length: 1}},
		ignition.IgnitedSegment{TimeStep: 1, Flame: flame.Flame{Length: 1}},
		ignition.IgnitedSegment{TimeStep: 2, Flame: flame.Flame{Length: 1}},
	)
	series := Aggregate([]Path{{Weight: 1, Path: a}})
	prev := -1
	for _, e := range series.Entries {
		if e.TimeStep <= prev {
			t.Fatalf("expected strictly increasing time steps, got %d after %d", e.TimeStep, prev)
		}
		prev = e.TimeStep
	}
}

func TestAggregateIgnitionTimeIsEarliestAcrossPaths(t *testing.T) {
	early := pathWithSegments(ignition.IgnitedSegment{TimeStep: 2, Flame: flame.Flame{Length: 1}})
	late := pathWithSegments(ignition.IgnitedSegment{TimeStep: 5, Flame: flame.Flame{Length: 1}})
	series := Aggregate([]Path{{Weight: 1, Path: early}, {Weight: 1, Path: late}})
	if series.IgnitionTime != 2 {
		t.Fatalf("expected IgnitionTime to be the earliest across paths, got %d", series.IgnitionTime)
	}
}
