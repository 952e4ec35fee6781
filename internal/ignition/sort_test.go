package ignition

import (
	"testing"

	"github.com/appengine-ltd/flamepath/internal/geom"
)

func TestSegmentsByLengthAndTimeOrdersDescendingThenByTime(t *testing.T) {
	origin := geom.Coord{}
	p := IgnitionPath{Segments: []IgnitedSegment{
		{TimeStep: 1, Start: origin, End: geom.Coord{X: 1}},
		{TimeStep: 2, Start: origin, End: geom.Coord{X: 3}},
		{TimeStep: 3, Start: origin, End: geom.Coord{X: 3}},
	}}
	sorted := p.SegmentsByLengthAndTime()
	if sorted[0].Length() != 3 || sorted[0].TimeStep != 2 {
		t.Fatalf("expected the longer, earlier segment first, got %+v", sorted[0])
	}
	if sorted[len(sorted)-1].Length() != 1 {
		t.Fatalf("expected the shortest segment last, got %+v", sorted[len(sorted)-1])
	}
}
