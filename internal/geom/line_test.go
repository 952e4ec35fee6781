package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
)

func TestOriginOnLineRecoversTarget(t *testing.T) {
	line := Line{Point: Coord{X: 0, Y: 0}, Slope: 0}
	target := Coord{X: 5, Y: 3}
	angle := math.Pi / 4

	origin, err := line.OriginOnLine(target, angle)
	if err != nil {
		t.Fatalf("OriginOnLine: %v", err)
	}
	if math.Abs(origin.Y) > 1e-9 {
		t.Fatalf("expected origin to lie on the line (y=0), got %+v", origin)
	}
	got := PointAt(origin, angle, origin.DistanceTo(target))
	if got.DistanceTo(target) > 1e-6 {
		t.Fatalf("casting from the recovered origin did not reach target: got %+v want %+v", got, target)
	}
}

func TestOriginOnLineFailsWhenParallel(t *testing.T) {
	line := Line{Point: Coord{X: 0, Y: 0}, Slope: 0.3}
	_, err := line.OriginOnLine(Coord{X: 1, Y: 1}, 0.3)
	if !errors.Is(err, fmerr.ErrGeometryFailure) {
		t.Fatalf("expected ErrGeometryFailure for a parallel ray angle, got %v", err)
	}
}

func TestIntersectRaySegmentWithinSpan(t *testing.T) {
	r := Ray{Origin: Coord{X: 0, Y: 0}, Angle: 0}
	seg := Segment{Start: Coord{X: 5, Y: -1}, End: Coord{X: 5, Y: 1}}
	pt, ok := IntersectRaySegment(r, seg)
	if !ok {
		t.Fatalf("expected the ray to cross the segment")
	}
	if math.Abs(pt.X-5) > 1e-9 || math.Abs(pt.Y) > 1e-9 {
		t.Fatalf("expected intersection at (5,0), got %+v", pt)
	}
}

func TestIntersectRaySegmentOutsideSpan(t *testing.T) {
	r := Ray{Origin: Coord{X: 0, Y: 0}, Angle: 0}
	seg := Segment{Start: Coord{X: 5, Y: 1}, End: Coord{X: 5, Y: 3}}
	if _, ok := IntersectRaySegment(r, seg); ok {
		t.Fatalf("expected no intersection when the segment lies off the ray's line")
	}
}

func TestPointAtRoundTrip(t *testing.T) {
	origin := Coord{X: 1, Y: 2}
	p := PointAt(origin, math.Pi/3, 4)
	if math.Abs(origin.DistanceTo(p)-4) > 1e-9 {
		t.Fatalf("expected PointAt to place the point at the given distance, got %v", origin.DistanceTo(p))
	}
}
