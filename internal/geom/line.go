package geom

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/numeric"
)

// Line is defined by a point it passes through and a slope in radians.
type Line struct {
	Point Coord
	Slope float64
}

// Ray has an origin and a direction angle in radians.
type Ray struct {
	Origin Coord
	Angle  float64
}

// Segment runs from Start to End.
type Segment struct {
	Start, End Coord
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// OriginOnLine returns the point P on the line such that a ray of the
// given angle cast from P passes through target. It fails with
// ErrGeometryFailure when angle runs parallel to the line (no such P
// exists, or every point on the line qualifies).
func (l Line) OriginOnLine(target Coord, angle float64) (Coord, error) {
	// The line is parameterised as Point + t*(cos(Slope), sin(Slope)).
	// We need t such that the ray from P(t) at `angle` passes through
	// target, i.e. target - P(t) is parallel to (cos(angle), sin(angle)).
	lineDx, lineDy := math.Cos(l.Slope), math.Sin(l.Slope)
	rayDx, rayDy := math.Cos(angle), math.Sin(angle)

	// Solve: Point + t*lineDir + s*rayDir = target, for t (s unused).
	// Cross product of lineDir and rayDir must be non-zero.
	cross := lineDx*rayDy - lineDy*rayDx
	if numeric.AlmostZero(cross) {
		return Coord{}, fmt.Errorf("origin on line: ray angle %.6f parallel to line slope %.6f: %w", angle, l.Slope, fmerr.ErrGeometryFailure)
	}

	tx := target.X - l.Point.X
	ty := target.Y - l.Point.Y
	// t = (tx*rayDy - ty*rayDx) / cross
	t := (tx*rayDy - ty*rayDx) / cross
	return Coord{X: l.Point.X + t*lineDx, Y: l.Point.Y + t*lineDy}, nil
}

// IntersectRaySegment returns the point where ray r meets segment seg, if
// any such point lies on both the ray (forward direction, dist >= 0) and
// within the segment's span.
func IntersectRaySegment(r Ray, seg Segment) (Coord, bool) {
	dx, dy := math.Cos(r.Angle), math.Sin(r.Angle)
	sx, sy := seg.End.X-seg.Start.X, seg.End.Y-seg.Start.Y

	cross := dx*sy - dy*sx
	if numeric.AlmostZero(cross) {
		return Coord{}, false
	}

	ox, oy := seg.Start.X-r.Origin.X, seg.Start.Y-r.Origin.Y
	t := (ox*sy - oy*sx) / cross
	u := (ox*dy - oy*dx) / cross

	if t < -numeric.Epsilon || u < -numeric.Epsilon || u > 1+numeric.Epsilon {
		return Coord{}, false
	}
	return Coord{X: r.Origin.X + t*dx, Y: r.Origin.Y + t*dy}, true
}
