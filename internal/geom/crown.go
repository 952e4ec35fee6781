package geom

import (
	"fmt"
	"math"
	"sort"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/numeric"
)

// CrownPoly is the closed polygonal silhouette of a plant's foliage along
// the wind direction, built from five control heights and a width:
//
//	hc - height of the crown base at the plant's centre line
//	he - height of the crown base at its widest point (the "edge")
//	ht - height of the crown top at its widest point
//	hp - height of the crown's peak, at the centre line
//	w  - full width of the crown at its widest point
//
// The silhouette is symmetric about x=0 and, when revolved about the
// vertical axis through x=0, describes the plant's canopy volume as a
// stack of two frustums of revolution (base taper, top taper) around a
// cylindrical mid-section.
type CrownPoly struct {
	hc, he, ht, hp, w float64
}

// NewCrownPoly validates and constructs a CrownPoly. It fails with
// ErrInvalidInput when any invariant (hp > hc, ht >= he, w > 0) is
// violated.
func NewCrownPoly(hc, he, ht, hp, w float64) (CrownPoly, error) {
	if !(hp > hc) {
		return CrownPoly{}, fmt.Errorf("crown: hp (%.4f) must exceed hc (%.4f): %w", hp, hc, fmerr.ErrInvalidInput)
	}
	if !(ht >= he || numeric.AlmostZero(ht-he)) {
		return CrownPoly{}, fmt.Errorf("crown: ht (%.4f) must be >= he (%.4f): %w", ht, he, fmerr.ErrInvalidInput)
	}
	if !(w > 0) {
		return CrownPoly{}, fmt.Errorf("crown: w (%.4f) must be positive: %w", w, fmerr.ErrInvalidInput)
	}
	return CrownPoly{hc: hc, he: he, ht: ht, hp: hp, w: w}, nil
}

// Width returns the crown's width at its widest point.
func (c CrownPoly) Width() float64 { return c.w }

// Height returns the crown's total vertical extent.
func (c CrownPoly) Height() float64 { return c.Top() - c.Bottom() }

// Left returns the crown's leftmost x coordinate.
func (c CrownPoly) Left() float64 { return -c.w / 2 }

// Right returns the crown's rightmost x coordinate.
func (c CrownPoly) Right() float64 { return c.w / 2 }

// Bottom returns the lowest y coordinate of the crown.
func (c CrownPoly) Bottom() float64 { return math.Min(c.hc, c.he) }

// Top returns the highest y coordinate of the crown.
func (c CrownPoly) Top() float64 { return math.Max(c.ht, c.hp) }

// vertices returns the hexagonal outline, starting at the top apex and
// proceeding clockwise: apex, top-right, bottom-right, base, bottom-left,
// top-left.
func (c CrownPoly) vertices() []Coord {
	r := c.w / 2
	return []Coord{
		{X: 0, Y: c.hp},
		{X: r, Y: c.ht},
		{X: r, Y: c.he},
		{X: 0, Y: c.hc},
		{X: -r, Y: c.he},
		{X: -r, Y: c.ht},
	}
}

// edges returns the six boundary segments of the crown outline.
func (c CrownPoly) edges() []Segment {
	vs := c.vertices()
	edges := make([]Segment, len(vs))
	for i := range vs {
		edges[i] = Segment{Start: vs[i], End: vs[(i+1)%len(vs)]}
	}
	return edges
}

// Area returns the area of the crown's 2-D silhouette, via the shoelace
// formula over its hexagonal outline.
func (c CrownPoly) Area() float64 {
	vs := c.vertices()
	sum := 0.0
	for i, v := range vs {
		n := vs[(i+1)%len(vs)]
		sum += v.X*n.Y - n.X*v.Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the centroid of the crown's 2-D silhouette.
func (c CrownPoly) Centroid() Coord {
	vs := c.vertices()
	var cx, cy, a float64
	for i, v := range vs {
		n := vs[(i+1)%len(vs)]
		cross := v.X*n.Y - n.X*v.Y
		a += cross
		cx += (v.X + n.X) * cross
		cy += (v.Y + n.Y) * cross
	}
	if numeric.AlmostZero(a) {
		return Coord{X: 0, Y: (c.Bottom() + c.Top()) / 2}
	}
	factor := 1 / (3 * a)
	return Coord{X: cx * factor, Y: cy * factor}
}

// frustumVolume returns the volume of a frustum of revolution spanning
// height y1-y0 between radii r0 and r1.
func frustumVolume(y0, y1, r0, r1 float64) float64 {
	h := y1 - y0
	return math.Pi * h / 3 * (r0*r0 + r0*r1 + r1*r1)
}

// Volume returns the volume swept by revolving the crown's right-half
// profile about the vertical axis through x=0.
func (c CrownPoly) Volume() float64 {
	r := c.w / 2
	return frustumVolume(c.hc, c.he, 0, r) +
		frustumVolume(c.he, c.ht, r, r) +
		frustumVolume(c.ht, c.hp, r, 0)
}

// PointInBase returns the point on the crown's lower hull at horizontal
// offset x, clamped to the crown's width.
func (c CrownPoly) PointInBase(x float64) Coord {
	r := c.w / 2
	if x > r {
		x = r
	}
	if x < -r {
		x = -r
	}
	frac := math.Abs(x) / r
	return Coord{X: x, Y: c.hc + (c.he-c.hc)*frac}
}

// Contains reports whether p lies inside the crown's silhouette, via a
// ray-casting point-in-polygon test over the hexagonal outline.
func (c CrownPoly) Contains(p Coord) bool {
	vs := c.vertices()
	inside := false
	for i, v := range vs {
		n := vs[(i+1)%len(vs)]
		if (v.Y > p.Y) != (n.Y > p.Y) {
			xAtY := v.X + (p.Y-v.Y)/(n.Y-v.Y)*(n.X-v.X)
			if p.X < xAtY {
				inside = !inside
			}
		}
	}
	return inside
}

// Intersection returns the segment of ray that lies inside the crown,
// if the ray meets the crown's boundary at all. When the ray's origin
// is itself inside the crown, Start is the origin and End is the single
// forward point where the ray exits; otherwise Start and End are the
// ray's entry and exit points.
func (c CrownPoly) Intersection(ray Ray) (Segment, bool) {
	type hit struct {
		pt   Coord
		dist float64
	}
	var hits []hit
	for _, e := range c.edges() {
		if pt, ok := IntersectRaySegment(ray, e); ok {
			d := ray.Origin.DistanceTo(pt)
			hits = append(hits, hit{pt: pt, dist: d})
		}
	}
	if len(hits) == 0 {
		return Segment{}, false
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	deduped := hits[:1]
	for _, h := range hits[1:] {
		last := deduped[len(deduped)-1]
		if numeric.DistinctFrom(h.dist, last.dist) {
			deduped = append(deduped, h)
		}
	}

	if c.Contains(ray.Origin) {
		for _, h := range deduped {
			if numeric.DistinctFrom(h.dist, 0) {
				return Segment{Start: ray.Origin, End: h.pt}, true
			}
		}
		return Segment{}, false
	}
	if len(deduped) < 2 {
		return Segment{}, false
	}
	return Segment{Start: deduped[0].pt, End: deduped[len(deduped)-1].pt}, true
}
