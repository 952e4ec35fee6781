// Package geom implements the geometry kernel shared by the fire model:
// points, rays, line segments, and crown polygons, with ray-polygon
// intersection and centroid/area/volume derivations.
package geom

import "math"

// Coord is a 2-D point in the vertical plane along the wind direction;
// X is horizontal distance from the plant base, Y is vertical height
// above the surface at X=0.
type Coord struct {
	X, Y float64
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

// Sub returns the vector from d to c.
func (c Coord) Sub(d Coord) Coord {
	return Coord{c.X - d.X, c.Y - d.Y}
}

// Scale returns c scaled by f.
func (c Coord) Scale(f float64) Coord {
	return Coord{c.X * f, c.Y * f}
}

// DistanceTo returns the Euclidean distance between c and d.
func (c Coord) DistanceTo(d Coord) float64 {
	dx, dy := c.X-d.X, c.Y-d.Y
	return math.Hypot(dx, dy)
}

// AngleTo returns the angle in radians, measured from the positive X
// axis, of the ray from c to d.
func (c Coord) AngleTo(d Coord) float64 {
	return math.Atan2(d.Y-c.Y, d.X-c.X)
}

// PointAt returns the point at distance dist from c along angle
// (radians, from the positive X axis).
func PointAt(origin Coord, angle, dist float64) Coord {
	return Coord{
		X: origin.X + dist*math.Cos(angle),
		Y: origin.Y + dist*math.Sin(angle),
	}
}
