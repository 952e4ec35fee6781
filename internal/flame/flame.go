// Package flame models a flame's geometry and thermal plume, including
// wind-driven angle, lateral merging across a fire line, and the fusion
// of two flame series as they propagate between strata.
package flame

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/geom"
)

// Flame describes one flame: its length and angle from the horizontal,
// the point it originates from, the depth of the segment that ignited
// it, and the temperature rise it carries over ambient at its origin.
type Flame struct {
	Length           float64
	Angle            float64
	Origin           geom.Coord
	DepthIgnited     float64
	DeltaTemperature float64
}

// decayConstant sets how quickly plume temperature falls off with
// distance, expressed as a multiple of the flame's own length (see
// SPEC_FULL.md §4 item 1).
const decayConstant = 3.0

// PlumeTemperature returns the plume temperature at distance d along
// the flame's axis from its origin, given an ambient temperature.
func (f Flame) PlumeTemperature(d, ambient float64) float64 {
	if d <= 0 {
		return ambient + f.DeltaTemperature
	}
	length := f.Length
	if length <= 0 {
		length = 1e-6
	}
	return ambient + f.DeltaTemperature*math.Exp(-decayConstant*d/length)
}

// DistanceForTemperature inverts PlumeTemperature: it returns the
// distance from origin at which the plume falls to targetT, or false if
// targetT is outside the plume's reachable range (ambient, ambient+ΔT].
func (f Flame) DistanceForTemperature(targetT, ambient float64) (float64, bool) {
	if targetT > ambient+f.DeltaTemperature || targetT <= ambient {
		return 0, false
	}
	if f.DeltaTemperature <= 0 {
		return 0, false
	}
	length := f.Length
	if length <= 0 {
		length = 1e-6
	}
	ratio := (targetT - ambient) / f.DeltaTemperature
	if ratio <= 0 {
		return 0, false
	}
	d := -length / decayConstant * math.Log(ratio)
	if d < 0 {
		d = 0
	}
	return d, true
}

// WindEffectFlameAngle returns the angle (radians from horizontal) a
// flame of the given length adopts under a wind speed (m/s) and a
// ground slope (radians). Stronger wind and longer flames tilt the
// flame further from vertical; slope adds directly to the tilt.
func WindEffectFlameAngle(length, wind, slope float64) float64 {
	if length <= 0 {
		return math.Pi/2 + slope
	}
	tilt := math.Atan(1 + wind*wind*length)
	return math.Pi/2 - tilt + slope
}

// LateralMergedFlameLength returns the flame length resulting from
// lateral merging of adjacent plants' flames along a fire line of the
// given length, given the plant's crown width and plant separation.
func LateralMergedFlameLength(length, fireLineLength, plantWidth, plantSep float64) float64 {
	if plantSep <= 0 || length <= 0 {
		return length
	}
	plantsAlongLine := fireLineLength / plantSep
	if plantsAlongLine < 1 {
		return length
	}
	cover := plantWidth / plantSep
	if cover > 1 {
		cover = 1
	}
	mergeFactor := 1 + cover*math.Log1p(plantsAlongLine)
	return length * mergeFactor
}

// CombineFlames fuses an upper and a lower flame as a lower stratum's
// output propagates into the one above it, under a flame-weighted wind
// speed, a ground slope, and the fire-line length.
func CombineFlames(upper, lower Flame, weightedWind, slope, fireLineLength float64) Flame {
	totalLen := upper.Length + lower.Length
	if totalLen <= 0 {
		return Flame{}
	}
	wu := upper.Length / totalLen
	wl := lower.Length / totalLen

	baseLength := math.Max(upper.Length, lower.Length) +
		math.Min(upper.Length, lower.Length)*0.5
	combinedLength := baseLength * (1 + math.Log1p(math.Max(fireLineLength, 0))/100)

	origin := geom.Coord{
		X: upper.Origin.X*wu + lower.Origin.X*wl,
		Y: upper.Origin.Y*wu + lower.Origin.Y*wl,
	}

	depth := upper.DepthIgnited*wu + lower.DepthIgnited*wl
	deltaT := math.Max(upper.DeltaTemperature, lower.DeltaTemperature)

	angle := WindEffectFlameAngle(combinedLength, weightedWind, slope)

	return Flame{
		Length:           combinedLength,
		Angle:            angle,
		Origin:           origin,
		DepthIgnited:     depth,
		DeltaTemperature: deltaT,
	}
}
