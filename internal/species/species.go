package species

import (
	"fmt"
	"math"
	"strings"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/geom"
)

// Species is an immutable-after-construction description of one plant
// species' crown geometry and leaf properties.
type Species struct {
	Name string
	Crown geom.CrownPoly

	LiveLeafMoisture float64
	DeadLeafMoisture float64
	PropDead         float64

	LeafForm       LeafForm
	LeafThickness  float64
	LeafWidth      float64
	LeafLength     float64
	LeafSeparation float64

	StemOrder float64

	ClumpDiameter   float64
	ClumpSeparation float64

	// Exactly one of these is set; see NewSpecies.
	ignitionTemperature   *float64
	silicaFreeAshFraction *float64
}

// SpeciesParams is the raw constructor input for NewSpecies.
type SpeciesParams struct {
	Name string
	Crown geom.CrownPoly

	LiveLeafMoisture float64
	DeadLeafMoisture float64
	PropDead         float64

	LeafForm       LeafForm
	LeafThickness  float64
	LeafWidth      float64
	LeafLength     float64
	LeafSeparation float64

	StemOrder float64

	ClumpDiameter   float64
	ClumpSeparation float64

	// Exactly one of IgnitionTemperature or SilicaFreeAshFraction must
	// be non-nil.
	IgnitionTemperature   *float64
	SilicaFreeAshFraction *float64
}

// NewSpecies validates params and constructs a Species. It fails with
// ErrInvalidInput when any invariant is violated: a blank name, any
// negative moisture/length, PropDead outside [0,1], or neither
// IgnitionTemperature nor SilicaFreeAshFraction supplied.
func NewSpecies(p SpeciesParams) (Species, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Species{}, fmt.Errorf("species: name must not be blank: %w", fmerr.ErrInvalidInput)
	}
	for _, nv := range []struct {
		name string
		v    float64
	}{
		{"live leaf moisture", p.LiveLeafMoisture},
		{"dead leaf moisture", p.DeadLeafMoisture},
		{"leaf thickness", p.LeafThickness},
		{"leaf width", p.LeafWidth},
		{"leaf length", p.LeafLength},
		{"leaf separation", p.LeafSeparation},
		{"clump diameter", p.ClumpDiameter},
		{"clump separation", p.ClumpSeparation},
	} {
		if nv.v < 0 {
			return Species{}, fmt.Errorf("species %q: %s must not be negative, got %.4f: %w", p.Name, nv.name, nv.v, fmerr.ErrInvalidInput)
		}
	}
	if p.PropDead < 0 || p.PropDead > 1 {
		return Species{}, fmt.Errorf("species %q: proportion dead must be within [0,1], got %.4f: %w", p.Name, p.PropDead, fmerr.ErrInvalidInput)
	}
	if p.IgnitionTemperature == nil && p.SilicaFreeAshFraction == nil {
		return Species{}, fmt.Errorf("species %q: must supply either an ignition temperature or a silica-free-ash proportion: %w", p.Name, fmerr.ErrInvalidInput)
	}

	return Species{
		Name:                  p.Name,
		Crown:                 p.Crown,
		LiveLeafMoisture:      p.LiveLeafMoisture,
		DeadLeafMoisture:      p.DeadLeafMoisture,
		PropDead:              p.PropDead,
		LeafForm:              p.LeafForm,
		LeafThickness:         p.LeafThickness,
		LeafWidth:             p.LeafWidth,
		LeafLength:            p.LeafLength,
		LeafSeparation:        p.LeafSeparation,
		StemOrder:             p.StemOrder,
		ClumpDiameter:         p.ClumpDiameter,
		ClumpSeparation:       p.ClumpSeparation,
		ignitionTemperature:   p.IgnitionTemperature,
		silicaFreeAshFraction: p.SilicaFreeAshFraction,
	}, nil
}

// PropLive returns the proportion of live leaf material, 1-PropDead.
func (s Species) PropLive() float64 { return 1 - s.PropDead }

// LeafArea returns a single leaf's area, w*l/2.
func (s Species) LeafArea() float64 { return s.LeafWidth * s.LeafLength / 2 }

// LeafMoisture returns the proportion-weighted moisture of the species'
// leaves.
func (s Species) LeafMoisture() float64 {
	return s.PropLive()*s.LiveLeafMoisture + s.PropDead*s.DeadLeafMoisture
}

// FlameDuration returns how long a leaf flame burns, given the
// computation interval deltaT (seconds); never shorter than deltaT.
func (s Species) FlameDuration(deltaT float64) float64 {
	d := 1.37*s.LeafWidth*s.LeafThickness*1e6 + 1.61*s.LeafMoisture() - 0.027
	return math.Max(d, deltaT)
}

// IgnitionTemperature returns the species' ignition temperature: the
// explicit value if supplied, otherwise the value modelled from its
// silica-free-ash proportion.
func (s Species) IgnitionTemperature() float64 {
	if s.ignitionTemperature != nil {
		return *s.ignitionTemperature
	}
	p := *s.silicaFreeAshFraction
	lp := math.Log(100 * p)
	return 354 - 13.9*lp - 2.91*lp*lp
}

// leafFlameLengthBreakpoints define the piecewise leaf-flame-length
// curve as (moisture fraction, length) control points; between points
// the curve interpolates linearly, and above the last point it holds at
// the last length.
var leafFlameLengthBreakpoints = []struct {
	moisture float64
	length   float64
}{
	{0.00, 0.085},
	{0.30, 0.065},
	{0.60, 0.045},
	{1.00, 0.030},
	{2.00, 0.015},
}

// LeafFlameLength returns the characteristic flame length of a single
// burning leaf, a piecewise function of the species' leaf moisture.
func (s Species) LeafFlameLength() float64 {
	m := s.LeafMoisture()
	pts := leafFlameLengthBreakpoints
	if m <= pts[0].moisture {
		return pts[0].length
	}
	for i := 1; i < len(pts); i++ {
		if m <= pts[i].moisture {
			lo, hi := pts[i-1], pts[i]
			frac := (m - lo.moisture) / (hi.moisture - lo.moisture)
			return lo.length + frac*(hi.length-lo.length)
		}
	}
	return pts[len(pts)-1].length
}

// LeavesPerClump returns the estimated number of leaves carried by one
// clump of foliage.
func (s Species) LeavesPerClump() float64 {
	return 0.88 * math.Pow(s.ClumpDiameter*s.StemOrder/s.ClumpSeparation, 1.18)
}

// LeafAreaIndex returns the species' own leaf-area-index: total leaf
// area per clump divided by the ground area one clump occupies.
func (s Species) LeafAreaIndex() float64 {
	footprint := s.ClumpDiameter + s.ClumpSeparation
	if footprint <= 0 {
		return 0
	}
	return s.LeavesPerClump() * s.LeafArea() / (footprint * footprint)
}

// FlameLength returns the flame length produced by an ignited segment of
// length L, via the Zylstra-form clump/leaf combination (spec.md §4.2,
// Eq. 5.76).
func (s Species) FlameLength(l float64) float64 {
	if math.Abs(l) < 1e-9 {
		return 0
	}
	nLeaves := s.LeavesPerClump() * l / (s.ClumpDiameter + s.ClumpSeparation)
	term1 := math.Pow(s.LeafFlameLength()*math.Pow(nLeaves, 0.4)+l, 4)
	term2 := math.Pow(l, 4)
	return math.Max(l, math.Pow(term1+term2, 0.25))
}

// IgnitionDelayTime returns the time (seconds) a leaf at plume
// temperature T (celsius) takes to ignite.
func (s Species) IgnitionDelayTime(t float64) float64 {
	mPrime := 100 * s.LeafMoisture() * s.LeafThickness * 1000 / s.LeafForm.leafFactor()
	return 100168.23*math.Pow(t, -2.11)*mPrime + 6018087.86*math.Pow(t, -2.39)
}

// IsGrass reports whether s should be classified as grass at the given
// stratum level: NearSurface, PropDead > 0.5, and leaf thickness below
// 3.5e-4 m.
func (s Species) IsGrass(level StratumLevel) bool {
	return level == NearSurface && s.PropDead > 0.5 && s.LeafThickness < 0.00035
}
