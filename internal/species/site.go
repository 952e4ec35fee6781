package species

import (
	"fmt"
	"math"
	"sort"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/geom"
)

// SurfaceParams describes the surface fuel bed and weather the fire
// model runs against. All fields are SI; WindSpeed is in m/s (the
// external parameter-file loader converts from the km/h the parameter
// file supplies).
type SurfaceParams struct {
	Slope               float64
	MeanFuelDiameter    float64
	MeanFinenessLeaves  float64
	FuelLoadTPerHa      float64
	DeadFuelMoisture    float64
	AirTemperature      float64
	WindSpeed           float64
}

// Validate checks SurfaceParams' invariants: no negative physical
// quantity.
func (sp SurfaceParams) Validate() error {
	for _, nv := range []struct {
		name string
		v    float64
	}{
		{"mean fuel diameter", sp.MeanFuelDiameter},
		{"mean fineness leaves", sp.MeanFinenessLeaves},
		{"fuel load", sp.FuelLoadTPerHa},
		{"dead fuel moisture", sp.DeadFuelMoisture},
		{"wind speed", sp.WindSpeed},
	} {
		if nv.v < 0 {
			return fmt.Errorf("surface params: %s must not be negative, got %.4f: %w", nv.name, nv.v, fmerr.ErrInvalidInput)
		}
	}
	return nil
}

// flameResidenceTimeSeconds returns how long the surface fire's flaming
// front burns at one point, from the classic fuel-diameter residence
// time correlation (Anderson 1969): 39.4 seconds per centimetre of fuel
// diameter.
func (sp SurfaceParams) flameResidenceTimeSeconds() float64 {
	return 39.4 * (sp.MeanFuelDiameter * 100)
}

// FlameResidenceTime returns how long the surface fire's flaming front
// burns at one point.
func (sp SurfaceParams) FlameResidenceTime() float64 {
	return sp.flameResidenceTimeSeconds()
}

// FlameLength returns the surface fire's steady-state flame length, a
// function of fuel load, dead fuel moisture, and wind speed.
func (sp SurfaceParams) FlameLength() float64 {
	base := 0.45 * math.Sqrt(math.Max(sp.FuelLoadTPerHa, 0))
	moistureFactor := math.Max(0, 1-sp.DeadFuelMoisture/50)
	windFactor := 1 + sp.WindSpeed/15
	return base * moistureFactor * windFactor
}

// DeltaTemperature returns the surface flame's temperature rise over
// ambient.
func (sp SurfaceParams) DeltaTemperature() float64 {
	return 1200 * math.Max(0, 1-sp.DeadFuelMoisture/60)
}

// FlameSeries returns the fixed series of surface flames that drive the
// lowest stratum's ignition simulation: a flame repeated for every step
// of the surface fire's residence time.
func (sp SurfaceParams) FlameSeries(deltaTSeconds float64) []flame.Flame {
	length := sp.FlameLength()
	angle := flame.WindEffectFlameAngle(length, sp.WindSpeed, sp.Slope)
	f := flame.Flame{
		Length:           length,
		Angle:            angle,
		Origin:           geom.Coord{X: 0, Y: 0},
		DepthIgnited:     sp.MeanFuelDiameter,
		DeltaTemperature: sp.DeltaTemperature(),
	}
	steps := int(math.Ceil(sp.FlameResidenceTime() / deltaTSeconds))
	if steps < 1 {
		steps = 1
	}
	series := make([]flame.Flame, steps)
	for i := range series {
		series[i] = f
	}
	return series
}

// OverlapKey identifies an ordered pair of strata for overlap lookups.
type OverlapKey struct {
	Lower, Upper StratumLevel
}

// Vegetation is the vertically stratified plant community at a site: an
// ordered set of strata plus any explicit overlap relations between
// them.
type Vegetation struct {
	Strata   []Stratum
	Overlaps map[OverlapKey]StratumOverlapType
}

// NewVegetation validates and constructs a Vegetation from an unordered
// set of strata, sorting them by level. It fails with ErrInvalidInput on
// duplicate levels.
func NewVegetation(strata []Stratum, overlaps map[OverlapKey]StratumOverlapType) (Vegetation, error) {
	sorted := append([]Stratum(nil), strata...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	seen := map[StratumLevel]bool{}
	for _, s := range sorted {
		if seen[s.Level] {
			return Vegetation{}, fmt.Errorf("vegetation: duplicate stratum level %s: %w", s.Level, fmerr.ErrInvalidInput)
		}
		seen[s.Level] = true
	}

	if overlaps == nil {
		overlaps = map[OverlapKey]StratumOverlapType{}
	}
	return Vegetation{Strata: sorted, Overlaps: overlaps}, nil
}

// ByLevel returns the stratum at level, if present.
func (v Vegetation) ByLevel(level StratumLevel) (Stratum, bool) {
	for _, s := range v.Strata {
		if s.Level == level {
			return s, true
		}
	}
	return Stratum{}, false
}

// Below returns every stratum strictly below level, in ascending order.
func (v Vegetation) Below(level StratumLevel) []Stratum {
	var out []Stratum
	for _, s := range v.Strata {
		if s.Level < level {
			out = append(out, s)
		}
	}
	return out
}

// Overlap resolves the overlap relation between a lower and an upper
// stratum: the explicit relation if one was recorded, otherwise a
// geometric decision based on whether their height ranges intersect.
func (v Vegetation) Overlap(lower, upper Stratum) bool {
	key := OverlapKey{Lower: lower.Level, Upper: upper.Level}
	if t, ok := v.Overlaps[key]; ok && t != Undefined {
		return t == Overlapping
	}
	return lower.AverageTop() >= upper.AverageBottom() && upper.AverageTop() >= lower.AverageBottom()
}

// Site is the full input to a fire model run: its vegetation, surface
// fuel and weather, and fire-line length.
type Site struct {
	Vegetation Vegetation
	Surface    SurfaceParams
}
