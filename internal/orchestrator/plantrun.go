package orchestrator

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/ignition"
	"github.com/appengine-ltd/flamepath/internal/settings"
	"github.com/appengine-ltd/flamepath/internal/species"
	"github.com/appengine-ltd/flamepath/internal/weighted"
	"github.com/appengine-ltd/flamepath/internal/wind"
)

// plantStartProportions are the five candidate ignition start points
// across a crown's base, expressed as a fraction of the half-width.
var plantStartProportions = []float64{-1, -0.5, 0, 0.5, 1}

// plantStartPoint returns the candidate start point for proportion prop
// of sp's crown half-width, clamped to the ground surface when the
// crown's base dips below it.
func plantStartPoint(sp species.Species, prop, slope float64) geom.Coord {
	x := prop * sp.Crown.Width() / 2
	base := sp.Crown.PointInBase(x)
	surfaceY := x * math.Tan(slope)
	if base.Y < surfaceY {
		return geom.Coord{X: x, Y: surfaceY}
	}
	return base
}

// runPlantCandidates runs the plant ignition simulation for sp from
// each of the five candidate start points and returns all five paths.
func runPlantCandidates(sp species.Species, level species.StratumLevel, set settings.ModelSettings, slope, ambientTemp float64, incidentFlames []flame.Flame, preHeating []flame.PreHeatingFlame, preHeatingEndTime *float64, windSpeed float64) ([]ignition.IgnitionPath, error) {
	paths := make([]ignition.IgnitionPath, 0, len(plantStartProportions))
	for _, prop := range plantStartProportions {
		start := plantStartPoint(sp, prop, slope)
		path, err := ignition.Run(ignition.Params{
			RunType:           ignition.PlantRun,
			StratumLevel:      level,
			Species:           sp,
			Settings:          set,
			Slope:             slope,
			AmbientTemp:       ambientTemp,
			IncidentFlames:    incidentFlames,
			PreHeatingFlames:  preHeating,
			PreHeatingEndTime: preHeatingEndTime,
			StratumWindSpeed:  windSpeed,
			InitialPoint:      start,
		})
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// selectBest picks the best of a species' five candidate paths: the
// sole igniting one if exactly one ignited, the longest-max-segment
// path among those that ignited if more than one did, or otherwise the
// path that reached the highest drying temperature.
func selectBest(paths []ignition.IgnitionPath) ignition.IgnitionPath {
	var ignited []ignition.IgnitionPath
	for _, p := range paths {
		if p.HasIgnition() {
			ignited = append(ignited, p)
		}
	}
	switch len(ignited) {
	case 0:
		best := paths[0]
		for _, p := range paths[1:] {
			if p.MaxDryingTemperature() > best.MaxDryingTemperature() {
				best = p
			}
		}
		return best
	case 1:
		return ignited[0]
	default:
		best := ignited[0]
		for _, p := range ignited[1:] {
			if p.MaxSegmentLength() > best.MaxSegmentLength() {
				best = p
			}
		}
		return best
	}
}

// buildPlantFlames aggregates the stratum's best per-species plant
// paths into a weighted flame series (§4.3), then applies lateral
// merging and the wind-effect angle at the stratum's mid-height
// (§4.4 step 5).
func buildPlantFlames(components []species.SpeciesComponent, best []ignition.IgnitionPath, stratum species.Stratum, fireLineLength, windSpeed, slope float64) (weighted.Series, []flame.Flame) {
	wp := make([]weighted.Path, len(components))
	for i, c := range components {
		wp[i] = weighted.Path{Weight: c.Weight, Path: best[i]}
	}
	series := weighted.Aggregate(wp)

	flames := make([]flame.Flame, len(series.Entries))
	for i, e := range series.Entries {
		length := flame.LateralMergedFlameLength(e.Length, fireLineLength, stratum.AverageWidth(), stratum.ModelPlantSep())
		flames[i] = flame.Flame{
			Length:           length,
			Angle:            flame.WindEffectFlameAngle(length, windSpeed, slope),
			Origin:           e.Origin,
			DepthIgnited:     e.DepthIgnited,
			DeltaTemperature: e.DeltaTemperature,
		}
	}
	return series, flames
}

// windAtMidHeight looks up the stratum's incident wind speed at its
// weighted-average mid-height.
func windAtMidHeight(veg species.Vegetation, referenceSpeed float64, stratum species.Stratum, includeCanopy bool) float64 {
	return wind.SpeedAt(veg, referenceSpeed, stratum.AverageMidHeight(), includeCanopy)
}
