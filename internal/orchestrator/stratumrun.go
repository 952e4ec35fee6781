package orchestrator

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/ignition"
	"github.com/appengine-ltd/flamepath/internal/settings"
	"github.com/appengine-ltd/flamepath/internal/species"
	"github.com/appengine-ltd/flamepath/internal/weighted"
)

// canopyHeatingDistance computes §4.4.1: the furthest horizontal point
// at which a non-canopy stratum's longest flame still heats the
// canopy's lower edge above MinTempForCanopyHeating.
func canopyHeatingDistance(canopy species.Stratum, outcomes []StratumOutcome, ambientTemp, slope float64, set settings.ModelSettings) float64 {
	edge := geom.Line{Point: geom.Coord{X: 0, Y: canopy.AverageBottom()}, Slope: slope}

	max := 0.0
	for _, o := range outcomes {
		series := o.largerSeries()
		if len(series) == 0 {
			continue
		}
		longest := longestFlame(series)

		point, err := edge.OriginOnLine(longest.Origin, longest.Angle)
		if err != nil {
			point = longest.Origin
		}
		dist := longest.Origin.DistanceTo(point)
		if longest.PlumeTemperature(dist, ambientTemp) >= set.MinTempForCanopyHeating && point.X > max {
			max = point.X
		}
	}
	return max
}

func longestFlame(fs []flame.Flame) flame.Flame {
	best := fs[0]
	for _, f := range fs[1:] {
		if f.Length > best.Length {
			best = f
		}
	}
	return best
}

// artificialCrown builds the artificial rectangular crown a stratum
// run ignites through, and the center (x-coordinate) that crown is
// placed at.
func artificialCrown(stratum species.Stratum, set settings.ModelSettings) (geom.CrownPoly, float64, error) {
	width := set.StratumBigCrownWidth
	leftEdge := stratum.ModelPlantSep() - stratum.AverageWidth()/2
	center := leftEdge + width/2

	crown, err := geom.NewCrownPoly(stratum.AverageBottom(), stratum.AverageBottom(), stratum.AverageTop(), stratum.AverageTop(), width)
	return crown, center, err
}

// placedCrownIntersect intersects ray with crown as if the crown were
// translated to sit centered at x=center on ground sloping at slope,
// by moving into the crown's own ground-relative frame and back.
func placedCrownIntersect(crown geom.CrownPoly, ray geom.Ray, center, slope float64) (geom.Segment, bool) {
	groundY := center * math.Tan(slope)
	local := geom.Ray{
		Origin: geom.Coord{X: ray.Origin.X - center, Y: ray.Origin.Y - groundY},
		Angle:  ray.Angle,
	}
	seg, ok := crown.Intersection(local)
	if !ok {
		return geom.Segment{}, false
	}
	seg.Start = geom.Coord{X: seg.Start.X + center, Y: seg.Start.Y + groundY}
	seg.End = geom.Coord{X: seg.End.X + center, Y: seg.End.Y + groundY}
	return seg, true
}

// stratumProxySpecies builds the per-species proxy used by a stratum
// run (§4.4 step 7): the artificial crown stands in for the species'
// real crown, and clump geometry is widened to the stratum scale.
func stratumProxySpecies(sp species.Species, crown geom.CrownPoly, stratum species.Stratum) (species.Species, error) {
	ignitionTemp := sp.IgnitionTemperature()
	clumpSep := sp.ClumpSeparation
	if wide := stratum.ModelPlantSep() - stratum.AverageWidth(); wide > clumpSep {
		clumpSep = wide
	}
	return species.NewSpecies(species.SpeciesParams{
		Name:                sp.Name + " (stratum)",
		Crown:               crown,
		LiveLeafMoisture:    sp.LiveLeafMoisture,
		DeadLeafMoisture:    sp.DeadLeafMoisture,
		PropDead:            sp.PropDead,
		LeafForm:            sp.LeafForm,
		LeafThickness:       sp.LeafThickness,
		LeafWidth:           sp.LeafWidth,
		LeafLength:          sp.LeafLength,
		LeafSeparation:      sp.LeafSeparation,
		StemOrder:           sp.StemOrder,
		ClumpDiameter:       sp.Crown.Width(),
		ClumpSeparation:     clumpSep,
		IgnitionTemperature: &ignitionTemp,
	})
}

// runStratumIgnition runs the stratum-run ignition simulation for every
// species component from the artificial crown's intersection point with
// the reference (first) plant flame, returning the best path per
// component. ok is false when the reference flame never meets the
// artificial crown, meaning the stratum did not ignite.
func runStratumIgnition(stratum species.Stratum, referenceFlame flame.Flame, set settings.ModelSettings, slope, ambientTemp, windSpeed, canopyHeatingDist float64, incidentFlames []flame.Flame, preHeating []flame.PreHeatingFlame, preHeatingEndTime *float64) ([]ignition.IgnitionPath, bool, error) {
	crown, center, err := artificialCrown(stratum, set)
	if err != nil {
		return nil, false, err
	}

	seg, hit := placedCrownIntersect(crown, geom.Ray{Origin: referenceFlame.Origin, Angle: referenceFlame.Angle}, center, slope)
	if !hit {
		return nil, false, nil
	}

	paths := make([]ignition.IgnitionPath, len(stratum.Components))
	for i, c := range stratum.Components {
		proxy, err := stratumProxySpecies(c.Species, crown, stratum)
		if err != nil {
			return nil, false, err
		}
		path, err := ignition.Run(ignition.Params{
			RunType:               ignition.StratumRun,
			StratumLevel:           stratum.Level,
			Species:                proxy,
			Settings:               set,
			Slope:                  slope,
			AmbientTemp:            ambientTemp,
			IncidentFlames:         incidentFlames,
			PreHeatingFlames:       preHeating,
			PreHeatingEndTime:      preHeatingEndTime,
			CanopyHeatingDistance:  canopyHeatingDist,
			StratumWindSpeed:       windSpeed,
			InitialPoint:           seg.Start,
		})
		if err != nil {
			return nil, false, err
		}
		paths[i] = path
	}
	return paths, true, nil
}

// buildStratumFlames aggregates a stratum run's per-species paths into
// a weighted flame series, without lateral merging.
func buildStratumFlames(components []species.SpeciesComponent, paths []ignition.IgnitionPath, windSpeed, slope float64) (weighted.Series, []flame.Flame) {
	wp := make([]weighted.Path, len(components))
	for i, c := range components {
		wp[i] = weighted.Path{Weight: c.Weight, Path: paths[i]}
	}
	series := weighted.Aggregate(wp)

	flames := make([]flame.Flame, len(series.Entries))
	for i, e := range series.Entries {
		flames[i] = flame.Flame{
			Length:           e.Length,
			Angle:            flame.WindEffectFlameAngle(e.Length, windSpeed, slope),
			Origin:           e.Origin,
			DepthIgnited:     e.DepthIgnited,
			DeltaTemperature: e.DeltaTemperature,
		}
	}
	return series, flames
}
