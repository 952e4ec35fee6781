package orchestrator

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/ignition"
	"github.com/appengine-ltd/flamepath/internal/species"
	"github.com/appengine-ltd/flamepath/internal/weighted"
)

// runStratum executes §4.4 steps 1-11 for one stratum, appending its
// outcome to r.outcomes and updating the pre-heating and flame
// connection state carried into the strata above it.
func (r *run) runStratum(stratum species.Stratum) error {
	slope := r.site.Surface.Slope
	ambientTemp := r.site.Surface.AirTemperature

	incident := r.incidentFlames(stratum)
	windSpeed := windAtMidHeight(r.site.Vegetation, r.site.Surface.WindSpeed, stratum, r.includeCanopy)

	best := make([]ignition.IgnitionPath, len(stratum.Components))
	for i, c := range stratum.Components {
		candidates, err := runPlantCandidates(c.Species, stratum.Level, r.settings, slope, ambientTemp, incident, r.preHeatingFlames, r.preHeatingEndTime, windSpeed)
		if err != nil {
			return err
		}
		best[i] = selectBest(candidates)
	}

	anyIgnited := false
	for _, p := range best {
		if p.HasIgnition() {
			anyIgnited = true
			break
		}
	}
	if !anyIgnited {
		r.outcomes = append(r.outcomes, StratumOutcome{Level: stratum.Level, PlantPaths: best})
		return nil
	}

	plantSeries, plantFlames := buildPlantFlames(stratum.Components, best, stratum, r.fireLineLength, windSpeed, slope)

	canopyDist := 0.0
	if stratum.Level == species.Canopy {
		canopyDist = canopyHeatingDistance(stratum, r.outcomes, ambientTemp, slope, r.settings)
	}

	var stratumPaths []ignition.IgnitionPath
	var stratumSeries weighted.Series
	var stratumFlames []flame.Flame
	if len(plantFlames) > 0 {
		paths, hit, err := runStratumIgnition(stratum, plantFlames[0], r.settings, slope, ambientTemp, windSpeed, canopyDist, incident, r.preHeatingFlames, r.preHeatingEndTime)
		if err != nil {
			return err
		}
		if hit {
			stratumPaths = paths
			stratumSeries, stratumFlames = buildStratumFlames(stratum.Components, paths, windSpeed, slope)
		}
	}

	outcome := StratumOutcome{
		Level:         stratum.Level,
		PlantPaths:    best,
		StratumPaths:  stratumPaths,
		PlantSeries:   plantSeries,
		StratumSeries: stratumSeries,
		PlantFlames:   plantFlames,
		StratumFlames: stratumFlames,
	}

	nextPreHeating, end := deriveNextPreHeatingFlame(stratum.Level, outcome, r.preHeatingEndTime, r.settings.DeltaTSeconds())
	r.preHeatingFlames = append(r.preHeatingFlames, nextPreHeating)
	r.preHeatingEndTime = &end

	if connectionExtendsBeyondCrown(best) {
		outcome.Connected = true
		r.markConnected(stratum.Level)
	}

	r.outcomes = append(r.outcomes, outcome)
	return nil
}

// connectionExtendsBeyondCrown reports whether any species' best plant
// path has a segment whose flame tip reaches beyond that species'
// crown half-width (§4.4 step 11).
func connectionExtendsBeyondCrown(paths []ignition.IgnitionPath) bool {
	for _, p := range paths {
		half := p.Species.Crown.Width() / 2
		for _, seg := range p.Segments {
			tipX := seg.Start.X + seg.Flame.Length*math.Cos(seg.Flame.Angle)
			if tipX > half {
				return true
			}
		}
	}
	return false
}
