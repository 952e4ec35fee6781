// Package orchestrator implements the stratum orchestrator: a
// bottom-to-top recursion that, for each stratum, derives incident
// flames from lower strata, runs the plant and stratum ignition
// simulations, aggregates weighted flame attributes, decides flame
// connections to the canopy, seeds pre-heating flames upward, and
// finally combines flames across every stratum connected to the
// canopy.
package orchestrator

import (
	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/ignition"
	"github.com/appengine-ltd/flamepath/internal/settings"
	"github.com/appengine-ltd/flamepath/internal/species"
	"github.com/appengine-ltd/flamepath/internal/weighted"
)

// StratumOutcome records one stratum's run: the best per-species plant
// and stratum ignition paths, the weighted flame series derived from
// each, and whether the stratum connects to the one above it.
type StratumOutcome struct {
	Level species.StratumLevel

	PlantPaths   []ignition.IgnitionPath
	StratumPaths []ignition.IgnitionPath

	PlantSeries   weighted.Series
	StratumSeries weighted.Series

	PlantFlames   []flame.Flame
	StratumFlames []flame.Flame

	Connected bool
}

// Ignited reports whether the stratum produced any flame at all.
func (o StratumOutcome) Ignited() bool {
	return len(o.PlantFlames) > 0 || len(o.StratumFlames) > 0
}

// largerSeries returns whichever of the outcome's plant or stratum
// flame series reaches the greater maximum flame length, per the rule
// used both to seed the next pre-heating flame and to fold the final
// combined flames.
func (o StratumOutcome) largerSeries() []flame.Flame {
	if maxFlameLength(o.StratumFlames) > maxFlameLength(o.PlantFlames) {
		return o.StratumFlames
	}
	return o.PlantFlames
}

func (o StratumOutcome) largerWeighted() weighted.Series {
	if maxFlameLength(o.StratumFlames) > maxFlameLength(o.PlantFlames) {
		return o.StratumSeries
	}
	return o.PlantSeries
}

func maxFlameLength(fs []flame.Flame) float64 {
	max := 0.0
	for _, f := range fs {
		if f.Length > max {
			max = f.Length
		}
	}
	return max
}

// RunResult is the outcome of one full pass of the stratum orchestrator
// (one value of includeCanopy).
type RunResult struct {
	Outcomes       []StratumOutcome
	CombinedFlames []flame.Flame
}

// FireModelResult is the complete result of running the fire model for
// a site: the primary run plus, when the canopy ignited, a second run
// with the canopy's own wind attenuation excluded.
type FireModelResult struct {
	FirstRun     RunResult
	SecondRun    RunResult
	HasSecondRun bool
}

// Run executes the fire model for site and fireLineLength under
// settings, performing the second run automatically when the first
// run's canopy stratum produced a flame series.
func Run(site species.Site, fireLineLength float64, settings settings.ModelSettings) (FireModelResult, error) {
	first, err := runPipeline(site, fireLineLength, settings, true)
	if err != nil {
		return FireModelResult{}, err
	}

	hasSecond := false
	for _, o := range first.Outcomes {
		if o.Level == species.Canopy && o.Ignited() {
			hasSecond = true
			break
		}
	}

	if !hasSecond {
		return FireModelResult{
			FirstRun:  first,
			SecondRun: trivialSurfaceOnlyResult(site, settings),
		}, nil
	}

	second, err := runPipeline(site, fireLineLength, settings, false)
	if err != nil {
		return FireModelResult{}, err
	}
	return FireModelResult{FirstRun: first, SecondRun: second, HasSecondRun: true}, nil
}

func trivialSurfaceOnlyResult(site species.Site, set settings.ModelSettings) RunResult {
	return RunResult{CombinedFlames: site.Surface.FlameSeries(set.DeltaTSeconds())}
}

// runPipeline runs the full bottom-to-top stratum recursion once, for
// the given includeCanopy wind-model setting.
func runPipeline(site species.Site, fireLineLength float64, set settings.ModelSettings, includeCanopy bool) (RunResult, error) {
	state := &run{
		site:          site,
		fireLineLength: fireLineLength,
		settings:      set,
		includeCanopy: includeCanopy,
	}
	state.preHeatingFlames = []flame.PreHeatingFlame{state.initialPreHeatingFlame()}

	for _, stratum := range site.Vegetation.Strata {
		if err := state.runStratum(stratum); err != nil {
			return RunResult{}, err
		}
	}

	return RunResult{
		Outcomes:       state.outcomes,
		CombinedFlames: state.combinedFlames(),
	}, nil
}

// run carries one pipeline pass' mutable state across strata.
type run struct {
	site           species.Site
	fireLineLength float64
	settings       settings.ModelSettings
	includeCanopy  bool

	preHeatingFlames  []flame.PreHeatingFlame
	preHeatingEndTime *float64
	flameConnections  map[species.StratumLevel]bool
	outcomes          []StratumOutcome
}

func (r *run) initialPreHeatingFlame() flame.PreHeatingFlame {
	surfaceFlame := r.site.Surface.FlameSeries(r.settings.DeltaTSeconds())[0]
	return flame.PreHeatingFlame{
		Flame: surfaceFlame,
		Start: 0,
		End:   r.site.Surface.FlameResidenceTime(),
		Level: species.NearSurface,
	}
}

func (r *run) connectedTo(level species.StratumLevel) bool {
	if r.flameConnections == nil {
		return false
	}
	return r.flameConnections[level]
}

func (r *run) markConnected(level species.StratumLevel) {
	if r.flameConnections == nil {
		r.flameConnections = map[species.StratumLevel]bool{}
	}
	r.flameConnections[level] = true
}
