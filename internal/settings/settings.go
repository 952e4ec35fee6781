// Package settings bundles every compile-time tunable of the fire model
// into a single value so no package reaches for a global constant
// directly; callers thread a ModelSettings through explicitly (spec §9:
// "model constants are compile-time constants bundled in a single
// settings record").
package settings

import "time"

// ModelSettings bundles the fire model's tunable constants.
type ModelSettings struct {
	// ComputationTimeInterval (ΔT) is the duration of one simulation
	// time step.
	ComputationTimeInterval time.Duration

	// NumPenetrationSteps is the number of equal subdivisions used when
	// testing a candidate ignition path for the next ignitable point.
	NumPenetrationSteps int

	// MaxIgnitionTimeSteps bounds the number of time steps a path
	// simulation may run *after* its first ignition.
	MaxIgnitionTimeSteps int

	// StratumBigCrownWidth is the width of the artificial rectangular
	// crown used by a stratum run.
	StratumBigCrownWidth float64

	// ReducedCanopyFlameResidenceTime overrides the flame-duration
	// look-back window for canopy segments beyond the canopy heating
	// distance.
	ReducedCanopyFlameResidenceTime time.Duration

	// GrassIDTReduction multiplies a grass species' ignition delay
	// time.
	GrassIDTReduction float64

	// GrassFlameDeltaTemperature is the delta-T assigned to plant
	// flames emitted by grass species.
	GrassFlameDeltaTemperature float64

	// MainFlameDeltaTemperature is the delta-T assigned to plant flames
	// emitted by non-grass species.
	MainFlameDeltaTemperature float64

	// MinTempForCanopyHeating is the plume temperature threshold a
	// lower flame series must meet to extend the canopy heating
	// distance.
	MinTempForCanopyHeating float64
}

// DefaultSettings holds the model's standard tuning, matching the
// ΔT=1s, NumPenetrationSteps=10, MaxIgnitionTimeSteps=20 fixture used by
// the end-to-end test scenarios.
var DefaultSettings = ModelSettings{
	ComputationTimeInterval:         time.Second,
	NumPenetrationSteps:             10,
	MaxIgnitionTimeSteps:            20,
	StratumBigCrownWidth:            100,
	ReducedCanopyFlameResidenceTime: 30 * time.Second,
	GrassIDTReduction:               0.6,
	GrassFlameDeltaTemperature:      700,
	MainFlameDeltaTemperature:       1090,
	MinTempForCanopyHeating:         300,
}

// DeltaTSeconds returns ComputationTimeInterval in seconds, the unit
// every formula in the model is expressed in.
func (s ModelSettings) DeltaTSeconds() float64 {
	return s.ComputationTimeInterval.Seconds()
}

// ReducedCanopyFlameResidenceTimeSeconds returns
// ReducedCanopyFlameResidenceTime in seconds.
func (s ModelSettings) ReducedCanopyFlameResidenceTimeSeconds() float64 {
	return s.ReducedCanopyFlameResidenceTime.Seconds()
}
