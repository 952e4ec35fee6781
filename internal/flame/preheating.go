package flame

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/stratumlevel"
)

// PreHeatingFlame is a flame whose thermal effect is applied before the
// current stratum ignites: it contributes to drying, not to direct
// heating. It carries the half-open time window [Start, End) during
// which it is considered active, and the stratum level it was produced
// at.
type PreHeatingFlame struct {
	Flame
	Start, End float64
	Level      stratumlevel.StratumLevel
}

// Duration returns the effective exposure time of the pre-heating flame
// up to preHeatingEndTime: the overlap of [Start, End) with [0,
// preHeatingEndTime].
func (p PreHeatingFlame) Duration(preHeatingEndTime float64) float64 {
	end := math.Min(p.End, preHeatingEndTime)
	d := end - p.Start
	if d < 0 {
		return 0
	}
	return d
}
