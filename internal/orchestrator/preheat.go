package orchestrator

import (
	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/species"
)

// deriveNextPreHeatingFlame builds the pre-heating flame a stratum's
// outcome seeds for the strata above it (§4.4 step 10): taken from the
// outcome's larger flame series, starting once that series' longest
// flame step is reached and running for the series' own duration.
func deriveNextPreHeatingFlame(level species.StratumLevel, outcome StratumOutcome, preHeatingEndTime *float64, deltaT float64) (flame.PreHeatingFlame, float64) {
	flames := outcome.largerSeries()
	series := outcome.largerWeighted()

	base := 0.0
	if preHeatingEndTime != nil {
		base = *preHeatingEndTime
	}
	start := base + float64(series.IgnitionTime) + float64(series.TimeToLongestFlame)
	end := start + float64(len(flames))*deltaT

	representative := flame.Flame{}
	if len(flames) > 0 {
		representative = flames[0]
	}

	return flame.PreHeatingFlame{
		Flame: representative,
		Start: start,
		End:   end,
		Level: level,
	}, end
}
