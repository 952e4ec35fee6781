package orchestrator

import (
	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/species"
	"github.com/appengine-ltd/flamepath/internal/wind"
)

// incidentFlames builds stratum's incident flame series (§4.4 step 1):
// the surface series alone if no qualifying lower stratum has ignited
// yet, otherwise the surface series folded with every lower, connected,
// ignited stratum's larger flame series.
func (r *run) incidentFlames(stratum species.Stratum) []flame.Flame {
	surface := r.site.Surface.FlameSeries(r.settings.DeltaTSeconds())

	var lowerSeries [][]flame.Flame
	windSum := r.site.Surface.WindSpeed * r.site.Surface.FlameLength()
	lengthSum := r.site.Surface.FlameLength()

	for _, o := range r.outcomes {
		if o.Level >= stratum.Level || !o.Ignited() {
			continue
		}
		if !r.qualifiesAsLower(o.Level, stratum) {
			continue
		}
		series := o.largerSeries()
		lowerSeries = append(lowerSeries, series)

		lower, ok := r.site.Vegetation.ByLevel(o.Level)
		if !ok {
			continue
		}
		w := wind.SpeedAt(r.site.Vegetation, r.site.Surface.WindSpeed, lower.AverageMidHeight(), r.includeCanopy)
		l := maxFlameLength(series)
		windSum += w * l
		lengthSum += l
	}

	weightedWind := r.site.Surface.WindSpeed
	if lengthSum > 0 {
		weightedWind = windSum / lengthSum
	}

	out := surface
	for _, series := range lowerSeries {
		out = combineSeries(out, series, weightedWind, r.site.Surface.Slope, r.fireLineLength)
	}
	return out
}

// qualifiesAsLower reports whether a lower stratum's flames should feed
// into stratum's incident flames: either an explicit flame connection
// was recorded for it, or the vegetation's overlap relation associates
// the two strata.
func (r *run) qualifiesAsLower(lowerLevel species.StratumLevel, stratum species.Stratum) bool {
	if r.connectedTo(lowerLevel) {
		return true
	}
	lower, ok := r.site.Vegetation.ByLevel(lowerLevel)
	if !ok {
		return false
	}
	return r.site.Vegetation.Overlap(lower, stratum)
}

// combineSeries fuses two flame series step by step, repeating the
// shorter series' last flame once it runs out so a persisting flame
// does not vanish from the fold.
func combineSeries(base, other []flame.Flame, weightedWind, slope, fireLineLength float64) []flame.Flame {
	n := len(base)
	if len(other) > n {
		n = len(other)
	}
	out := make([]flame.Flame, n)
	for i := 0; i < n; i++ {
		out[i] = flame.CombineFlames(at(base, i), at(other, i), weightedWind, slope, fireLineLength)
	}
	return out
}

func at(series []flame.Flame, i int) flame.Flame {
	if len(series) == 0 {
		return flame.Flame{}
	}
	if i < len(series) {
		return series[i]
	}
	return series[len(series)-1]
}

// combinedFlames folds the larger flame series of every stratum that is
// Canopy or connected to it, from lowest to highest, into the site's
// final combined flame series.
func (r *run) combinedFlames() []flame.Flame {
	var combined []flame.Flame
	for _, o := range r.outcomes {
		if !o.Ignited() {
			continue
		}
		if o.Level != species.Canopy && !r.connectedTo(o.Level) {
			continue
		}
		series := o.largerSeries()
		if combined == nil {
			combined = series
			continue
		}
		stratum, ok := r.site.Vegetation.ByLevel(o.Level)
		w := r.site.Surface.WindSpeed
		if ok {
			w = wind.SpeedAt(r.site.Vegetation, r.site.Surface.WindSpeed, stratum.AverageMidHeight(), r.includeCanopy)
		}
		combined = combineSeries(combined, series, w, r.site.Surface.Slope, r.fireLineLength)
	}
	return combined
}
