// Package wind derives the wind speed at a given height inside a
// layered plant community from the incident (above-canopy) wind speed
// and the cumulative leaf-area-index of the vegetation above that
// height.
package wind

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/species"
)

// attenuationConstant sets how strongly accumulated leaf-area-index
// above a height reduces wind speed at that height (Beer's-law-style
// exponential attenuation; see SPEC_FULL.md §4 item 2).
const attenuationConstant = 0.4

// SpeedAt returns the wind speed (m/s) at height above the surface,
// attenuated by the leaf-area-index of every stratum whose average top
// lies at or above that height. When includeCanopy is false, the Canopy
// stratum's own leaf-area-index is excluded from the attenuation, as
// used by the fire model's second run.
func SpeedAt(veg species.Vegetation, referenceSpeed, height float64, includeCanopy bool) float64 {
	laiAbove := 0.0
	for _, s := range veg.Strata {
		if s.AverageTop() < height {
			continue
		}
		if !includeCanopy && s.Level == species.Canopy {
			continue
		}
		laiAbove += s.LeafAreaIndex()
	}
	return referenceSpeed * math.Exp(-attenuationConstant*laiAbove)
}
