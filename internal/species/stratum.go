package species

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
)

// SpeciesComponent pairs a Species with its normalized weight within a
// Stratum's composition.
type SpeciesComponent struct {
	Species Species
	Weight  float64
}

// Stratum is one horizontal vegetation layer: a weighted composition of
// species, a plant separation, and derived crown-average geometry.
type Stratum struct {
	Level      StratumLevel
	Components []SpeciesComponent
	PlantSep   float64

	averageWidth float64
	averageTop   float64
	averageBottom float64
}

// NewStratum validates and constructs a Stratum, normalizing the given
// components' weights to sum to 1. It fails with ErrInvalidInput when
// components is empty, any weight is negative, or PlantSep is negative.
func NewStratum(level StratumLevel, components []SpeciesComponent, plantSep float64) (Stratum, error) {
	if len(components) == 0 {
		return Stratum{}, fmt.Errorf("stratum %s: must have at least one species component: %w", level, fmerr.ErrInvalidInput)
	}
	if plantSep < 0 {
		return Stratum{}, fmt.Errorf("stratum %s: plant separation must not be negative, got %.4f: %w", level, plantSep, fmerr.ErrInvalidInput)
	}

	total := 0.0
	for _, c := range components {
		if c.Weight < 0 {
			return Stratum{}, fmt.Errorf("stratum %s: component %q weight must not be negative: %w", level, c.Species.Name, fmerr.ErrInvalidInput)
		}
		total += c.Weight
	}
	if total <= 0 {
		return Stratum{}, fmt.Errorf("stratum %s: component weights must sum to a positive value: %w", level, fmerr.ErrInvalidInput)
	}

	normalized := make([]SpeciesComponent, len(components))
	var width, top, bottom float64
	for i, c := range components {
		w := c.Weight / total
		normalized[i] = SpeciesComponent{Species: c.Species, Weight: w}
		width += w * c.Species.Crown.Width()
		top += w * c.Species.Crown.Top()
		bottom += w * c.Species.Crown.Bottom()
	}

	return Stratum{
		Level:         level,
		Components:    normalized,
		PlantSep:      plantSep,
		averageWidth:  width,
		averageTop:    top,
		averageBottom: bottom,
	}, nil
}

// AverageWidth returns the weighted-average crown width across the
// stratum's species.
func (s Stratum) AverageWidth() float64 { return s.averageWidth }

// AverageTop returns the weighted-average crown top height.
func (s Stratum) AverageTop() float64 { return s.averageTop }

// AverageBottom returns the weighted-average crown bottom height.
func (s Stratum) AverageBottom() float64 { return s.averageBottom }

// AverageMidHeight returns the midpoint between AverageTop and
// AverageBottom.
func (s Stratum) AverageMidHeight() float64 { return (s.averageTop + s.averageBottom) / 2 }

// ModelPlantSep returns the plant separation used by the model: the
// greater of the stratum's configured separation and its average crown
// width.
func (s Stratum) ModelPlantSep() float64 { return math.Max(s.PlantSep, s.averageWidth) }

// Cover returns the stratum's foliage cover fraction,
// (averageWidth/modelPlantSep)^2.
func (s Stratum) Cover() float64 {
	sep := s.ModelPlantSep()
	if sep <= 0 {
		return 0
	}
	ratio := s.averageWidth / sep
	return ratio * ratio
}

// LeafAreaIndex returns the stratum's leaf-area-index: cover times the
// weighted sum of its species' own leaf-area-indices.
func (s Stratum) LeafAreaIndex() float64 {
	sum := 0.0
	for _, c := range s.Components {
		sum += c.Weight * c.Species.LeafAreaIndex()
	}
	return s.Cover() * sum
}
