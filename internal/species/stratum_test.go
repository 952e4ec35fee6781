package species

import (
	"errors"
	"math"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/geom"
)

func testSpecies(t *testing.T, name string, width float64) Species {
	t.Helper()
	crown, err := geom.NewCrownPoly(0, 0, 4, 2, width)
	if err != nil {
		t.Fatalf("NewCrownPoly: %v", err)
	}
	ignitionTemp := 300.0
	sp, err := NewSpecies(SpeciesParams{
		Name:                name,
		Crown:               crown,
		LiveLeafMoisture:    0.5,
		DeadLeafMoisture:    0.1,
		PropDead:            0.2,
		LeafForm:            Round,
		LeafThickness:       0.0003,
		LeafWidth:           0.01,
		LeafLength:          0.02,
		LeafSeparation:      0.01,
		StemOrder:           2,
		ClumpDiameter:       0.3,
		ClumpSeparation:     0.1,
		IgnitionTemperature: &ignitionTemp,
	})
	if err != nil {
		t.Fatalf("NewSpecies(%q): %v", name, err)
	}
	return sp
}

func TestNewStratumNormalizesWeightsToOne(t *testing.T) {
	st, err := NewStratum(NearSurface, []SpeciesComponent{
		{Species: testSpecies(t, "a", 2), Weight: 3},
		{Species: testSpecies(t, "b", 4), Weight: 1},
	}, 1)
	if err != nil {
		t.Fatalf("NewStratum: %v", err)
	}
	total := 0.0
	for _, c := range st.Components {
		total += c.Weight
	}
	if math.Abs(total-1) > 1e-9 {
		t.Fatalf("expected normalized weights to sum to 1, got %v", total)
	}
	if st.Components[0].Weight != 0.75 || st.Components[1].Weight != 0.25 {
		t.Fatalf("unexpected normalized weights: %+v", st.Components)
	}
}

func TestNewStratumRejectsEmptyComponents(t *testing.T) {
	if _, err := NewStratum(NearSurface, nil, 1); !errors.Is(err, fmerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an empty stratum, got %v", err)
	}
}

func TestNewStratumRejectsNegativePlantSep(t *testing.T) {
	_, err := NewStratum(NearSurface, []SpeciesComponent{{Species: testSpecies(t, "a", 2), Weight: 1}}, -1)
	if !errors.Is(err, fmerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative plant separation, got %v", err)
	}
}

func TestModelPlantSepUsesWiderOfSepOrCrown(t *testing.T) {
	st, err := NewStratum(NearSurface, []SpeciesComponent{{Species: testSpecies(t, "a", 10), Weight: 1}}, 1)
	if err != nil {
		t.Fatalf("NewStratum: %v", err)
	}
	if st.ModelPlantSep() != st.AverageWidth() {
		t.Fatalf("expected ModelPlantSep to fall back to the average crown width when it exceeds plant separation")
	}
}
