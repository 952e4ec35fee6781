package species

import (
	"errors"
	"math"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
)

func testStratum(t *testing.T, level StratumLevel, width float64) Stratum {
	t.Helper()
	st, err := NewStratum(level, []SpeciesComponent{{Species: testSpecies(t, "a", width), Weight: 1}}, 1)
	if err != nil {
		t.Fatalf("NewStratum(%s): %v", level, err)
	}
	return st
}

func TestNewVegetationSortsAndRejectsDuplicates(t *testing.T) {
	strata := []Stratum{testStratum(t, Canopy, 4), testStratum(t, NearSurface, 2)}
	veg, err := NewVegetation(strata, nil)
	if err != nil {
		t.Fatalf("NewVegetation: %v", err)
	}
	if veg.Strata[0].Level != NearSurface || veg.Strata[1].Level != Canopy {
		t.Fatalf("expected strata sorted ascending by level, got %+v", veg.Strata)
	}

	dup := []Stratum{testStratum(t, NearSurface, 2), testStratum(t, NearSurface, 3)}
	if _, err := NewVegetation(dup, nil); !errors.Is(err, fmerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate stratum levels, got %v", err)
	}
}

func TestVegetationOverlapExplicitOverridesGeometry(t *testing.T) {
	lower := testStratum(t, NearSurface, 2)
	upper := testStratum(t, Elevated, 2)
	overlaps := map[OverlapKey]StratumOverlapType{
		{Lower: NearSurface, Upper: Elevated}: Overlapping,
	}
	veg, err := NewVegetation([]Stratum{lower, upper}, overlaps)
	if err != nil {
		t.Fatalf("NewVegetation: %v", err)
	}
	if !veg.Overlap(lower, upper) {
		t.Fatalf("expected an explicit Overlapping override to report true regardless of geometry")
	}
}

func TestVegetationOverlapFallsBackToGeometry(t *testing.T) {
	lower := testStratum(t, NearSurface, 2)
	upper := testStratum(t, Elevated, 2)
	veg, err := NewVegetation([]Stratum{lower, upper}, nil)
	if err != nil {
		t.Fatalf("NewVegetation: %v", err)
	}
	got := veg.Overlap(lower, upper)
	want := lower.AverageTop() >= upper.AverageBottom() && upper.AverageTop() >= lower.AverageBottom()
	if got != want {
		t.Fatalf("expected geometric overlap fallback to match height-range intersection: got %v want %v", got, want)
	}
}

func TestSurfaceParamsValidateRejectsNegatives(t *testing.T) {
	sp := SurfaceParams{MeanFuelDiameter: -1}
	if err := sp.Validate(); !errors.Is(err, fmerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a negative fuel diameter, got %v", err)
	}
}

func TestSurfaceParamsFlameSeriesLength(t *testing.T) {
	sp := SurfaceParams{MeanFuelDiameter: 0.02, FuelLoadTPerHa: 10, DeadFuelMoisture: 15, WindSpeed: 2}
	series := sp.FlameSeries(1)
	wantSteps := int(math.Ceil(sp.FlameResidenceTime()))
	if len(series) != wantSteps {
		t.Fatalf("expected %d flame steps across the residence time, got %d", wantSteps, len(series))
	}
	for _, f := range series {
		if f.Length != sp.FlameLength() {
			t.Fatalf("expected every surface flame in the series to share the same length")
		}
	}
}
