package wind

import (
	"testing"

	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/species"
)

func testSpecies(t *testing.T, width float64) species.Species {
	t.Helper()
	crown, err := geom.NewCrownPoly(2, 2, 6, 4, width)
	if err != nil {
		t.Fatalf("NewCrownPoly: %v", err)
	}
	ignitionTemp := 300.0
	sp, err := species.NewSpecies(species.SpeciesParams{
		Name:                "a",
		Crown:               crown,
		LiveLeafMoisture:    0.5,
		LeafForm:            species.Round,
		LeafThickness:       0.0003,
		LeafWidth:           0.01,
		LeafLength:          0.02,
		StemOrder:           2,
		ClumpDiameter:       0.3,
		ClumpSeparation:     0.1,
		IgnitionTemperature: &ignitionTemp,
	})
	if err != nil {
		t.Fatalf("NewSpecies: %v", err)
	}
	return sp
}

func testVegetation(t *testing.T) species.Vegetation {
	t.Helper()
	near, err := species.NewStratum(species.NearSurface, []species.SpeciesComponent{{Species: testSpecies(t, 2), Weight: 1}}, 1)
	if err != nil {
		t.Fatalf("NewStratum: %v", err)
	}
	canopy, err := species.NewStratum(species.Canopy, []species.SpeciesComponent{{Species: testSpecies(t, 6), Weight: 1}}, 2)
	if err != nil {
		t.Fatalf("NewStratum: %v", err)
	}
	veg, err := species.NewVegetation([]species.Stratum{near, canopy}, nil)
	if err != nil {
		t.Fatalf("NewVegetation: %v", err)
	}
	return veg
}

func TestSpeedAtIsAttenuatedByOverheadFoliage(t *testing.T) {
	veg := testVegetation(t)
	atGround := SpeedAt(veg, 10, 0, true)
	atTop := SpeedAt(veg, 10, 100, true)
	if atGround >= atTop {
		t.Fatalf("expected wind at ground level (under both strata) to be slower than wind above the canopy: ground=%v top=%v", atGround, atTop)
	}
	if atTop > 10 {
		t.Fatalf("expected wind speed never to exceed the reference speed, got %v", atTop)
	}
}

func TestSpeedAtExcludesCanopyWhenRequested(t *testing.T) {
	veg := testVegetation(t)
	withCanopy := SpeedAt(veg, 10, 0, true)
	withoutCanopy := SpeedAt(veg, 10, 0, false)
	if withoutCanopy <= withCanopy {
		t.Fatalf("expected excluding the canopy's leaf-area-index to raise wind speed at ground level: with=%v without=%v", withCanopy, withoutCanopy)
	}
}
