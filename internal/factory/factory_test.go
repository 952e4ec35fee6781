package factory

import (
	"errors"
	"strings"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/paramfile"
	"github.com/appengine-ltd/flamepath/internal/species"
)

const samplePF = `
name = spinifex
composition = near surface
hc = 0
he = 0
ht = 0.4
hp = 0.2
w = 0.3
live leaf moisture = 0.4
dead leaf moisture = 0.1
proportion dead = 0.7
leaf form = round
leaf thickness = 0.0002
leaf width = 0.002
leaf length = 0.3
leaf separation = 0.01
stem order = 1
clump diameter = 0.3
clump separation = 0.2
ignition temperature = 280
plant separation = 0.5

incident wind speed = 18
slope = 0.05
mean fuel diameter = 0.01
mean fineness leaves = 0.002
fuel load tonnes per hectare = 8
surface dead fuel moisture content = 12
air temperature = 22
fireline length = 100
`

func TestBuildSiteFromSampleFile(t *testing.T) {
	pf, err := paramfile.Parse(strings.NewReader(samplePF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	site, err := BuildSite(pf)
	if err != nil {
		t.Fatalf("BuildSite: %v", err)
	}
	if len(site.Vegetation.Strata) != 1 {
		t.Fatalf("expected exactly one stratum, got %d", len(site.Vegetation.Strata))
	}
	st := site.Vegetation.Strata[0]
	if st.Level != species.NearSurface {
		t.Fatalf("expected the near-surface level, got %v", st.Level)
	}
	if len(st.Components) != 1 || st.Components[0].Species.Name != "spinifex" {
		t.Fatalf("expected a single spinifex component, got %+v", st.Components)
	}

	va := paramfile.ValueAssignments{Params: pf}
	length, err := FireLineLength(va)
	if err != nil || length != 100 {
		t.Fatalf("FireLineLength: got %v err=%v", length, err)
	}
}

const twoStratumPF = `
name = spinifex
composition = near surface
hc = 0
he = 0
ht = 0.4
hp = 0.2
w = 0.3
live leaf moisture = 0.4
dead leaf moisture = 0.1
proportion dead = 0.7
leaf form = round
leaf thickness = 0.0002
leaf width = 0.002
leaf length = 0.3
leaf separation = 0.01
stem order = 1
clump diameter = 0.3
clump separation = 0.2
ignition temperature = 280
plant separation = 0.5

name = eucalypt
composition = canopy
hc = 3
he = 3
ht = 6
hp = 4
w = 4
live leaf moisture = 0.9
dead leaf moisture = 0.1
proportion dead = 0.2
leaf form = flat
leaf thickness = 0.0003
leaf width = 0.01
leaf length = 0.08
leaf separation = 0.02
stem order = 3
clump diameter = 0.4
clump separation = 0.15
ignition temperature = 300
plant separation = 2.5

incident wind speed = 18
slope = 0.05
mean fuel diameter = 0.01
mean fineness leaves = 0.002
fuel load tonnes per hectare = 8
surface dead fuel moisture content = 12
air temperature = 22
fireline length = 100
`

func TestBuildSiteAssignsPlantSeparationByFirstAppearanceOrder(t *testing.T) {
	for attempt := 0; attempt < 20; attempt++ {
		pf, err := paramfile.Parse(strings.NewReader(twoStratumPF))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		site, err := BuildSite(pf)
		if err != nil {
			t.Fatalf("BuildSite: %v", err)
		}
		if len(site.Vegetation.Strata) != 2 {
			t.Fatalf("expected two strata, got %d", len(site.Vegetation.Strata))
		}
		nearSurface, ok := site.Vegetation.ByLevel(species.NearSurface)
		if !ok {
			t.Fatalf("expected a near-surface stratum")
		}
		canopy, ok := site.Vegetation.ByLevel(species.Canopy)
		if !ok {
			t.Fatalf("expected a canopy stratum")
		}
		if nearSurface.PlantSep != 0.5 {
			t.Fatalf("attempt %d: expected the near-surface stratum's plant separation to be 0.5, got %v", attempt, nearSurface.PlantSep)
		}
		if canopy.PlantSep != 2.5 {
			t.Fatalf("attempt %d: expected the canopy stratum's plant separation to be 2.5, got %v", attempt, canopy.PlantSep)
		}
	}
}

func TestParseCompositionDefaultsWeightToOne(t *testing.T) {
	level, weight, err := parseComposition("canopy")
	if err != nil {
		t.Fatalf("parseComposition: %v", err)
	}
	if level != species.Canopy || weight != 1 {
		t.Fatalf("parseComposition(\"canopy\")=(%v,%v) want=(Canopy,1)", level, weight)
	}
}

func TestParseCompositionWithExplicitWeight(t *testing.T) {
	level, weight, err := parseComposition("midstorey 2.5")
	if err != nil {
		t.Fatalf("parseComposition: %v", err)
	}
	if level != species.MidStorey || weight != 2.5 {
		t.Fatalf("parseComposition(\"midstorey 2.5\")=(%v,%v) want=(MidStorey,2.5)", level, weight)
	}
}

func TestParseStratumLevelFuzzyCorrectsTypo(t *testing.T) {
	level, err := parseStratumLevel("canopu")
	if err != nil {
		t.Fatalf("parseStratumLevel: %v", err)
	}
	if level != species.Canopy {
		t.Fatalf("expected a one-letter typo to resolve to Canopy, got %v", level)
	}
}

func TestParseLeafFormRejectsUnknown(t *testing.T) {
	if _, err := parseLeafForm("fuzzy"); !errors.Is(err, fmerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an unrecognized leaf form, got %v", err)
	}
}

func TestBuildOverlapsParsesTriples(t *testing.T) {
	pf, err := paramfile.Parse(strings.NewReader("overlapping = near surface, elevated, overlapped"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	overlaps, err := buildOverlaps(pf)
	if err != nil {
		t.Fatalf("buildOverlaps: %v", err)
	}
	key := species.OverlapKey{Lower: species.NearSurface, Upper: species.Elevated}
	if overlaps[key] != species.Overlapping {
		t.Fatalf("expected the parsed triple to record Overlapping, got %+v", overlaps)
	}
}
