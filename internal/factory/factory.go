// Package factory builds the fire model's domain types — species,
// strata, and the site as a whole — from a parsed parameter file.
package factory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/flamepath/internal/fmerr"
	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/paramfile"
	"github.com/appengine-ltd/flamepath/internal/species"
)

// BuildSite constructs a full species.Site from a parameter file: one
// species per entry in the "name" list, grouped into strata by each
// species' "composition" assignment, plus the site's surface
// parameters and any explicit overlap relations.
func BuildSite(pf paramfile.ParamFile) (species.Site, error) {
	va := paramfile.ValueAssignments{Params: pf}

	names, _ := pf.All("name")
	byLevel := map[species.StratumLevel][]species.SpeciesComponent{}
	var levelOrder []species.StratumLevel
	seenLevel := map[species.StratumLevel]bool{}
	for i := range names {
		sp, level, weight, err := buildSpecies(pf, i)
		if err != nil {
			return species.Site{}, err
		}
		byLevel[level] = append(byLevel[level], species.SpeciesComponent{Species: sp, Weight: weight})
		if !seenLevel[level] {
			seenLevel[level] = true
			levelOrder = append(levelOrder, level)
		}
	}

	plantSeps, _ := pf.All("plant separation")
	strata := make([]species.Stratum, 0, len(levelOrder))
	for i, level := range levelOrder {
		sep := 0.0
		if i < len(plantSeps) {
			sep, _ = strconv.ParseFloat(strings.TrimSpace(plantSeps[i]), 64)
		}
		st, err := species.NewStratum(level, byLevel[level], sep)
		if err != nil {
			return species.Site{}, err
		}
		strata = append(strata, st)
	}

	overlaps, err := buildOverlaps(pf)
	if err != nil {
		return species.Site{}, err
	}
	veg, err := species.NewVegetation(strata, overlaps)
	if err != nil {
		return species.Site{}, err
	}

	surface, err := buildSurface(va)
	if err != nil {
		return species.Site{}, err
	}

	return species.Site{Vegetation: veg, Surface: surface}, nil
}

func buildSpecies(pf paramfile.ParamFile, i int) (species.Species, species.StratumLevel, float64, error) {
	name := at(pf, "name", i)
	compLevel, weight, err := parseComposition(at(pf, "composition", i))
	if err != nil {
		return species.Species{}, 0, 0, fmt.Errorf("species %q: %w", name, err)
	}

	crown, err := geom.NewCrownPoly(
		atFloat(pf, "hc", i), atFloat(pf, "he", i),
		atFloat(pf, "ht", i), atFloat(pf, "hp", i),
		atFloat(pf, "w", i),
	)
	if err != nil {
		return species.Species{}, 0, 0, err
	}

	leafForm, err := parseLeafForm(at(pf, "leaf form", i))
	if err != nil {
		return species.Species{}, 0, 0, err
	}

	p := species.SpeciesParams{
		Name:             name,
		Crown:            crown,
		LiveLeafMoisture: atFloat(pf, "live leaf moisture", i),
		DeadLeafMoisture: atFloat(pf, "dead leaf moisture", i),
		PropDead:         atFloat(pf, "proportion dead", i),
		LeafForm:         leafForm,
		LeafThickness:    atFloat(pf, "leaf thickness", i),
		LeafWidth:        atFloat(pf, "leaf width", i),
		LeafLength:       atFloat(pf, "leaf length", i),
		LeafSeparation:   atFloat(pf, "leaf separation", i),
		StemOrder:        atFloat(pf, "stem order", i),
		ClumpDiameter:    atFloat(pf, "clump diameter", i),
		ClumpSeparation:  atFloat(pf, "clump separation", i),
	}
	if raw := at(pf, "ignition temperature", i); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return species.Species{}, 0, 0, fmt.Errorf("species %q: invalid ignition temperature %q: %w", name, raw, fmerr.ErrInvalidInput)
		}
		p.IgnitionTemperature = &v
	} else if raw := at(pf, "silica free ash fraction", i); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return species.Species{}, 0, 0, fmt.Errorf("species %q: invalid silica-free-ash fraction %q: %w", name, raw, fmerr.ErrInvalidInput)
		}
		p.SilicaFreeAshFraction = &v
	}

	sp, err := species.NewSpecies(p)
	return sp, compLevel, weight, err
}

// parseComposition parses a species' stratum assignment, of the form
// "<level>" or "<level> <weight>"; a missing weight defaults to 1 and
// is normalized later by species.NewStratum.
func parseComposition(raw string) (species.StratumLevel, float64, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("composition must name a stratum level: %w", fmerr.ErrInvalidInput)
	}
	weight := 1.0
	if len(fields) > 1 {
		if v, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
			weight = v
			fields = fields[:len(fields)-1]
		}
	}
	level, err := parseStratumLevel(strings.Join(fields, " "))
	if err != nil {
		return 0, 0, err
	}
	return level, weight, nil
}

var stratumLevelNames = map[string]species.StratumLevel{
	"near surface": species.NearSurface,
	"elevated":     species.Elevated,
	"midstorey":    species.MidStorey,
	"canopy":       species.Canopy,
}

const fuzzyLevelMatchDistance = 2

func parseStratumLevel(raw string) (species.StratumLevel, error) {
	norm := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if level, ok := stratumLevelNames[norm]; ok {
		return level, nil
	}
	best := ""
	bestDist := fuzzyLevelMatchDistance + 1
	for name := range stratumLevelNames {
		d := levenshtein.ComputeDistance(norm, name)
		if d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}
	if bestDist > fuzzyLevelMatchDistance {
		return 0, fmt.Errorf("unrecognized stratum level %q: %w", raw, fmerr.ErrInvalidInput)
	}
	return stratumLevelNames[best], nil
}

func parseLeafForm(raw string) (species.LeafForm, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "round":
		return species.Round, nil
	case "flat":
		return species.Flat, nil
	case "dendritic":
		return species.Dendritic, nil
	default:
		return 0, fmt.Errorf("unrecognized leaf form %q: %w", raw, fmerr.ErrInvalidInput)
	}
}

func buildOverlaps(pf paramfile.ParamFile) (map[species.OverlapKey]species.StratumOverlapType, error) {
	raws, _ := pf.All("overlapping")
	out := map[species.OverlapKey]species.StratumOverlapType{}
	for _, raw := range raws {
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("overlapping %q: expected \"lower, upper, kind\": %w", raw, fmerr.ErrInvalidInput)
		}
		lower, err := parseStratumLevel(parts[0])
		if err != nil {
			return nil, err
		}
		upper, err := parseStratumLevel(parts[1])
		if err != nil {
			return nil, err
		}
		kind, err := species.ParseOverlapType(parts[2])
		if err != nil {
			return nil, err
		}
		out[species.OverlapKey{Lower: lower, Upper: upper}] = kind
	}
	return out, nil
}

func buildSurface(va paramfile.ValueAssignments) (species.SurfaceParams, error) {
	windKmh, err := lookupFloat(va, "incident wind speed")
	if err != nil {
		return species.SurfaceParams{}, err
	}
	slope, err := lookupFloat(va, "slope")
	if err != nil {
		return species.SurfaceParams{}, err
	}
	meanFuelDiameter, err := lookupFloat(va, "mean fuel diameter")
	if err != nil {
		return species.SurfaceParams{}, err
	}
	meanFineness, err := lookupFloat(va, "mean fineness leaves")
	if err != nil {
		return species.SurfaceParams{}, err
	}
	fuelLoad, err := lookupFloat(va, "fuel load tonnes per hectare")
	if err != nil {
		return species.SurfaceParams{}, err
	}
	deadFuelMoisture, err := lookupFloat(va, "surface dead fuel moisture content")
	if err != nil {
		return species.SurfaceParams{}, err
	}
	airTemp, err := lookupFloat(va, "air temperature")
	if err != nil {
		return species.SurfaceParams{}, err
	}

	sp := species.SurfaceParams{
		Slope:              slope,
		MeanFuelDiameter:   meanFuelDiameter,
		MeanFinenessLeaves: meanFineness,
		FuelLoadTPerHa:     fuelLoad,
		DeadFuelMoisture:   deadFuelMoisture,
		AirTemperature:     airTemp,
		WindSpeed:          windKmh / 3.6,
	}
	return sp, sp.Validate()
}

// FireLineLength returns the site's fire-line length parameter.
func FireLineLength(va paramfile.ValueAssignments) (float64, error) {
	return lookupFloat(va, "fireline length")
}

func lookupFloat(va paramfile.ValueAssignments, key string) (float64, error) {
	raw, err := va.Lookup(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", key, raw, fmerr.ErrInvalidInput)
	}
	return v, nil
}

func at(pf paramfile.ParamFile, key string, i int) string {
	vs, ok := pf.All(key)
	if !ok || i >= len(vs) {
		return ""
	}
	return vs[i]
}

func atFloat(pf paramfile.ParamFile, key string, i int) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(at(pf, key, i)), 64)
	return v
}
