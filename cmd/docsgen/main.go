package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/flamepath/internal/settings"
	"github.com/appengine-ltd/flamepath/internal/species"
	"github.com/appengine-ltd/flamepath/internal/stratumlevel"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference", "catalogs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateParametersDoc(),
		generateSettingsDoc(),
		generateStratumLevelsDoc(),
		generateLeafFormsDoc(),
		generateOverlapTypesDoc(),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Parameter Reference\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

type paramEntry struct {
	Key         string
	Scope       string
	Description string
}

func parameterCatalog() []paramEntry {
	return []paramEntry{
		{"name", "species", "the species' display name"},
		{"composition", "species", `stratum assignment, "<level>" or "<level> <weight>"`},
		{"hc", "species", "crown profile height: base of the crown at its centre"},
		{"he", "species", "crown profile height: base of the crown at its widest point"},
		{"ht", "species", "crown profile height: top of the crown at its widest point"},
		{"hp", "species", "crown profile height: peak (top of the crown at its centre)"},
		{"w", "species", "crown width at its widest point"},
		{"live leaf moisture", "species", "live leaf moisture content, as a fraction"},
		{"dead leaf moisture", "species", "dead leaf moisture content, as a fraction"},
		{"proportion dead", "species", "proportion of the canopy's leaves that are dead"},
		{"leaf form", "species", "round, flat, or dendritic"},
		{"leaf thickness", "species", "leaf thickness in metres"},
		{"leaf width", "species", "leaf width in metres"},
		{"leaf length", "species", "leaf length in metres"},
		{"leaf separation", "species", "mean separation between leaves"},
		{"stem order", "species", "mean branching order supporting the leaves"},
		{"clump diameter", "species", "diameter of one foliage clump"},
		{"clump separation", "species", "mean separation between foliage clumps"},
		{"ignition temperature", "species", "explicit ignition temperature, if known"},
		{"silica free ash fraction", "species", "silica-free ash fraction, used to derive ignition temperature when unknown"},
		{"plant separation", "stratum", "mean separation between plants within a stratum, one value per stratum"},
		{"overlapping", "vegetation", `"lower, upper, kind" overlap override between two stratum levels`},
		{"incident wind speed", "surface", "open-air wind speed in km/h"},
		{"slope", "surface", "ground slope in radians"},
		{"mean fuel diameter", "surface", "mean surface fuel particle diameter"},
		{"mean fineness leaves", "surface", "mean surface litter fineness"},
		{"fuel load tonnes per hectare", "surface", "surface fuel load"},
		{"surface dead fuel moisture content", "surface", "surface dead fuel moisture, as a fraction"},
		{"air temperature", "surface", "ambient air temperature"},
		{"fireline length", "site", "length of the fire line"},
	}
}

func generateParametersDoc() docFile {
	items := parameterCatalog()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Scope != items[j].Scope {
			return items[i].Scope < items[j].Scope
		}
		return items[i].Key < items[j].Key
	})

	var b strings.Builder
	b.WriteString("# Parameters\n\n")
	b.WriteString("Source: `internal/factory` (`BuildSite`, `buildSpecies`, `buildSurface`).\n\n")
	b.WriteString(fmt.Sprintf("Total recognized keys: **%d**. Keys are matched case- and\n", len(items)))
	b.WriteString("punctuation-insensitively, and corrected against the nearest known key\n")
	b.WriteString("when no exact match exists (see `internal/paramfile`).\n\n")
	b.WriteString("| Key | Scope | Description |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, p := range items {
		b.WriteString("| ")
		b.WriteString(escape(p.Key))
		b.WriteString(" | ")
		b.WriteString(escape(p.Scope))
		b.WriteString(" | ")
		b.WriteString(escape(p.Description))
		b.WriteString(" |\n")
	}

	return docFile{Name: "parameters.md", Title: "Parameters", Content: b.String()}
}

func generateSettingsDoc() docFile {
	s := settings.DefaultSettings

	var b strings.Builder
	b.WriteString("# Model Settings\n\n")
	b.WriteString("Source: `internal/settings` (`DefaultSettings`).\n\n")
	b.WriteString("| Setting | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(settingRow("computation time interval", s.ComputationTimeInterval.String()))
	b.WriteString(settingRow("penetration steps", strconv.Itoa(s.NumPenetrationSteps)))
	b.WriteString(settingRow("max ignition time steps", strconv.Itoa(s.MaxIgnitionTimeSteps)))
	b.WriteString(settingRow("stratum big crown width", formatFloat(s.StratumBigCrownWidth)))
	b.WriteString(settingRow("reduced canopy flame residence time", s.ReducedCanopyFlameResidenceTime.String()))
	b.WriteString(settingRow("grass IDT reduction", formatFloat(s.GrassIDTReduction)))
	b.WriteString(settingRow("grass flame delta temperature", formatFloat(s.GrassFlameDeltaTemperature)))
	b.WriteString(settingRow("main flame delta temperature", formatFloat(s.MainFlameDeltaTemperature)))
	b.WriteString(settingRow("min temp for canopy heating", formatFloat(s.MinTempForCanopyHeating)))

	return docFile{Name: "settings.md", Title: "Model Settings", Content: b.String()}
}

func settingRow(name, value string) string {
	return fmt.Sprintf("| %s | %s |\n", escape(name), escape(value))
}

func generateStratumLevelsDoc() docFile {
	levels := []stratumlevel.StratumLevel{
		stratumlevel.NearSurface, stratumlevel.Elevated,
		stratumlevel.MidStorey, stratumlevel.Canopy,
	}

	var b strings.Builder
	b.WriteString("# Stratum Levels\n\n")
	b.WriteString("Source: `internal/stratumlevel`.\n\n")
	b.WriteString("Levels are totally ordered, lowest to highest.\n\n")
	b.WriteString("| Level | Order |\n")
	b.WriteString("| --- | --- |\n")
	for i, l := range levels {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", escape(l.String()), i))
	}

	return docFile{Name: "stratum-levels.md", Title: "Stratum Levels", Content: b.String()}
}

func generateLeafFormsDoc() docFile {
	forms := []species.LeafForm{species.Round, species.Flat, species.Dendritic}

	var b strings.Builder
	b.WriteString("# Leaf Forms\n\n")
	b.WriteString("Source: `internal/species/leaf.go`.\n\n")
	b.WriteString("| Form |\n")
	b.WriteString("| --- |\n")
	for _, f := range forms {
		b.WriteString(fmt.Sprintf("| %s |\n", escape(f.String())))
	}

	return docFile{Name: "leaf-forms.md", Title: "Leaf Forms", Content: b.String()}
}

func generateOverlapTypesDoc() docFile {
	types := []species.StratumOverlapType{species.Overlapping, species.NotOverlapping, species.Undefined}

	var b strings.Builder
	b.WriteString("# Stratum Overlap Types\n\n")
	b.WriteString("Source: `internal/species/overlap.go` (`ParseOverlapType`).\n\n")
	b.WriteString("| Name |\n")
	b.WriteString("| --- |\n")
	for _, t := range types {
		b.WriteString(fmt.Sprintf("| %s |\n", escape(t.Name())))
	}

	return docFile{Name: "overlap-types.md", Title: "Stratum Overlap Types", Content: b.String()}
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
