// Package report renders a fire model result as styled terminal text:
// per-stratum flame length, angle, and height; surface parameters;
// ignition paths with their segments and pre-ignition tables; and a
// "Second run" section when the model performed one.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/ignition"
	"github.com/appengine-ltd/flamepath/internal/orchestrator"
	"github.com/appengine-ltd/flamepath/internal/species"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	sub     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
	label   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	value   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	good    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Render produces the full styled report for a fire model result.
func Render(site species.Site, result orchestrator.FireModelResult) string {
	var b strings.Builder

	b.WriteString(heading.Render("Surface") + "\n")
	b.WriteString(surfaceSection(site.Surface))
	b.WriteString("\n")

	b.WriteString(runSection("First run", result.FirstRun))
	if result.HasSecondRun {
		b.WriteString("\n")
		b.WriteString(runSection("Second run", result.SecondRun))
	}
	return b.String()
}

func surfaceSection(sp species.SurfaceParams) string {
	return field("flame length", "%.3f m", sp.FlameLength()) +
		field("flame residence time", "%.1f s", sp.FlameResidenceTime()) +
		field("delta temperature", "%.1f C", sp.DeltaTemperature()) +
		field("slope", "%.3f rad", sp.Slope)
}

func runSection(title string, r orchestrator.RunResult) string {
	var b strings.Builder
	b.WriteString(heading.Render(title) + "\n")
	for _, o := range r.Outcomes {
		b.WriteString(stratumSection(o))
	}
	b.WriteString(field("combined flames", "%d steps", len(r.CombinedFlames)))
	return b.String()
}

func stratumSection(o orchestrator.StratumOutcome) string {
	var b strings.Builder
	b.WriteString(sub.Render(fmt.Sprintf("  %s", o.Level)) + "\n")
	if !o.Ignited() {
		b.WriteString("    " + warn.Render("no ignition") + "\n")
		return b.String()
	}
	b.WriteString(flameSeriesBlock("    plant flames", o.PlantFlames))
	b.WriteString(flameSeriesBlock("    stratum flames", o.StratumFlames))
	if o.Connected {
		b.WriteString("    " + good.Render("connected to canopy") + "\n")
	}
	b.WriteString(ignitionPathsBlock("    plant paths", o.PlantPaths))
	b.WriteString(ignitionPathsBlock("    stratum paths", o.StratumPaths))
	return b.String()
}

func flameSeriesBlock(name string, flames []flame.Flame) string {
	if len(flames) == 0 {
		return ""
	}
	longest := flames[0]
	for _, f := range flames[1:] {
		if f.Length > longest.Length {
			longest = f
		}
	}
	return fmt.Sprintf("%s: %s (longest %s, angle %s, height %s)\n",
		label.Render(name),
		value.Render(fmt.Sprintf("%d steps", len(flames))),
		value.Render(fmt.Sprintf("%.3fm", longest.Length)),
		value.Render(fmt.Sprintf("%.3frad", longest.Angle)),
		value.Render(fmt.Sprintf("%.3fm", longest.Origin.Y)),
	)
}

func ignitionPathsBlock(name string, paths []ignition.IgnitionPath) string {
	var b strings.Builder
	for _, p := range paths {
		if !p.HasIgnition() {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s: %s, %s\n",
			label.Render(name), value.Render(p.Species.Name),
			value.Render(fmt.Sprintf("%d segments", len(p.Segments))),
			value.Render(fmt.Sprintf("%d pre-ignition samples", len(p.PreIgnitionData))),
		))
	}
	return b.String()
}

func field(name, format string, args ...interface{}) string {
	return fmt.Sprintf("  %s: %s\n", label.Render(name), value.Render(fmt.Sprintf(format, args...)))
}
