package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/flamepath/internal/orchestrator"
	"github.com/appengine-ltd/flamepath/internal/species"
)

var (
	watchHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	watchDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// runWatch steps through a fire model result one stratum outcome at a
// time, under the user's control, instead of printing the whole report
// at once.
func runWatch(site species.Site, result orchestrator.FireModelResult) error {
	m := newWatchModel(site, result)
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

type watchStep struct {
	title string
	body  string
}

type watchModel struct {
	steps []watchStep
	idx   int
}

func newWatchModel(site species.Site, result orchestrator.FireModelResult) watchModel {
	steps := []watchStep{{title: "Surface", body: fmt.Sprintf("flame length %.3fm, residence %.1fs", site.Surface.FlameLength(), site.Surface.FlameResidenceTime())}}
	steps = append(steps, runSteps("First run", result.FirstRun)...)
	if result.HasSecondRun {
		steps = append(steps, runSteps("Second run", result.SecondRun)...)
	}
	return watchModel{steps: steps}
}

func runSteps(title string, r orchestrator.RunResult) []watchStep {
	steps := make([]watchStep, 0, len(r.Outcomes)+1)
	for _, o := range r.Outcomes {
		status := "no ignition"
		if o.Ignited() {
			status = fmt.Sprintf("%d plant flames, %d stratum flames", len(o.PlantFlames), len(o.StratumFlames))
		}
		steps = append(steps, watchStep{title: fmt.Sprintf("%s: %s", title, o.Level), body: status})
	}
	steps = append(steps, watchStep{title: title + ": combined", body: fmt.Sprintf("%d combined flame steps", len(r.CombinedFlames))})
	return steps
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "down", "j", "right", "l", "enter", " ":
		if m.idx < len(m.steps)-1 {
			m.idx++
		}
	case "up", "k", "left", "h":
		if m.idx > 0 {
			m.idx--
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if len(m.steps) == 0 {
		return "nothing to show\n"
	}
	step := m.steps[m.idx]
	var b strings.Builder
	b.WriteString(watchHeading.Render(step.title) + "\n")
	b.WriteString(step.body + "\n\n")
	b.WriteString(watchDim.Render(fmt.Sprintf("step %d/%d — j/k to move, q to quit", m.idx+1, len(m.steps))))
	return b.String()
}
