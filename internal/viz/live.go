// Package viz is the live terminal dashboard: it drives the scheduler
// from the bubbletea frame tick and renders parameters, results,
// validity indicators and a voltage history graph. It consumes engine
// snapshots only; all model math stays in internal/physics.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/elverum/plasmalab/internal/metrics"
	"github.com/elverum/plasmalab/internal/physics"
	"github.com/elverum/plasmalab/internal/sim"
)

const (
	historyCapacity = 240
	graphHeight     = 8
	graphWidth      = 70
)

type TickMsg time.Time

// Model holds the dashboard state around a scheduler it owns for the
// session. The scheduler's own timers keep running between frames; the
// dashboard only reads snapshots and forwards key commands.
type Model struct {
	sched     *sim.Scheduler
	frameRate int

	paramKeys []string
	selected  int

	voltHistory []float64
	showHelp    bool
}

// NewModel wraps a scheduler in a dashboard.
func NewModel(sched *sim.Scheduler, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	keys := make([]string, 0, len(physics.Ranges))
	for name := range physics.Ranges {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	return Model{
		sched:       sched,
		frameRate:   frameRate,
		paramKeys:   keys,
		voltHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sched.CancelLunarCycle()
			return m, tea.Quit
		case " ":
			m.sched.Toggle()
		case "r":
			m.sched.Reset()
			m.voltHistory = m.voltHistory[:0]
		case "l":
			m.sched.RunLunarCycle()
		case "tab", "down", "j":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "shift+tab", "up", "k":
			m.selected = (m.selected + len(m.paramKeys) - 1) % len(m.paramKeys)
		case "right", "+", "=":
			m.adjustParam(1)
		case "left", "-", "_":
			m.adjustParam(-1)
		case "?", "h":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.sched.Tick() {
			m.voltHistory = append(m.voltHistory, m.sched.Results().OutputVoltage)
			if len(m.voltHistory) > historyCapacity {
				m.voltHistory = m.voltHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// adjustParam nudges the selected parameter by a fraction of its range.
func (m *Model) adjustParam(dir float64) {
	name := m.paramKeys[m.selected]
	r := physics.Ranges[name]
	step := (r.Max - r.Min) / 50
	v := m.sched.Params().Params()[name] + dir*step
	// paramKeys are the Ranges keys, so the name is always known.
	_ = m.sched.SetParam(name, v)
}

func (m Model) View() string {
	params := m.sched.Params()
	results := m.sched.Results()
	clock := m.sched.Clock()

	var s strings.Builder
	s.WriteString(headerStyle.Render("PLASMALAB") + "\n")

	status := strings.ToUpper(m.sched.State().String())
	if m.sched.SweepActive() {
		status += " · LUNAR SWEEP"
	}
	s.WriteString(statusStyle.Render(status))
	s.WriteString(fmt.Sprintf("  tick %d · step %d · recomputes %d\n\n",
		clock.Tick, clock.Step, m.sched.Recomputes()))

	left := m.paramPanel(params)
	right := m.resultPanel(params, results)
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	s.WriteString("\n")

	if len(m.voltHistory) > 1 {
		graph := asciigraph.Plot(m.voltHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("output voltage (V)"))
		s.WriteString("\n" + graphStyle.Render(graph) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"space start/pause · r reset · l lunar cycle · tab/↑↓ select · ←→ adjust · q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help"))
	}
	s.WriteString("\n")
	return s.String()
}

func (m Model) paramPanel(params physics.Parameters) string {
	values := params.Params()
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("parameters") + "\n")
	for i, name := range m.paramKeys {
		line := fmt.Sprintf("%-20s %11.4g", name, values[name])
		if i == m.selected {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = valueStyle.Render("  " + line)
		}
		sb.WriteString(line + "\n")
	}
	return panelStyle.Render(sb.String())
}

func (m Model) resultPanel(params physics.Parameters, r physics.Results) string {
	ind := metrics.Check(r, params.InputVoltage)
	flag := func(ok bool, label string) string {
		if ok {
			return passStyle.Render("● " + label)
		}
		return failStyle.Render("○ " + label)
	}

	var sb strings.Builder
	sb.WriteString(labelStyle.Render("results") + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g V", "output voltage", r.OutputVoltage)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g x", "compression", r.FieldCompression)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g A", "current", r.Current)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g", "plasma beta", r.PlasmaBeta)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g um", "debye length", r.DebyeLength)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g GHz", "plasma freq", r.PlasmaFrequency)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g N", "z-pinch force", r.ZPinchForce)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g G", "emergent gravity", r.EmergentGravity)) + "\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-20s %11.4g", "lunar alignment", r.LunarAlignment)) + "\n")
	sb.WriteString("\n")
	sb.WriteString(flag(ind.Amplifying, "amplifying") + "  " + flag(ind.Compressed, "compressed") + "\n")
	sb.WriteString(flag(ind.Confined, "confined") + "  " + flag(ind.Pinching, "pinching") + "  " + flag(ind.Gravity, "gravity") + "\n")
	return panelStyle.Render(sb.String())
}

// Run starts the dashboard and blocks until the user quits.
func Run(sched *sim.Scheduler, frameRate int) error {
	p := tea.NewProgram(NewModel(sched, frameRate))
	_, err := p.Run()
	return err
}
