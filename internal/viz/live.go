// Package viz hosts a simulation in the terminal: a bubbletea program drives
// Update and Render once per tick, paints the braille canvas, and lets the
// user edit parameters against their declared ranges.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
)

const (
	canvasCols = 80
	canvasRows = 28
	probeCap   = 240
)

type TickMsg time.Time

type Model struct {
	entry  engine.Entry
	sim    engine.Simulation
	canvas *canvas.Canvas

	params   map[string]float64
	selected int

	probeLog *engine.History

	fps      int
	running  bool
	showHelp bool
	err      error
}

// NewModel binds a fresh simulation instance to a canvas and seeds its
// parameters from the schema defaults plus any initial overrides.
func NewModel(entry engine.Entry, initial map[string]float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	params := entry.Config.Defaults()
	for k, v := range initial {
		params[k] = v
	}
	params = config.Normalize(params, entry.Config.ParamSpecs)

	c := canvas.New(canvasCols, canvasRows)
	sim := entry.New()
	err := sim.Init(c)

	return Model{
		entry:    entry,
		sim:      sim,
		canvas:   c,
		params:   params,
		probeLog: engine.NewHistory(probeCap),
		fps:      fps,
		running:  true,
		err:      err,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sim.Destroy()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.probeLog.Clear()
		case "tab", "down", "j":
			m.cycleParam(1)
		case "shift+tab", "up", "k":
			m.cycleParam(-1)
		case "right", "l", "+", "=":
			m.adjustParam(1)
		case "left", "h", "-", "_":
			m.adjustParam(-1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.sim.Update(1/float64(m.fps), engine.Params(m.params))
			if p, ok := m.sim.(engine.Probe); ok {
				m.probeLog.Push(p.ProbeValue())
			}
		}
		m.sim.Render()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycleParam(dir int) {
	n := len(m.entry.Config.ParamSpecs)
	if n == 0 {
		return
	}
	m.selected = (m.selected + dir + n) % n
}

func (m *Model) adjustParam(dir int) {
	specs := m.entry.Config.ParamSpecs
	if len(specs) == 0 {
		return
	}
	s := specs[m.selected]
	step := s.Step
	if step == 0 {
		step = (s.Max - s.Min) / 20
	}
	m.params[s.Key] = engine.Clamp(m.params[s.Key]+float64(dir)*step, s.Min, s.Max)
	m.params = config.Normalize(m.params, specs)
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("cannot start %s: %v\n", m.entry.Config.Slug, m.err)
	}

	canvasView := canvasStyle.Render(m.canvas.String())

	var stats strings.Builder
	title := m.entry.Config.Name
	if !m.running {
		title += "  " + pausedStyle.Render("PAUSED")
	}
	stats.WriteString(headerStyle.Render(title) + "\n")

	for i, s := range m.entry.Config.ParamSpecs {
		label := s.Label
		if s.Unit != "" {
			label += " (" + s.Unit + ")"
		}
		line := labelStyle.Render(label) + valueStyle.Render(formatValue(m.params[s.Key], s))
		if i == m.selected {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		stats.WriteString(line + "\n")
	}

	if p, ok := m.sim.(engine.Probe); ok && m.probeLog.Len() >= 2 {
		graph := asciigraph.Plot(m.probeLog.Values(),
			asciigraph.Height(6), asciigraph.Width(40),
			asciigraph.Caption(p.ProbeName()))
		stats.WriteString(graphStyle.Render(graph) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(stats.String()))

	out := body + "\n" + descStyle.Render(m.sim.StateDescription())
	if m.showHelp {
		out += "\n" + helpStyle.Render("tab/j/k select param | h/l adjust | space pause | r reset | q quit")
	} else {
		out += "\n" + helpStyle.Render("? help")
	}
	return out
}

func formatValue(v float64, s config.ParamSpec) string {
	if s.Integer {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.3g", v)
}

// Run drives the live view until the user quits.
func Run(entry engine.Entry, initial map[string]float64, fps int) error {
	p := tea.NewProgram(NewModel(entry, initial, fps))
	_, err := p.Run()
	return err
}
