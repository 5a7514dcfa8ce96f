package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/averdu/dragfall/internal/fall"
	"github.com/averdu/dragfall/internal/symbolic"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

type TickMsg time.Time

// LiveModel animates one falling body approaching its terminal velocity.
// The curve is analytic, so parameter nudges take effect instantly on the
// remainder of the fall.
type LiveModel struct {
	ev       symbolic.Evaluator
	params   fall.Params
	initial  fall.Params
	t, dt    float64
	history  []float64
	running  bool
	showHelp bool
	selected int
}

var paramKeys = []string{"mass", "drag", "gravity", "v0"}

func NewLive(ev symbolic.Evaluator, params fall.Params, dt float64) LiveModel {
	return LiveModel{
		ev:      ev,
		params:  params,
		initial: params,
		dt:      dt,
		history: make([]float64, 0, historyCapacity),
		running: true,
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.params = m.initial
			m.t = 0
			m.history = m.history[:0]
		case "tab":
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *LiveModel) adjustParam(factor float64) {
	switch paramKeys[m.selected] {
	case "mass":
		m.params.Mass *= factor
	case "drag":
		m.params.Drag *= factor
	case "gravity":
		m.params.Gravity *= factor
	case "v0":
		if m.params.V0 == 0 {
			m.params.V0 = 1e-3
		}
		m.params.V0 *= factor
	}
}

func (m *LiveModel) step() {
	m.t += m.dt
	v := m.ev([]float64{m.t}, m.params.Mass, m.params.Drag, m.params.Gravity, m.params.V0)
	m.history = append(m.history, v[0])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m LiveModel) View() string {
	header := headerStyle.Render("falling body with linear drag")

	graph := "waiting for samples..."
	if len(m.history) > 1 {
		graph = asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("v(t) (m/s)"),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(graph), m.statsPanel())

	out := header + "\n" + body
	if m.showHelp {
		out += "\n" + helpStyle.Render("space pause  r reset  tab select param  up/down adjust  q quit")
	} else {
		out += "\n" + helpStyle.Render("? help  q quit")
	}
	return out
}

func (m LiveModel) statsPanel() string {
	terminal := m.params.Terminal()
	current := m.params.V0
	if len(m.history) > 0 {
		current = m.history[len(m.history)-1]
	}
	relGap := math.Abs(terminal-current) / terminal

	var b strings.Builder
	row := func(label, value string, active bool) {
		style := valueStyle
		if active {
			style = activeStyle
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	row("t", fmt.Sprintf("%.2f s", m.t), false)
	row("v(t)", fmt.Sprintf("%.3f m/s", current), false)
	row("v_T", fmt.Sprintf("%.3f m/s", terminal), false)
	row("gap to v_T", fmt.Sprintf("%.3e", relGap), false)
	b.WriteString("\n")
	row("mass", fmt.Sprintf("%.4g kg", m.params.Mass), paramKeys[m.selected] == "mass")
	row("drag", fmt.Sprintf("%.4g kg/s", m.params.Drag), paramKeys[m.selected] == "drag")
	row("gravity", fmt.Sprintf("%.4g m/s^2", m.params.Gravity), paramKeys[m.selected] == "gravity")
	row("v0", fmt.Sprintf("%.4g m/s", m.params.V0), paramKeys[m.selected] == "v0")

	if !m.running {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("paused"))
	}

	return statsStyle.Render(b.String())
}
