// Package tui provides a live terminal monitor for a running simulation:
// temperature history graph plus an instantaneous stats pane.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/langevin/internal/analysis"
	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/sim"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
)

type TickMsg time.Time

// Model steps the simulation a batch per tick and renders temperature
// history alongside live observables.
type Model struct {
	sim          *sim.Simulation
	steps        int
	stepsPerTick int
	step         int
	paused       bool
	done         bool
	history      []float64
	width        int
	err          error
}

// NewModel wraps a freshly constructed simulation for live viewing.
// stepsPerTick trades animation smoothness against simulated time per frame.
func NewModel(s *sim.Simulation, steps, stepsPerTick int) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		sim:          s,
		steps:        steps,
		stepsPerTick: stepsPerTick,
		history:      make([]float64, 0, historyCapacity),
		width:        80,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.paused || m.done {
			return m, tick()
		}
		for i := 0; i < m.stepsPerTick && m.step < m.steps; i++ {
			if err := m.sim.Step(); err != nil {
				m.err = err
				m.done = true
				return m, tea.Quit
			}
			m.step++
		}
		temp := analysis.Temperature(m.sim.Masses(), m.sim.Velocities())
		m.history = append(m.history, temp)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		if m.step >= m.steps {
			m.done = true
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	cfg := m.sim.Config()
	b.WriteString(headerStyle.Render("langevin dynamics"))
	b.WriteString("\n")

	if len(m.history) > 1 {
		w := m.width - 12
		if w > historyCapacity {
			w = historyCapacity
		}
		if w < 20 {
			w = 20
		}
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(10),
			asciigraph.Width(w),
			asciigraph.Caption("temperature (K)"))
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	temp := 0.0
	if len(m.history) > 0 {
		temp = m.history[len(m.history)-1]
	}
	ke := analysis.KineticEnergy(m.sim.Masses(), m.sim.Velocities())
	p := analysis.TotalMomentum(m.sim.Masses(), m.sim.Velocities())
	pNorm := 0.0
	for _, v := range p {
		pNorm += v * v
	}
	pNorm = math.Sqrt(pNorm)

	rows := []struct{ label, value string }{
		{"step", fmt.Sprintf("%d / %d", m.step, m.steps)},
		{"time", fmt.Sprintf("%.3f ps", float64(m.step)*cfg.Dt/md.Picosecond)},
		{"temperature", fmt.Sprintf("%.2f K", temp)},
		{"target", fmt.Sprintf("%.2f K", cfg.Temperature)},
		{"kinetic energy", fmt.Sprintf("%.4e J", ke)},
		{"|momentum|", fmt.Sprintf("%.4e kg m/s", pNorm)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(doneStyle.Render(fmt.Sprintf("failed: %v", m.err)))
	case m.done:
		b.WriteString(doneStyle.Render("complete"))
	case m.paused:
		b.WriteString(helpStyle.Render("paused — space resume, q quit"))
	default:
		b.WriteString(helpStyle.Render("space pause, q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// Run blocks until the viewer exits and reports any simulation error.
func Run(s *sim.Simulation, steps, stepsPerTick int) error {
	m := NewModel(s, steps, stepsPerTick)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
