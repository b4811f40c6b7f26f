package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-launchgrid/config"
	"go-launchgrid/grid"
	"go-launchgrid/launchpad"
	"go-launchgrid/theme"
	"go-launchgrid/widgets"
)

const maxHistory = 12

// Model mirrors the controller on screen while a Runner drives it
type Model struct {
	Layout *config.Layout
	Theme  *theme.Theme

	updates <-chan launchpad.Update
	cancel  context.CancelFunc

	snap     launchpad.Snapshot
	history  []string
	frames   int
	sent     int
	failed   int
	stopped  bool
	quitting bool
}

type UpdateMsg launchpad.Update

// StoppedMsg is sent once the runner has returned
type StoppedMsg struct{}

func NewModel(layout *config.Layout, th *theme.Theme, updates <-chan launchpad.Update, cancel context.CancelFunc) Model {
	return Model{
		Layout:  layout,
		Theme:   th,
		updates: updates,
		cancel:  cancel,
		snap:    layout.Dispatcher.Snapshot(),
	}
}

func ListenForUpdates(updates <-chan launchpad.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return StoppedMsg{}
		}
		return UpdateMsg(u)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "c":
			m.history = nil
		}

	case UpdateMsg:
		m.apply(launchpad.Update(msg))
		return m, ListenForUpdates(m.updates)

	case StoppedMsg:
		m.stopped = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(u launchpad.Update) {
	m.snap = u.Snapshot
	m.frames++
	m.sent += len(u.Out)
	m.failed += u.Failed

	var lines []string
	if u.In != nil {
		lines = append(lines, "in  "+u.In.String())
	}
	for _, ev := range u.Out {
		if ev.Port == m.Layout.Dispatcher.ControlOut() && ev.Channel == 1 {
			// LED traffic shows up in the grid
			continue
		}
		lines = append(lines, "out "+ev.String())
	}
	m.history = append(m.history, lines...)
	if over := len(m.history) - maxHistory; over > 0 {
		m.history = m.history[over:]
	}
}

func (m Model) pad(c grid.Color) widgets.Pad {
	return widgets.Pad{Color: m.Theme.LED(c), Lit: theme.IsLit(c)}
}

func (m Model) padGrid() widgets.PadGrid {
	var g widgets.PadGrid
	for x := range m.snap.Ctrl {
		g.Ctrl[x] = m.pad(m.snap.Ctrl[x])
	}
	for y := range m.snap.Page {
		g.Page[y] = m.pad(m.snap.Page[y])
	}
	for y := range m.snap.Matrix {
		for x := range m.snap.Matrix[y] {
			g.Matrix[y][x] = m.pad(m.snap.Matrix[y][x])
		}
	}
	return g
}

func (m Model) legend() string {
	var lines []string
	for i, w := range m.Layout.Windows {
		p := widgets.Pad{Color: m.Theme.Palette.Index(i + 2), Lit: true}
		lines = append(lines, widgets.RenderLegendItem(p, w.Name, fmt.Sprintf("%s %v", w.Type, w.Region.Rect())))
		for _, c := range w.Children {
			lines = append(lines, fmt.Sprintf("      %s %s", c.Name, c.Type))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	stateStyle := lipgloss.NewStyle().Foreground(m.Theme.Active()).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	state := stateStyle.Render("RUN")
	if m.stopped {
		state = warnStyle.Render("STOPPED")
	}
	header := headerStyle.Render("go-launchgrid  ") + state +
		headerStyle.Render(fmt.Sprintf("  frames:%d  sent:%d", m.frames, m.sent))
	if m.failed > 0 {
		header += "  " + warnStyle.Render(fmt.Sprintf("failed:%d", m.failed))
	}

	face := widgets.RenderLaunchpad(m.padGrid())
	side := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("windows"), m.legend())
	body := lipgloss.JoinHorizontal(lipgloss.Top, face, "    ", side)

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "c", Desc: "clear event log"},
			{Key: "q", Desc: "quit"},
		}},
	}))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	for _, line := range m.history {
		out.WriteString(dimStyle.Render(line))
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(help)
	return out.String()
}
