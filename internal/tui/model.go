// Package tui is the terminal preview used by the play command.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coreman2200/funtimes-ledstudio/internal/clock"
	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
)

// Session is what the preview drives.
type Session interface {
	SetPattern(id pattern.ID)
	SetSpeed(pct int)
	SetBrightness(pct int)
	Start()
	Stop()
	Reset()
	GenerateCode() string
	LEDs() []ledcolor.Color
	Snapshot() studio.Snapshot
	Patterns() []studio.PatternInfo
}

// RefreshInterval is how often the view polls the session.
const RefreshInterval = 33 * time.Millisecond

type refreshMsg time.Time

func refreshCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

// Model is the Bubbletea model for the live preview.
type Model struct {
	sess     Session
	patterns []studio.PatternInfo
	snap     studio.Snapshot
	leds     []ledcolor.Color
	width    int
	status   string
	quitting bool
}

func New(s Session) Model {
	return Model{
		sess:     s,
		patterns: s.Patterns(),
		snap:     s.Snapshot(),
		leds:     s.LEDs(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(), tea.SetWindowTitle("ledstudio"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.sess.Stop()
			return m, tea.Quit
		case " ":
			if m.snap.State == clock.Running {
				m.sess.Stop()
			} else {
				m.sess.Start()
			}
		case "r":
			m.sess.Reset()
		case "left", "h":
			m.sess.SetPattern(m.cycle(-1))
		case "right", "l":
			m.sess.SetPattern(m.cycle(1))
		case "up", "k", "+":
			m.sess.SetSpeed(m.snap.Strip.Speed + 5)
		case "down", "j", "-":
			m.sess.SetSpeed(m.snap.Strip.Speed - 5)
		case "]":
			m.sess.SetBrightness(m.snap.Strip.Brightness + 10)
		case "[":
			m.sess.SetBrightness(m.snap.Strip.Brightness - 10)
		case "g":
			code := m.sess.GenerateCode()
			m.status = fmt.Sprintf("generated %d lines of firmware", strings.Count(code, "\n"))
		}
		m.sync()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshMsg:
		m.sync()
		return m, refreshCmd()
	}
	return m, nil
}

func (m *Model) sync() {
	m.snap = m.sess.Snapshot()
	m.leds = m.sess.LEDs()
}

// cycle returns the pattern step positions away from the current one.
func (m Model) cycle(step int) pattern.ID {
	n := len(m.patterns)
	if n == 0 {
		return pattern.ID(m.snap.Strip.Pattern)
	}
	cur := -1
	for i, p := range m.patterns {
		if string(p.ID) == m.snap.Strip.Pattern {
			cur = i
			break
		}
	}
	if cur < 0 {
		return m.patterns[0].ID
	}
	return m.patterns[((cur+step)%n+n)%n].ID
}

func (m Model) label() string {
	for _, p := range m.patterns {
		if string(p.ID) == m.snap.Strip.Pattern {
			return p.Label
		}
	}
	return m.snap.Strip.Pattern + " (solid)"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	perRow := 0
	if m.width > 4 {
		perRow = m.width - 4
	}
	st := m.snap.Strip

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.label()))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s  frame %d", m.snap.State, m.snap.Frame)))
	b.WriteString("\n")
	b.WriteString(stripStyle.Render(Swatches(m.leds, perRow)))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("leds %d  speed %d%% (%s)  brightness %d%%",
		st.LEDCount, st.Speed, m.snap.Interval, st.Brightness)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space play/pause  r reset  ←/→ pattern  +/- speed  [/] brightness  g code  q quit"))
	return b.String()
}
