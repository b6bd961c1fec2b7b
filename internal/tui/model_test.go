package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ledstudio/internal/clock"
	"github.com/coreman2200/funtimes-ledstudio/internal/config"
	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
)

type noTimer struct{}

func (noTimer) Stop() bool { return true }

type noScheduler struct{}

func (noScheduler) AfterFunc(time.Duration, func()) clock.Timer { return noTimer{} }

func newModel() (Model, *studio.Session) {
	s := studio.New(config.DefaultStrip(), studio.WithScheduler(noScheduler{}))
	return New(s), s
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestSpaceTogglesClock(t *testing.T) {
	m, s := newModel()
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, clock.Running, s.Snapshot().State)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, clock.Idle, s.Snapshot().State)
}

func TestPatternCycling(t *testing.T) {
	m, s := newModel()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "wave", s.Snapshot().Strip.Pattern)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "breathing", s.Snapshot().Strip.Pattern)
	assert.Contains(t, m.View(), "Breathing")
}

func TestSpeedAndBrightnessKeys(t *testing.T) {
	m, s := newModel()
	m = press(t, m, runes("+"))
	assert.Equal(t, 55, s.Snapshot().Strip.Speed)
	m = press(t, m, runes("["))
	assert.Equal(t, 90, s.Snapshot().Strip.Brightness)
	for i := 0; i < 20; i++ {
		m = press(t, m, runes("["))
	}
	assert.Equal(t, 10, s.Snapshot().Strip.Brightness)
}

func TestGenerateShowsStatus(t *testing.T) {
	m, s := newModel()
	m = press(t, m, runes("g"))
	assert.NotEmpty(t, s.Code())
	assert.Contains(t, m.View(), "generated")
}

func TestQuit(t *testing.T) {
	m, _ := newModel()
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestViewShowsStrip(t *testing.T) {
	m, _ := newModel()
	v := m.View()
	assert.Contains(t, v, "Rainbow")
	assert.Contains(t, v, "frame 0")
	assert.Equal(t, 20, strings.Count(v, Cell))
}

func TestSwatchesWrap(t *testing.T) {
	out := Swatches(make([]ledcolor.Color, 5), 2)
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Equal(t, 5, strings.Count(out, Cell))
	assert.Equal(t, "#ff0000 #000000", HexList([]ledcolor.Color{ledcolor.Red, ledcolor.Black}))
}
