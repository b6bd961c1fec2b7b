package sink

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// Sim keeps the last frame in memory and logs a compact summary of each one,
// useful for headless runs and tests.
type Sim struct {
	Log zerolog.Logger

	mu    sync.Mutex
	count int
	last  []ledcolor.Color
}

func NewSim(log zerolog.Logger) *Sim { return &Sim{Log: log} }

func (s *Sim) Write(leds []ledcolor.Color) error {
	s.mu.Lock()
	s.count++
	s.last = append(s.last[:0], leds...)
	n := s.count
	s.mu.Unlock()

	var r, g, b float64
	for _, c := range leds {
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	d := float64(len(leds))
	if d == 0 {
		d = 1
	}
	ev := s.Log.Debug().Int("frame", n).Int("leds", len(leds)).
		Floats64("avg", []float64{r / d, g / d, b / d})
	if len(leds) > 0 {
		ev = ev.Str("first", leds[0].Hex())
	}
	ev.Msg("sim frame")
	return nil
}

func (s *Sim) Close() error { return nil }

// Count returns how many frames were written.
func (s *Sim) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Last returns a copy of the most recent frame.
func (s *Sim) Last() []ledcolor.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledcolor.Color(nil), s.last...)
}
