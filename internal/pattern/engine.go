package pattern

import (
	"math/rand"
	"time"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

const (
	MinBrightness = 10
	MaxBrightness = 100
)

// Engine evaluates registered patterns into LED arrays. It holds no frame
// state of its own; every call recomputes the whole strip.
type Engine struct {
	Reg      *Registry
	Fallback Pattern

	rng Rand
}

// NewEngine returns an Engine over reg drawing randomness from rng.
// A nil reg uses DefaultRegistry; a nil rng is seeded from the clock.
func NewEngine(reg *Registry, rng Rand) *Engine {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		Reg:      reg,
		Fallback: NewSolid("", ledcolor.White),
		rng:      rng,
	}
}

// Resolve returns the pattern for id and whether it was registered.
func (e *Engine) Resolve(id ID) (Pattern, bool) {
	if p, ok := e.Reg.Get(id); ok {
		return p, true
	}
	return e.Fallback, false
}

// ComputeFrame returns a fresh LED array of length ledCount for frame.
// ledCount below 1 is treated as 1, negative frames as 0, and brightness is
// clamped to [MinBrightness, MaxBrightness].
func (e *Engine) ComputeFrame(id ID, ledCount, frame, brightness int) []ledcolor.Color {
	if ledCount < 1 {
		ledCount = 1
	}
	dst := make([]ledcolor.Color, ledCount)
	e.Render(dst, id, frame, brightness)
	return dst
}

// Render fills dst in place; len(dst) is the strip length.
func (e *Engine) Render(dst []ledcolor.Color, id ID, frame, brightness int) {
	n := len(dst)
	if n == 0 {
		return
	}
	if frame < 0 {
		frame = 0
	}
	brightness = ClampBrightness(brightness)
	p, _ := e.Resolve(id)
	for i := range dst {
		dst[i] = ledcolor.ApplyBrightness(p.Color(i, n, frame, e.rng), brightness)
	}
}

func ClampBrightness(pct int) int {
	if pct < MinBrightness {
		return MinBrightness
	}
	if pct > MaxBrightness {
		return MaxBrightness
	}
	return pct
}
