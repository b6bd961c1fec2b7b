package pattern

import (
	"math"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// Func is a pattern rule as a plain function.
type Func func(i, n, frame int, rng Rand) ledcolor.Color

// rule adapts a Func into a Pattern.
type rule struct {
	id            ID
	label         string
	deterministic bool
	fn            Func
}

// New wraps fn as a registrable Pattern.
func New(id ID, label string, deterministic bool, fn Func) Pattern {
	return &rule{id: id, label: label, deterministic: deterministic, fn: fn}
}

func (r *rule) ID() ID              { return r.id }
func (r *rule) Label() string       { return r.label }
func (r *rule) Deterministic() bool { return r.deterministic }
func (r *rule) Color(i, n, frame int, rng Rand) ledcolor.Color {
	return r.fn(i, n, frame, rng)
}

func builtins() []Pattern {
	return []Pattern{
		New(Rainbow, "Rainbow", true, rainbow),
		New(Wave, "Wave", true, wave),
		New(Chase, "Chase", true, chase),
		New(Strobe, "Strobe", true, strobe),
		New(Fire, "Fire", false, fire),
		New(Police, "Police", true, police),
		New(Sparkle, "Sparkle", false, sparkle),
		New(Breathing, "Breathing", true, breathing),
	}
}

func rainbow(i, n, frame int, _ Rand) ledcolor.Color {
	hue := math.Mod(float64(i)/float64(n)*360+float64(frame)*2, 360)
	return ledcolor.HSLToRGB(hue, 100, 50)
}

func wave(i, n, frame int, _ Rand) ledcolor.Color {
	w := math.Sin(float64(i)/float64(n)*math.Pi*2+float64(frame)*0.1)*0.5 + 0.5
	return ledcolor.Color{
		R: ledcolor.Channel(w * 255),
		G: ledcolor.Channel((1 - w) * 255),
		B: 128,
	}
}

func chase(i, n, frame int, _ Rand) ledcolor.Color {
	pos := frame % n
	dist := math.Abs(float64(i - pos))
	x := math.Max(0, 1-dist/3)
	return ledcolor.Color{R: ledcolor.Channel(x * 255), G: ledcolor.Channel(x * 100), B: ledcolor.Channel(x * 255)}
}

func strobe(_, _, frame int, _ Rand) ledcolor.Color {
	if (frame/2)%2 == 0 {
		return ledcolor.White
	}
	return ledcolor.Black
}

func fire(_, _, _ int, rng Rand) ledcolor.Color {
	x := rng.Float64()*0.5 + 0.5
	return ledcolor.Color{R: ledcolor.Channel(255 * x), G: ledcolor.Channel(100 * x)}
}

// police keeps red on phase 0 and blue on phase 1, so each half is dark
// while the other is lit.
func police(i, n, frame int, _ Rand) ledcolor.Color {
	half := n / 2
	phase := (frame / 3) % 2
	if i < half {
		if phase == 0 {
			return ledcolor.Red
		}
		return ledcolor.Black
	}
	if phase == 1 {
		return ledcolor.Blue
	}
	return ledcolor.Black
}

var sparkleIdle = ledcolor.Color{B: 20}

func sparkle(_, _, _ int, rng Rand) ledcolor.Color {
	if rng.Float64() > 0.95 {
		return ledcolor.White
	}
	return sparkleIdle
}

func breathing(_, _, frame int, _ Rand) ledcolor.Color {
	b := (math.Sin(float64(frame)*0.1) + 1) / 2
	return ledcolor.Color{R: ledcolor.Channel(b * 100), G: ledcolor.Channel(b * 150), B: ledcolor.Channel(b * 255)}
}
