package pattern

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// fakeRand returns the same value on every draw.
type fakeRand struct{ v float64 }

func (f fakeRand) Float64() float64 { return f.v }

func allOf(t *testing.T, leds []ledcolor.Color, want ledcolor.Color) {
	t.Helper()
	for i, c := range leds {
		if c != want {
			t.Fatalf("led %d: expected %#v, got %#v", i, want, c)
		}
	}
}

func TestDeterministicPatternsRepeat(t *testing.T) {
	e := NewEngine(nil, fakeRand{0.3})
	for _, id := range e.Reg.List() {
		p, _ := e.Reg.Get(id)
		if !p.Deterministic() {
			continue
		}
		for _, n := range []int{1, 4, 17, 100} {
			for _, frame := range []int{0, 1, 7, 250} {
				a := e.ComputeFrame(id, n, frame, 60)
				b := e.ComputeFrame(id, n, frame, 60)
				if !reflect.DeepEqual(a, b) {
					t.Fatalf("%s n=%d frame=%d: frames differ", id, n, frame)
				}
				if len(a) != n {
					t.Fatalf("%s: expected %d leds, got %d", id, n, len(a))
				}
			}
		}
	}
}

func TestRainbowFirstLEDAtFrameZero(t *testing.T) {
	e := NewEngine(nil, nil)
	got := e.ComputeFrame(Rainbow, 4, 0, 100)[0]
	if want := ledcolor.HSLToRGB(0, 100, 50); got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
	// i=1 of 4 sits a quarter turn round the wheel
	if got, want := e.ComputeFrame(Rainbow, 4, 0, 100)[1], ledcolor.HSLToRGB(90, 100, 50); got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestStrobeParity(t *testing.T) {
	e := NewEngine(nil, nil)
	for _, n := range []int{1, 5, 20} {
		allOf(t, e.ComputeFrame(Strobe, n, 0, 100), ledcolor.White)
		allOf(t, e.ComputeFrame(Strobe, n, 1, 100), ledcolor.White)
		allOf(t, e.ComputeFrame(Strobe, n, 2, 100), ledcolor.Black)
		allOf(t, e.ComputeFrame(Strobe, n, 3, 100), ledcolor.Black)
		allOf(t, e.ComputeFrame(Strobe, n, 4, 100), ledcolor.White)
	}
}

func TestPolicePhases(t *testing.T) {
	e := NewEngine(nil, nil)
	for frame := 0; frame < 3; frame++ {
		leds := e.ComputeFrame(Police, 10, frame, 100)
		if leds[3] != ledcolor.Red {
			t.Fatalf("frame %d: expected red at 3, got %#v", frame, leds[3])
		}
		if leds[7] != ledcolor.Black {
			t.Fatalf("frame %d: expected black at 7, got %#v", frame, leds[7])
		}
	}
	for frame := 3; frame < 6; frame++ {
		leds := e.ComputeFrame(Police, 10, frame, 100)
		if leds[3] != ledcolor.Black {
			t.Fatalf("frame %d: expected black at 3, got %#v", frame, leds[3])
		}
		if leds[7] != ledcolor.Blue {
			t.Fatalf("frame %d: expected blue at 7, got %#v", frame, leds[7])
		}
	}
}

func TestChaseFalloff(t *testing.T) {
	e := NewEngine(nil, nil)
	leds := e.ComputeFrame(Chase, 10, 12, 100)
	want := map[int]ledcolor.Color{
		2: {R: 255, G: 100, B: 255},
		1: {R: 170, G: 67, B: 170},
		3: {R: 170, G: 67, B: 170},
		4: {R: 85, G: 33, B: 85},
		5: ledcolor.Black,
		9: ledcolor.Black,
	}
	for i, c := range want {
		if leds[i] != c {
			t.Fatalf("led %d: expected %#v, got %#v", i, c, leds[i])
		}
	}
}

func TestBreathingAndWaveMidpoint(t *testing.T) {
	e := NewEngine(nil, nil)
	allOf(t, e.ComputeFrame(Breathing, 6, 0, 100), ledcolor.Color{R: 50, G: 75, B: 128})
	if got := e.ComputeFrame(Wave, 8, 0, 100)[0]; got != (ledcolor.Color{R: 128, G: 128, B: 128}) {
		t.Fatalf("expected mid grey at wave origin, got %#v", got)
	}
}

func TestRandomPatternsUseInjectedSource(t *testing.T) {
	e := NewEngine(nil, fakeRand{0})
	allOf(t, e.ComputeFrame(Fire, 5, 3, 100), ledcolor.Color{R: 128, G: 50})
	allOf(t, e.ComputeFrame(Sparkle, 5, 3, 100), ledcolor.Color{B: 20})

	e = NewEngine(nil, fakeRand{0.96})
	allOf(t, e.ComputeFrame(Sparkle, 5, 3, 100), ledcolor.White)

	a := NewEngine(nil, rand.New(rand.NewSource(7))).ComputeFrame(Fire, 30, 0, 100)
	b := NewEngine(nil, rand.New(rand.NewSource(7))).ComputeFrame(Fire, 30, 0, 100)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected equal fire frames for equal seeds")
	}
	for i, c := range a {
		if c.R < 128 || c.B != 0 {
			t.Fatalf("led %d outside fire range: %#v", i, c)
		}
	}
}

func TestUnknownFallsBackToWhite(t *testing.T) {
	e := NewEngine(nil, nil)
	allOf(t, e.ComputeFrame("lava-lamp", 3, 9, 100), ledcolor.White)
	allOf(t, e.ComputeFrame("", 3, 9, 50), ledcolor.Color{R: 128, G: 128, B: 128})
	if _, ok := e.Resolve("lava-lamp"); ok {
		t.Fatalf("expected unknown id to be unresolved")
	}
}

func TestInputsAreClamped(t *testing.T) {
	e := NewEngine(nil, nil)
	if got := len(e.ComputeFrame(Rainbow, 0, 0, 100)); got != 1 {
		t.Fatalf("expected 1 led for zero count, got %d", got)
	}
	allOf(t, e.ComputeFrame(Strobe, 4, 0, 0), ledcolor.Color{R: 26, G: 26, B: 26})
	allOf(t, e.ComputeFrame(Strobe, 4, -5, 400), ledcolor.White)
}

func TestSingleLEDIsWellDefined(t *testing.T) {
	e := NewEngine(nil, fakeRand{0.5})
	for _, id := range e.Reg.List() {
		for frame := 0; frame < 8; frame++ {
			if leds := e.ComputeFrame(id, 1, frame, 100); len(leds) != 1 {
				t.Fatalf("%s: expected one led", id)
			}
		}
	}
	if got := e.ComputeFrame(Chase, 1, 5, 100)[0]; got != (ledcolor.Color{R: 255, G: 100, B: 255}) {
		t.Fatalf("single led chase should always be lit, got %#v", got)
	}
}

func TestRegistryListAndExtend(t *testing.T) {
	reg := DefaultRegistry()
	if got := reg.List(); !reflect.DeepEqual(got, Builtin) {
		t.Fatalf("unexpected catalogue order: %v", got)
	}
	reg.Register(New("amber", "Amber", true, func(_, _, _ int, _ Rand) ledcolor.Color {
		return ledcolor.Color{R: 255, G: 191}
	}))
	reg.Register(nil)
	list := reg.List()
	if list[len(list)-1] != "amber" {
		t.Fatalf("expected extension last, got %v", list)
	}
	e := NewEngine(reg, nil)
	allOf(t, e.ComputeFrame("amber", 2, 0, 100), ledcolor.Color{R: 255, G: 191})
	if Parse("  Rainbow ") != Rainbow {
		t.Fatalf("expected parse to normalise case and space")
	}
}
