// Package codegen renders FastLED firmware that replays a pattern on real
// hardware. Output is a pure function of its arguments.
package codegen

import (
	"sort"
	"strings"
	"text/template"

	"github.com/coreman2200/funtimes-ledstudio/internal/clock"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

var firmware = template.Must(template.New("firmware").Parse(`#include <FastLED.h>

#define LED_PIN     {{.Pin}}
#define NUM_LEDS    {{.LEDCount}}
#define BRIGHTNESS  {{.Brightness}} // {{.BrightnessPct}}%
#define LED_TYPE    {{.LEDType}}
#define COLOR_ORDER {{.ColorOrder}}

CRGB leds[NUM_LEDS];

void setup() {
  FastLED.addLeds<LED_TYPE, LED_PIN, COLOR_ORDER>(leds, NUM_LEDS);
  FastLED.setBrightness(BRIGHTNESS);
}

void loop() {
  {{.Routine}}Pattern();
  FastLED.show();
  delay({{.DelayMS}});
}

void {{.Routine}}Pattern() {
  static uint32_t frame = 0;
  frame++;

{{.Body}}
}

// Helper functions are provided by FastLED library
// sin8(), random8(), scale8(), fill_solid(), etc.
`))

// Generator carries the hardware wiring written into the preamble.
type Generator struct {
	Pin        int
	LEDType    string
	ColorOrder string

	// Extra holds snippets for patterns registered outside the builtin set.
	Extra map[pattern.ID]string
}

// Default matches a WS2812B strip on pin 6.
var Default = Generator{Pin: 6, LEDType: "WS2812B", ColorOrder: "GRB"}

type firmwareData struct {
	Pin           int
	LEDCount      int
	Brightness    int
	BrightnessPct int
	LEDType       string
	ColorOrder    string
	Routine       string
	DelayMS       int64
	Body          string
}

// Generate renders firmware with the Default wiring.
func Generate(id pattern.ID, ledCount, brightness, speed int) string {
	return Default.Generate(id, ledCount, brightness, speed)
}

// Generate renders the firmware source for id. LED count, brightness and
// speed are clamped the same way the preview engine and clock clamp them.
func (g Generator) Generate(id pattern.ID, ledCount, brightness, speed int) string {
	if ledCount < 1 {
		ledCount = 1
	}
	pct := pattern.ClampBrightness(brightness)
	routine, body := g.lookup(id)

	d := firmwareData{
		Pin:           g.Pin,
		LEDCount:      ledCount,
		Brightness:    (pct*255 + 50) / 100,
		BrightnessPct: pct,
		LEDType:       g.LEDType,
		ColorOrder:    g.ColorOrder,
		Routine:       routine,
		DelayMS:       clock.Interval(speed).Milliseconds(),
		Body:          body,
	}
	var b strings.Builder
	// strings.Builder never returns a write error and the data is fixed.
	_ = firmware.Execute(&b, d)
	return b.String()
}

// Supported reports whether id has a dedicated snippet.
func (g Generator) Supported(id pattern.ID) bool {
	if _, ok := g.Extra[id]; ok {
		return true
	}
	_, ok := snippets[id]
	return ok
}

// Snippet returns the routine body for id, or the solid white body.
func (g Generator) Snippet(id pattern.ID) string {
	_, body := g.lookup(id)
	return body
}

// Patterns lists every ID with a snippet, sorted.
func (g Generator) Patterns() []pattern.ID {
	out := make([]pattern.ID, 0, len(snippets)+len(g.Extra))
	for id := range snippets {
		out = append(out, id)
	}
	for id := range g.Extra {
		if _, ok := snippets[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (g Generator) lookup(id pattern.ID) (routine, body string) {
	if s, ok := g.Extra[id]; ok {
		return identifier(id), s
	}
	if s, ok := snippets[id]; ok {
		return identifier(id), s
	}
	return solidRoutine, solidSnippet
}

// identifier maps an ID onto a C identifier fragment. C identifiers cannot
// start with a digit, so those get a "p_" prefix.
func identifier(id pattern.ID) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, string(id))
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "p_" + name
	}
	return name
}
