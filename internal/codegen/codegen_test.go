package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

const strobeFirmware = `#include <FastLED.h>

#define LED_PIN     6
#define NUM_LEDS    20
#define BRIGHTNESS  255 // 100%
#define LED_TYPE    WS2812B
#define COLOR_ORDER GRB

CRGB leds[NUM_LEDS];

void setup() {
  FastLED.addLeds<LED_TYPE, LED_PIN, COLOR_ORDER>(leds, NUM_LEDS);
  FastLED.setBrightness(BRIGHTNESS);
}

void loop() {
  strobePattern();
  FastLED.show();
  delay(50);
}

void strobePattern() {
  static uint32_t frame = 0;
  frame++;

  bool on = (frame / 2) % 2 == 0;
  fill_solid(leds, NUM_LEDS, on ? CRGB::White : CRGB::Black);
}

// Helper functions are provided by FastLED library
// sin8(), random8(), scale8(), fill_solid(), etc.
`

func TestGenerateStrobeGolden(t *testing.T) {
	assert.Equal(t, strobeFirmware, Generate(pattern.Strobe, 20, 100, 50))
}

func TestGenerateIsPure(t *testing.T) {
	for _, id := range append(pattern.Builtin, "unknown") {
		a := Generate(id, 37, 64, 12)
		b := Generate(id, 37, 64, 12)
		assert.Equal(t, a, b, "%s output must be byte-identical", id)
	}
}

func TestEveryEnginePatternHasSnippet(t *testing.T) {
	for _, id := range pattern.DefaultRegistry().List() {
		require.True(t, Default.Supported(id), "pattern %s has no firmware snippet", id)
		src := Generate(id, 10, 100, 50)
		assert.Contains(t, src, "void "+string(id)+"Pattern() {")
		assert.Contains(t, src, "  "+string(id)+"Pattern();")
		assert.NotContains(t, src, "CRGB::White);\n}", "%s must not use the solid fallback", id)
	}
	assert.ElementsMatch(t, pattern.Builtin, Default.Patterns())
}

func TestUnknownPatternFillsWhite(t *testing.T) {
	src := Generate("lava lamp", 10, 100, 50)
	assert.Contains(t, src, "void solidPattern() {")
	assert.Contains(t, src, "fill_solid(leds, NUM_LEDS, CRGB::White);")
	assert.False(t, Default.Supported("lava lamp"))
	assert.Equal(t, solidSnippet, Default.Snippet("lava lamp"))
}

func TestPreambleClampsAndScales(t *testing.T) {
	src := Generate(pattern.Rainbow, 0, 50, 100)
	assert.Contains(t, src, "#define NUM_LEDS    1\n")
	assert.Contains(t, src, "#define BRIGHTNESS  128 // 50%\n")
	assert.Contains(t, src, "delay(1);")

	src = Generate(pattern.Rainbow, 64, 3, -20)
	assert.Contains(t, src, "#define BRIGHTNESS  26 // 10%\n")
	assert.Contains(t, src, "delay(100);")
}

func TestSnippetsKeepPreviewRules(t *testing.T) {
	police := Default.Snippet(pattern.Police)
	assert.Contains(t, police, "(frame / 3) % 2")
	assert.Contains(t, police, "phase == 0 ? CRGB::Red : CRGB::Black")
	assert.Contains(t, police, "phase == 1 ? CRGB::Blue : CRGB::Black")
	assert.Contains(t, police, "NUM_LEDS - half")

	assert.Contains(t, Default.Snippet(pattern.Strobe), "(frame / 2) % 2 == 0")
	assert.Contains(t, Default.Snippet(pattern.Chase), "frame % NUM_LEDS")
	assert.Contains(t, Default.Snippet(pattern.Fire), "random8(128, 255)")
	assert.Contains(t, Default.Snippet(pattern.Sparkle), "CRGB(0, 0, 20)")
}

func TestCustomWiringAndExtraSnippets(t *testing.T) {
	g := Generator{
		Pin:        2,
		LEDType:    "SK6812",
		ColorOrder: "RGB",
		Extra: map[pattern.ID]string{
			"amber-glow": "  fill_solid(leds, NUM_LEDS, CRGB(255, 191, 0));",
		},
	}
	src := g.Generate("amber-glow", 8, 100, 0)
	assert.Contains(t, src, "#define LED_PIN     2\n")
	assert.Contains(t, src, "#define LED_TYPE    SK6812\n")
	assert.Contains(t, src, "#define COLOR_ORDER RGB\n")
	assert.Contains(t, src, "void amber_glowPattern() {")
	assert.True(t, g.Supported("amber-glow"))
	assert.Len(t, g.Patterns(), len(pattern.Builtin)+1)
	assert.True(t, strings.HasPrefix(src, "#include <FastLED.h>\n"))
}

func TestRoutineNamesAreCIdentifiers(t *testing.T) {
	cases := map[pattern.ID]string{
		"rainbow":    "rainbow",
		"amber-glow": "amber_glow",
		"3d":         "p_3d",
		"9 lives!":   "p_9_lives_",
		"":           "p_",
	}
	for id, want := range cases {
		assert.Equal(t, want, identifier(id), "id %q", id)
	}

	g := Generator{Pin: 6, LEDType: "WS2812B", ColorOrder: "GRB", Extra: map[pattern.ID]string{
		"3d": "  fill_solid(leds, NUM_LEDS, CRGB::Blue);",
	}}
	src := g.Generate("3d", 4, 100, 50)
	assert.Contains(t, src, "  p_3dPattern();\n")
	assert.Contains(t, src, "void p_3dPattern() {")
	assert.NotContains(t, src, " 3dPattern")
}
