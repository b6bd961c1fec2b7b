package codegen

import "github.com/coreman2200/funtimes-ledstudio/internal/pattern"

// Each snippet is the body of <name>Pattern(), indented for the function
// scope. frame is a uint32_t incremented before the body runs, matching the
// preview clock where the first tick renders frame 1.
//
// Fixed-point conversions used below:
//   - 360 degrees of hue is 256 CHSV units, so 2 deg/frame is frame*512/360.
//   - sin8 takes 256 units per period, so 0.1 rad/frame is ~frame*41/10.
//   - sin8 returns 128 at 0, matching sin(x)*0.5+0.5 scaled to a byte.
var snippets = map[pattern.ID]string{
	pattern.Rainbow: `  for (int i = 0; i < NUM_LEDS; i++) {
    uint8_t hue = (uint32_t)i * 256 / NUM_LEDS + frame * 512 / 360;
    leds[i] = CHSV(hue, 255, 255);
  }`,

	pattern.Wave: `  for (int i = 0; i < NUM_LEDS; i++) {
    uint8_t theta = (uint32_t)i * 256 / NUM_LEDS + frame * 41 / 10;
    uint8_t value = sin8(theta);
    leds[i] = CRGB(value, 255 - value, 128);
  }`,

	pattern.Chase: `  int pos = frame % NUM_LEDS;
  for (int i = 0; i < NUM_LEDS; i++) {
    int dist = abs(i - pos);
    uint8_t level = dist < 3 ? 255 - dist * 85 : 0;
    leds[i] = CRGB(level, scale8(level, 100), level);
  }`,

	pattern.Strobe: `  bool on = (frame / 2) % 2 == 0;
  fill_solid(leds, NUM_LEDS, on ? CRGB::White : CRGB::Black);`,

	pattern.Fire: `  for (int i = 0; i < NUM_LEDS; i++) {
    uint8_t heat = random8(128, 255);
    leds[i] = CRGB(heat, scale8(heat, 100), 0);
  }`,

	pattern.Police: `  int half = NUM_LEDS / 2;
  uint8_t phase = (frame / 3) % 2;
  fill_solid(leds, half, phase == 0 ? CRGB::Red : CRGB::Black);
  fill_solid(leds + half, NUM_LEDS - half, phase == 1 ? CRGB::Blue : CRGB::Black);`,

	pattern.Sparkle: `  for (int i = 0; i < NUM_LEDS; i++) {
    leds[i] = random8() < 13 ? CRGB(255, 255, 255) : CRGB(0, 0, 20);
  }`,

	pattern.Breathing: `  uint8_t breath = sin8(frame * 41 / 10);
  fill_solid(leds, NUM_LEDS, CRGB(scale8(breath, 100), scale8(breath, 150), breath));`,
}

const solidSnippet = `  fill_solid(leds, NUM_LEDS, CRGB::White);`

// solidRoutine names the routine emitted for unsupported IDs.
const solidRoutine = "solid"
