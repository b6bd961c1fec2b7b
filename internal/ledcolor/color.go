package ledcolor

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Byte offsets of the packed 0x00GGRRBB form, the order WS2812 parts latch.
const (
	GREEN_OFFSET uint8 = 0x10
	RED_OFFSET   uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// Color is one LED's 8-bit RGB intensity.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
	Red   = Color{R: 255}
	Blue  = Color{B: 255}
)

// New clamps each channel into [0,255].
func New(r, g, b int) Color {
	return Color{R: clamp8(float64(r)), G: clamp8(float64(g)), B: clamp8(float64(b))}
}

// FromUnit builds a Color from channel intensities in [0,1], rounding each
// channel the same way HSLToRGB does.
func FromUnit(r, g, b float64) Color {
	return Color{R: round8(r * 255), G: round8(g * 255), B: round8(b * 255)}
}

// HSLToRGB converts hue in degrees, saturation and lightness in percent.
func HSLToRGB(h, s, l float64) Color {
	s /= 100
	l /= 100
	k := func(n float64) float64 { return math.Mod(n+h/30, 12) }
	a := s * math.Min(l, 1-l)
	f := func(n float64) float64 {
		kn := k(n)
		return l - a*math.Max(-1, math.Min(kn-3, math.Min(9-kn, 1)))
	}
	return Color{
		R: round8(255 * f(0)),
		G: round8(255 * f(8)),
		B: round8(255 * f(4)),
	}
}

// ApplyBrightness scales every channel by pct/100.
func ApplyBrightness(c Color, pct int) Color {
	factor := float64(pct) / 100
	return Color{
		R: round8(float64(c.R) * factor),
		G: round8(float64(c.G) * factor),
		B: round8(float64(c.B) * factor),
	}
}

func (c Color) Packed() uint32 {
	return uint32(c.G)<<GREEN_OFFSET | uint32(c.R)<<RED_OFFSET | uint32(c.B)<<BLUE_OFFSET
}

func FromPacked(v uint32) Color {
	return Color{
		R: getcolor(v, RED_OFFSET),
		G: getcolor(v, GREEN_OFFSET),
		B: getcolor(v, BLUE_OFFSET),
	}
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the "#rrggbb" form used by the swatch views.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// AppendRGB appends the raw r,g,b bytes of every color to buf.
func AppendRGB(buf []byte, cs ...Color) []byte {
	for _, c := range cs {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}

// Channel rounds an already-scaled channel value into a byte.
func Channel(v float64) uint8 { return round8(v) }

// round8 rounds half away from zero and clamps to a channel byte.
func round8(v float64) uint8 {
	return clamp8(math.Round(v))
}

func clamp8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
