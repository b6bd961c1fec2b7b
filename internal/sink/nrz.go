package sink

import (
	"fmt"
	"image"
	"io"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// DefaultFreq is the WS2812B data rate.
const DefaultFreq = 800 * physic.KiloHertz

// NRZ encodes each frame into the WS2812 NRZ bitstream through nrzled and
// records the SPI traffic to W. No hardware is touched; the recording is
// what the strip would receive.
type NRZ struct {
	W    io.Writer
	Freq physic.Frequency

	mu     sync.Mutex
	drawer display.Drawer
	pixels int
	img    *image.NRGBA
}

func NewNRZ(w io.Writer) *NRZ { return &NRZ{W: w, Freq: DefaultFreq} }

func (n *NRZ) Write(leds []ledcolor.Color) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.drawer == nil || n.pixels != len(leds) {
		if err := n.openLocked(len(leds)); err != nil {
			return err
		}
	}
	for x, c := range leds {
		n.img.SetNRGBA(x, 0, c.NRGBA())
	}
	if err := n.drawer.Draw(n.drawer.Bounds(), n.img, image.Point{}); err != nil {
		return fmt.Errorf("nrz draw: %w", err)
	}
	return nil
}

// openLocked builds a device for count pixels. The strip length is fixed at
// construction, so a resize needs a fresh device.
func (n *NRZ) openLocked(count int) error {
	if n.drawer != nil {
		_ = n.drawer.Halt()
	}
	freq := n.Freq
	if freq == 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(spitest.NewRecordRaw(n.W), &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		n.drawer = nil
		return fmt.Errorf("nrz open %d pixels: %w", count, err)
	}
	n.drawer = d
	n.pixels = count
	n.img = image.NewNRGBA(image.Rect(0, 0, count, 1))
	return nil
}

// Pixels returns the strip length of the current device.
func (n *NRZ) Pixels() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pixels
}

func (n *NRZ) String() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.drawer == nil {
		return "nrz{closed}"
	}
	return n.drawer.String()
}

func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.drawer == nil {
		return nil
	}
	err := n.drawer.Halt()
	n.drawer = nil
	return err
}
