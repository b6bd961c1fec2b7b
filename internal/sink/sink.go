// Package sink delivers computed frames to an output.
package sink

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstudio/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstudio/internal/events"
	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// Sink abstracts an LED output.
type Sink interface {
	// Write pushes one frame. The slice is only valid during the call.
	Write(leds []ledcolor.Color) error
	// Close releases resources.
	Close() error
}

// Attach feeds every FrameEvent on bus into s. Write failures are logged and
// reported as diagnostics. The returned function detaches s.
func Attach(bus *events.Bus, name string, s Sink, log zerolog.Logger) func() {
	return bus.Subscribe(func(e events.FrameEvent) {
		if err := s.Write(e.LEDs); err != nil {
			log.Warn().Err(err).Str("sink", name).Int("frame", e.Frame).Msg("sink write")
			bus.Publish(events.DiagnosticEvent{Diagnostic: diagnostics.SinkWriteFailed(name, err)})
		}
	})
}
