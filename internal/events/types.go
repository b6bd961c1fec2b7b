package events

import (
	"github.com/coreman2200/funtimes-ledstudio/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

// Event type constants for kelindar/event.
const (
	TypeFrame uint32 = iota + 1
	TypeState
	TypeCode
	TypeDiagnostic
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// FrameEvent carries a freshly computed LED array. LEDs is owned by the
// event and must not be modified by subscribers.
type FrameEvent struct {
	Frame      int              `json:"frame"`
	Pattern    pattern.ID       `json:"pattern"`
	Brightness int              `json:"brightness"`
	LEDs       []ledcolor.Color `json:"leds"`
}

func (e FrameEvent) Type() uint32 { return TypeFrame }

// StateEvent is published when the clock state or any strip setting changes.
type StateEvent struct {
	State      string     `json:"state"`
	Frame      int        `json:"frame"`
	Pattern    pattern.ID `json:"pattern"`
	LEDCount   int        `json:"led_count"`
	Speed      int        `json:"speed"`
	Brightness int        `json:"brightness"`
}

func (e StateEvent) Type() uint32 { return TypeState }

// CodeEvent carries newly generated firmware source.
type CodeEvent struct {
	Pattern pattern.ID `json:"pattern"`
	Source  string     `json:"source"`
}

func (e CodeEvent) Type() uint32 { return TypeCode }

// DiagnosticEvent reports a condition surfaced on /diag.
type DiagnosticEvent struct {
	diagnostics.Diagnostic
}

func (e DiagnosticEvent) Type() uint32 { return TypeDiagnostic }
