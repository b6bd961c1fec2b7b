// Package studio owns one editing session: strip settings, the animation
// clock, the live LED array and the last generated firmware.
package studio

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstudio/internal/clock"
	"github.com/coreman2200/funtimes-ledstudio/internal/codegen"
	"github.com/coreman2200/funtimes-ledstudio/internal/config"
	"github.com/coreman2200/funtimes-ledstudio/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstudio/internal/events"
	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
	"github.com/coreman2200/funtimes-ledstudio/internal/metrics"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/prompt"
)

// Snapshot is a consistent view of the session.
type Snapshot struct {
	Strip    config.Strip  `json:"strip"`
	State    clock.State   `json:"state"`
	Frame    int           `json:"frame"`
	Interval time.Duration `json:"interval_ns"`
}

// PatternInfo describes one registered pattern for listings.
type PatternInfo struct {
	ID            pattern.ID `json:"id"`
	Label         string     `json:"label"`
	Deterministic bool       `json:"deterministic"`
	Firmware      bool       `json:"firmware"`
}

type Session struct {
	log zerolog.Logger
	bus *events.Bus
	met *metrics.Metrics
	eng *pattern.Engine
	clk *clock.Clock

	// mu guards everything below. Never call into clk while holding it: the
	// clock runs its frame hook synchronously on Reset.
	mu    sync.Mutex
	strip config.Strip
	gen   codegen.Generator
	leds  []ledcolor.Color
	code  string
}

// New builds an Idle session at frame 0 with the LED array already computed.
func New(strip config.Strip, opts ...Option) *Session {
	o := options{log: zerolog.Nop(), gen: codegen.Default}
	for _, opt := range opts {
		opt(&o)
	}
	strip = strip.Normalize()

	s := &Session{
		log:   o.log,
		bus:   o.bus,
		met:   o.met,
		eng:   pattern.NewEngine(o.reg, o.rng),
		strip: strip,
		gen:   o.gen,
	}
	clockOpts := []clock.Option{
		clock.WithSpeed(strip.Speed),
		clock.WithLogger(o.log.With().Str("component", "clock").Logger()),
	}
	if o.sched != nil {
		clockOpts = append(clockOpts, clock.WithScheduler(o.sched))
	}
	s.clk = clock.New(clock.Hooks{
		Frame:        s.onFrame,
		StateChanged: s.onState,
		Interval:     s.met.SetInterval,
	}, clockOpts...)

	s.met.SetLEDCount(strip.LEDCount)
	s.met.SetInterval(clock.Interval(strip.Speed))
	s.recompute(0)
	return s
}

func (s *Session) onFrame(frame int) {
	if frame > 0 {
		s.met.Tick()
	}
	s.recompute(frame)
}

func (s *Session) onState(st clock.State) {
	s.met.SetRunning(st == clock.Running)
	s.log.Info().Str("state", string(st)).Int("frame", s.clk.Frame()).Msg("clock state")
	s.publishState()
}

// recompute evaluates the whole strip for frame and publishes it.
func (s *Session) recompute(frame int) {
	s.mu.Lock()
	id := pattern.ID(s.strip.Pattern)
	bright := s.strip.Brightness
	if len(s.leds) != s.strip.LEDCount {
		s.leds = make([]ledcolor.Color, s.strip.LEDCount)
	}
	start := time.Now()
	s.eng.Render(s.leds, id, frame, bright)
	took := time.Since(start)
	out := append([]ledcolor.Color(nil), s.leds...)
	s.mu.Unlock()

	s.met.ObserveFrame(id, took)
	s.publish(events.FrameEvent{Frame: frame, Pattern: id, Brightness: bright, LEDs: out})
}

func (s *Session) running() bool { return s.clk.State() == clock.Running }

// SetLEDCount changes the strip length. The whole array is recomputed at the
// current frame whether or not the clock is running.
func (s *Session) SetLEDCount(n int) {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.strip.LEDCount = n
	s.mu.Unlock()

	s.met.SetLEDCount(n)
	s.log.Debug().Int("leds", n).Msg("led count")
	s.recompute(s.clk.Frame())
	s.publishState()
}

// SetPattern selects id. Unknown ids are accepted and render solid white.
func (s *Session) SetPattern(id pattern.ID) {
	id = pattern.Parse(string(id))
	s.mu.Lock()
	s.strip.Pattern = string(id)
	s.mu.Unlock()

	if _, ok := s.eng.Resolve(id); !ok {
		s.log.Warn().Str("pattern", string(id)).Msg("unknown pattern, using solid white")
		s.publish(events.DiagnosticEvent{Diagnostic: diagnostics.UnknownPattern(string(id), s.knownIDs())})
	} else {
		s.log.Debug().Str("pattern", string(id)).Msg("pattern")
	}
	if s.running() {
		s.recompute(s.clk.Frame())
	}
	s.publishState()
}

// SetSpeed changes the tick cadence; a running clock picks it up on the
// next tick.
func (s *Session) SetSpeed(pct int) {
	pct = clock.ClampSpeed(pct)
	s.mu.Lock()
	s.strip.Speed = pct
	s.mu.Unlock()

	s.clk.SetSpeed(pct)
	s.met.SetInterval(clock.Interval(pct))
	s.publishState()
}

func (s *Session) SetBrightness(pct int) {
	pct = pattern.ClampBrightness(pct)
	s.mu.Lock()
	s.strip.Brightness = pct
	s.mu.Unlock()

	if s.running() {
		s.recompute(s.clk.Frame())
	}
	s.publishState()
}

// ApplyConfig replaces every strip setting at once.
func (s *Session) ApplyConfig(strip config.Strip) {
	strip = strip.Normalize()
	s.mu.Lock()
	s.strip.Pattern = strip.Pattern
	s.strip.Brightness = strip.Brightness
	s.mu.Unlock()

	s.SetSpeed(strip.Speed)
	s.SetLEDCount(strip.LEDCount)
	s.log.Info().Str("pattern", strip.Pattern).Int("leds", strip.LEDCount).
		Int("speed", strip.Speed).Int("brightness", strip.Brightness).Msg("config applied")
}

// SetFirmware changes the wiring written into generated code.
func (s *Session) SetFirmware(fw config.Firmware) {
	s.mu.Lock()
	s.gen.Pin = fw.Pin
	s.gen.LEDType = fw.LEDType
	s.gen.ColorOrder = fw.ColorOrder
	s.mu.Unlock()
}

// Start runs the clock and recomputes the current frame immediately.
func (s *Session) Start() {
	s.clk.Start()
	s.recompute(s.clk.Frame())
}

// Stop pauses the clock; the frame counter is kept.
func (s *Session) Stop() { s.clk.Stop() }

// Reset stops the clock and recomputes frame 0.
func (s *Session) Reset() { s.clk.Reset() }

// GenerateCode renders firmware for the current settings and stores it.
func (s *Session) GenerateCode() string {
	s.mu.Lock()
	st := s.strip
	code := s.gen.Generate(pattern.ID(st.Pattern), st.LEDCount, st.Brightness, st.Speed)
	s.code = code
	s.mu.Unlock()

	s.met.CodeGenerated(pattern.ID(st.Pattern))
	s.log.Info().Str("pattern", st.Pattern).Int("bytes", len(code)).Msg("firmware generated")
	s.publish(events.CodeEvent{Pattern: pattern.ID(st.Pattern), Source: code})
	return code
}

// Play starts the animation and generates code in one step.
func (s *Session) Play() string {
	s.Start()
	return s.GenerateCode()
}

// Suggest picks a pattern from a free-form description and selects it.
func (s *Session) Suggest(text string) pattern.ID {
	id := prompt.Suggest(text)
	s.log.Info().Str("prompt", text).Str("pattern", string(id)).Msg("suggestion")
	s.SetPattern(id)
	return id
}

// Compose selects the pattern suggested by text, starts the animation and
// generates firmware for it.
func (s *Session) Compose(text string) (pattern.ID, string) {
	id := s.Suggest(text)
	return id, s.Play()
}

// LEDs returns a copy of the current array.
func (s *Session) LEDs() []ledcolor.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledcolor.Color(nil), s.leds...)
}

// Code returns the last generated firmware, or "" before GenerateCode.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

func (s *Session) Snapshot() Snapshot {
	st, frame := s.clk.State(), s.clk.Frame()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Strip:    s.strip,
		State:    st,
		Frame:    frame,
		Interval: clock.Interval(s.strip.Speed),
	}
}

// Patterns lists the registered patterns in catalogue order.
func (s *Session) Patterns() []PatternInfo {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	ids := s.eng.Reg.List()
	out := make([]PatternInfo, 0, len(ids))
	for _, id := range ids {
		p, _ := s.eng.Reg.Get(id)
		out = append(out, PatternInfo{
			ID:            id,
			Label:         p.Label(),
			Deterministic: p.Deterministic(),
			Firmware:      gen.Supported(id),
		})
	}
	return out
}

func (s *Session) knownIDs() []string {
	ids := s.eng.Reg.List()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func (s *Session) publishState() {
	if s.bus == nil {
		return
	}
	snap := s.Snapshot()
	s.bus.Publish(events.StateEvent{
		State:      string(snap.State),
		Frame:      snap.Frame,
		Pattern:    pattern.ID(snap.Strip.Pattern),
		LEDCount:   snap.Strip.LEDCount,
		Speed:      snap.Strip.Speed,
		Brightness: snap.Strip.Brightness,
	})
}

func (s *Session) publish(e events.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
