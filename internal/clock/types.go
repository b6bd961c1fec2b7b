package clock

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State enumerates clock states.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
)

// Hooks are dependency-injected callbacks into the studio.
type Hooks struct {
	// Frame is called once per tick with the new frame number, and once with
	// 0 on Reset. It runs outside the clock's state lock, but never
	// concurrently with another Frame call, and a tick overtaken by Reset or
	// Stop does not deliver its frame. Frame must not call Reset.
	Frame func(frame int)
	// StateChanged reports Idle/Running transitions.
	StateChanged func(s State)
	// Interval reports the delay armed for the next tick.
	Interval func(d time.Duration)
}

// Timer is a pending one-shot tick.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot timers. The default wraps time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Clock owns the frame counter and the tick cadence.
type Clock struct {
	mu sync.Mutex
	// hookMu serialises Frame hook calls. Acquire before mu.
	hookMu sync.Mutex

	state State
	frame int
	speed int

	// gen is bumped whenever the pending timer is replaced or cancelled, so a
	// timer that already fired but lost the race for mu is ignored.
	gen     uint64
	pending Timer

	hooks Hooks
	sched Scheduler
	log   zerolog.Logger
}

// Option configures a Clock.
type Option func(*Clock)

func WithScheduler(s Scheduler) Option {
	return func(c *Clock) { c.sched = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Clock) { c.log = l }
}

func WithSpeed(pct int) Option {
	return func(c *Clock) { c.speed = ClampSpeed(pct) }
}
