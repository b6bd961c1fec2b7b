package clock

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	MinSpeed = 0
	MaxSpeed = 100

	// MinInterval keeps speed 100 from arming a zero-length timer.
	MinInterval = time.Millisecond
)

// New constructs an Idle Clock at frame 0.
func New(h Hooks, opts ...Option) *Clock {
	c := &Clock{
		state: Idle,
		speed: 50,
		hooks: h,
		sched: realScheduler{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval maps a speed percentage onto the tick delay: (100-speed) ms,
// never below MinInterval.
func Interval(speed int) time.Duration {
	d := time.Duration(MaxSpeed-ClampSpeed(speed)) * time.Millisecond
	if d < MinInterval {
		return MinInterval
	}
	return d
}

func ClampSpeed(pct int) int {
	if pct < MinSpeed {
		return MinSpeed
	}
	if pct > MaxSpeed {
		return MaxSpeed
	}
	return pct
}

// Start moves Idle to Running and arms the first tick.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		return
	}
	c.state = Running
	d := c.armLocked()
	c.mu.Unlock()

	c.log.Debug().Int("frame", c.Frame()).Dur("interval", d).Msg("clock started")
	c.notifyState(Running)
	c.notifyInterval(d)
}

// Stop moves Running to Idle and cancels the pending tick. The frame counter
// is kept.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.state == Idle {
		c.mu.Unlock()
		return
	}
	c.state = Idle
	c.cancelLocked()
	frame := c.frame
	c.mu.Unlock()

	c.log.Debug().Int("frame", frame).Msg("clock stopped")
	c.notifyState(Idle)
}

// Reset forces Idle, zeroes the frame counter and emits frame 0 once.
func (c *Clock) Reset() {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()

	c.mu.Lock()
	wasRunning := c.state == Running
	c.state = Idle
	c.cancelLocked()
	c.frame = 0
	c.mu.Unlock()

	c.log.Debug().Msg("clock reset")
	if wasRunning {
		c.notifyState(Idle)
	}
	if c.hooks.Frame != nil {
		c.hooks.Frame(0)
	}
}

// SetSpeed changes the cadence. While Running the pending tick is replaced
// so the new interval applies to the very next tick.
func (c *Clock) SetSpeed(pct int) {
	c.mu.Lock()
	c.speed = ClampSpeed(pct)
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	d := c.armLocked()
	c.mu.Unlock()

	c.notifyInterval(d)
}

func (c *Clock) Frame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Clock) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Interval returns the delay the next tick is (or would be) armed with.
func (c *Clock) Interval() time.Duration {
	return Interval(c.Speed())
}

// armLocked schedules the next tick. Callers hold mu and must have cancelled
// any pending timer first.
func (c *Clock) armLocked() time.Duration {
	c.gen++
	gen := c.gen
	d := Interval(c.speed)
	c.pending = c.sched.AfterFunc(d, func() { c.tick(gen) })
	return d
}

func (c *Clock) cancelLocked() {
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// tick advances one frame, runs the hook, then arms the next tick unless the
// clock was stopped or re-armed meanwhile.
func (c *Clock) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != Running {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.frame++
	frame := c.frame
	c.mu.Unlock()

	c.deliver(frame)

	c.mu.Lock()
	if gen != c.gen || c.state != Running {
		c.mu.Unlock()
		return
	}
	d := c.armLocked()
	c.mu.Unlock()

	c.notifyInterval(d)
}

// deliver runs the Frame hook for a tick unless Reset or Stop has superseded
// it since the frame counter advanced.
func (c *Clock) deliver(frame int) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()

	c.mu.Lock()
	current := c.state == Running && c.frame == frame
	c.mu.Unlock()
	if current && c.hooks.Frame != nil {
		c.hooks.Frame(frame)
	}
}

func (c *Clock) notifyState(s State) {
	if c.hooks.StateChanged != nil {
		c.hooks.StateChanged(s)
	}
}

func (c *Clock) notifyInterval(d time.Duration) {
	if c.hooks.Interval != nil {
		c.hooks.Interval(d)
	}
}
