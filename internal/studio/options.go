package studio

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstudio/internal/clock"
	"github.com/coreman2200/funtimes-ledstudio/internal/codegen"
	"github.com/coreman2200/funtimes-ledstudio/internal/events"
	"github.com/coreman2200/funtimes-ledstudio/internal/metrics"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

type options struct {
	log   zerolog.Logger
	bus   *events.Bus
	met   *metrics.Metrics
	sched clock.Scheduler
	reg   *pattern.Registry
	rng   pattern.Rand
	gen   codegen.Generator
}

// Option configures a Session.
type Option func(*options)

func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithBus publishes frames, state and code on b.
func WithBus(b *events.Bus) Option { return func(o *options) { o.bus = b } }

func WithMetrics(m *metrics.Metrics) Option { return func(o *options) { o.met = m } }

// WithScheduler replaces the clock's timer source, mainly for tests.
func WithScheduler(s clock.Scheduler) Option { return func(o *options) { o.sched = s } }

func WithRegistry(r *pattern.Registry) Option { return func(o *options) { o.reg = r } }

func WithRand(r pattern.Rand) Option { return func(o *options) { o.rng = r } }

// WithSeed fixes the random source; 0 seeds from the current time.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.rng = rand.New(rand.NewSource(seed))
	}
}

func WithGenerator(g codegen.Generator) Option { return func(o *options) { o.gen = g } }
