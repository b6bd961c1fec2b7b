package pattern

import (
	"sort"
	"strings"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// ID names a pattern. Unknown IDs are valid and render solid white.
type ID string

const (
	Rainbow   ID = "rainbow"
	Wave      ID = "wave"
	Chase     ID = "chase"
	Strobe    ID = "strobe"
	Fire      ID = "fire"
	Police    ID = "police"
	Sparkle   ID = "sparkle"
	Breathing ID = "breathing"
)

// Builtin lists the stock patterns in catalogue order.
var Builtin = []ID{Rainbow, Wave, Chase, Strobe, Fire, Police, Sparkle, Breathing}

// Parse normalises user input into an ID. It never fails.
func Parse(s string) ID {
	return ID(strings.ToLower(strings.TrimSpace(s)))
}

func (id ID) String() string { return string(id) }

// Rand is the random source consumed by non-deterministic patterns.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Pattern computes the pre-brightness color of LED i of n at frame.
type Pattern interface {
	ID() ID
	Label() string
	Deterministic() bool
	Color(i, n, frame int, rng Rand) ledcolor.Color
}

type Registry struct{ m map[ID]Pattern }

func NewRegistry() *Registry { return &Registry{m: map[ID]Pattern{}} }

// DefaultRegistry returns a registry holding every builtin pattern.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, p := range builtins() {
		reg.Register(p)
	}
	return reg
}

func (r *Registry) Register(p Pattern) {
	if p == nil {
		return
	}
	r.m[p.ID()] = p
}

func (r *Registry) Get(id ID) (Pattern, bool) {
	p, ok := r.m[id]
	return p, ok
}

// List returns registered IDs, builtins first in catalogue order, then any
// extensions sorted by name.
func (r *Registry) List() []ID {
	out := make([]ID, 0, len(r.m))
	for _, id := range Builtin {
		if _, ok := r.m[id]; ok {
			out = append(out, id)
		}
	}
	extra := make([]ID, 0)
	for id := range r.m {
		if !isBuiltin(id) {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func isBuiltin(id ID) bool {
	for _, b := range Builtin {
		if b == id {
			return true
		}
	}
	return false
}
