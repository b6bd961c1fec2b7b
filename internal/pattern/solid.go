package pattern

import "github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"

// Solid fills the strip with a single color. The engine uses a white Solid
// for IDs that are not registered.
type Solid struct {
	id ID
	c  ledcolor.Color
}

func NewSolid(id ID, c ledcolor.Color) *Solid { return &Solid{id: id, c: c} }

func (s *Solid) ID() ID              { return s.id }
func (s *Solid) Label() string       { return "Solid" }
func (s *Solid) Deterministic() bool { return true }

func (s *Solid) Color(_, _, _ int, _ Rand) ledcolor.Color { return s.c }
