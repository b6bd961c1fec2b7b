// Package events fans studio output out to view layers and sinks.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher. Delivery is asynchronous, so a slow
// subscriber never blocks the publisher.
type Bus struct {
	dispatcher *event.Dispatcher
}

func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish delivers ev to every subscriber of its concrete type. Unknown
// event types are dropped.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case FrameEvent:
		event.Publish(b.dispatcher, e)
	case StateEvent:
		event.Publish(b.dispatcher, e)
	case CodeEvent:
		event.Publish(b.dispatcher, e)
	case DiagnosticEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter and
// returns the unsubscribe function. Unrecognised handlers get a no-op.
//
//	unsub := bus.Subscribe(func(e FrameEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(FrameEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(StateEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CodeEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DiagnosticEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// Close stops the dispatcher. Publishing after Close is a no-op.
func (b *Bus) Close() error {
	return b.dispatcher.Close()
}
