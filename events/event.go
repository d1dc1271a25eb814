// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events provides the typed message envelope ([Event]) that
// travels through the view tree, the propagation rules governing which
// entities it is delivered to, the cross-thread FIFO [Queue], the
// [Proxy] for injecting events from outside the UI goroutine, and the
// [Schedule] of delayed events polled once per tick.
package events

import (
	"fmt"

	"github.com/ravel-ui/ravel/entity"
)

// Propagation determines how an event travels through the tree
// relative to its target.
type Propagation int32

const (
	// Direct delivers the event only to its target.
	Direct Propagation = iota

	// Up delivers the event to its target and then to each ancestor
	// in turn, up to the root.
	Up

	// Subtree delivers the event to its target and then to every
	// descendant of the target, in tree pre-order.
	Subtree
)

// Down is an alias for [Subtree]: downward propagation visits the
// target's whole subtree in pre-order.
const Down = Subtree

func (p Propagation) String() string {
	switch p {
	case Direct:
		return "Direct"
	case Up:
		return "Up"
	case Subtree:
		return "Subtree"
	}
	return fmt.Sprintf("Propagation(%d)", int32(p))
}

// Event wraps an arbitrary message with metadata describing how it
// travels through the view tree. A consumed event is not delivered to
// any further entity on its propagation walk.
type Event struct {
	// Message is the typed payload. Handlers downcast it with [Map]
	// or [Take]; an unrecognized message type is a silent no-op,
	// since many views share one queue.
	Message any

	// Origin is the entity that produced the event, or Null for
	// backend or unspecified origins.
	Origin entity.Entity

	// Target is the entity the event is sent to (or propagates from,
	// for subtree propagation).
	Target entity.Entity

	// Propagation is the rule governing which entities the event is
	// delivered to relative to Target.
	Propagation Propagation

	consumed bool
}

// New returns an event carrying the given message, targeted at the
// root with upward propagation and no origin.
func New(message any) *Event {
	return &Event{
		Message:     message,
		Origin:      entity.Null,
		Target:      entity.Root,
		Propagation: Up,
	}
}

// SetOrigin sets the origin of the event and returns it.
func (e *Event) SetOrigin(origin entity.Entity) *Event {
	e.Origin = origin
	return e
}

// SetTarget sets the target of the event and returns it.
func (e *Event) SetTarget(target entity.Entity) *Event {
	e.Target = target
	return e
}

// SetPropagation sets the propagation mode of the event and returns it.
func (e *Event) SetPropagation(p Propagation) *Event {
	e.Propagation = p
	return e
}

// SetDirect targets the event directly at the given entity, with no
// further propagation, and returns it.
func (e *Event) SetDirect(target entity.Entity) *Event {
	e.Target = target
	e.Propagation = Direct
	return e
}

// Consume marks the event consumed, preventing it from continuing on
// its propagation path.
func (e *Event) Consume() {
	e.consumed = true
}

// IsConsumed reports whether the event has been consumed.
func (e *Event) IsConsumed() bool {
	return e.consumed
}

func (e *Event) String() string {
	return fmt.Sprintf("Event(%T %s target=%s)", e.Message, e.Propagation, e.Target)
}

// Map calls f with the event's message if it is of type M, and does
// nothing otherwise. The handler may consume the event through it.
func Map[M any](e *Event, f func(m M, e *Event)) {
	if m, ok := e.Message.(M); ok {
		f(m, e)
	}
}

// Take returns the event's message by value if it is of type M,
// consuming the event and clearing the message. Otherwise it does
// nothing and reports false.
func Take[M any](e *Event) (M, bool) {
	if m, ok := e.Message.(M); ok {
		e.Message = nil
		e.Consume()
		return m, true
	}
	var zero M
	return zero, false
}
