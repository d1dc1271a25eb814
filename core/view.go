// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
)

// View is the capability set every widget implements. Views are held
// type-erased by the [Context], keyed by entity; [ViewAs] recovers the
// concrete type when a caller needs it.
type View interface {
	// Event handles a dispatched event. Implementations downcast the
	// message with [events.Map] or [events.Take]; an unrecognized
	// message type is ignored.
	Event(ec *EventContext, ev *events.Event)

	// Draw renders the view. The canvas lives on the DrawContext so
	// the core stays backend-agnostic.
	Draw(dc *DrawContext)

	// Element returns the selector name used by the style engine,
	// or "" for an anonymous view.
	Element() string
}

// ViewBase provides no-op defaults so concrete views only override
// what they need.
type ViewBase struct{}

func (ViewBase) Event(ec *EventContext, ev *events.Event) {}
func (ViewBase) Draw(dc *DrawContext)                     {}
func (ViewBase) Element() string                          { return "" }

// ViewAs returns the view of e as a V, or false if the entity has no
// view or its view has a different concrete type.
func ViewAs[V View](cx *Context, e entity.Entity) (V, bool) {
	v, ok := cx.views[e].(V)
	return v, ok
}

// Model is application state held by the Context, keyed per entity by
// concrete type. Models receive events during dispatch just as views
// do, which is how views mutate state they do not own.
type Model interface {
	Event(ec *EventContext, ev *events.Event)
}

// ModelBase provides a no-op event handler for models that are pure
// data.
type ModelBase struct{}

func (ModelBase) Event(ec *EventContext, ev *events.Event) {}
