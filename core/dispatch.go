// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"errors"
	"log/slog"

	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
	"github.com/ravel-ui/ravel/tree"
)

// maxDrainCycles bounds handler-triggered requeue rounds in a single
// Flush. A well-behaved tick settles in two or three.
const maxDrainCycles = 32

// ErrEventCascade reports a drain that never settled: handlers kept
// enqueuing new events past the cycle cap. This is a programming
// error in a handler, not a recoverable runtime state.
var ErrEventCascade = errors.New("core: event cascade exceeded drain cycle cap")

// EventManager drains the context's event queue once per tick,
// walking the tree per each event's propagation mode.
type EventManager struct {
	cx *Context

	// chain is reused across dispatches to avoid per-event allocs.
	chain []entity.Entity
}

func NewEventManager(cx *Context) *EventManager {
	return &EventManager{cx: cx}
}

// Flush drains the queue in FIFO order, including events enqueued by
// handlers during the drain. Each full pass over the queued events is
// one cycle; exceeding the cycle cap fails with [ErrEventCascade] and
// drops the remaining events.
func (em *EventManager) Flush() error {
	for cycle := 0; em.cx.queue.Len() > 0; cycle++ {
		if cycle >= maxDrainCycles {
			for em.cx.queue.Pop() != nil {
			}
			slog.Error("event cascade, dropping queue", "cycles", cycle)
			return ErrEventCascade
		}
		// Only the events present at cycle start are dispatched this
		// cycle; handler-enqueued events wait for the next one.
		n := em.cx.queue.Len()
		for i := 0; i < n; i++ {
			ev := em.cx.queue.Pop()
			if ev == nil {
				break
			}
			em.dispatch(ev)
		}
	}
	return nil
}

// dispatch delivers one event: listeners first, then the propagation
// walk from the target, stopping as soon as a handler consumes it.
func (em *EventManager) dispatch(ev *events.Event) {
	cx := em.cx
	ec := &EventContext{Context: cx}

	for e, l := range cx.listeners {
		if !cx.IsAlive(e) {
			continue
		}
		cx.WithCurrent(e, func() { l(ec, ev) })
	}
	if ev.IsConsumed() {
		return
	}

	em.chain = em.chain[:0]
	switch ev.Propagation {
	case events.Direct:
		em.chain = append(em.chain, ev.Target)
	case events.Up:
		it := tree.NewParentIterator(cx.tree, ev.Target)
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			em.chain = append(em.chain, e)
		}
	case events.Subtree:
		it := tree.Subtree(cx.tree, ev.Target)
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			em.chain = append(em.chain, e)
		}
	}

	for _, e := range em.chain {
		// A handler earlier in the walk may have removed this entity.
		if !cx.IsAlive(e) {
			continue
		}
		em.deliver(ec, e, ev)
		if ev.IsConsumed() {
			return
		}
	}
}

// deliver visits one entity: its models first, then its view, with
// the entity installed as current for the duration.
func (em *EventManager) deliver(ec *EventContext, e entity.Entity, ev *events.Event) {
	cx := em.cx
	cx.WithCurrent(e, func() {
		if ms := cx.data[e]; ms != nil {
			for _, m := range ms.models {
				m.Event(ec, ev)
				if ev.IsConsumed() {
					return
				}
			}
		}
		if v := cx.views[e]; v != nil {
			v.Event(ec, ev)
		}
	})
}
