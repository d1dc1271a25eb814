// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core ties the entity allocator, the tree, the event queue
// and the binding stores together into the [Context] that views and
// bindings mutate, and runs the per-frame event dispatch and binding
// reconciliation passes over it.
package core

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/ravel-ui/ravel/binding"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
	"github.com/ravel-ui/ravel/storage"
	"github.com/ravel-ui/ravel/tree"
)

// Listener receives every event dispatched in a tick, before the
// propagation walk. Used for hover tracking and input capture.
type Listener func(ec *EventContext, ev *events.Event)

// modelStore is the per-entity binding state: the models the entity
// owns keyed by concrete type, and the stores registered against them
// keyed by lens identity.
type modelStore struct {
	models map[reflect.Type]Model
	stores map[binding.StoreID]binding.Store
}

// Context owns all per-entity state. Widgets hold no fields of their
// own; everything is looked up here by entity. The Context must only
// be touched from the UI thread; cross-thread code goes through
// [Context.Proxy].
type Context struct {
	entities *entity.Manager
	tree     *tree.Tree
	queue    *events.Queue
	schedule *events.Schedule
	proxy    events.Proxy
	wake     func()

	views     map[entity.Entity]View
	data      map[entity.Entity]*modelStore
	bindings  map[entity.Entity]func(*Context)
	listeners map[entity.Entity]Listener
	resources map[string]*binding.FlagStore

	style *storage.SparseSet[Style]
	cache *storage.SparseSet[cacheEntry]
	flags *storage.SparseSet[SystemFlags]

	current entity.Entity
}

// NewContext returns a Context holding only the root entity.
func NewContext() *Context {
	cx := &Context{
		entities:  entity.NewManager(),
		tree:      tree.New(),
		queue:     events.NewQueue(),
		schedule:  events.NewSchedule(),
		views:     map[entity.Entity]View{},
		data:      map[entity.Entity]*modelStore{},
		bindings:  map[entity.Entity]func(*Context){},
		listeners: map[entity.Entity]Listener{},
		resources: map[string]*binding.FlagStore{},
		style:     storage.NewSparseSet[Style](),
		cache:     storage.NewSparseSet[cacheEntry](),
		flags:     storage.NewSparseSet[SystemFlags](),
		current:   entity.Root,
	}
	cx.cache.Set(entity.Root, cacheEntry{visible: true})
	cx.proxy = events.NewProxy(cx.queue, func() {
		if cx.wake != nil {
			cx.wake()
		}
	})
	return cx
}

// SetWake registers a callback invoked when an event arrives through
// the proxy while the UI thread may be parked.
func (cx *Context) SetWake(wake func()) {
	cx.wake = wake
}

// Proxy returns a handle for injecting events from other goroutines.
// Copies remain valid until [Context.Close].
func (cx *Context) Proxy() events.Proxy {
	return cx.proxy
}

// Close marks the context closed. Proxy sends fail afterwards.
func (cx *Context) Close() {
	cx.proxy.Close()
}

// Tree exposes the hierarchy for the layout and style engines.
func (cx *Context) Tree() *tree.Tree {
	return cx.tree
}

// IsAlive reports whether e currently refers to a live entity.
func (cx *Context) IsAlive(e entity.Entity) bool {
	return cx.entities.IsAlive(e)
}

// Current returns the entity whose callback is presently executing.
// Outside any callback it is the root.
func (cx *Context) Current() entity.Entity {
	return cx.current
}

// WithCurrent runs f with e as the current entity, restoring the
// previous one afterwards.
func (cx *Context) WithCurrent(e entity.Entity, f func()) {
	prev := cx.current
	cx.current = e
	defer func() { cx.current = prev }()
	f()
}

// NewEntity allocates an entity as a child of the current entity.
func (cx *Context) NewEntity() (entity.Entity, error) {
	e, err := cx.entities.Create()
	if err != nil {
		return entity.Null, err
	}
	if err := cx.tree.Add(e, cx.current); err != nil {
		cx.entities.Destroy(e)
		return entity.Null, err
	}
	return e, nil
}

// AddView allocates an entity under the current entity and attaches v
// to it. The new entity needs layout and paint before first display.
func (cx *Context) AddView(v View) (entity.Entity, error) {
	e, err := cx.NewEntity()
	if err != nil {
		return entity.Null, err
	}
	cx.views[e] = v
	if name := v.Element(); name != "" {
		s := cx.StyleOf(e)
		s.Element = name
		cx.style.Set(e, s)
	}
	cx.cache.Set(e, cacheEntry{visible: true})
	cx.AddFlags(e, Relayout|Redraw)
	return e, nil
}

// ViewOf returns the type-erased view attached to e, or nil.
func (cx *Context) ViewOf(e entity.Entity) View {
	return cx.views[e]
}

// SetModel attaches m to the current entity, keyed by its concrete
// type. Descendant bindings whose lens source matches that type will
// resolve to this model.
func (cx *Context) SetModel(m Model) {
	ms := cx.data[cx.current]
	if ms == nil {
		ms = &modelStore{
			models: map[reflect.Type]Model{},
			stores: map[binding.StoreID]binding.Store{},
		}
		cx.data[cx.current] = ms
	}
	ms.models[reflect.TypeOf(m)] = m
}

// ModelFor walks from e to the root and returns the nearest model of
// the given type, with its owning entity.
func (cx *Context) ModelFor(e entity.Entity, typ reflect.Type) (Model, entity.Entity) {
	it := tree.NewParentIterator(cx.tree, e)
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		if ms := cx.data[node]; ms != nil {
			if m, found := ms.models[typ]; found {
				return m, node
			}
		}
	}
	return nil, entity.Null
}

// AddListener registers l to observe every dispatched event.
func (cx *Context) AddListener(e entity.Entity, l Listener) {
	cx.listeners[e] = l
}

// RemoveListener deregisters the listener for e.
func (cx *Context) RemoveListener(e entity.Entity) {
	delete(cx.listeners, e)
}

// Resource returns the named shared resource store, creating it on
// first use. Marking it dirty schedules its observers for rebuild in
// the next reconciliation pass.
func (cx *Context) Resource(name string) *binding.FlagStore {
	s, ok := cx.resources[name]
	if !ok {
		s = binding.NewFlagStore(name)
		cx.resources[name] = s
	}
	return s
}

// Emit enqueues msg targeting the current entity, propagating up.
func (cx *Context) Emit(msg any) {
	cx.Send(events.New(msg).SetOrigin(cx.current).SetTarget(cx.current))
}

// EmitTo enqueues msg for direct delivery to target only.
func (cx *Context) EmitTo(target entity.Entity, msg any) {
	cx.Send(events.New(msg).SetOrigin(cx.current).SetDirect(target))
}

// Send enqueues a fully formed event. Dispatch happens on the next
// drain, never synchronously.
func (cx *Context) Send(ev *events.Event) {
	cx.queue.Push(ev)
}

// ScheduleAt enqueues ev for dispatch on the first tick at or after
// due. The returned handle cancels it.
func (cx *Context) ScheduleAt(ev *events.Event, due time.Time) events.TimedHandle {
	return cx.schedule.Add(ev, due)
}

// CancelScheduled cancels a previously scheduled event.
func (cx *Context) CancelScheduled(h events.TimedHandle) bool {
	return cx.schedule.Cancel(h)
}

// PollTimers moves every scheduled event now due onto the queue and
// returns the count. Called once per tick before the drain.
func (cx *Context) PollTimers(now time.Time) int {
	due := cx.schedule.PopDue(now)
	for _, ev := range due {
		cx.queue.Push(ev)
	}
	return len(due)
}

// Remove removes e and its whole subtree. Every removed entity's
// side-table state is purged and its observer registrations dropped;
// stores left without observers are reclaimed.
func (cx *Context) Remove(e entity.Entity) error {
	// A removed entity keeps its tree slot, so check liveness here;
	// otherwise a second Remove would re-purge dead entities.
	if !cx.entities.IsAlive(e) {
		return tree.ErrNoEntity
	}
	removed, err := cx.tree.Remove(e)
	if err != nil {
		return err
	}
	// Leaves first, so no entity is purged while a live descendant
	// still references it.
	for _, r := range removed {
		cx.purge(r)
	}
	return nil
}

// RemoveChildren removes every child subtree of e, leaving e in
// place. This is the teardown half of a binding rebuild.
func (cx *Context) RemoveChildren(e entity.Entity) {
	for child := cx.tree.FirstChild(e); !child.IsNull(); child = cx.tree.FirstChild(e) {
		if err := cx.Remove(child); err != nil {
			slog.Error("remove child failed", "child", child, "err", err)
			return
		}
	}
}

// MoveToParent reparents e under parent, keeping its subtree and
// side-table state intact.
func (cx *Context) MoveToParent(e, parent entity.Entity) error {
	return cx.tree.SetParent(e, parent)
}

func (cx *Context) purge(e entity.Entity) {
	delete(cx.views, e)
	delete(cx.data, e)
	delete(cx.bindings, e)
	delete(cx.listeners, e)
	cx.style.Remove(e)
	cx.cache.Remove(e)
	cx.flags.Remove(e)

	for owner, ms := range cx.data {
		for id, store := range ms.stores {
			store.RemoveObserver(e)
			if store.NumObservers() == 0 {
				delete(ms.stores, id)
			}
		}
		if len(ms.stores) == 0 && len(ms.models) == 0 {
			delete(cx.data, owner)
		}
	}
	for name, res := range cx.resources {
		res.RemoveObserver(e)
		if res.NumObservers() == 0 {
			delete(cx.resources, name)
		}
	}

	if !cx.entities.Destroy(e) {
		slog.Error("destroy of dead entity during purge", "entity", e)
	}
}

// EventContext is the capability view handed to event handlers.
type EventContext struct {
	*Context
}

// DrawContext is the capability view handed to Draw. The rendering
// backend extends it with its canvas.
type DrawContext struct {
	*Context
}

// Bounds returns the current entity's cached bounds.
func (dc *DrawContext) Bounds() Bounds {
	return dc.CachedBounds(dc.Current())
}
