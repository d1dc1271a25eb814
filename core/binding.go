// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"errors"
	"log/slog"

	"github.com/ravel-ui/ravel/binding"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/tree"
)

// ErrNoModel reports a Bind whose lens source type is not owned by
// the current entity or any of its ancestors.
var ErrNoModel = errors.New("core: no model of the lens source type in scope")

// Bind creates a binding under the current entity: whenever the value
// the lens observes changes, the binding's children are torn down and
// content is run again to rebuild them, with the binding entity as
// current. It returns the binding entity.
//
// The binding entity is marked ignored so layout and focus traversal
// treat its children as direct children of its parent. One store per
// lens identity is kept on the entity owning the source model;
// bindings to the same lens share it.
func Bind[S, T any](cx *Context, lens binding.Lens[S, T], content func(cx *Context)) (entity.Entity, error) {
	e, err := cx.NewEntity()
	if err != nil {
		return entity.Null, err
	}
	cx.tree.SetIgnored(e, true)

	if err := RegisterObserver(cx, e, lens); err != nil {
		if rmErr := cx.Remove(e); rmErr != nil {
			slog.Error("binding cleanup failed", "entity", e, "err", rmErr)
		}
		return entity.Null, err
	}

	cx.bindings[e] = func(cx *Context) {
		cx.RemoveChildren(e)
		cx.WithCurrent(e, func() { content(cx) })
	}
	// Initial build.
	cx.bindings[e](cx)
	return e, nil
}

// RegisterObserver registers e as an observer of the lens's store.
// The store lives on the nearest ancestor of e owning a model of the
// lens source type; it is created and primed with the current value
// on first registration, so only subsequent changes trigger updates.
func RegisterObserver[S, T any](cx *Context, e entity.Entity, lens binding.Lens[S, T]) error {
	model, owner := cx.ModelFor(e, binding.SourceType[S]())
	if owner.IsNull() {
		return ErrNoModel
	}
	ms := cx.data[owner]
	store, ok := ms.stores[lens.ID()]
	if !ok {
		store = binding.NewStore(lens)
		store.Update(model)
		ms.stores[lens.ID()] = store
	}
	store.AddObserver(e)
	return nil
}

// Observe registers the current entity as an observer of the named
// shared resource. Its binding closure, if any, reruns when the
// resource is marked dirty.
func (cx *Context) Observe(name string) {
	cx.Resource(name).AddObserver(cx.current)
}

// BindingPass reconciles every store against its model and reruns the
// bindings observing the stores that changed. Delivery is in tree
// pre-order and each observer runs at most once per pass, skipping
// observers destroyed earlier in the same pass.
func (cx *Context) BindingPass() {
	pending := map[entity.Entity]struct{}{}

	for _, ms := range cx.data {
		for _, store := range ms.stores {
			model, found := ms.models[store.Source()]
			if !found {
				// Lens source not owned here; level-triggered skip.
				continue
			}
			if store.Update(model) {
				for ob := range store.Observers() {
					pending[ob] = struct{}{}
				}
			}
		}
	}
	for _, res := range cx.resources {
		if res.Update(nil) {
			for ob := range res.Observers() {
				pending[ob] = struct{}{}
			}
		}
	}
	if len(pending) == 0 {
		return
	}

	// Reorder into tree pre-order before any delivery: a parent
	// rebuild must run before a child's, and the order must not
	// depend on map iteration.
	ordered := make([]entity.Entity, 0, len(pending))
	it := tree.Full(cx.tree)
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		if _, want := pending[e]; want {
			ordered = append(ordered, e)
		}
	}

	for _, e := range ordered {
		// An earlier rebuild in this pass may have destroyed e.
		if !cx.IsAlive(e) {
			continue
		}
		rebuild, ok := cx.bindings[e]
		if !ok {
			slog.Warn("observer has no binding", "entity", e)
			continue
		}
		rebuild(cx)
	}
}
