// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"reflect"

	"github.com/ravel-ui/ravel/entity"
)

// Store is the type-erased binding record: it remembers the
// last-observed value of an accessor and the set of entities observing
// it. The reconciliation pass calls [Store.Update] once per pass; a
// true return means the observed value changed and the observers need
// updating.
type Store interface {
	// Update re-evaluates the store against the given model, returning
	// whether the observed value changed. A model of the wrong type or
	// an accessor that fails to resolve means the store does not apply
	// this pass: Update returns false and is checked fresh next pass.
	Update(model any) bool

	// AddObserver registers an entity as interested in changes.
	AddObserver(o entity.Entity)

	// RemoveObserver removes an entity from the observer set.
	RemoveObserver(o entity.Entity)

	// Observers returns the observer set.
	Observers() map[entity.Entity]struct{}

	// NumObservers returns the number of observers.
	NumObservers() int

	// Source returns the pointer type of the model the store reads,
	// or nil for stores not bound to a model (e.g. [FlagStore]).
	Source() reflect.Type

	// Name returns a diagnostic name for the store.
	Name() string
}

// observers is the shared observer-set implementation.
type observers map[entity.Entity]struct{}

func (o observers) AddObserver(e entity.Entity)    { o[e] = struct{}{} }
func (o observers) RemoveObserver(e entity.Entity) { delete(o, e) }
func (o observers) NumObservers() int              { return len(o) }

func (o observers) Observers() map[entity.Entity]struct{} { return o }

// SourceType returns the reflect.Type a store built from a Lens[S, T]
// reports as its [Store.Source], for looking up the owning model.
func SourceType[S any]() reflect.Type {
	return reflect.TypeOf((*S)(nil))
}

// basicStore is the lens-backed store: equality-gated on [Same].
type basicStore[S, T any] struct {
	observers
	lens Lens[S, T]
	last T
	seen bool
}

// NewStore returns a store observing the given lens.
func NewStore[S, T any](lens Lens[S, T]) Store {
	return &basicStore[S, T]{observers: observers{}, lens: lens}
}

func (s *basicStore[S, T]) Update(model any) bool {
	src, ok := model.(*S)
	if !ok {
		return false
	}
	v, ok := s.lens.Get(src)
	if !ok {
		return false
	}
	if s.seen && Same(s.last, v) {
		return false
	}
	s.last = v
	s.seen = true
	return true
}

func (s *basicStore[S, T]) Source() reflect.Type {
	return reflect.TypeOf((*S)(nil))
}

func (s *basicStore[S, T]) Name() string {
	return s.lens.Name()
}

// FlagStore is a store driven by a coarse dirty flag instead of a
// lens-equality check. Shared resources (image load state and the
// like) mark it dirty when they change, and its observers are swept
// into the same pending-update set as lens observers.
type FlagStore struct {
	observers
	name  string
	dirty bool
}

// NewFlagStore returns a flag store with the given diagnostic name.
func NewFlagStore(name string) *FlagStore {
	return &FlagStore{observers: observers{}, name: name}
}

// MarkDirty flags the store as changed; the next Update reports the
// change once and clears the flag.
func (s *FlagStore) MarkDirty() {
	s.dirty = true
}

// Update reports and clears the dirty flag. The model argument is
// ignored.
func (s *FlagStore) Update(model any) bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Source returns nil: a flag store is not bound to a model type.
func (s *FlagStore) Source() reflect.Type {
	return nil
}

// Name returns the diagnostic name of the store.
func (s *FlagStore) Name() string {
	return s.name
}
