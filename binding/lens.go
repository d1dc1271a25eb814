// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import "sync/atomic"

// StoreID identifies a store within an entity's store table. Each
// constructed lens gets a process-unique ID, so two bindings sharing
// one lens value share one store.
type StoreID uint64

var nextStoreID atomic.Uint64

func newStoreID() StoreID {
	return StoreID(nextStoreID.Add(1))
}

// Lens is a composable accessor from a source model type S to a
// target value T. The getter is fallible: a lens that cannot resolve
// against the current model state simply does not apply this pass,
// which is not an error. An optional setter makes the lens
// bidirectional.
//
// Lenses are plain values; copy them freely. Two copies of one lens
// share a [StoreID] and therefore a store.
type Lens[S, T any] struct {
	id   StoreID
	name string
	get  func(*S) (T, bool)
	set  func(*S, T)
}

// NewLens returns a lens with the given diagnostic name and fallible
// getter.
func NewLens[S, T any](name string, get func(*S) (T, bool)) Lens[S, T] {
	return Lens[S, T]{id: newStoreID(), name: name, get: get}
}

// Field returns a lens over an infallible field accessor, the common
// case of viewing one struct field.
func Field[S, T any](name string, get func(*S) T) Lens[S, T] {
	return NewLens(name, func(s *S) (T, bool) {
		return get(s), true
	})
}

// WithSet returns a copy of the lens with the given setter attached.
// The copy keeps the same [StoreID].
func (l Lens[S, T]) WithSet(set func(*S, T)) Lens[S, T] {
	l.set = set
	return l
}

// ID returns the store identity of the lens.
func (l Lens[S, T]) ID() StoreID {
	return l.id
}

// Name returns the diagnostic name of the lens.
func (l Lens[S, T]) Name() string {
	return l.name
}

// Get resolves the lens against the given source, reporting false if
// the lens does not apply.
func (l Lens[S, T]) Get(s *S) (T, bool) {
	return l.get(s)
}

// Set writes a value through the lens, reporting whether the lens has
// a setter.
func (l Lens[S, T]) Set(s *S, v T) bool {
	if l.set == nil {
		return false
	}
	l.set(s, v)
	return true
}

// Chain composes two lenses into one viewing inner through outer.
// The result has its own [StoreID]. It is settable only if both parts
// are.
func Chain[S, M, T any](outer Lens[S, M], inner Lens[M, T]) Lens[S, T] {
	l := NewLens(outer.name+"."+inner.name, func(s *S) (T, bool) {
		m, ok := outer.get(s)
		if !ok {
			var zero T
			return zero, false
		}
		return inner.get(&m)
	})
	if outer.set != nil && inner.set != nil {
		l.set = func(s *S, v T) {
			m, ok := outer.get(s)
			if !ok {
				return
			}
			inner.set(&m, v)
			outer.set(s, m)
		}
	}
	return l
}
