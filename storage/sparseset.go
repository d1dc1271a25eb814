// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage provides the sparse component side tables that the
// rest of the toolkit keys by entity.
package storage

import "github.com/ravel-ui/ravel/entity"

// none marks an empty slot in the sparse index.
const none = -1

// Entry is a dense slot pairing the owning entity with its value.
type Entry[V any] struct {
	Entity entity.Entity
	Value  V
}

// SparseSet stores one value per entity with O(1) insert, lookup and
// remove, and dense iteration over the occupied entries. The sparse
// slice is indexed by [entity.Entity.Index] and holds positions into
// the dense slice; removal swaps the last dense entry into the hole.
// Dense order is therefore arbitrary.
type SparseSet[V any] struct {
	sparse []int
	dense  []Entry[V]
}

// NewSparseSet returns an empty set.
func NewSparseSet[V any]() *SparseSet[V] {
	return &SparseSet[V]{}
}

// Len returns the number of stored values.
func (s *SparseSet[V]) Len() int {
	return len(s.dense)
}

// Contains reports whether e has a value in the set.
func (s *SparseSet[V]) Contains(e entity.Entity) bool {
	i := e.Index()
	return i < len(s.sparse) && s.sparse[i] != none
}

// Get returns the value stored for e.
func (s *SparseSet[V]) Get(e entity.Entity) (V, bool) {
	i := e.Index()
	if i >= len(s.sparse) || s.sparse[i] == none {
		var zero V
		return zero, false
	}
	return s.dense[s.sparse[i]].Value, true
}

// GetPtr returns a pointer to the value stored for e, valid until the
// next Set or Remove on the set.
func (s *SparseSet[V]) GetPtr(e entity.Entity) (*V, bool) {
	i := e.Index()
	if i >= len(s.sparse) || s.sparse[i] == none {
		return nil, false
	}
	return &s.dense[s.sparse[i]].Value, true
}

// Set stores v for e, replacing any previous value.
func (s *SparseSet[V]) Set(e entity.Entity, v V) {
	i := e.Index()
	for len(s.sparse) <= i {
		s.sparse = append(s.sparse, none)
	}
	if d := s.sparse[i]; d != none {
		s.dense[d].Value = v
		return
	}
	s.sparse[i] = len(s.dense)
	s.dense = append(s.dense, Entry[V]{Entity: e, Value: v})
}

// Remove deletes the value stored for e and reports whether one
// existed. The last dense entry is swapped into the vacated slot.
func (s *SparseSet[V]) Remove(e entity.Entity) bool {
	i := e.Index()
	if i >= len(s.sparse) || s.sparse[i] == none {
		return false
	}
	d := s.sparse[i]
	last := len(s.dense) - 1
	if d != last {
		moved := s.dense[last]
		s.dense[d] = moved
		s.sparse[moved.Entity.Index()] = d
	}
	s.dense = s.dense[:last]
	s.sparse[i] = none
	return true
}

// Entries returns the dense entry slice for iteration. Callers must
// not grow or shrink it.
func (s *SparseSet[V]) Entries() []Entry[V] {
	return s.dense
}

// Clear removes every entry while keeping allocated capacity.
func (s *SparseSet[V]) Clear() {
	for i := range s.sparse {
		s.sparse[i] = none
	}
	s.dense = s.dense[:0]
}
