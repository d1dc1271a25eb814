// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"errors"
	"log/slog"
)

// minimumFreeIndices is the number of destroyed indices that must
// accumulate before any of them is recycled. Spacing out reuse keeps
// the generation counters from churning on hot allocation patterns.
const minimumFreeIndices = 4096

// ErrCapacityExceeded is returned by [Manager.Create] when the index
// space of the packed representation is exhausted.
var ErrCapacityExceeded = errors.New("entity: capacity exceeded")

// Manager allocates and destroys [Entity] handles. Each slot index has
// a stored generation; destroying a handle bumps the stored generation
// so every previously issued copy of it becomes detectably dead.
//
// The generation counter is 16 bits wide and wraps after 2^16 recycles
// of one index, at which point a sufficiently stale handle could alias
// a new entity. This is a known limitation, accepted to keep the
// packed handle a single word.
//
// A Manager is not safe for concurrent use; it must only be touched
// from the owning UI goroutine.
type Manager struct {
	generations []uint16
	free        []uint64
}

// NewManager returns a Manager with the root slot (index 0) allocated,
// so that [Root] is alive from the start.
func NewManager() *Manager {
	return &Manager{generations: make([]uint16, 1)}
}

// Reset returns the manager to its initial state, with only the root
// slot allocated. Handles issued before the reset must not be used.
func (m *Manager) Reset() {
	m.generations = m.generations[:0]
	m.generations = append(m.generations, 0)
	m.free = m.free[:0]
}

// Create returns a fresh or recycled handle. It never returns [Null].
// It fails with [ErrCapacityExceeded] if the index space is exhausted.
func (m *Manager) Create() (Entity, error) {
	var index uint64
	if len(m.free) >= minimumFreeIndices {
		index = m.free[0]
		m.free = m.free[1:]
	} else {
		index = uint64(len(m.generations))
		if index >= IndexMask {
			return Null, ErrCapacityExceeded
		}
		m.generations = append(m.generations, 0)
	}
	return New(index, uint64(m.generations[index])), nil
}

// Destroy marks the entity's index free and increments its stored
// generation, invalidating every outstanding copy of the handle.
// Destroying a handle that is not alive is a caller error: it is
// reported and false is returned, since acting on it would
// desynchronize the tree.
func (m *Manager) Destroy(id Entity) bool {
	if !m.IsAlive(id) {
		slog.Error("entity: destroy of dead entity", "entity", id)
		return false
	}
	m.generations[id.Index()]++ // wraps at the generation bit width
	m.free = append(m.free, uint64(id.Index()))
	return true
}

// IsAlive reports whether the handle still refers to a live slot.
// It is false for [Null], for indices never allocated, and for
// handles whose generation no longer matches the stored one.
func (m *Manager) IsAlive(id Entity) bool {
	if id.IsNull() {
		return false
	}
	idx := id.Index()
	if idx >= len(m.generations) {
		return false
	}
	return m.generations[idx] == id.Generation()
}
