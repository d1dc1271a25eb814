// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entity provides the generational ID type used to reference
// every node in the view tree, and the [Manager] that allocates them.
// An [Entity] packs a slot index and a generation counter into one
// uint64 so that handles are cheap to copy, hash, and compare, and so
// that a stale handle to a recycled slot is detectable as dead.
package entity

import "fmt"

const (
	// IndexBits is the number of bits used for the slot index.
	IndexBits = 48

	// IndexMask masks the bits used for the slot index.
	IndexMask = (1 << IndexBits) - 1

	// GenerationBits is the number of bits used for the generation.
	GenerationBits = 16

	// GenerationMask masks the bits used for the generation.
	GenerationMask = (1 << GenerationBits) - 1
)

// Entity is a generational handle to a node in the tree and its
// associated side-table state. The zero value is [Root]; use [Null]
// for a distinguished invalid handle.
type Entity uint64

const (
	// Null is the distinguished invalid handle. It is never returned
	// by [Manager.Create] and is reported dead by [Manager.IsAlive].
	Null Entity = ^Entity(0)

	// Root is the always-valid handle of the top-level container,
	// with index 0 and generation 0.
	Root Entity = 0
)

// New returns an Entity with the given index and generation.
// It panics if either is out of range for the packed representation;
// the [Manager] is the only correct source of new live handles.
func New(index, generation uint64) Entity {
	if index >= IndexMask {
		panic(fmt.Sprintf("entity: index %d exceeds maximum %d", index, IndexMask-1))
	}
	if generation >= GenerationMask {
		panic(fmt.Sprintf("entity: generation %d exceeds maximum %d", generation, GenerationMask-1))
	}
	return Entity(index | generation<<IndexBits)
}

// Index returns the slot index of the entity, used to address the
// flat per-entity storage arrays.
func (e Entity) Index() int {
	return int(uint64(e) & IndexMask)
}

// Generation returns the generation of the entity, used to check
// whether the handle still refers to live data.
func (e Entity) Generation() uint16 {
	return uint16(uint64(e) >> IndexBits & GenerationMask)
}

// IsNull reports whether the entity is the [Null] handle.
func (e Entity) IsNull() bool {
	return e == Null
}

// String implements [fmt.Stringer].
func (e Entity) String() string {
	if e.IsNull() {
		return "Entity(null)"
	}
	return fmt.Sprintf("Entity(%d:%d)", e.Index(), e.Generation())
}
