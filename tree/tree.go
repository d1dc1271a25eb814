// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the hierarchy of view entities as flat,
// ID-indexed adjacency arrays, along with a reusable Euler-tour
// traversal engine ([Tour], [DoubleEndedTour]) and the iterators
// built on it.
//
// Unlike a pointer-based tree, nodes own no links: the [Tree] holds
// parallel parent / first-child / next-sibling / prev-sibling slices
// indexed by [entity.Entity] index, so all per-node state lives in
// central storage addressed by generational IDs.
package tree

import (
	"github.com/ravel-ui/ravel/entity"
)

// Tree describes the hierarchy of entities. The root entity
// ([entity.Root]) always exists and has no parent. Sibling links form
// a doubly-linked list per parent. A Tree is not safe for concurrent
// use; it must only be mutated from the owning UI goroutine.
type Tree struct {
	parent      []entity.Entity
	firstChild  []entity.Entity
	nextSibling []entity.Entity
	prevSibling []entity.Entity
	ignored     []bool

	// Changed is set by every structural mutation. The frame tick
	// clears it after scheduling the relayout the new structure
	// needs.
	Changed bool
}

// New returns a Tree containing only the root entity.
func New() *Tree {
	return &Tree{
		parent:      []entity.Entity{entity.Null},
		firstChild:  []entity.Entity{entity.Null},
		nextSibling: []entity.Entity{entity.Null},
		prevSibling: []entity.Entity{entity.Null},
		ignored:     []bool{false},
		Changed:     true,
	}
}

// contains reports whether the entity has a slot in the adjacency
// arrays. A removed entity keeps its slot; liveness is the entity
// manager's concern, not the tree's.
func (t *Tree) contains(e entity.Entity) bool {
	return !e.IsNull() && e.Index() < len(t.parent)
}

// link returns the stored link for the entity or Null when the entity
// has no slot.
func link(links []entity.Entity, e entity.Entity) entity.Entity {
	if e.IsNull() || e.Index() >= len(links) {
		return entity.Null
	}
	return links[e.Index()]
}

// Parent returns the parent of the entity, or Null if it has none.
func (t *Tree) Parent(e entity.Entity) entity.Entity {
	return link(t.parent, e)
}

// FirstChild returns the first child of the entity, or Null if it has
// no children.
func (t *Tree) FirstChild(e entity.Entity) entity.Entity {
	return link(t.firstChild, e)
}

// NextSibling returns the next sibling of the entity, or Null.
func (t *Tree) NextSibling(e entity.Entity) entity.Entity {
	return link(t.nextSibling, e)
}

// PrevSibling returns the previous sibling of the entity, or Null.
func (t *Tree) PrevSibling(e entity.Entity) entity.Entity {
	return link(t.prevSibling, e)
}

// LastChild returns the last child of the entity, or Null. It walks
// the sibling chain from the first child.
func (t *Tree) LastChild(e entity.Entity) entity.Entity {
	last := entity.Null
	for c := t.FirstChild(e); !c.IsNull(); c = t.NextSibling(c) {
		last = c
	}
	return last
}

// Child returns the nth child of the entity, or Null.
func (t *Tree) Child(e entity.Entity, n int) entity.Entity {
	i := 0
	for c := t.FirstChild(e); !c.IsNull(); c = t.NextSibling(c) {
		if i == n {
			return c
		}
		i++
	}
	return entity.Null
}

// NumChildren returns the number of children of the entity.
func (t *Tree) NumChildren(e entity.Entity) int {
	n := 0
	for c := t.FirstChild(e); !c.IsNull(); c = t.NextSibling(c) {
		n++
	}
	return n
}

// ChildIndex returns the position of the entity among its parent's
// children, or -1 if it has no parent.
func (t *Tree) ChildIndex(e entity.Entity) int {
	parent := t.Parent(e)
	if parent.IsNull() {
		return -1
	}
	i := 0
	for c := t.FirstChild(parent); !c.IsNull(); c = t.NextSibling(c) {
		if c == e {
			return i
		}
		i++
	}
	return -1
}

// HasChildren reports whether the entity has any children.
func (t *Tree) HasChildren(e entity.Entity) bool {
	return !t.FirstChild(e).IsNull()
}

// IsFirstChild reports whether the entity is the first child of its
// parent.
func (t *Tree) IsFirstChild(e entity.Entity) bool {
	parent := t.Parent(e)
	return !parent.IsNull() && t.FirstChild(parent) == e
}

// IsLastChild reports whether the entity is the last child of its
// parent.
func (t *Tree) IsLastChild(e entity.Entity) bool {
	parent := t.Parent(e)
	return !parent.IsNull() && t.LastChild(parent) == e
}

// IsSibling reports whether the two entities share a parent.
func (t *Tree) IsSibling(a, b entity.Entity) bool {
	pa := t.Parent(a)
	return !pa.IsNull() && a != b && pa == t.Parent(b)
}

// IsIgnored reports whether the entity is structurally present but
// excluded from rendering, focus, and hit-test traversal.
func (t *Tree) IsIgnored(e entity.Entity) bool {
	if e.IsNull() || e.Index() >= len(t.ignored) {
		return false
	}
	return t.ignored[e.Index()]
}

// SetIgnored marks or unmarks the entity as ignored.
func (t *Tree) SetIgnored(e entity.Entity, ignored bool) {
	if !t.contains(e) {
		return
	}
	t.ignored[e.Index()] = ignored
}

// LayoutParent returns the first ancestor of the entity that is not
// ignored, or Null.
func (t *Tree) LayoutParent(e entity.Entity) entity.Entity {
	for p := t.Parent(e); !p.IsNull(); p = t.Parent(p) {
		if !t.IsIgnored(p) {
			return p
		}
	}
	return entity.Null
}

// LayoutFirstChild returns the first layout child of the entity,
// descending through ignored nodes, or Null.
func (t *Tree) LayoutFirstChild(e entity.Entity) entity.Entity {
	it := NewLayoutChildIterator(t, e)
	c, ok := it.Next()
	if !ok {
		return entity.Null
	}
	return c
}

// grow ensures the adjacency arrays have a slot for the entity.
func (t *Tree) grow(e entity.Entity) {
	idx := e.Index()
	for len(t.parent) <= idx {
		t.parent = append(t.parent, entity.Null)
		t.firstChild = append(t.firstChild, entity.Null)
		t.nextSibling = append(t.nextSibling, entity.Null)
		t.prevSibling = append(t.prevSibling, entity.Null)
		t.ignored = append(t.ignored, false)
	}
}

// appendChild links e at the end of parent's child chain. The entity's
// own links must already be cleared.
func (t *Tree) appendChild(e, parent entity.Entity) {
	pi := parent.Index()
	if t.firstChild[pi].IsNull() {
		t.firstChild[pi] = e
		return
	}
	last := t.LastChild(parent)
	t.nextSibling[last.Index()] = e
	t.prevSibling[e.Index()] = last
}

// unlink splices e out of its parent's child chain, leaving its own
// subtree links intact.
func (t *Tree) unlink(e entity.Entity) {
	if parent := t.Parent(e); !parent.IsNull() && t.IsFirstChild(e) {
		t.firstChild[parent.Index()] = t.NextSibling(e)
	}
	if prev := t.PrevSibling(e); !prev.IsNull() {
		t.nextSibling[prev.Index()] = t.NextSibling(e)
	}
	if next := t.NextSibling(e); !next.IsNull() {
		t.prevSibling[next.Index()] = t.PrevSibling(e)
	}
}

// Add adds the entity to the tree as the last child of the given
// parent. The entity's slot is created on demand; any previous links
// in a recycled slot are overwritten.
func (t *Tree) Add(e, parent entity.Entity) error {
	if e.IsNull() || parent.IsNull() {
		return ErrNullEntity
	}
	if !t.contains(parent) {
		return ErrInvalidParent
	}
	t.grow(e)

	idx := e.Index()
	t.parent[idx] = parent
	t.firstChild[idx] = entity.Null
	t.nextSibling[idx] = entity.Null
	t.prevSibling[idx] = entity.Null
	t.ignored[idx] = false

	t.appendChild(e, parent)
	t.Changed = true
	return nil
}

// Remove removes the entity and its whole subtree from the tree,
// returning the removed entities leaves-first (so callers can free
// them and purge side tables without a second traversal). The tree is
// left unmodified on error.
func (t *Tree) Remove(e entity.Entity) ([]entity.Entity, error) {
	if e.IsNull() {
		return nil, ErrNullEntity
	}
	if !t.contains(e) {
		return nil, ErrNoEntity
	}

	// Pre-order collect, then reverse: children precede parents.
	var removed []entity.Entity
	it := Subtree(t, e)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		removed = append(removed, n)
	}
	for i, j := 0, len(removed)-1; i < j; i, j = i+1, j-1 {
		removed[i], removed[j] = removed[j], removed[i]
	}

	t.unlink(e)
	for _, n := range removed {
		idx := n.Index()
		t.parent[idx] = entity.Null
		t.firstChild[idx] = entity.Null
		t.nextSibling[idx] = entity.Null
		t.prevSibling[idx] = entity.Null
		t.ignored[idx] = false
	}
	t.Changed = true
	return removed, nil
}

// SetParent moves the entity (with its subtree) to be the last child
// of the given parent.
func (t *Tree) SetParent(e, parent entity.Entity) error {
	if e.IsNull() || parent.IsNull() {
		return ErrNullEntity
	}
	if !t.contains(e) {
		return ErrNoEntity
	}
	if !t.contains(parent) || parent == e {
		return ErrInvalidParent
	}
	// Reject moving an entity under its own descendant; the sibling
	// chain walk below would never terminate otherwise.
	for a := parent; !a.IsNull(); a = t.Parent(a) {
		if a == e {
			return ErrInvalidParent
		}
	}

	t.unlink(e)
	idx := e.Index()
	t.nextSibling[idx] = entity.Null
	t.prevSibling[idx] = entity.Null
	t.parent[idx] = parent
	t.appendChild(e, parent)
	t.Changed = true
	return nil
}

// SetFirstChild moves the entity to be the first child of its parent.
func (t *Tree) SetFirstChild(e entity.Entity) error {
	if e.IsNull() {
		return ErrNullEntity
	}
	if !t.contains(e) {
		return ErrInvalidSibling
	}
	parent := t.Parent(e)
	if parent.IsNull() {
		return ErrInvalidParent
	}
	if t.FirstChild(parent) == e {
		return ErrAlreadyFirstChild
	}

	previousFirst := t.FirstChild(parent)
	t.unlink(e)
	t.prevSibling[previousFirst.Index()] = e
	t.nextSibling[e.Index()] = previousFirst
	t.prevSibling[e.Index()] = entity.Null
	t.firstChild[parent.Index()] = e
	t.Changed = true
	return nil
}

// SetNextSibling moves sibling to directly follow the entity in its
// parent's child chain. Both must share a parent.
func (t *Tree) SetNextSibling(e, sibling entity.Entity) error {
	if e.IsNull() || sibling.IsNull() {
		return ErrNullEntity
	}
	if !t.contains(e) {
		return ErrNoEntity
	}
	if !t.contains(sibling) || sibling == e {
		return ErrInvalidSibling
	}
	if t.NextSibling(e) == sibling {
		return ErrAlreadySibling
	}
	parent := t.Parent(e)
	if parent.IsNull() {
		return ErrInvalidParent
	}
	if t.Parent(sibling) != parent {
		return ErrInvalidSibling
	}

	t.unlink(sibling)

	next := t.NextSibling(e)
	if !next.IsNull() {
		t.prevSibling[next.Index()] = sibling
	}
	t.nextSibling[sibling.Index()] = next
	t.prevSibling[sibling.Index()] = e
	t.nextSibling[e.Index()] = sibling
	t.Changed = true
	return nil
}

// SetPrevSibling moves sibling to directly precede the entity in its
// parent's child chain. Both must share a parent.
func (t *Tree) SetPrevSibling(e, sibling entity.Entity) error {
	if e.IsNull() || sibling.IsNull() {
		return ErrNullEntity
	}
	if !t.contains(e) {
		return ErrNoEntity
	}
	if !t.contains(sibling) || sibling == e {
		return ErrInvalidSibling
	}
	if t.PrevSibling(e) == sibling {
		return ErrAlreadySibling
	}
	parent := t.Parent(e)
	if parent.IsNull() {
		return ErrInvalidParent
	}
	if t.Parent(sibling) != parent {
		return ErrInvalidSibling
	}

	t.unlink(sibling)

	prev := t.PrevSibling(e)
	if !prev.IsNull() {
		t.nextSibling[prev.Index()] = sibling
	} else {
		t.firstChild[parent.Index()] = sibling
	}
	t.prevSibling[sibling.Index()] = prev
	t.nextSibling[sibling.Index()] = e
	t.prevSibling[e.Index()] = sibling
	t.Changed = true
	return nil
}

// InsertBefore adds the entity to the tree directly before the given
// sibling. The entity must not already be in the tree.
func (t *Tree) InsertBefore(sibling, e entity.Entity) error {
	if sibling.IsNull() || e.IsNull() {
		return ErrNullEntity
	}
	parent := t.Parent(sibling)
	if parent.IsNull() {
		return ErrInvalidSibling
	}
	if err := t.Add(e, parent); err != nil {
		return err
	}
	return t.SetPrevSibling(sibling, e)
}

// InsertAfter adds the entity to the tree directly after the given
// sibling. The entity must not already be in the tree.
func (t *Tree) InsertAfter(sibling, e entity.Entity) error {
	if sibling.IsNull() || e.IsNull() {
		return ErrNullEntity
	}
	parent := t.Parent(sibling)
	if parent.IsNull() {
		return ErrInvalidSibling
	}
	if err := t.Add(e, parent); err != nil {
		return err
	}
	// Add appends, so when sibling was the last child the entity is
	// already directly after it.
	if t.NextSibling(sibling) == e {
		return nil
	}
	return t.SetNextSibling(sibling, e)
}
