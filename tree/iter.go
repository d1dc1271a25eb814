// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "github.com/ravel-ui/ravel/entity"

// Iterator iterates a subtree in depth-first pre-order. It is
// double-ended: [Iterator.NextBack] yields the same sequence in
// reverse, and interleaved calls meet in the middle with every node
// yielded exactly once.
type Iterator struct {
	tree  *Tree
	tours DoubleEndedTour
}

// Full returns an iterator over the whole tree, starting at the root.
func Full(t *Tree) *Iterator {
	return Subtree(t, entity.Root)
}

// Subtree returns an iterator over the given entity and all of its
// descendants.
func Subtree(t *Tree, root entity.Entity) *Iterator {
	return &Iterator{tree: t, tours: NewDoubleEndedTourSame(root)}
}

// Next yields the next entity in pre-order.
func (it *Iterator) Next() (entity.Entity, bool) {
	return it.tours.Next(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			return true, EnterFirstChild
		}
		return false, EnterNextSibling
	})
}

// NextBack yields the next entity from the back, in reverse pre-order.
func (it *Iterator) NextBack() (entity.Entity, bool) {
	return it.tours.NextBack(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			return false, EnterLastChild
		}
		return true, EnterPrevSibling
	})
}

// ChildIterator iterates the direct children of an entity, and is
// double-ended.
type ChildIterator struct {
	tree  *Tree
	tours DoubleEndedTour
}

// NewChildIterator returns an iterator over the children of the
// given entity.
func NewChildIterator(t *Tree, parent entity.Entity) *ChildIterator {
	return &ChildIterator{
		tree:  t,
		tours: NewDoubleEndedTour(t.FirstChild(parent), t.LastChild(parent)),
	}
}

// Next yields the next child.
func (it *ChildIterator) Next() (entity.Entity, bool) {
	return it.tours.Next(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			return true, LeaveCurrent
		}
		return false, EnterNextSibling
	})
}

// NextBack yields the next child from the back.
func (it *ChildIterator) NextBack() (entity.Entity, bool) {
	return it.tours.NextBack(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			return false, LeaveCurrent
		}
		return true, EnterPrevSibling
	})
}

// ParentIterator iterates an entity and then each of its ancestors in
// turn, ending at the root.
type ParentIterator struct {
	tree    *Tree
	current entity.Entity
}

// NewParentIterator returns an iterator over the entity and its
// ancestors.
func NewParentIterator(t *Tree, start entity.Entity) *ParentIterator {
	return &ParentIterator{tree: t, current: start}
}

// Next yields the current entity and moves up to its parent.
func (it *ParentIterator) Next() (entity.Entity, bool) {
	if it.current.IsNull() {
		return entity.Null, false
	}
	current := it.current
	it.current = it.tree.Parent(current)
	return current, true
}

// LayoutChildIterator iterates the layout children of an entity:
// direct children, except that ignored children are skipped and their
// own children are visited in their place. The external box-layout
// engine consumes this to treat grouping-only entities as transparent.
type LayoutChildIterator struct {
	tree   *Tree
	parent entity.Entity
	tour   Tour
}

// NewLayoutChildIterator returns a layout-child iterator for the
// given entity.
func NewLayoutChildIterator(t *Tree, parent entity.Entity) *LayoutChildIterator {
	return &LayoutChildIterator{
		tree:   t,
		parent: parent,
		tour:   NewTour(t.FirstChild(parent)),
	}
}

// Next yields the next layout child.
func (it *LayoutChildIterator) Next() (entity.Entity, bool) {
	return it.tour.Next(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if node == it.parent {
			// Climbed back out of the child chain.
			return false, Break
		}
		if dir == Entering {
			if it.tree.IsIgnored(node) {
				return false, EnterFirstChild
			}
			return true, LeaveCurrent
		}
		return false, EnterNextSibling
	})
}

// FocusFilter is the verdict a [FocusIterator] filter gives for a
// node.
type FocusFilter int32

const (
	// Accept yields the node and descends into its children.
	Accept FocusFilter = iota

	// SkipNode does not yield the node but still descends into its
	// children.
	SkipNode

	// SkipSubtree does not yield the node and does not descend; the
	// whole subtree is invisible to the iteration.
	SkipSubtree
)

// FocusIterator iterates the focusable entities of a subtree in
// pre-order, applying a filter that can hide single nodes or prune
// whole subtrees (ignored, invisible, or disabled branches). It is
// double-ended, so focus navigation can search forward and backward
// from both ends without materializing the tree order.
type FocusIterator struct {
	tree   *Tree
	tours  DoubleEndedTour
	filter func(entity.Entity) FocusFilter
}

// NewFocusIterator returns a focus iterator over the subtree rooted
// at the given entity.
func NewFocusIterator(t *Tree, root entity.Entity, filter func(entity.Entity) FocusFilter) *FocusIterator {
	return &FocusIterator{tree: t, tours: NewDoubleEndedTourSame(root), filter: filter}
}

// Next yields the next accepted entity.
func (it *FocusIterator) Next() (entity.Entity, bool) {
	return it.tours.Next(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			switch it.filter(node) {
			case SkipSubtree:
				return false, LeaveCurrent
			case SkipNode:
				return false, EnterFirstChild
			default:
				return true, EnterFirstChild
			}
		}
		return false, EnterNextSibling
	})
}

// NextBack yields the next accepted entity from the back.
func (it *FocusIterator) NextBack() (entity.Entity, bool) {
	return it.tours.NextBack(it.tree, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			if it.filter(node) == SkipSubtree {
				return false, LeaveCurrent
			}
			return false, EnterLastChild
		}
		if it.filter(node) == Accept {
			return true, EnterPrevSibling
		}
		return false, EnterPrevSibling
	})
}

// DepthIterator iterates a subtree in pre-order, yielding each entity
// tagged with its depth below the subtree root.
type DepthIterator struct {
	tree  *Tree
	root  entity.Entity
	tour  Tour
	depth int
}

// NewDepthIterator returns a depth-tagged iterator over the subtree
// rooted at the given entity. The root has depth 0.
func NewDepthIterator(t *Tree, root entity.Entity) *DepthIterator {
	return &DepthIterator{tree: t, root: root, tour: NewTour(root)}
}

// Next yields the next entity and its depth.
func (it *DepthIterator) Next() (entity.Entity, int, bool) {
	depth := 0
	node, ok := it.tour.Next(it.tree, func(n entity.Entity, dir TourDirection) (bool, TourStep) {
		if dir == Entering {
			depth = it.depth
			it.depth++
			return true, EnterFirstChild
		}
		if n == it.root {
			return false, Break
		}
		it.depth--
		return false, EnterNextSibling
	})
	if !ok {
		return entity.Null, 0, false
	}
	return node, depth, true
}
