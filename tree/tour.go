// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "github.com/ravel-ui/ravel/entity"

// TourDirection tells a tour callback whether the cursor is entering
// a node on the way down or leaving it on the way back up.
type TourDirection int32

const (
	// Entering means the node is being visited on the way down,
	// before any of its children.
	Entering TourDirection = iota

	// Leaving means the node is being visited on the way back up,
	// after all of its children.
	Leaving
)

// TourStep tells the tour where to move the cursor next.
type TourStep int32

const (
	// EnterFirstChild descends to the first child, or leaves the
	// current node if it has none.
	EnterFirstChild TourStep = iota

	// EnterLastChild descends to the last child, or leaves the
	// current node if it has none.
	EnterLastChild

	// LeaveCurrent switches from entering to leaving the current
	// node without moving. Only valid while entering.
	LeaveCurrent

	// EnterNextSibling moves to the next sibling, or leaves to the
	// parent if there is none.
	EnterNextSibling

	// EnterPrevSibling moves to the previous sibling, or leaves to
	// the parent if there is none.
	EnterPrevSibling

	// LeaveParent moves up to the parent in the leaving direction.
	LeaveParent

	// Break stops the tour.
	Break
)

// TourCallback is called at every step of a [Tour] with the current
// node and direction. It returns whether the node should be yielded at
// this step and how the tour should continue.
type TourCallback func(node entity.Entity, dir TourDirection) (yield bool, step TourStep)

// Tour is the modular traversal cursor underlying every tree iterator,
// based on the Euler tour technique: each node is passed to the
// callback once on the way down ([Entering]) and once on the way back
// up ([Leaving]), and the callback steers the cursor. This lets
// children-only, full-tree, reverse, and filtered iterators share one
// traversal engine, including behaviors like skipping a node's whole
// subtree without duplicating traversal logic.
type Tour struct {
	current   entity.Entity
	direction TourDirection
}

// NewTour returns a tour with the cursor entering the given node.
// Starting at Null yields an exhausted tour.
func NewTour(start entity.Entity) Tour {
	return Tour{current: start}
}

// Next advances the tour until the callback yields an item or the
// tour is exhausted.
func (tt *Tour) Next(t *Tree, cb TourCallback) (entity.Entity, bool) {
	for !tt.current.IsNull() {
		current := tt.current
		yield, step := cb(current, tt.direction)
		switch step {
		case LeaveCurrent:
			if tt.direction != Entering {
				panic("tree: tried to leave current node again in tour")
			}
			tt.direction = Leaving
		case EnterFirstChild:
			if child := t.FirstChild(current); !child.IsNull() {
				tt.direction = Entering
				tt.current = child
			} else {
				tt.direction = Leaving
			}
		case EnterLastChild:
			if child := t.LastChild(current); !child.IsNull() {
				tt.direction = Entering
				tt.current = child
			} else {
				tt.direction = Leaving
			}
		case LeaveParent:
			tt.direction = Leaving
			tt.current = t.Parent(current)
		case EnterNextSibling:
			if sibling := t.NextSibling(current); !sibling.IsNull() {
				tt.direction = Entering
				tt.current = sibling
			} else {
				tt.direction = Leaving
				tt.current = t.Parent(current)
			}
		case EnterPrevSibling:
			if sibling := t.PrevSibling(current); !sibling.IsNull() {
				tt.direction = Entering
				tt.current = sibling
			} else {
				tt.direction = Leaving
				tt.current = t.Parent(current)
			}
		case Break:
			tt.current = entity.Null
		}
		if yield {
			return current, true
		}
	}
	return entity.Null, false
}

// DoubleEndedTour pairs a forward and a backward [Tour] so iteration
// can proceed from both ends toward the middle, stopping when they
// meet, without materializing the whole tree order. Focus navigation
// uses this to find the next or previous focusable widget.
//
// For the meeting check to be correct, the two tours must traverse
// the same nodes in opposite orders, and if the forward direction
// yields a node on entering, the backward direction must yield it on
// leaving, and vice versa.
type DoubleEndedTour struct {
	forward  Tour
	backward Tour
}

// NewDoubleEndedTour returns a double-ended tour with the given
// starting nodes for each direction.
func NewDoubleEndedTour(forwardStart, backwardStart entity.Entity) DoubleEndedTour {
	return DoubleEndedTour{
		forward:  NewTour(forwardStart),
		backward: NewTour(backwardStart),
	}
}

// NewDoubleEndedTourSame returns a double-ended tour with both
// cursors starting at the same node, covering its whole subtree.
func NewDoubleEndedTourSame(start entity.Entity) DoubleEndedTour {
	return NewDoubleEndedTour(start, start)
}

// Next advances the forward cursor.
func (d *DoubleEndedTour) Next(t *Tree, cb TourCallback) (entity.Entity, bool) {
	return d.forward.Next(t, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		yield, step := cb(node, dir)
		if d.backward.current == node && d.backward.direction != dir {
			d.backward.current = entity.Null
			return yield, Break
		}
		return yield, step
	})
}

// NextBack advances the backward cursor.
func (d *DoubleEndedTour) NextBack(t *Tree, cb TourCallback) (entity.Entity, bool) {
	return d.backward.Next(t, func(node entity.Entity, dir TourDirection) (bool, TourStep) {
		yield, step := cb(node, dir)
		if d.forward.current == node && d.forward.direction != dir {
			d.forward.current = entity.Null
			return yield, Break
		}
		return yield, step
	})
}
