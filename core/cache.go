// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
)

// Bounds is an axis-aligned rectangle in window coordinates, written
// by the layout engine and read by drawing and hit testing.
type Bounds struct {
	X, Y, W, H float32
}

func (b Bounds) Right() float32  { return b.X + b.W }
func (b Bounds) Bottom() float32 { return b.Y + b.H }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() (x, y float32) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Contains reports whether the point (x, y) lies within the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Intersection returns the overlapping region of b and o, or a zero
// rectangle if they do not overlap.
func (b Bounds) Intersection(o Bounds) Bounds {
	x := math32.Max(b.X, o.X)
	y := math32.Max(b.Y, o.Y)
	r := math32.Min(b.Right(), o.Right())
	bt := math32.Min(b.Bottom(), o.Bottom())
	if r <= x || bt <= y {
		return Bounds{}
	}
	return Bounds{X: x, Y: y, W: r - x, H: bt - y}
}

// Union returns the smallest rectangle covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	x := math32.Min(b.X, o.X)
	y := math32.Min(b.Y, o.Y)
	r := math32.Max(b.Right(), o.Right())
	bt := math32.Max(b.Bottom(), o.Bottom())
	return Bounds{X: x, Y: y, W: r - x, H: bt - y}
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", b.X, b.Y, b.W, b.H)
}

// cacheEntry is the per-entity geometry record.
type cacheEntry struct {
	bounds  Bounds
	visible bool
}

// CachedBounds returns the last bounds the layout engine wrote for e.
func (cx *Context) CachedBounds(e entity.Entity) Bounds {
	c, _ := cx.cache.Get(e)
	return c.bounds
}

// IsVisible reports whether e was visible as of the last layout pass.
func (cx *Context) IsVisible(e entity.Entity) bool {
	c, ok := cx.cache.Get(e)
	return ok && c.visible
}

// SetVisible records the visibility of e.
func (cx *Context) SetVisible(e entity.Entity, visible bool) {
	c, _ := cx.cache.Get(e)
	c.visible = visible
	cx.cache.Set(e, c)
}

// SetBounds records new bounds for e. When the position or size
// actually changed it marks the entity for redraw and emits a
// [events.GeometryChanged] up the tree, so observers such as
// scroll containers can react.
func (cx *Context) SetBounds(e entity.Entity, b Bounds) {
	c, had := cx.cache.Get(e)
	posChanged := !had || c.bounds.X != b.X || c.bounds.Y != b.Y
	sizeChanged := !had || c.bounds.W != b.W || c.bounds.H != b.H
	if !posChanged && !sizeChanged {
		return
	}
	c.bounds = b
	if !had {
		c.visible = true
	}
	cx.cache.Set(e, c)

	flags := Retransform | Reclip | Redraw
	if sizeChanged {
		flags |= Relayout
	}
	cx.AddFlags(e, flags)

	cx.Send(events.New(events.GeometryChanged{
		Entity:      e,
		PosChanged:  posChanged,
		SizeChanged: sizeChanged,
	}).SetTarget(e).SetPropagation(events.Up))
}

// Flags returns the pending work bits for e.
func (cx *Context) Flags(e entity.Entity) SystemFlags {
	f, _ := cx.flags.Get(e)
	return f
}

// AddFlags sets pending work bits for e.
func (cx *Context) AddFlags(e entity.Entity, flags SystemFlags) {
	f, _ := cx.flags.Get(e)
	cx.flags.Set(e, f|flags)
}

// ClearFlags clears the given bits for every entity that has them.
// The frame runner calls this after the corresponding pass.
func (cx *Context) ClearFlags(flags SystemFlags) {
	for i, ent := range cx.flags.Entries() {
		cx.flags.Entries()[i].Value = ent.Value &^ flags
	}
}

// AnyFlags reports whether any entity has one of the given bits set.
func (cx *Context) AnyFlags(flags SystemFlags) bool {
	for _, ent := range cx.flags.Entries() {
		if ent.Value&flags != 0 {
			return true
		}
	}
	return false
}
