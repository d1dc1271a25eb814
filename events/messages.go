// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "github.com/ravel-ui/ravel/entity"

// Window-level messages exchanged with the platform backend. They are
// targeted at the root entity, which always receives them.

// WindowResize reports a new window size.
type WindowResize struct {
	Width  float32
	Height float32
}

// WindowClose requests application shutdown.
type WindowClose struct{}

// Redraw requests a redraw pass.
type Redraw struct{}

// Restyle requests a restyle pass, e.g. after a stylesheet changed on
// disk.
type Restyle struct{}

// GeometryChanged is emitted by the geometry change-notification
// system when the layout engine writes new bounds for an entity.
type GeometryChanged struct {
	Entity      entity.Entity
	PosChanged  bool
	SizeChanged bool
}
