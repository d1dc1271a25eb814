// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "strings"

// SystemFlags is a per-entity bitset of pending work requested by any
// subsystem. The frame runner clears a flag after its pass has run.
type SystemFlags uint8

const (
	// Relayout requests a layout pass for the entity.
	Relayout SystemFlags = 1 << iota
	// Retransform requests recomputation of the entity's transform.
	Retransform
	// Reclip requests recomputation of the entity's clip region.
	Reclip
	// Redraw requests that the entity be repainted.
	Redraw
	// Rehide requests re-evaluation of the entity's visibility.
	Rehide
)

func (f SystemFlags) Has(flag SystemFlags) bool { return f&flag != 0 }

func (f SystemFlags) String() string {
	if f == 0 {
		return "none"
	}
	var b strings.Builder
	for _, n := range [...]struct {
		flag SystemFlags
		name string
	}{
		{Relayout, "relayout"},
		{Retransform, "retransform"},
		{Reclip, "reclip"},
		{Redraw, "redraw"},
		{Rehide, "rehide"},
	} {
		if f.Has(n.flag) {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n.name)
		}
	}
	return b.String()
}
