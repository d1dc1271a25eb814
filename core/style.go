// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/ravel-ui/ravel/entity"

// Style holds the raw per-entity style properties. The core does not
// interpret them; the cascade and selector matching live in the style
// engine, which reads and writes this table through the Context.
type Style struct {
	Element    string
	Classes    []string
	Properties map[string]string
}

// StyleOf returns the style record for e, or a zero Style.
func (cx *Context) StyleOf(e entity.Entity) Style {
	s, _ := cx.style.Get(e)
	return s
}

// SetStyleProperty sets a single raw property on e and requests a
// restyle pass.
func (cx *Context) SetStyleProperty(e entity.Entity, name, value string) {
	s, _ := cx.style.Get(e)
	if s.Properties == nil {
		s.Properties = map[string]string{}
	}
	s.Properties[name] = value
	cx.style.Set(e, s)
	cx.AddFlags(e, Relayout|Redraw)
}

// AddClass adds a style class to e if not already present.
func (cx *Context) AddClass(e entity.Entity, class string) {
	s, _ := cx.style.Get(e)
	for _, c := range s.Classes {
		if c == class {
			return
		}
	}
	s.Classes = append(s.Classes, class)
	cx.style.Set(e, s)
	cx.AddFlags(e, Relayout|Redraw)
}

// RemoveClass removes a style class from e.
func (cx *Context) RemoveClass(e entity.Entity, class string) {
	s, ok := cx.style.Get(e)
	if !ok {
		return
	}
	for i, c := range s.Classes {
		if c == class {
			s.Classes = append(s.Classes[:i], s.Classes[i+1:]...)
			cx.style.Set(e, s)
			cx.AddFlags(e, Relayout|Redraw)
			return
		}
	}
}
