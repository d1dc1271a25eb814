// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/goccy/go-json"
	"github.com/ravel-ui/ravel/entity"
)

// Snapshot is a serializable view of a subtree's structure, used for
// debugging and for asserting tree shape in tests.
type Snapshot struct {
	Entity     string     `json:"entity"`
	Index      int        `json:"index"`
	Generation uint16     `json:"generation"`
	Ignored    bool       `json:"ignored,omitempty"`
	Children   []Snapshot `json:"children,omitempty"`
}

// SnapshotOf returns the structure snapshot of the subtree rooted at
// the given entity.
func (t *Tree) SnapshotOf(root entity.Entity) Snapshot {
	s := Snapshot{
		Entity:     root.String(),
		Index:      root.Index(),
		Generation: root.Generation(),
		Ignored:    t.IsIgnored(root),
	}
	it := NewChildIterator(t, root)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		s.Children = append(s.Children, t.SnapshotOf(c))
	}
	return s
}

// MarshalJSON implements [json.Marshaler], encoding the whole tree
// structure from the root.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.SnapshotOf(entity.Root))
}

// String returns an indented JSON rendering of the tree structure.
func (t *Tree) String() string {
	b, err := json.MarshalIndent(t.SnapshotOf(entity.Root), "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(b)
}
