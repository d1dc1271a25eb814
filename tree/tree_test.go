// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ent(i uint64) entity.Entity {
	return entity.New(i, 0)
}

// children returns the child chain of parent by following first-child
// and next-sibling links.
func children(t *tree.Tree, parent entity.Entity) []entity.Entity {
	var out []entity.Entity
	for c := t.FirstChild(parent); !c.IsNull(); c = t.NextSibling(c) {
		out = append(out, c)
	}
	return out
}

func TestAdd(t *testing.T) {
	tr := tree.New()
	a, b, c := ent(1), ent(2), ent(3)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, a))

	assert.Equal(t, []entity.Entity{a, b}, children(tr, entity.Root))
	assert.Equal(t, entity.Root, tr.Parent(a))
	assert.Equal(t, a, tr.Parent(c))
	assert.Equal(t, a, tr.FirstChild(entity.Root))
	assert.Equal(t, b, tr.LastChild(entity.Root))
	assert.Equal(t, b, tr.NextSibling(a))
	assert.Equal(t, a, tr.PrevSibling(b))
	assert.True(t, tr.IsFirstChild(a))
	assert.True(t, tr.IsLastChild(b))
	assert.True(t, tr.IsSibling(a, b))
	assert.False(t, tr.IsSibling(a, c))
	assert.Equal(t, 2, tr.NumChildren(entity.Root))
	assert.Equal(t, 1, tr.ChildIndex(b))
	assert.True(t, tr.HasChildren(a))
	assert.False(t, tr.HasChildren(b))
}

func TestAddErrors(t *testing.T) {
	tr := tree.New()
	assert.ErrorIs(t, tr.Add(entity.Null, entity.Root), tree.ErrNullEntity)
	assert.ErrorIs(t, tr.Add(ent(1), entity.Null), tree.ErrNullEntity)
	assert.ErrorIs(t, tr.Add(ent(1), ent(40)), tree.ErrInvalidParent)
}

func TestRemoveSubtree(t *testing.T) {
	tr := tree.New()
	a, b, c, d := ent(1), ent(2), ent(3), ent(4)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, a))
	require.NoError(t, tr.Add(d, c))

	removed, err := tr.Remove(a)
	require.NoError(t, err)
	// Leaves first, so side tables can be purged children-before-parents.
	assert.Equal(t, []entity.Entity{d, c, a}, removed)

	assert.Equal(t, []entity.Entity{b}, children(tr, entity.Root))
	assert.True(t, tr.Parent(a).IsNull())
	assert.True(t, tr.FirstChild(a).IsNull())
	assert.True(t, tr.Parent(c).IsNull())
	assert.True(t, tr.IsFirstChild(b))
	assert.True(t, tr.IsLastChild(b))
}

func TestRemoveMiddleSibling(t *testing.T) {
	tr := tree.New()
	a, b, c := ent(1), ent(2), ent(3)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, entity.Root))

	_, err := tr.Remove(b)
	require.NoError(t, err)
	assert.Equal(t, []entity.Entity{a, c}, children(tr, entity.Root))
	assert.Equal(t, c, tr.NextSibling(a))
	assert.Equal(t, a, tr.PrevSibling(c))
}

func TestRemoveErrors(t *testing.T) {
	tr := tree.New()
	_, err := tr.Remove(entity.Null)
	assert.ErrorIs(t, err, tree.ErrNullEntity)
	_, err = tr.Remove(ent(17))
	assert.ErrorIs(t, err, tree.ErrNoEntity)
}

func TestSetParent(t *testing.T) {
	tr := tree.New()
	a, b, c := ent(1), ent(2), ent(3)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, a))

	require.NoError(t, tr.SetParent(c, b))
	assert.Equal(t, b, tr.Parent(c))
	assert.Equal(t, []entity.Entity{c}, children(tr, b))
	assert.Empty(t, children(tr, a))

	// Moving an entity under its own descendant would create a cycle.
	assert.ErrorIs(t, tr.SetParent(b, c), tree.ErrInvalidParent)
	assert.ErrorIs(t, tr.SetParent(a, a), tree.ErrInvalidParent)
	assert.ErrorIs(t, tr.SetParent(entity.Null, a), tree.ErrNullEntity)
	assert.ErrorIs(t, tr.SetParent(ent(9), a), tree.ErrNoEntity)
}

func TestSetFirstChild(t *testing.T) {
	tr := tree.New()
	a, b, c := ent(1), ent(2), ent(3)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, entity.Root))

	require.NoError(t, tr.SetFirstChild(c))
	assert.Equal(t, []entity.Entity{c, a, b}, children(tr, entity.Root))

	assert.ErrorIs(t, tr.SetFirstChild(c), tree.ErrAlreadyFirstChild)
	assert.ErrorIs(t, tr.SetFirstChild(entity.Null), tree.ErrNullEntity)
}

func TestSetNextSibling(t *testing.T) {
	tr := tree.New()
	a, b, c := ent(1), ent(2), ent(3)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, entity.Root))

	require.NoError(t, tr.SetNextSibling(a, c))
	assert.Equal(t, []entity.Entity{a, c, b}, children(tr, entity.Root))

	assert.ErrorIs(t, tr.SetNextSibling(a, c), tree.ErrAlreadySibling)

	// Different parents cannot be made siblings.
	d := ent(4)
	require.NoError(t, tr.Add(d, a))
	assert.ErrorIs(t, tr.SetNextSibling(b, d), tree.ErrInvalidSibling)
}

func TestSetPrevSibling(t *testing.T) {
	tr := tree.New()
	a, b, c := ent(1), ent(2), ent(3)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))
	require.NoError(t, tr.Add(c, entity.Root))

	require.NoError(t, tr.SetPrevSibling(a, c))
	assert.Equal(t, []entity.Entity{c, a, b}, children(tr, entity.Root))

	assert.ErrorIs(t, tr.SetPrevSibling(a, c), tree.ErrAlreadySibling)
}

func TestInsertBeforeAfter(t *testing.T) {
	tr := tree.New()
	a, b := ent(1), ent(2)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, entity.Root))

	x, y := ent(3), ent(4)
	require.NoError(t, tr.InsertBefore(b, x))
	require.NoError(t, tr.InsertAfter(b, y))
	assert.Equal(t, []entity.Entity{a, x, b, y}, children(tr, entity.Root))

	// Inserting before an only child.
	c, d := ent(5), ent(6)
	require.NoError(t, tr.Add(c, a))
	require.NoError(t, tr.InsertBefore(c, d))
	assert.Equal(t, []entity.Entity{d, c}, children(tr, a))

	// Inserting after the last child: the appended entity is already
	// in place, so no relink happens.
	e := ent(7)
	require.NoError(t, tr.InsertAfter(c, e))
	assert.Equal(t, []entity.Entity{d, c, e}, children(tr, a))

	assert.ErrorIs(t, tr.InsertBefore(entity.Root, ent(8)), tree.ErrInvalidSibling)
}

func TestIgnored(t *testing.T) {
	tr := tree.New()
	a, b := ent(1), ent(2)
	require.NoError(t, tr.Add(a, entity.Root))
	require.NoError(t, tr.Add(b, a))

	tr.SetIgnored(a, true)
	assert.True(t, tr.IsIgnored(a))
	assert.Equal(t, entity.Root, tr.LayoutParent(b))

	tr.SetIgnored(a, false)
	assert.Equal(t, a, tr.LayoutParent(b))
}

func TestRecycledSlot(t *testing.T) {
	tr := tree.New()
	a := ent(1)
	require.NoError(t, tr.Add(a, entity.Root))
	_, err := tr.Remove(a)
	require.NoError(t, err)

	// A recycled index with a bumped generation reuses the slot cleanly.
	a2 := entity.New(1, 1)
	require.NoError(t, tr.Add(a2, entity.Root))
	assert.Equal(t, []entity.Entity{a2}, children(tr, entity.Root))
}

// Random mutation sequences keep the adjacency arrays consistent:
// every live entity except root has exactly one parent, the sibling
// chain per parent is a consistent doubly-linked list, and pre-order
// traversal visits every live entity exactly once.
func TestConsistencyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := tree.New()
		live := []entity.Entity{entity.Root}
		next := uint64(1)

		t.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				parent := live[rapid.IntRange(0, len(live)-1).Draw(t, "parent")]
				e := entity.New(next, 0)
				next++
				if err := tr.Add(e, parent); err != nil {
					t.Fatalf("add failed: %v", err)
				}
				live = append(live, e)
			},
			"remove": func(t *rapid.T) {
				if len(live) < 2 {
					t.Skip("only root")
				}
				e := live[rapid.IntRange(1, len(live)-1).Draw(t, "victim")]
				removed, err := tr.Remove(e)
				if err != nil {
					t.Fatalf("remove failed: %v", err)
				}
				gone := map[entity.Entity]bool{}
				for _, r := range removed {
					gone[r] = true
				}
				kept := live[:0]
				for _, l := range live {
					if !gone[l] {
						kept = append(kept, l)
					}
				}
				live = kept
			},
			"reparent": func(t *rapid.T) {
				if len(live) < 3 {
					t.Skip("too small")
				}
				e := live[rapid.IntRange(1, len(live)-1).Draw(t, "entity")]
				parent := live[rapid.IntRange(0, len(live)-1).Draw(t, "newParent")]
				err := tr.SetParent(e, parent)
				if err != nil && err != tree.ErrInvalidParent {
					t.Fatalf("reparent failed: %v", err)
				}
			},
			"": func(t *rapid.T) {
				seen := map[entity.Entity]int{}
				it := tree.Full(tr)
				for e, ok := it.Next(); ok; e, ok = it.Next() {
					seen[e]++
					if seen[e] > 1 {
						t.Fatalf("entity %v visited more than once", e)
					}
					if e != entity.Root {
						if tr.Parent(e).IsNull() {
							t.Fatalf("live entity %v has no parent", e)
						}
					}
				}
				if len(seen) != len(live) {
					t.Fatalf("traversal visited %d entities, want %d", len(seen), len(live))
				}
				for _, e := range live {
					if seen[e] != 1 {
						t.Fatalf("live entity %v not visited", e)
					}
					// Sibling chain from first child reaches every
					// child exactly once and is doubly linked.
					var prev entity.Entity = entity.Null
					for c := tr.FirstChild(e); !c.IsNull(); c = tr.NextSibling(c) {
						if tr.PrevSibling(c) != prev {
							t.Fatalf("broken prev link at %v", c)
						}
						if tr.Parent(c) != e {
							t.Fatalf("child %v has wrong parent", c)
						}
						prev = c
					}
					if tr.LastChild(e) != prev {
						t.Fatalf("last child mismatch for %v", e)
					}
				}
			},
		})
	})
}
