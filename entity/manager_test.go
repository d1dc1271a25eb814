// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity_test

import (
	"testing"

	"github.com/ravel-ui/ravel/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRootAlive(t *testing.T) {
	m := entity.NewManager()
	assert.True(t, m.IsAlive(entity.Root))
	assert.False(t, m.IsAlive(entity.Null))
}

func TestCreate(t *testing.T) {
	m := entity.NewManager()
	a, err := m.Create()
	require.NoError(t, err)
	b, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, entity.New(1, 0), a)
	assert.Equal(t, entity.New(2, 0), b)
	assert.True(t, m.IsAlive(a))
	assert.True(t, m.IsAlive(b))
	assert.False(t, a.IsNull())
}

func TestDestroy(t *testing.T) {
	m := entity.NewManager()
	a, err := m.Create()
	require.NoError(t, err)
	assert.True(t, m.Destroy(a))
	assert.False(t, m.IsAlive(a))
}

func TestDestroyTwice(t *testing.T) {
	m := entity.NewManager()
	a, err := m.Create()
	require.NoError(t, err)
	require.True(t, m.Destroy(a))
	assert.False(t, m.Destroy(a))
}

func TestDestroyNeverAllocated(t *testing.T) {
	m := entity.NewManager()
	assert.False(t, m.Destroy(entity.New(5, 0)))
	assert.False(t, m.IsAlive(entity.New(5, 0)))
}

// Destroyed indices are only recycled after the reuse threshold, and a
// recycled index carries a bumped generation so the old handle stays dead.
func TestRecycleGeneration(t *testing.T) {
	m := entity.NewManager()
	first, err := m.Create()
	require.NoError(t, err)
	require.True(t, m.Destroy(first))

	for i := 0; i < 4095; i++ {
		id, err := m.Create()
		require.NoError(t, err)
		require.True(t, m.Destroy(id))
	}

	reused, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, first.Index(), reused.Index())
	assert.Equal(t, first.Generation()+1, reused.Generation())
	assert.True(t, m.IsAlive(reused))
	assert.False(t, m.IsAlive(first))
}

func TestReset(t *testing.T) {
	m := entity.NewManager()
	_, err := m.Create()
	require.NoError(t, err)
	_, err = m.Create()
	require.NoError(t, err)
	m.Reset()
	assert.True(t, m.IsAlive(entity.Root))
	assert.False(t, m.IsAlive(entity.New(2, 0)))
	b, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, entity.New(1, 0), b)
}

func TestPacking(t *testing.T) {
	e := entity.New(1234, 56)
	assert.Equal(t, 1234, e.Index())
	assert.Equal(t, uint16(56), e.Generation())
	assert.Equal(t, "Entity(1234:56)", e.String())
	assert.Equal(t, "Entity(null)", entity.Null.String())
	assert.Panics(t, func() { entity.New(entity.IndexMask, 0) })
}

// Random create/destroy sequences: live handles are unique, destroyed
// handles are dead, and a handle is alive exactly when the manager says so.
func TestManagerProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := entity.NewManager()
		live := map[entity.Entity]bool{}
		var order []entity.Entity

		t.Repeat(map[string]func(*rapid.T){
			"create": func(t *rapid.T) {
				id, err := m.Create()
				if err != nil {
					t.Fatalf("create failed: %v", err)
				}
				if live[id] {
					t.Fatalf("create returned an already-live handle %v", id)
				}
				if id.IsNull() {
					t.Fatalf("create returned the null handle")
				}
				live[id] = true
				order = append(order, id)
			},
			"destroy": func(t *rapid.T) {
				if len(order) == 0 {
					t.Skip("nothing to destroy")
				}
				i := rapid.IntRange(0, len(order)-1).Draw(t, "victim")
				id := order[i]
				if !live[id] {
					t.Skip("already destroyed")
				}
				if !m.Destroy(id) {
					t.Fatalf("destroy of live handle %v failed", id)
				}
				live[id] = false
			},
			"": func(t *rapid.T) {
				for _, id := range order {
					if m.IsAlive(id) != live[id] {
						t.Fatalf("liveness mismatch for %v: manager says %v", id, m.IsAlive(id))
					}
				}
			},
		})
	})
}
