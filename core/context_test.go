// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core_test

import (
	"testing"

	"github.com/ravel-ui/ravel/binding"
	"github.com/ravel-ui/ravel/core"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
	"github.com/ravel-ui/ravel/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	cx := core.NewContext()
	assert.Equal(t, entity.Root, cx.Current())

	e, err := cx.NewEntity()
	require.NoError(t, err)
	cx.WithCurrent(e, func() {
		assert.Equal(t, e, cx.Current())
		cx.WithCurrent(entity.Root, func() {
			assert.Equal(t, entity.Root, cx.Current())
		})
		assert.Equal(t, e, cx.Current())
	})
	assert.Equal(t, entity.Root, cx.Current())
}

func TestNewEntityParenting(t *testing.T) {
	cx := core.NewContext()
	a, err := cx.NewEntity()
	require.NoError(t, err)
	assert.Equal(t, entity.Root, cx.Tree().Parent(a))

	var b entity.Entity
	cx.WithCurrent(a, func() {
		b, err = cx.NewEntity()
	})
	require.NoError(t, err)
	assert.Equal(t, a, cx.Tree().Parent(b))
}

func TestRemoveSubtreePurges(t *testing.T) {
	cx := core.NewContext()
	a, err := cx.AddView(&label{})
	require.NoError(t, err)
	var b entity.Entity
	cx.WithCurrent(a, func() {
		b, err = cx.AddView(&label{})
	})
	require.NoError(t, err)

	require.NoError(t, cx.Remove(a))
	assert.False(t, cx.IsAlive(a))
	assert.False(t, cx.IsAlive(b))
	assert.Nil(t, cx.ViewOf(a))
	assert.Nil(t, cx.ViewOf(b))

	assert.ErrorIs(t, cx.Remove(a), tree.ErrNoEntity)
}

func TestMoveToParent(t *testing.T) {
	cx := core.NewContext()
	a, err := cx.NewEntity()
	require.NoError(t, err)
	b, err := cx.NewEntity()
	require.NoError(t, err)

	require.NoError(t, cx.MoveToParent(b, a))
	assert.Equal(t, a, cx.Tree().Parent(b))

	// Reparenting under a descendant is rejected.
	assert.ErrorIs(t, cx.MoveToParent(a, b), tree.ErrInvalidParent)
}

func TestProxyInjection(t *testing.T) {
	cx := core.NewContext()
	em := core.NewEventManager(cx)
	var log []string
	_, _, p1, _ := buildChain(t, cx, &log, "")

	woken := 0
	cx.SetWake(func() { woken++ })
	proxy := cx.Proxy()

	require.NoError(t, proxy.Send(events.New(ping{}).SetDirect(p1)))
	assert.Equal(t, 1, woken)
	require.NoError(t, em.Flush())
	assert.Equal(t, []string{"p1"}, log)

	cx.Close()
	assert.ErrorIs(t, proxy.Send(events.New(ping{})), events.ErrApplicationClosed)
}

func TestModelFor(t *testing.T) {
	cx := core.NewContext()
	outer := &appState{Value: 1}
	inner := &appState{Value: 2}

	a, err := cx.NewEntity()
	require.NoError(t, err)
	var b entity.Entity
	cx.WithCurrent(a, func() {
		cx.SetModel(outer)
		b, err = cx.NewEntity()
		require.NoError(t, err)
		cx.WithCurrent(b, func() {
			cx.SetModel(inner)
		})
	})

	// The nearest enclosing model wins.
	m, owner := cx.ModelFor(b, binding.SourceType[appState]())
	assert.Equal(t, b, owner)
	assert.Same(t, inner, m)

	m, owner = cx.ModelFor(a, binding.SourceType[appState]())
	assert.Equal(t, a, owner)
	assert.Same(t, outer, m)
}
