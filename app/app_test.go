// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ravel-ui/ravel/app"
	"github.com/ravel-ui/ravel/core"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsOpen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("title = \"Demo\"\nframe-rate = 30\n"), 0o644))

	o := app.NewOptions()
	require.NoError(t, o.Open(file))
	assert.Equal(t, "Demo", o.Title)
	assert.Equal(t, 30, o.FrameRate)
	// Unnamed fields keep their defaults.
	assert.Equal(t, float32(800), o.Width)

	assert.Error(t, o.Open(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestOptionsSave(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	o := app.NewOptions()
	o.Title = "Saved"
	require.NoError(t, o.Save(file))

	got := app.Options{}
	require.NoError(t, got.Open(file))
	assert.Equal(t, o, got)
}

type probe struct {
	core.ViewBase
	pings int
}

type ping struct{}

func (p *probe) Event(ec *core.EventContext, ev *events.Event) {
	events.Map(ev, func(_ ping, ev *events.Event) {
		p.pings++
	})
}

func TestTick(t *testing.T) {
	v := &probe{}
	var e entity.Entity
	a := app.New(app.NewOptions(), func(cx *core.Context) {
		var err error
		e, err = cx.AddView(v)
		require.NoError(t, err)
	})

	layouts := 0
	a.OnPass(core.Relayout, func(cx *core.Context) { layouts++ })

	a.Context().EmitTo(e, ping{})
	require.NoError(t, a.Tick(time.Now()))
	assert.Equal(t, 1, v.pings)
	// AddView marked the new entity for layout; the pass ran once and
	// the flag was cleared.
	assert.Equal(t, 1, layouts)
	require.NoError(t, a.Tick(time.Now()))
	assert.Equal(t, 1, layouts)
}

func TestTickTreeChange(t *testing.T) {
	a := app.New(app.NewOptions(), nil)
	layouts := 0
	a.OnPass(core.Relayout, func(cx *core.Context) { layouts++ })

	// Settle the initial build, then watch a bare structural
	// mutation schedule exactly one relayout.
	require.NoError(t, a.Tick(time.Now()))
	layouts = 0

	_, err := a.Context().NewEntity()
	require.NoError(t, err)
	require.NoError(t, a.Tick(time.Now()))
	assert.Equal(t, 1, layouts)
	assert.False(t, a.Context().Tree().Changed)
	require.NoError(t, a.Tick(time.Now()))
	assert.Equal(t, 1, layouts)
}

func TestScheduledTick(t *testing.T) {
	v := &probe{}
	var e entity.Entity
	a := app.New(app.NewOptions(), func(cx *core.Context) {
		var err error
		e, err = cx.AddView(v)
		require.NoError(t, err)
	})

	now := time.Now()
	a.Context().ScheduleAt(events.New(ping{}).SetDirect(e), now.Add(time.Minute))
	require.NoError(t, a.Tick(now))
	assert.Equal(t, 0, v.pings)
	require.NoError(t, a.Tick(now.Add(2*time.Minute)))
	assert.Equal(t, 1, v.pings)
}

func TestWindowResize(t *testing.T) {
	a := app.New(app.NewOptions(), nil)
	assert.Equal(t, core.Bounds{W: 800, H: 600}, a.Context().CachedBounds(entity.Root))

	a.Context().Send(events.New(events.WindowResize{Width: 1024, Height: 768}).SetDirect(entity.Root))
	require.NoError(t, a.Tick(time.Now()))
	assert.Equal(t, core.Bounds{W: 1024, H: 768}, a.Context().CachedBounds(entity.Root))
}

func TestRunStopsOnWindowClose(t *testing.T) {
	opts := app.NewOptions()
	opts.FrameRate = 240
	a := app.New(opts, nil)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	proxy := a.Proxy()
	require.NoError(t, proxy.Send(events.New(events.WindowClose{}).SetDirect(entity.Root)))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on WindowClose")
	}
	// The proxy is closed with the application.
	assert.ErrorIs(t, proxy.Send(events.New(ping{})), events.ErrApplicationClosed)
}

func TestStylesheetReload(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "main.css")
	require.NoError(t, os.WriteFile(sheet, []byte("root {}"), 0o644))

	opts := app.NewOptions()
	opts.FrameRate = 240
	opts.Stylesheet = sheet
	a := app.New(opts, nil)

	restyles := make(chan struct{}, 8)
	a.Context().AddListener(entity.Root, func(ec *core.EventContext, ev *events.Event) {
		events.Map(ev, func(_ events.Restyle, ev *events.Event) {
			restyles <- struct{}{}
		})
	})

	done := make(chan error, 1)
	go func() { done <- a.Run() }()
	// Give the watcher a moment to establish.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(sheet, []byte("root { color: red }"), 0o644))

	select {
	case <-restyles:
	case <-time.After(5 * time.Second):
		t.Fatal("no restyle after stylesheet write")
	}
	a.Stop()
	require.NoError(t, <-done)
}
