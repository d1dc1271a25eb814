// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app runs the frame loop: it owns the [core.Context], drains
// events, reconciles bindings and invokes the registered per-flag
// passes once per tick. Rendering backends attach through pass hooks
// and the event proxy.
package app

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ravel-ui/ravel/core"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
)

// PassFunc is a per-tick pass, run when any entity has its flag set.
// The flag is cleared for all entities after the pass returns.
type PassFunc func(cx *core.Context)

type pass struct {
	flag core.SystemFlags
	fn   PassFunc
}

// Application owns the context and the frame loop.
type Application struct {
	opts    Options
	cx      *core.Context
	em      *core.EventManager
	passes  []pass
	watcher *styleWatcher
	running atomic.Bool
	wake    chan struct{}
}

// New builds an application and runs build with the root as the
// current entity to construct the initial view tree.
func New(opts Options, build func(cx *core.Context)) *Application {
	a := &Application{
		opts: opts,
		cx:   core.NewContext(),
		wake: make(chan struct{}, 1),
	}
	a.em = core.NewEventManager(a.cx)
	a.cx.SetWake(func() {
		select {
		case a.wake <- struct{}{}:
		default:
		}
	})
	a.cx.AddListener(entity.Root, func(ec *core.EventContext, ev *events.Event) {
		events.Map(ev, func(_ events.WindowClose, ev *events.Event) {
			a.Stop()
		})
		events.Map(ev, func(r events.WindowResize, ev *events.Event) {
			a.cx.SetBounds(entity.Root, core.Bounds{W: r.Width, H: r.Height})
		})
	})
	a.cx.SetBounds(entity.Root, core.Bounds{W: opts.Width, H: opts.Height})
	if build != nil {
		build(a.cx)
	}
	return a
}

// Context returns the owned context, for tests and backends.
func (a *Application) Context() *core.Context {
	return a.cx
}

// Proxy returns a handle for injecting events from other goroutines.
func (a *Application) Proxy() events.Proxy {
	return a.cx.Proxy()
}

// OnPass registers fn to run each tick after binding reconciliation,
// when any entity carries flag. Passes run in registration order,
// which should follow the pipeline: relayout before redraw.
func (a *Application) OnPass(flag core.SystemFlags, fn PassFunc) {
	a.passes = append(a.passes, pass{flag: flag, fn: fn})
}

// Tick runs one frame: due timers, event drain, binding pass, then
// the flag-driven passes. A non-nil error is fatal to the frame loop.
func (a *Application) Tick(now time.Time) error {
	a.cx.PollTimers(now)
	if err := a.em.Flush(); err != nil {
		return err
	}
	a.cx.BindingPass()
	// Bindings may emit; deliver within the same tick.
	if err := a.em.Flush(); err != nil {
		return err
	}
	if tr := a.cx.Tree(); tr.Changed {
		a.cx.AddFlags(entity.Root, core.Relayout|core.Redraw)
		tr.Changed = false
	}
	for _, p := range a.passes {
		if !a.cx.AnyFlags(p.flag) {
			continue
		}
		p.fn(a.cx)
		a.cx.ClearFlags(p.flag)
	}
	return nil
}

// Run ticks at the configured frame rate until [Application.Stop].
// It blocks the calling goroutine, which becomes the UI thread.
func (a *Application) Run() error {
	if a.opts.Stylesheet != "" {
		w, err := watchStylesheet(a.opts.Stylesheet, a.Proxy())
		if err != nil {
			slog.Error("stylesheet watch failed", "path", a.opts.Stylesheet, "err", err)
		} else {
			a.watcher = w
			defer a.watcher.close()
		}
	}

	interval := time.Second / time.Duration(max(a.opts.FrameRate, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.running.Store(true)
	defer a.cx.Close()
	for a.running.Load() {
		select {
		case now := <-ticker.C:
			if err := a.Tick(now); err != nil {
				return err
			}
		case <-a.wake:
			if err := a.Tick(time.Now()); err != nil {
				return err
			}
		}
	}
	// Final drain so shutdown handlers run.
	return a.Tick(time.Now())
}

// Stop ends the frame loop after the current tick. Safe to call from
// any goroutine.
func (a *Application) Stop() {
	a.running.Store(false)
	select {
	case a.wake <- struct{}{}:
	default:
	}
}
