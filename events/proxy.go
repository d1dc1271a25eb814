// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"errors"
	"sync/atomic"
)

// ErrApplicationClosed is returned by [Proxy.Send] after the owning
// application has shut down.
var ErrApplicationClosed = errors.New("events: application closed")

// Proxy injects events into an application's queue from outside the
// UI goroutine: a windowing backend, a timer, or a background task.
// A Proxy is a value and may be copied freely; all copies share the
// same queue and closed state. It is constructed by the application
// owner and handed down explicitly, so there is no ambient global
// queue.
type Proxy struct {
	queue  *Queue
	closed *atomic.Bool
	wake   func()
}

// NewProxy returns a proxy feeding the given queue. The optional wake
// function is called after each successful send, so a parked frame
// loop can be woken; it must be safe to call from any goroutine.
func NewProxy(queue *Queue, wake func()) Proxy {
	return Proxy{queue: queue, closed: &atomic.Bool{}, wake: wake}
}

// Send enqueues the event. It fails with [ErrApplicationClosed] once
// the proxy has been closed.
func (p Proxy) Send(ev *Event) error {
	if p.closed.Load() {
		return ErrApplicationClosed
	}
	p.queue.Push(ev)
	if p.wake != nil {
		p.wake()
	}
	return nil
}

// Close marks the proxy closed. Subsequent sends from any copy of the
// proxy fail.
func (p Proxy) Close() {
	p.closed.Store(true)
}
