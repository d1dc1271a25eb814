// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO freelist-based event queue. Push may be
// called from any goroutine (this is how a backend or timer thread
// injects events through a [Proxy]); Pop must only be called from the
// UI goroutine's drain loop.
type Queue struct {
	head atomic.Pointer[queueItem]
	tail atomic.Pointer[queueItem]
	len  atomic.Uint64
}

// NewQueue returns an initialized queue.
func NewQueue() *Queue {
	q := &Queue{}
	head := &queueItem{}
	q.head.Store(head)
	q.tail.Store(head)
	return q
}

type queueItem struct {
	next atomic.Pointer[queueItem]
	v    *Event
}

var queueItemPool = sync.Pool{
	New: func() any { return &queueItem{} },
}

// Push adds an event to the end of the queue.
func (q *Queue) Push(ev *Event) {
	i := queueItemPool.Get().(*queueItem)
	i.next.Store(nil)
	i.v = ev

	var last, lastnext *queueItem
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					q.len.Add(1)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}

// Pop removes and returns the event at the front of the queue.
// It returns nil if the queue is empty.
func (q *Queue) Pop() *Event {
	var first, last, firstnext *queueItem
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					return nil
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v := firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(^uint64(0))
					first.v = nil
					queueItemPool.Put(first)
					return v
				}
			}
		}
	}
}

// Len returns the number of events in the queue.
func (q *Queue) Len() int {
	return int(q.len.Load())
}
