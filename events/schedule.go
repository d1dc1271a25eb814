// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"container/heap"
	"time"
)

// TimedHandle identifies a scheduled event so it can be cancelled
// before it is due.
type TimedHandle int

type timedEvent struct {
	handle TimedHandle
	event  *Event
	due    time.Time
}

type timedHeap []timedEvent

func (h timedHeap) Len() int           { return len(h) }
func (h timedHeap) Less(i, j int) bool { return h[i].due.Before(h[j].due) }
func (h timedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timedHeap) Push(x any)        { *h = append(*h, x.(timedEvent)) }

func (h *timedHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Schedule holds events with a due time. Timers and delayed events are
// modeled as schedule entries polled once per tick, not as separate
// threads; [Schedule.PopDue] moves everything due into the live queue.
// A Schedule must only be used from the UI goroutine.
type Schedule struct {
	heap timedHeap
	next TimedHandle
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Add schedules the event to become due at the given time and returns
// a handle that can cancel it.
func (s *Schedule) Add(ev *Event, due time.Time) TimedHandle {
	s.next++
	heap.Push(&s.heap, timedEvent{handle: s.next, event: ev, due: due})
	return s.next
}

// Cancel removes the scheduled event with the given handle, reporting
// whether it was still pending.
func (s *Schedule) Cancel(handle TimedHandle) bool {
	for i := range s.heap {
		if s.heap[i].handle == handle {
			heap.Remove(&s.heap, i)
			return true
		}
	}
	return false
}

// PopDue removes every event due at or before now and returns them in
// due-time order.
func (s *Schedule) PopDue(now time.Time) []*Event {
	var due []*Event
	for len(s.heap) > 0 && !s.heap[0].due.After(now) {
		it := heap.Pop(&s.heap).(timedEvent)
		due = append(due, it.event)
	}
	return due
}

// Next returns the due time of the earliest pending event, reporting
// false if the schedule is empty. Frame loops use this to sleep no
// longer than the next timer.
func (s *Schedule) Next() (time.Time, bool) {
	if len(s.heap) == 0 {
		return time.Time{}, false
	}
	return s.heap[0].due, true
}

// Len returns the number of pending scheduled events.
func (s *Schedule) Len() int {
	return len(s.heap)
}
