// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import "github.com/gogpu/hanoi"

// eventQueue collects window callbacks between polls.
type eventQueue struct {
	events []hanoi.Event
}

func (q *eventQueue) push(e hanoi.Event) { q.events = append(q.events, e) }

// drain returns every queued event and leaves the queue empty.
func (q *eventQueue) drain() []hanoi.Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
