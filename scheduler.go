// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"slices"
	"sync"
)

// Scheduler runs a callback once, on the next display refresh. The
// returned function cancels the callback if it has not run yet.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// FrameQueue is a Scheduler driven by the host: the host calls Run once
// per display refresh (from its vsync or draw callback).
//
// FrameQueue is safe for concurrent use.
type FrameQueue struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]func()
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[uint64]func())}
}

// Schedule queues fn for the next Run.
func (q *FrameQueue) Schedule(fn func()) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	id := q.next
	q.pending[id] = fn
	return func() {
		q.mu.Lock()
		delete(q.pending, id)
		q.mu.Unlock()
	}
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Run executes the callbacks queued before the call, in scheduling order.
// Callbacks scheduled while running wait for the next Run. It returns the
// number of callbacks executed.
func (q *FrameQueue) Run() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = make(map[uint64]func())
	q.mu.Unlock()

	ids := make([]uint64, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		batch[id]()
	}
	return len(ids)
}
