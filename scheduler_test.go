// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import "testing"

func TestFrameQueue(t *testing.T) {
	q := NewFrameQueue()
	var order []int
	q.Schedule(func() { order = append(order, 1) })
	cancel := q.Schedule(func() { order = append(order, 2) })
	q.Schedule(func() {
		order = append(order, 3)
		q.Schedule(func() { order = append(order, 4) })
	})
	cancel()
	cancel()

	if n := q.Run(); n != 2 {
		t.Errorf("Run() = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, want [1 3]", order)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
	q.Run()
	if len(order) != 3 || order[2] != 4 {
		t.Errorf("order = %v, want [1 3 4]", order)
	}
}
