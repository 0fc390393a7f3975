// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import "math"

// PointerAction is the kind of a pointer event.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
	PointerLeave
)

// PointerEvent is a mouse or pen event in chart media px, relative to the
// top-left corner of the chart.
type PointerEvent struct {
	Action PointerAction
	X, Y   float64
}

// WheelEvent zooms the time axis. Delta is in wheel notches; positive
// values zoom out (more bars).
type WheelEvent struct {
	X, Y  float64
	Delta float64
}

// TouchAction is the kind of a touch event.
type TouchAction int

const (
	TouchStart TouchAction = iota
	TouchMove
	TouchEnd
)

// TouchPoint is one finger in chart media px.
type TouchPoint struct {
	X, Y float64
}

// TouchEvent carries every finger currently on the surface.
type TouchEvent struct {
	Action  TouchAction
	Touches []TouchPoint
}

// KeyEvent is a key press. Key uses DOM names: "Escape", "Delete",
// "Backspace".
type KeyEvent struct {
	Key string
}

type dragState struct {
	startX      float64
	startOffset int
}

type pinchState struct {
	startDist    float64
	startVisible int
}

func (c *Chart) inPane(x, y float64) bool {
	w, h := c.paneSize()
	return x >= 0 && y >= 0 && x < w && y < h
}

// HandlePointer routes a pointer event to the annotation engine first and
// to viewport scrolling otherwise. It reports whether the event was used.
func (c *Chart) HandlePointer(ev PointerEvent) bool {
	if c.closed || !finite(ev.X) || !finite(ev.Y) {
		return false
	}
	switch ev.Action {
	case PointerDown:
		c.pointer = pointerState{x: ev.X, y: ev.Y, inside: c.inPane(ev.X, ev.Y)}
		c.updateCrosshair()
		if !c.pointer.inside {
			return false
		}
		if c.engine.PointerDown(ev.X, ev.Y) {
			return true
		}
		c.drag = &dragState{startX: ev.X, startOffset: c.scrollOffset}
		return true

	case PointerMove:
		c.pointer = pointerState{x: ev.X, y: ev.Y, inside: c.inPane(ev.X, ev.Y)}
		c.updateCrosshair()
		if c.engine.PointerMove(ev.X, ev.Y) {
			return true
		}
		if c.drag != nil {
			c.dragTo(ev.X)
			return true
		}
		return c.pointer.inside

	case PointerUp:
		used := c.engine.PointerUp(ev.X, ev.Y)
		if c.drag != nil {
			c.drag = nil
			used = true
		}
		return used

	case PointerLeave:
		c.pointer = pointerState{}
		c.drag = nil
		c.updateCrosshair()
		return true
	}
	return false
}

// dragTo scrolls by whole bars: dragging right reveals older bars.
func (c *Chart) dragTo(x float64) {
	spacing := c.layout().time.BarSpacing
	if spacing <= 0 {
		return
	}
	delta := int(math.Round((x - c.drag.startX) / spacing))
	c.ScrollTo(c.drag.startOffset + delta)
}

// HandleWheel zooms by ZoomFactor per notch, keeping the right edge fixed.
func (c *Chart) HandleWheel(ev WheelEvent) bool {
	if c.closed || ev.Delta == 0 || !finite(ev.Delta) {
		return false
	}
	target := int(math.Round(float64(c.visibleBars) * math.Pow(ZoomFactor, ev.Delta)))
	if target == c.visibleBars {
		if ev.Delta > 0 {
			target++
		} else {
			target--
		}
	}
	return c.SetVisibleBars(target)
}

// HandleTouch maps one finger to pointer events and two fingers to pinch
// zoom: visible = startVisible * startDist / dist.
func (c *Chart) HandleTouch(ev TouchEvent) bool {
	if c.closed {
		return false
	}
	switch ev.Action {
	case TouchStart:
		if len(ev.Touches) >= 2 {
			c.drag = nil
			if d := touchDist(ev.Touches); d > 0 {
				c.pinch = &pinchState{startDist: d, startVisible: c.visibleBars}
			}
			return true
		}
		if len(ev.Touches) == 1 && c.pinch == nil {
			t := ev.Touches[0]
			return c.HandlePointer(PointerEvent{Action: PointerDown, X: t.X, Y: t.Y})
		}

	case TouchMove:
		if c.pinch != nil {
			if len(ev.Touches) >= 2 {
				if d := touchDist(ev.Touches); d > 0 {
					v := float64(c.pinch.startVisible) * c.pinch.startDist / d
					c.SetVisibleBars(int(math.Round(v)))
				}
			}
			return true
		}
		if len(ev.Touches) == 1 {
			t := ev.Touches[0]
			return c.HandlePointer(PointerEvent{Action: PointerMove, X: t.X, Y: t.Y})
		}

	case TouchEnd:
		if c.pinch != nil {
			if len(ev.Touches) < 2 {
				c.pinch = nil
			}
			return true
		}
		return c.HandlePointer(PointerEvent{Action: PointerUp, X: c.pointer.x, Y: c.pointer.y})
	}
	return false
}

func touchDist(ts []TouchPoint) float64 {
	return math.Hypot(ts[1].X-ts[0].X, ts[1].Y-ts[0].Y)
}

// HandleKey forwards a key press to the annotation engine.
func (c *Chart) HandleKey(ev KeyEvent) bool {
	if c.closed {
		return false
	}
	return c.engine.KeyDown(ev.Key)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
