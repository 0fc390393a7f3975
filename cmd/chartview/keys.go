// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/drawing"
)

// toolKeys picks a drawing tool.
var toolKeys = map[gpucontext.Key]drawing.Kind{
	gpucontext.KeyT: drawing.TrendLine,
	gpucontext.KeyY: drawing.Ray,
	gpucontext.KeyE: drawing.ExtendedLine,
	gpucontext.KeyH: drawing.HorizontalLine,
	gpucontext.KeyJ: drawing.HorizontalRay,
	gpucontext.KeyV: drawing.VerticalLine,
	gpucontext.KeyX: drawing.CrossLine,
	gpucontext.KeyF: drawing.FibRetracement,
	gpucontext.KeyR: drawing.Rectangle,
	gpucontext.KeyP: drawing.ParallelChannel,
}

// editKeys are forwarded to the annotation engine.
var editKeys = map[gpucontext.Key]string{
	gpucontext.KeyEscape:    drawing.KeyEscape,
	gpucontext.KeyDelete:    drawing.KeyDelete,
	gpucontext.KeyBackspace: drawing.KeyBackspace,
}

// handleKey applies a key press to c. Space is handled by the caller.
func handleKey(c *chart.Chart, key gpucontext.Key) bool {
	if k, ok := toolKeys[key]; ok {
		return c.Engine().ActivateTool(k)
	}
	if name, ok := editKeys[key]; ok {
		return c.HandleKey(chart.KeyEvent{Key: name})
	}
	return false
}

// pointer forwards window mouse input to the chart in logical px.
type pointer struct {
	c    *chart.Chart
	x, y float64
}

func (p *pointer) move(x, y float64) bool {
	p.x, p.y = x, y
	return p.c.HandlePointer(chart.PointerEvent{Action: chart.PointerMove, X: x, Y: y})
}

func (p *pointer) press(b gpucontext.MouseButton, x, y float64) bool {
	if b != gpucontext.MouseButtonLeft {
		return false
	}
	p.x, p.y = x, y
	return p.c.HandlePointer(chart.PointerEvent{Action: chart.PointerDown, X: x, Y: y})
}

func (p *pointer) release(b gpucontext.MouseButton, x, y float64) bool {
	if b != gpucontext.MouseButtonLeft {
		return false
	}
	p.x, p.y = x, y
	return p.c.HandlePointer(chart.PointerEvent{Action: chart.PointerUp, X: x, Y: y})
}

// scroll zooms around the last cursor position. Scrolling down zooms out.
func (p *pointer) scroll(_, dy float64) bool {
	return p.c.HandleWheel(chart.WheelEvent{X: p.x, Y: p.y, Delta: dy})
}
