// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"slices"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/render"
)

type stage struct {
	name string
	fn   render.Func
}

// pipeline is an ordered list of layer renderers for one buffer. Stages
// run in registration order and cannot reorder each other.
type pipeline struct {
	stages []*stage
}

// add appends a stage and returns its unregister closure. The closure is
// idempotent.
func (p *pipeline) add(name string, fn render.Func) func() {
	s := &stage{name: name, fn: fn}
	p.stages = append(p.stages, s)
	return func() {
		if i := slices.Index(p.stages, s); i >= 0 {
			p.stages = slices.Delete(p.stages, i, i+1)
		}
	}
}

func (p *pipeline) names() []string {
	out := make([]string, len(p.stages))
	for i, s := range p.stages {
		out[i] = s.name
	}
	return out
}

// run calls every stage in order. It stops early once stop reports true,
// which happens when a stage closed the chart.
func (p *pipeline) run(dc *gg.Context, f *render.Frame, stop func() bool) {
	for _, s := range slices.Clone(p.stages) {
		if stop() {
			return
		}
		s.fn(dc, f)
	}
}

// installBuiltins registers the fixed layer order of both buffers.
func (c *Chart) installBuiltins() {
	c.main.add("background", render.Background)
	c.main.add("grid", render.Grid)
	c.main.add("volume", render.Volume)
	c.main.add("series", render.Series)
	c.main.add("current-price", render.CurrentPrice)
	c.main.add("drawings", c.drawings.DrawCommitted)
	c.main.add("indicators", render.Indicators)

	c.top.add("crosshair", render.Crosshair)
	c.top.add("legend", render.Legend)
	c.top.add("active-drawing", c.drawings.DrawActive)
}

// AddRenderer appends fn to the main buffer pipeline, after the built-in
// layers and any renderer added earlier. It returns a function that
// removes fn again.
func (c *Chart) AddRenderer(fn render.Func) func() {
	return c.addStage(&c.main, fn, c.invalidateMain)
}

// AddOverlayRenderer appends fn to the overlay buffer pipeline.
func (c *Chart) AddOverlayRenderer(fn render.Func) func() {
	return c.addStage(&c.top, fn, c.invalidateTop)
}

func (c *Chart) addStage(p *pipeline, fn render.Func, invalidate func()) func() {
	if c.closed || fn == nil {
		return func() {}
	}
	remove := p.add("custom", fn)
	invalidate()
	return func() {
		remove()
		if !c.closed {
			invalidate()
		}
	}
}
