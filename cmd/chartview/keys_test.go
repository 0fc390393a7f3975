// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/drawing"
	"github.com/gogpu/chart/ohlc"
	"github.com/gogpu/chart/render"
)

// newViewChart returns a chart with a 600x400 pane and 200 bars.
func newViewChart(t *testing.T) *chart.Chart {
	t.Helper()
	c, err := chart.New(600+render.PriceAxisWidth, 400+render.TimeAxisHeight)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	c.SetData(ohlc.NewWalk(0, 60, 1).Bars(200))
	return c
}

func TestToolKeys(t *testing.T) {
	c := newViewChart(t)
	for key, kind := range toolKeys {
		if !handleKey(c, key) {
			t.Errorf("handleKey(%v) = false", key)
			continue
		}
		if got, ok := c.Engine().ActiveTool(); !ok || got != kind {
			t.Errorf("ActiveTool() after key %v = %v, %v; want %v", key, got, ok, kind)
		}
	}
	if !handleKey(c, gpucontext.KeyEscape) {
		t.Error("Escape did not cancel the tool")
	}
	if _, ok := c.Engine().ActiveTool(); ok {
		t.Error("tool still active after Escape")
	}
	if handleKey(c, gpucontext.KeyQ) {
		t.Error("unbound key was used")
	}
}

func TestMouseDrawsAndDeletes(t *testing.T) {
	c := newViewChart(t)
	p := &pointer{c: c}

	handleKey(c, gpucontext.KeyH)
	p.move(300, 200)
	if !p.press(gpucontext.MouseButtonLeft, 300, 200) {
		t.Fatal("press while creating not used")
	}
	p.release(gpucontext.MouseButtonLeft, 300, 200)
	ds := c.Engine().Drawings()
	if len(ds) != 1 || ds[0].Kind != drawing.HorizontalLine {
		t.Fatalf("Drawings() = %+v, want one horizontal line", ds)
	}

	p.press(gpucontext.MouseButtonLeft, 100, 200)
	p.release(gpucontext.MouseButtonLeft, 100, 200)
	if _, ok := c.Engine().Selected(); !ok {
		t.Fatal("click on the line did not select it")
	}
	for _, key := range []gpucontext.Key{gpucontext.KeyDelete, gpucontext.KeyBackspace} {
		c.Engine().Select(ds[0].ID)
		if !handleKey(c, key) {
			t.Errorf("handleKey(%v) = false", key)
		}
		if n := len(c.Engine().Drawings()); n != 0 {
			t.Errorf("%d drawings after key %v, want 0", n, key)
		}
		if _, err := c.Engine().Add(ds[0]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
}

func TestMouseDragScrolls(t *testing.T) {
	c := newViewChart(t) // 100 visible bars, 6 px each
	p := &pointer{c: c}

	if p.press(gpucontext.MouseButtonRight, 300, 200) {
		t.Error("right button press was used")
	}
	p.press(gpucontext.MouseButtonLeft, 300, 200)
	p.move(360, 200)
	p.release(gpucontext.MouseButtonLeft, 360, 200)
	if got := c.Viewport().ScrollOffset; got != 10 {
		t.Errorf("ScrollOffset after 60 px drag = %d, want 10", got)
	}
	if ch := c.Crosshair(); !ch.Visible {
		t.Error("crosshair hidden after moving over the pane")
	}
}

func TestScrollZooms(t *testing.T) {
	c := newViewChart(t)
	p := &pointer{c: c}
	p.move(300, 200)

	before := c.Viewport().VisibleBars
	if !p.scroll(0, 1) {
		t.Fatal("scroll down not used")
	}
	if got := c.Viewport().VisibleBars; got <= before {
		t.Errorf("VisibleBars after scrolling down = %d, want > %d", got, before)
	}
	before = c.Viewport().VisibleBars
	p.scroll(0, -1)
	if got := c.Viewport().VisibleBars; got >= before {
		t.Errorf("VisibleBars after scrolling up = %d, want < %d", got, before)
	}
	if p.scroll(1, 0) {
		t.Error("horizontal scroll changed the zoom")
	}
}
