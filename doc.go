// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package chart renders an interactive financial price chart onto gg
// contexts.
//
// # Overview
//
// A [Chart] is one price pane with a price axis on the right and a time
// axis below. The pane draws onto a pair of raster buffers (see package
// surface): the main buffer holds slow-changing content (grid, volume,
// the series, committed annotations, indicator overlays) and the top buffer
// holds the crosshair, the OHLCV legend and the annotation being edited.
// Pointer traffic only repaints the top buffer.
//
// # Quick Start
//
//	c, err := chart.New(960, 540, chart.WithPixelRatio(2))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	c.SetData(bars)
//	c.AddIndicator("sma", indicator.Params{"period": 20}, chart.IndicatorStyle{})
//	img := c.Snapshot()
//
// # Viewport
//
// The visible window is anchored at the newest bar:
//
//	end   = lastIndex - scrollOffset + rightPadding
//	start = end - visibleBars + 1
//
// both clamped to the data. Dragging scrolls by whole bars, the wheel zooms
// by [ZoomFactor] per notch and a two-finger pinch zooms proportionally to
// the finger distance. Prepending history keeps the same bars on screen.
//
// # Render Loop
//
// Mutations only set dirty flags. [Chart.Render] repaints what is dirty
// and redraws the axes when anything was repainted. A host with a
// display-refresh callback passes a [Scheduler] (for example a
// [FrameQueue] that it runs from vsync) and calls [Chart.Start].
//
// # Annotations
//
// [Chart.Engine] returns the drawing engine. Annotations are anchored to
// (price, time) and projected through the live viewport, so they follow
// scroll, zoom and scale mode changes.
//
// # Logging
//
// The package is silent by default. [SetLogger] enables structured logging
// through log/slog.
//
// # Thread Safety
//
// Chart is NOT safe for concurrent use. Call it from the host's UI
// goroutine only.
package chart
