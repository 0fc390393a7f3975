// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render contains the stateless layer renderers of a chart pane.
//
// Every renderer has the signature
//
//	func(dc *gg.Context, f *Frame)
//
// and draws one layer onto a buffer sized in bitmap pixels. A [Frame] is the
// read-only snapshot of everything a layer needs for one repaint: the bars,
// the visible range, the horizontal and vertical transforms, the device pixel
// ratio and the theme. Renderers never mutate the frame or the bars.
//
// # Layers
//
// Main buffer, bottom to top:
//
//   - [Background]
//   - [Grid]
//   - [Volume]
//   - [Series] (dispatches to [Candles], [OHLCBars], [Line], [Area], [Baseline])
//   - [CurrentPrice]
//   - [Indicators]
//
// Top buffer:
//
//   - [Crosshair]
//   - [Legend]
//
// The axes are drawn by [PriceAxis] and [TimeAxis] onto their own contexts.
//
// # Pixel Alignment
//
// Frame coordinates are media pixels. Renderers convert to bitmap pixels
// through the coord package so vertical and horizontal strokes cover whole
// device pixels. Candle bodies and wicks are never thinner or shorter than
// one device pixel.
package render
