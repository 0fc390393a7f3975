// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the stacked raster buffers a chart pane draws on.
//
// A [Pair] owns two gg contexts of identical physical size:
//
//   - main: slow-changing content (grid, series, committed annotations)
//   - top: fast-changing overlay (crosshair, legend, the annotation being
//     edited)
//
// Each buffer has its own dirty flag. Invalidation only sets flags; the
// actual redraw happens in [Pair.Paint], which the chart calls once per
// scheduled frame. This keeps pointer-move traffic from repainting the
// expensive main content.
//
// # Usage
//
//	p, err := surface.NewPair(800, 600, 2) // media size, device pixel ratio
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	p.InvalidateAll()
//	p.Paint(drawContent, drawOverlay)
//	img := p.Composite()
//
// # Thread Safety
//
// Pair is NOT safe for concurrent use. The chart drives it from a single
// frame callback.
package surface
