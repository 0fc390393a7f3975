// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"math"

	"github.com/gogpu/chart/coord"
	"github.com/gogpu/chart/drawing"
	"github.com/gogpu/chart/ohlc"
	"github.com/gogpu/chart/render"
)

const (
	// priceMargin is the share of the visible price span added above and
	// below the bars.
	priceMargin = 0.08

	// tickSpacing is the approximate vertical distance between price ticks
	// in media px.
	tickSpacing = 50.0
)

// layout is the geometry of one frame, derived from the viewport state.
// It is cached until the next main-buffer invalidation.
type layout struct {
	paneW, paneH float64
	rng          coord.Range
	time         coord.TimeScale
	price        coord.PriceTransform
	scale        coord.PriceScale
}

func (c *Chart) layout() *layout {
	if c.cached != nil {
		return c.cached
	}
	w, h := c.paneSize()
	w, h = max(w, 1), max(h, 1)
	last := len(c.drawn) - 1
	pad := c.opts.rightPadding

	l := &layout{
		paneW: w,
		paneH: h,
		rng:   coord.VisibleRange(last, c.scrollOffset, pad, c.visibleBars),
		time: coord.TimeScale{
			LeftEdge:   float64(coord.LeftEdge(last, c.scrollOffset, pad, c.visibleBars)),
			BarSpacing: w / float64(c.visibleBars),
		},
	}
	lo, hi := c.priceBounds(l.rng)
	l.price = coord.NewPriceTransform(lo, hi, h, c.mode.Log())

	nice := coord.NiceScale(lo, hi, max(2, int(h/tickSpacing)))
	l.scale = coord.PriceScale{Min: lo, Max: hi, Step: nice.Step}
	for _, t := range nice.Ticks {
		if t >= lo && t <= hi {
			l.scale.Ticks = append(l.scale.Ticks, t)
		}
	}
	c.cached = l
	return l
}

// priceBounds returns the vertical range of the frame: the manual range,
// or the visible lows and highs widened by priceMargin.
func (c *Chart) priceBounds(r coord.Range) (float64, float64) {
	if c.manual {
		return c.manualMin, c.manualMax
	}
	lo, hi, ok := visibleExtent(c.drawn, r)
	if !ok {
		return 0, 1
	}
	if c.mode.Log() && lo > 0 {
		ll, lh := math.Log(lo), math.Log(hi)
		m := (lh - ll) * priceMargin
		if m == 0 {
			m = 0.01
		}
		return math.Exp(ll - m), math.Exp(lh + m)
	}
	m := (hi - lo) * priceMargin
	if m == 0 {
		m = math.Max(math.Abs(hi)*0.01, 0.5)
	}
	return lo - m, hi + m
}

// visibleExtent returns the lowest low and highest high of the valid bars
// in r.
func visibleExtent(bars []ohlc.Bar, r coord.Range) (lo, hi float64, ok bool) {
	if r.Empty() {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := r.Start; i <= r.End && i < len(bars); i++ {
		b := bars[i]
		if !b.Valid() {
			continue
		}
		lo = math.Min(lo, math.Min(b.Low, math.Min(b.Open, b.Close)))
		hi = math.Max(hi, math.Max(b.High, math.Max(b.Open, b.Close)))
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, false
	}
	return lo, hi, true
}

// frame builds the read-only renderer context of one repaint.
func (c *Chart) frame(l *layout) *render.Frame {
	bw, bh := c.pair.BitmapSize()
	return &render.Frame{
		Bars:           c.drawn,
		Range:          l.rng,
		Time:           l.time,
		Price:          l.price,
		Scale:          l.scale,
		Mode:           c.mode,
		Series:         c.series,
		Interval:       c.bars.Interval(),
		PixelRatio:     c.ratio,
		MediaWidth:     l.paneW,
		MediaHeight:    l.paneH,
		BitmapWidth:    bw,
		BitmapHeight:   bh,
		VolumeFraction: c.opts.volumeFraction,
		Theme:          c.theme,
		Fonts:          c.fonts,
		Format:         c.format,
		Crosshair:      c.crosshair,
		Overlays:       c.overlays(),
	}
}

// projector maps annotation anchors through the live viewport. Anchor
// times go through the bar index so annotations stay on their bars across
// scroll, zoom and prepend.
type projector struct {
	c *Chart
}

func (p projector) ToPixel(a drawing.AnchorPoint) (float64, float64) {
	l := p.c.layout()
	return l.time.IndexToX(p.c.bars.IndexOf(a.Time)), l.price.PriceToY(a.Price)
}

// FromPixel snaps the time to the nearest bar slot.
func (p projector) FromPixel(x, y float64) drawing.AnchorPoint {
	l := p.c.layout()
	i := math.Round(l.time.XToIndex(x))
	return drawing.AnchorPoint{
		Price: l.price.YToPrice(y),
		Time:  p.c.bars.TimeAt(i),
	}
}

func (p projector) PaneSize() (float64, float64) {
	l := p.c.layout()
	return l.paneW, l.paneH
}
