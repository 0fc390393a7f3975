// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"math"

	"github.com/gogpu/chart/coord"
	"github.com/gogpu/chart/ohlc"
	"github.com/gogpu/chart/render"
)

// pointerState is the last pointer position in chart media px.
type pointerState struct {
	x, y   float64
	inside bool // over the pane, not an axis
}

// updateCrosshair recomputes the crosshair from the pointer and the
// current viewport. The overlay is invalidated only when it moved.
func (c *Chart) updateCrosshair() {
	next := c.crosshairAt(c.pointer)
	if next != c.crosshair {
		c.crosshair = next
		c.invalidateTop()
	}
}

func (c *Chart) crosshairAt(p pointerState) render.CrosshairState {
	if !p.inside || len(c.drawn) == 0 {
		return render.CrosshairState{}
	}
	l := c.layout()
	i := l.time.NearestIndex(p.x)
	if l.rng.Empty() {
		i = min(max(i, 0), len(c.drawn)-1)
	} else {
		i = min(max(i, l.rng.Start), l.rng.End)
	}

	y, price := p.y, l.price.YToPrice(p.y)
	if c.magnet {
		if sp, sy, ok := magnetSnap(c.drawn[i], p.y, l.price); ok {
			y, price = sy, sp
		}
	}
	return render.CrosshairState{
		Visible: true,
		X:       l.time.IndexToX(float64(i)),
		Y:       y,
		Index:   i,
		Price:   price,
		Time:    c.drawn[i].Time,
	}
}

// magnetSnap returns the OHLC value of b closest to pointer y when it lies
// within MagnetRadius, together with its y. It only moves the displayed
// crosshair.
func magnetSnap(b ohlc.Bar, y float64, tr coord.PriceTransform) (price, snappedY float64, ok bool) {
	best := MagnetRadius
	for _, v := range [4]float64{b.Open, b.High, b.Low, b.Close} {
		vy := tr.PriceToY(v)
		if d := math.Abs(vy - y); d <= best {
			best, price, snappedY, ok = d, v, vy, true
		}
	}
	return price, snappedY, ok
}
