// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/coord"
)

const (
	bull = 0
	bear = 1
)

// rect is an axis-aligned box in bitmap pixels.
type rect struct {
	X, Y, W, H float64
}

// candleBatch holds the geometry of the visible candles grouped by the
// color they are filled with.
type candleBatch struct {
	wicks  [2][]rect
	bodies [2][]rect
}

// barWidths returns the body and wick widths in bitmap pixels. The body
// width is adjusted to the wick's parity so the wick sits exactly in the
// middle of the body.
func barWidths(f *Frame) (body, wick int) {
	spacing := f.BitmapSpacing()
	body = int(coord.CandleBodyWidth(spacing))
	wick = coord.WickWidth(spacing, f.Ratio())
	if body > wick && (body-wick)%2 != 0 {
		body--
	}
	return body, wick
}

// bitmapY converts a price to a rounded bitmap row.
func (f *Frame) bitmapY(price float64) float64 {
	return math.Round(f.Y(price) * f.Ratio())
}

func (f *Frame) candleGeometry() candleBatch {
	var b candleBatch
	if f.Range.Empty() {
		return b
	}
	body, wick := barWidths(f)
	ratio := f.Ratio()
	for i := f.Range.Start; i <= f.Range.End && i < len(f.Bars); i++ {
		bar := f.Bars[i]
		if !bar.Valid() {
			continue
		}
		side := bear
		if bar.Bullish() {
			side = bull
		}
		cx := coord.MediaToBitmap(f.X(i), ratio)

		yHigh, yLow := f.bitmapY(bar.High), f.bitmapY(bar.Low)
		b.wicks[side] = append(b.wicks[side], rect{
			X: float64(cx - wick/2),
			Y: math.Min(yHigh, yLow),
			W: float64(wick),
			H: math.Max(1, math.Abs(yLow-yHigh)),
		})

		yOpen, yClose := f.bitmapY(bar.Open), f.bitmapY(bar.Close)
		b.bodies[side] = append(b.bodies[side], rect{
			X: float64(cx - body/2),
			Y: math.Min(yOpen, yClose),
			W: float64(body),
			H: math.Max(1, math.Abs(yClose-yOpen)),
		})
	}
	return b
}

// fillRects fills all boxes with one color in a single path.
func fillRects(dc *gg.Context, rs []rect, c gg.RGBA) {
	if len(rs) == 0 {
		return
	}
	SetColor(dc, c)
	for _, r := range rs {
		dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	}
	_ = dc.Fill()
}

// Candles draws candlesticks. Wicks and bodies are batched by color: all
// bullish wicks, all bearish wicks, all bullish bodies, all bearish bodies.
// The result equals drawing each candle on its own.
func Candles(dc *gg.Context, f *Frame) {
	th := f.theme()
	b := f.candleGeometry()
	fillRects(dc, b.wicks[bull], th.BullishWick)
	fillRects(dc, b.wicks[bear], th.BearishWick)
	fillRects(dc, b.bodies[bull], th.Bullish)
	fillRects(dc, b.bodies[bear], th.Bearish)
}

// OHLCBars draws open-high-low-close bars: a vertical high-low stroke with
// the open tick on the left and the close tick on the right.
func OHLCBars(dc *gg.Context, f *Frame) {
	if f.Range.Empty() {
		return
	}
	th := f.theme()
	body, wick := barWidths(f)
	half := float64(max(body/2, wick))
	ratio := f.Ratio()

	var parts [2][]rect
	for i := f.Range.Start; i <= f.Range.End && i < len(f.Bars); i++ {
		bar := f.Bars[i]
		if !bar.Valid() {
			continue
		}
		side := bear
		if bar.Bullish() {
			side = bull
		}
		cx := float64(coord.MediaToBitmap(f.X(i), ratio))
		left := cx - float64(wick/2)
		yHigh, yLow := f.bitmapY(bar.High), f.bitmapY(bar.Low)
		parts[side] = append(parts[side],
			rect{X: left, Y: math.Min(yHigh, yLow), W: float64(wick), H: math.Max(1, math.Abs(yLow-yHigh))},
			rect{X: left - half, Y: f.bitmapY(bar.Open) - float64(wick/2), W: half, H: float64(wick)},
			rect{X: left + float64(wick), Y: f.bitmapY(bar.Close) - float64(wick/2), W: half, H: float64(wick)},
		)
	}
	fillRects(dc, parts[bull], th.Bullish)
	fillRects(dc, parts[bear], th.Bearish)
}
