// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/coord"
)

// Background clears the buffer with the theme background.
func Background(dc *gg.Context, f *Frame) {
	dc.ClearWithColor(f.theme().Background)
}

// Grid draws horizontal lines at the price ticks and vertical lines at the
// time ticks, snapped to whole device pixels.
func Grid(dc *gg.Context, f *Frame) {
	th := f.theme()
	w, h := float64(f.BitmapWidth), float64(f.BitmapHeight)
	SetColor(dc, th.Grid)
	for _, tick := range f.Scale.Ticks {
		y := f.Y(tick)
		if y < 0 || y > f.MediaHeight {
			continue
		}
		f.hline(dc, y, 0, w)
	}
	for _, i := range coord.TimeTicks(f.Range, f.Time.BarSpacing, th.MinTickSpaceX) {
		f.vline(dc, f.X(i), 0, h)
	}
	_ = dc.Fill()
}

// Volume draws volume histogram bars in the bottom VolumeFraction of the
// pane, clipped to that band and scaled to the largest visible volume.
func Volume(dc *gg.Context, f *Frame) {
	if f.Range.Empty() || f.VolumeFraction <= 0 {
		return
	}
	frac := math.Min(f.VolumeFraction, 1)
	w, h := float64(f.BitmapWidth), float64(f.BitmapHeight)
	top := math.Round(h * (1 - frac))
	band := h - top

	var maxVol float64
	for i := f.Range.Start; i <= f.Range.End && i < len(f.Bars); i++ {
		if v := f.Bars[i].Volume; finite(v) && v > maxVol {
			maxVol = v
		}
	}
	if maxVol <= 0 {
		return
	}

	body, _ := barWidths(f)
	ratio := f.Ratio()
	var parts [2][]rect
	for i := f.Range.Start; i <= f.Range.End && i < len(f.Bars); i++ {
		bar := f.Bars[i]
		if !finite(bar.Volume) || bar.Volume <= 0 {
			continue
		}
		side := bear
		if bar.Bullish() {
			side = bull
		}
		cx := coord.MediaToBitmap(f.X(i), ratio)
		bh := math.Max(1, math.Round(bar.Volume/maxVol*band))
		parts[side] = append(parts[side], rect{X: float64(cx - body/2), Y: h - bh, W: float64(body), H: bh})
	}

	th := f.theme()
	dc.Push()
	dc.ClipRect(0, top, w, band)
	fillRects(dc, parts[bull], th.VolumeBullish)
	fillRects(dc, parts[bear], th.VolumeBearish)
	dc.Pop()
}

// CurrentPrice draws a dashed line at the last close. It is skipped when
// the last bar is scrolled out of view.
func CurrentPrice(dc *gg.Context, f *Frame) {
	last := f.LastIndex()
	if last < 0 || !f.Range.Contains(last) {
		return
	}
	bar := f.Bars[last]
	if !finite(bar.Close) {
		return
	}
	th := f.theme()
	if bar.Bullish() {
		SetColor(dc, th.Bullish)
	} else {
		SetColor(dc, th.Bearish)
	}
	f.dashedHLine(dc, f.Y(bar.Close), 0, float64(f.BitmapWidth), 3)
}

// Crosshair draws the dashed crosshair lines.
func Crosshair(dc *gg.Context, f *Frame) {
	if !f.Crosshair.Visible {
		return
	}
	SetColor(dc, f.theme().Crosshair)
	f.dashedVLine(dc, f.Crosshair.X, 0, float64(f.BitmapHeight), 4)
	f.dashedHLine(dc, f.Crosshair.Y, 0, float64(f.BitmapWidth), 4)
}

// Legend draws the OHLCV values of the bar under the crosshair (or the
// newest bar) in the top-left corner, followed by one line per indicator.
func Legend(dc *gg.Context, f *Frame) {
	face := f.Face()
	if face == nil {
		return
	}
	bar, idx, ok := f.LegendBar()
	if !ok {
		return
	}
	th := f.theme()
	ratio := f.Ratio()
	fm := f.Formatter()
	dec := f.Decimals()
	dc.SetFont(face)

	value := th.Bearish
	if bar.Bullish() {
		value = th.Bullish
	}
	left := 8 * ratio
	x, y := left, (8+th.FontSize)*ratio
	for _, seg := range [...]struct{ label, value string }{
		{"O", fm.Price(bar.Open, dec)},
		{"H", fm.Price(bar.High, dec)},
		{"L", fm.Price(bar.Low, dec)},
		{"C", fm.Price(bar.Close, dec)},
		{"V", fm.Volume(bar.Volume)},
	} {
		x = drawRun(dc, seg.label+" ", x, y, th.Text)
		x = drawRun(dc, seg.value+"  ", x, y, value)
	}

	lineHeight := th.FontSize * 1.5 * ratio
	for _, o := range f.Overlays {
		y += lineHeight
		x = drawRun(dc, o.Name+"  ", left, y, th.Text)
		for _, l := range o.Lines {
			v := math.NaN()
			if idx < len(l.Values) {
				v = l.Values[idx]
			}
			x = drawRun(dc, fm.Price(v, dec)+"  ", x, y, l.Color)
		}
	}
}

// drawRun draws s with its baseline at y and returns the x after it.
func drawRun(dc *gg.Context, s string, x, y float64, c gg.RGBA) float64 {
	SetColor(dc, c)
	dc.DrawString(s, x, y)
	w, _ := dc.MeasureString(s)
	return x + w
}
