// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/chart/coord"
)

// Default axis sizes in media pixels.
const (
	PriceAxisWidth = 64
	TimeAxisHeight = 28
)

// PriceAxis draws the vertical axis onto its own context, which must be as
// tall as the pane. It shows the tick labels, the last price tag and the
// crosshair price tag.
func PriceAxis(dc *gg.Context, f *Frame) {
	th := f.theme()
	ratio := f.Ratio()
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.ClearWithColor(th.AxisBackground)

	SetColor(dc, th.AxisBorder)
	f.vline(dc, 0.5, 0, h)
	_ = dc.Fill()

	face := f.Face()
	if face == nil {
		return
	}
	dc.SetFont(face)
	pad := th.LabelPadding * ratio

	SetColor(dc, th.Text)
	for _, tick := range f.Scale.Ticks {
		y := f.Y(tick) * ratio
		if y < 0 || y > h {
			continue
		}
		drawLabel(dc, f.PriceLabel(tick), pad, y)
	}

	if last := f.LastIndex(); last >= 0 && finite(f.Bars[last].Close) {
		bar := f.Bars[last]
		bg := th.Bearish
		if bar.Bullish() {
			bg = th.Bullish
		}
		priceTag(dc, f.PriceLabel(bar.Close), f.Y(bar.Close)*ratio, w, pad, bg)
	}
	if f.Crosshair.Visible {
		priceTag(dc, f.PriceLabel(f.Crosshair.Price), f.Crosshair.Y*ratio, w, pad, th.CrosshairLabel)
	}
}

// TimeAxis draws the horizontal axis onto its own context, which must be
// as wide as the pane.
func TimeAxis(dc *gg.Context, f *Frame) {
	th := f.theme()
	ratio := f.Ratio()
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.ClearWithColor(th.AxisBackground)

	SetColor(dc, th.AxisBorder)
	f.hline(dc, 0.5, 0, w)
	_ = dc.Fill()

	face := f.Face()
	if face == nil {
		return
	}
	dc.SetFont(face)
	fm := f.Formatter()
	pad := th.LabelPadding * ratio

	SetColor(dc, th.Text)
	for _, i := range coord.TimeTicks(f.Range, f.Time.BarSpacing, th.MinTickSpaceX) {
		s := fm.Time(f.Bars[i].Time, f.Interval)
		tw, _ := dc.MeasureString(s)
		drawLabel(dc, s, f.X(i)*ratio-tw/2, h/2)
	}

	if f.Crosshair.Visible {
		s := fm.TimeFull(f.Crosshair.Time, f.Interval)
		tw, th2 := dc.MeasureString(s)
		cx := f.Crosshair.X * ratio
		boxW := tw + 2*pad
		x := min(max(cx-boxW/2, 0), w-boxW)
		SetColor(dc, th.CrosshairLabel)
		dc.DrawRectangle(x, h/2-(th2+pad)/2, boxW, th2+pad)
		_ = dc.Fill()
		SetColor(dc, gg.White)
		drawLabel(dc, s, x+pad, h/2)
	}
}

// priceTag draws a filled label box across the axis centred on bitmap y.
func priceTag(dc *gg.Context, s string, y, w, pad float64, bg gg.RGBA) {
	_, th := dc.MeasureString(s)
	boxH := th + pad
	SetColor(dc, bg)
	dc.DrawRectangle(0, y-boxH/2, w, boxH)
	_ = dc.Fill()
	SetColor(dc, gg.White)
	drawLabel(dc, s, pad, y)
}

// drawLabel draws s left-aligned at x, vertically centred on bitmap cy.
func drawLabel(dc *gg.Context, s string, x, cy float64) {
	_, h := dc.MeasureString(s)
	dc.DrawString(s, x, cy+h*0.3)
}
