// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gg"
)

type point struct {
	X, Y float64
}

// Series draws the main series in the style selected by f.Series.
// Heikin-Ashi frames carry transformed bars and are drawn as candles.
func Series(dc *gg.Context, f *Frame) {
	switch f.Series {
	case SeriesOHLC:
		OHLCBars(dc, f)
	case SeriesLine:
		Line(dc, f)
	case SeriesArea:
		Area(dc, f)
	case SeriesBaseline:
		Baseline(dc, f)
	default:
		Candles(dc, f)
	}
}

// closePoints returns the bitmap points of the visible closes, extended by
// one bar on each side so the line runs off the pane edges.
func (f *Frame) closePoints() []point {
	if f.Range.Empty() {
		return nil
	}
	from := max(0, f.Range.Start-1)
	to := min(len(f.Bars)-1, f.Range.End+1)
	ratio := f.Ratio()
	pts := make([]point, 0, to-from+1)
	for i := from; i <= to; i++ {
		c := f.Bars[i].Close
		if !finite(c) {
			continue
		}
		pts = append(pts, point{X: f.X(i) * ratio, Y: f.Y(c) * ratio})
	}
	return pts
}

func tracePolyline(dc *gg.Context, pts []point) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
}

// fillUnder fills the region between the polyline and the horizontal line
// at bitmap y.
func fillUnder(dc *gg.Context, pts []point, y float64, c gg.RGBA) {
	if len(pts) < 2 {
		return
	}
	SetColor(dc, c)
	tracePolyline(dc, pts)
	dc.LineTo(pts[len(pts)-1].X, y)
	dc.LineTo(pts[0].X, y)
	dc.ClosePath()
	_ = dc.Fill()
}

func strokePolyline(dc *gg.Context, f *Frame, pts []point, c gg.RGBA) {
	if len(pts) < 2 {
		return
	}
	SetColor(dc, c)
	dc.SetLineWidth(f.theme().LineWidth * f.Ratio())
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	tracePolyline(dc, pts)
	_ = dc.Stroke()
}

// Line draws the closes as a polyline.
func Line(dc *gg.Context, f *Frame) {
	strokePolyline(dc, f, f.closePoints(), f.theme().Line)
}

// Area draws the close line with a translucent fill down to the pane
// bottom.
func Area(dc *gg.Context, f *Frame) {
	pts := f.closePoints()
	fillUnder(dc, pts, float64(f.BitmapHeight), f.theme().AreaFill)
	strokePolyline(dc, f, pts, f.theme().Line)
}

// Baseline draws the close line split at the base price (the first visible
// close): above in the bullish colors, below in the bearish ones.
func Baseline(dc *gg.Context, f *Frame) {
	pts := f.closePoints()
	if len(pts) < 2 {
		return
	}
	th := f.theme()
	w, h := float64(f.BitmapWidth), float64(f.BitmapHeight)
	baseY := f.bitmapY(f.Base())

	dc.Push()
	dc.ClipRect(0, 0, w, baseY)
	fillUnder(dc, pts, baseY, th.BaselineTop)
	strokePolyline(dc, f, pts, th.Bullish)
	dc.Pop()

	dc.Push()
	dc.ClipRect(0, baseY, w, h-baseY)
	fillUnder(dc, pts, baseY, th.BaselineBottom)
	strokePolyline(dc, f, pts, th.Bearish)
	dc.Pop()

	SetColor(dc, th.Crosshair)
	f.dashedHLine(dc, f.Y(f.Base()), 0, w, 2)
}
