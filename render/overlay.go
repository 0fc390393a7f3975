// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gg"

// OverlayLine is one output series of an indicator, parallel to the bars.
// Non-finite values break the line.
type OverlayLine struct {
	Key    string
	Values []float64
	Color  gg.RGBA
	Width  float64 // media px; 0 means 1.5
}

// Band fills the area between two lines of the same overlay.
type Band struct {
	Upper int // index into Overlay.Lines
	Lower int
	Color gg.RGBA
}

// Overlay is the drawable output of one indicator instance.
type Overlay struct {
	Name  string
	Lines []OverlayLine
	Band  *Band
}

// Indicators draws every overlay: the band fill first, then its lines.
func Indicators(dc *gg.Context, f *Frame) {
	if f.Range.Empty() {
		return
	}
	for _, o := range f.Overlays {
		if b := o.Band; b != nil && b.Upper < len(o.Lines) && b.Lower < len(o.Lines) {
			fillBand(dc, f, o.Lines[b.Upper].Values, o.Lines[b.Lower].Values, b.Color)
		}
		for _, l := range o.Lines {
			strokeValues(dc, f, l)
		}
	}
}

// span returns the index range drawn for overlays: the visible range plus
// one bar on each side, limited to n values.
func (f *Frame) span(n int) (from, to int) {
	return max(0, f.Range.Start-1), min(n-1, len(f.Bars)-1, f.Range.End+1)
}

func strokeValues(dc *gg.Context, f *Frame, l OverlayLine) {
	from, to := f.span(len(l.Values))
	ratio := f.Ratio()
	width := l.Width
	if width <= 0 {
		width = 1.5
	}
	SetColor(dc, l.Color)
	dc.SetLineWidth(width * ratio)
	dc.SetLineJoin(gg.LineJoinRound)

	down := false
	for i := from; i <= to; i++ {
		v := l.Values[i]
		if !finite(v) {
			down = false
			continue
		}
		x, y := f.X(i)*ratio, f.Y(v)*ratio
		if down {
			dc.LineTo(x, y)
		} else {
			dc.MoveTo(x, y)
			down = true
		}
	}
	_ = dc.Stroke()
}

func fillBand(dc *gg.Context, f *Frame, upper, lower []float64, c gg.RGBA) {
	from, to := f.span(min(len(upper), len(lower)))
	ratio := f.Ratio()
	SetColor(dc, c)

	flush := func(start, end int) {
		if end-start < 1 {
			return
		}
		for i := start; i <= end; i++ {
			x, y := f.X(i)*ratio, f.Y(upper[i])*ratio
			if i == start {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		for i := end; i >= start; i-- {
			dc.LineTo(f.X(i)*ratio, f.Y(lower[i])*ratio)
		}
		dc.ClosePath()
	}

	start := -1
	for i := from; i <= to; i++ {
		ok := finite(upper[i]) && finite(lower[i])
		switch {
		case ok && start < 0:
			start = i
		case !ok && start >= 0:
			flush(start, i-1)
			start = -1
		}
	}
	if start >= 0 {
		flush(start, to)
	}
	_ = dc.Fill()
}
