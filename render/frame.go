// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/chart/coord"
	"github.com/gogpu/chart/ohlc"
)

// Func is the signature of a layer renderer.
type Func func(dc *gg.Context, f *Frame)

// SeriesType selects how the main series is drawn.
type SeriesType int

const (
	SeriesCandles SeriesType = iota
	SeriesOHLC
	SeriesLine
	SeriesArea
	SeriesBaseline
	SeriesHeikinAshi
)

var seriesNames = [...]string{"candles", "ohlc", "line", "area", "baseline", "heikin-ashi"}

func (s SeriesType) String() string {
	if s < 0 || int(s) >= len(seriesNames) {
		return fmt.Sprintf("SeriesType(%d)", int(s))
	}
	return seriesNames[s]
}

// ParseSeriesType parses a config name such as "candles" or "heikin-ashi".
func ParseSeriesType(s string) (SeriesType, error) {
	for i, name := range seriesNames {
		if s == name {
			return SeriesType(i), nil
		}
	}
	return SeriesCandles, fmt.Errorf("render: unknown series type %q", s)
}

// CrosshairState is the pointer-driven crosshair. X and Y are media pixels;
// Y is already snapped when the magnet is on.
type CrosshairState struct {
	Visible bool
	X, Y    float64
	Index   int
	Price   float64
	Time    int64
}

// Frame is the read-only context of one repaint.
type Frame struct {
	// Bars is the series as drawn (Heikin-Ashi already applied).
	Bars  []ohlc.Bar
	Range coord.Range

	Time  coord.TimeScale
	Price coord.PriceTransform
	Scale coord.PriceScale
	Mode  coord.ScaleMode

	Series   SeriesType
	Interval int64 // seconds between bars

	PixelRatio   float64
	MediaWidth   float64
	MediaHeight  float64
	BitmapWidth  int
	BitmapHeight int

	// VolumeFraction is the share of the pane height used by volume bars.
	VolumeFraction float64

	Theme  *Theme
	Fonts  *Fonts
	Format *Formatter

	Crosshair CrosshairState
	Overlays  []Overlay
}

// Ratio returns the sanitised device pixel ratio.
func (f *Frame) Ratio() float64 {
	return coord.SafeRatio(f.PixelRatio)
}

// X returns the media x of the centre of bar i.
func (f *Frame) X(i int) float64 {
	return f.Time.IndexToX(float64(i))
}

// Y returns the media y of a price.
func (f *Frame) Y(price float64) float64 {
	return f.Price.PriceToY(price)
}

// BitmapSpacing returns the bar spacing in bitmap pixels.
func (f *Frame) BitmapSpacing() float64 {
	return f.Time.BarSpacing * f.Ratio()
}

// LastIndex returns the index of the newest bar, or -1.
func (f *Frame) LastIndex() int {
	return len(f.Bars) - 1
}

// Base returns the reference price of the percentage scale: the close of
// the first visible bar.
func (f *Frame) Base() float64 {
	if f.Range.Empty() || f.Range.Start >= len(f.Bars) {
		return 0
	}
	return f.Bars[f.Range.Start].Close
}

// Decimals returns the price precision used for labels.
func (f *Frame) Decimals() int {
	return max(2, coord.StepDecimals(f.Scale.Step))
}

// Formatter returns the frame formatter or the default one.
func (f *Frame) Formatter() *Formatter {
	if f.Format == nil {
		return DefaultFormatter()
	}
	return f.Format
}

// PriceLabel formats a price as shown on the axis for the current mode.
func (f *Frame) PriceLabel(price float64) string {
	if f.Mode == coord.ScalePercentage {
		return f.Formatter().Percent(coord.Percent(price, f.Base()), 2)
	}
	return f.Formatter().Price(price, f.Decimals())
}

// LegendBar returns the bar the legend describes: the bar under the
// crosshair, or the newest bar.
func (f *Frame) LegendBar() (ohlc.Bar, int, bool) {
	if len(f.Bars) == 0 {
		return ohlc.Bar{}, -1, false
	}
	i := len(f.Bars) - 1
	if f.Crosshair.Visible && f.Crosshair.Index >= 0 && f.Crosshair.Index < len(f.Bars) {
		i = f.Crosshair.Index
	}
	return f.Bars[i], i, true
}

// Face returns the label face at the theme size scaled to bitmap pixels,
// or nil when no fonts are configured.
func (f *Frame) Face() text.Face {
	if f.Theme == nil {
		return nil
	}
	return f.Fonts.Face(f.Theme.FontSize * f.Ratio())
}

// theme returns the frame theme or the dark default.
func (f *Frame) theme() *Theme {
	if f.Theme == nil {
		return DarkTheme()
	}
	return f.Theme
}

// hline fills a crisp horizontal line one media pixel thick at media y.
func (f *Frame) hline(dc *gg.Context, y, x0, x1 float64) {
	p := coord.PositionsLine(y, 1, f.Ratio())
	dc.DrawRectangle(x0, float64(p.Position), x1-x0, float64(p.Length))
}

// vline fills a crisp vertical line one media pixel thick at media x.
func (f *Frame) vline(dc *gg.Context, x, y0, y1 float64) {
	p := coord.PositionsLine(x, 1, f.Ratio())
	dc.DrawRectangle(float64(p.Position), y0, float64(p.Length), y1-y0)
}

// dashedHLine strokes a crisp dashed horizontal line at media y from bitmap
// x0 to x1. dash is the dash length in media pixels.
func (f *Frame) dashedHLine(dc *gg.Context, y, x0, x1, dash float64) {
	p := coord.PositionsLine(y, 1, f.Ratio())
	cy := float64(p.Position) + float64(p.Length)/2
	dc.SetLineWidth(float64(p.Length))
	dc.SetLineCap(gg.LineCapButt)
	dc.SetDash(dash*f.Ratio(), dash*f.Ratio())
	dc.DrawLine(x0, cy, x1, cy)
	_ = dc.Stroke()
	dc.ClearDash()
}

// dashedVLine is the vertical counterpart of dashedHLine.
func (f *Frame) dashedVLine(dc *gg.Context, x, y0, y1, dash float64) {
	p := coord.PositionsLine(x, 1, f.Ratio())
	cx := float64(p.Position) + float64(p.Length)/2
	dc.SetLineWidth(float64(p.Length))
	dc.SetLineCap(gg.LineCapButt)
	dc.SetDash(dash*f.Ratio(), dash*f.Ratio())
	dc.DrawLine(cx, y0, cx, y1)
	_ = dc.Stroke()
	dc.ClearDash()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
