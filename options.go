// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"github.com/gogpu/chart/coord"
	"github.com/gogpu/chart/indicator"
	"github.com/gogpu/chart/render"
)

// Option configures a Chart during creation.
//
// Example:
//
//	c, err := chart.New(800, 600,
//	    chart.WithPixelRatio(2),
//	    chart.WithTheme(render.LightTheme()),
//	    chart.WithVisibleBars(120),
//	)
type Option func(*options)

type options struct {
	pixelRatio     float64
	theme          *render.Theme
	fonts          *render.Fonts
	format         *render.Formatter
	scheduler      Scheduler
	registry       *indicator.Registry
	rightPadding   int
	visibleBars    int
	minVisible     int
	maxVisible     int
	scaleMode      coord.ScaleMode
	series         render.SeriesType
	magnet         bool
	axes           bool
	volumeFraction float64
	idFunc         func() string
}

// Defaults.
const (
	DefaultVisibleBars    = 100
	DefaultMinVisibleBars = 10
	DefaultMaxVisibleBars = 500
	DefaultVolumeFraction = 0.2
	MagnetRadius          = 20.0 // logical px
	ZoomFactor            = 1.1  // per wheel notch
)

func defaultOptions() options {
	return options{
		pixelRatio:     1,
		visibleBars:    DefaultVisibleBars,
		minVisible:     DefaultMinVisibleBars,
		maxVisible:     DefaultMaxVisibleBars,
		scaleMode:      coord.ScaleLinear,
		series:         render.SeriesCandles,
		axes:           true,
		volumeFraction: DefaultVolumeFraction,
	}
}

// WithPixelRatio sets the device pixel ratio. Non-positive values mean 1.
func WithPixelRatio(ratio float64) Option {
	return func(o *options) {
		o.pixelRatio = coord.SafeRatio(ratio)
	}
}

// WithTheme sets the colour theme. The chart keeps its own copy.
func WithTheme(t *render.Theme) Option {
	return func(o *options) {
		if t != nil {
			o.theme = t.Clone()
		}
	}
}

// WithFonts sets the label fonts. The caller keeps ownership.
// Without this option the chart loads Go Regular.
func WithFonts(f *render.Fonts) Option {
	return func(o *options) {
		o.fonts = f
	}
}

// WithFormatter sets the locale and time zone of axis labels.
func WithFormatter(f *render.Formatter) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithScheduler sets the display-refresh scheduler used by Start.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithIndicators sets the registry AddIndicator resolves names in.
// Without it the built-in registry is used.
func WithIndicators(r *indicator.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithRightPadding reserves n empty bar slots right of the newest bar.
func WithRightPadding(n int) Option {
	return func(o *options) {
		o.rightPadding = max(0, n)
	}
}

// WithVisibleBars sets the initial number of visible bars.
func WithVisibleBars(n int) Option {
	return func(o *options) {
		o.visibleBars = n
	}
}

// WithBarLimits sets the zoom limits on the number of visible bars.
func WithBarLimits(minBars, maxBars int) Option {
	return func(o *options) {
		o.minVisible = max(1, minBars)
		o.maxVisible = max(o.minVisible, maxBars)
	}
}

// WithScaleMode sets the initial price scale mode.
func WithScaleMode(m coord.ScaleMode) Option {
	return func(o *options) {
		o.scaleMode = m
	}
}

// WithSeriesType sets how the main series is drawn.
func WithSeriesType(t render.SeriesType) Option {
	return func(o *options) {
		o.series = t
	}
}

// WithMagnet enables crosshair snapping onto OHLC values.
func WithMagnet(on bool) Option {
	return func(o *options) {
		o.magnet = on
	}
}

// WithoutAxes gives the whole chart area to the pane.
func WithoutAxes() Option {
	return func(o *options) {
		o.axes = false
	}
}

// WithVolumeFraction sets the share of the pane height used by volume
// bars. Zero hides volume.
func WithVolumeFraction(f float64) Option {
	return func(o *options) {
		o.volumeFraction = min(max(f, 0), 1)
	}
}

// WithDrawingIDs replaces the generator of drawing ids (uuid by default).
func WithDrawingIDs(fn func() string) Option {
	return func(o *options) {
		o.idFunc = fn
	}
}
