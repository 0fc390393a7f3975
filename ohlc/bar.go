// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ohlc defines the price bar model shared by the chart packages.
//
// Bars are the only externally supplied data. A series is ordered by strictly
// increasing Time; the chart never reorders, resamples or fills gaps.
package ohlc

import (
	"math"
	"sort"
)

// Bar is one OHLCV sample. Time is a unix timestamp in seconds.
// A zero Volume means the feed supplied no volume for the bar.
type Bar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume,omitempty"`
}

// Bullish reports whether the bar closed at or above its open.
// Ties favor bullish.
func (b Bar) Bullish() bool {
	return b.Close >= b.Open
}

// Valid reports whether every price of the bar is finite.
func (b Bar) Valid() bool {
	return finite(b.Open) && finite(b.High) && finite(b.Low) && finite(b.Close) && finite(b.Volume)
}

// Bars is an ordered bar series.
type Bars []Bar

// LastIndex returns the index of the newest bar, or -1 for an empty series.
func (bs Bars) LastIndex() int {
	return len(bs) - 1
}

// Search returns the index of the first bar whose Time is >= t.
func (bs Bars) Search(t int64) int {
	return sort.Search(len(bs), func(i int) bool { return bs[i].Time >= t })
}

// IndexOf maps a timestamp to a fractional bar index.
//
// Times that fall between two bars interpolate linearly between their
// indexes. Times before the first or after the last bar are extrapolated
// using the interval of the two nearest bars, so annotations placed in the
// empty area right of the newest bar keep their position.
func (bs Bars) IndexOf(t int64) float64 {
	n := len(bs)
	switch n {
	case 0:
		return 0
	case 1:
		return 0
	}

	i := bs.Search(t)
	switch {
	case i < n && bs[i].Time == t:
		return float64(i)
	case i == 0:
		step := float64(bs[1].Time - bs[0].Time)
		if step <= 0 {
			return 0
		}
		return float64(t-bs[0].Time) / step
	case i == n:
		step := float64(bs[n-1].Time - bs[n-2].Time)
		if step <= 0 {
			return float64(n - 1)
		}
		return float64(n-1) + float64(t-bs[n-1].Time)/step
	}

	lo, hi := bs[i-1], bs[i]
	span := float64(hi.Time - lo.Time)
	if span <= 0 {
		return float64(i - 1)
	}
	return float64(i-1) + float64(t-lo.Time)/span
}

// TimeAt is the inverse of IndexOf.
func (bs Bars) TimeAt(index float64) int64 {
	n := len(bs)
	switch n {
	case 0:
		return 0
	case 1:
		return bs[0].Time
	}
	if math.IsNaN(index) || math.IsInf(index, 0) {
		return bs[n-1].Time
	}

	switch {
	case index <= 0:
		step := float64(bs[1].Time - bs[0].Time)
		return bs[0].Time + int64(math.Round(index*step))
	case index >= float64(n-1):
		step := float64(bs[n-1].Time - bs[n-2].Time)
		return bs[n-1].Time + int64(math.Round((index-float64(n-1))*step))
	}

	i := int(math.Floor(index))
	frac := index - float64(i)
	span := float64(bs[i+1].Time - bs[i].Time)
	return bs[i].Time + int64(math.Round(frac*span))
}

// Interval returns the time between the two newest bars, or 0.
func (bs Bars) Interval() int64 {
	n := len(bs)
	if n < 2 {
		return 0
	}
	return bs[n-1].Time - bs[n-2].Time
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
