// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/chart/ohlc"

// HeikinAshi returns the Heikin-Ashi transform of bars:
//
//	close' = (O + H + L + C) / 4
//	open'  = (prevOpen' + prevClose') / 2, seeded with (O + C) / 2
//	high'  = max(H, open', close')
//	low'   = min(L, open', close')
//
// Time and volume are copied. The input is not modified.
func HeikinAshi(bars []ohlc.Bar) []ohlc.Bar {
	out := make([]ohlc.Bar, len(bars))
	var prevOpen, prevClose float64
	for i, b := range bars {
		c := (b.Open + b.High + b.Low + b.Close) / 4
		o := (b.Open + b.Close) / 2
		if i > 0 {
			o = (prevOpen + prevClose) / 2
		}
		out[i] = ohlc.Bar{
			Time:   b.Time,
			Open:   o,
			High:   max(b.High, o, c),
			Low:    min(b.Low, o, c),
			Close:  c,
			Volume: b.Volume,
		}
		prevOpen, prevClose = o, c
	}
	return out
}
