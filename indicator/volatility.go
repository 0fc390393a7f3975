// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package indicator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/chart/ohlc"
)

// Bollinger computes Bollinger bands: a moving average of closes with an
// upper and lower band k standard deviations away.
// Params: "period" (default 20), "k" (default 2).
// Outputs: "upper", "middle", "lower".
type Bollinger struct{}

// Keys implements Keyed.
func (Bollinger) Keys() []string { return []string{"upper", "middle", "lower"} }

// Band implements Banded.
func (Bollinger) Band() (upper, lower string) { return "upper", "lower" }

// Compute implements Indicator.
func (Bollinger) Compute(bars []ohlc.Bar, params Params) map[string][]float64 {
	period := params.Int("period", defaultPeriod)
	k := params.Float("k", 2)
	values := closes(bars)
	upper, middle, lower := series(len(values)), series(len(values)), series(len(values))
	for i := period - 1; i < len(values); i++ {
		mean, std := stat.MeanStdDev(values[i-period+1:i+1], nil)
		if period == 1 {
			std = 0
		}
		middle[i] = mean
		upper[i] = mean + k*std
		lower[i] = mean - k*std
	}
	return map[string][]float64{"upper": upper, "middle": middle, "lower": lower}
}

// VWAP is the rolling volume-weighted average of the typical price
// (H+L+C)/3. A "period" of 0 accumulates from the first bar.
// Output: "vwap".
type VWAP struct{}

// Keys implements Keyed.
func (VWAP) Keys() []string { return []string{"vwap"} }

// Compute implements Indicator.
func (VWAP) Compute(bars []ohlc.Bar, params Params) map[string][]float64 {
	period := int(params.Float("period", 0))
	typical := make([]float64, len(bars))
	volume := make([]float64, len(bars))
	for i, b := range bars {
		typical[i] = (b.High + b.Low + b.Close) / 3
		volume[i] = b.Volume
	}
	out := series(len(bars))
	for i := range bars {
		from := 0
		if period > 0 {
			if i < period-1 {
				continue
			}
			from = i - period + 1
		}
		vol := floats.Sum(volume[from : i+1])
		if vol <= 0 {
			continue
		}
		out[i] = floats.Dot(typical[from:i+1], volume[from:i+1]) / vol
	}
	return map[string][]float64{"vwap": out}
}
