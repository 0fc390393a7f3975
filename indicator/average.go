// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package indicator

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/chart/ohlc"
)

const defaultPeriod = 20

// SMA is the simple moving average of closes.
// Params: "period" (default 20). Output: "sma".
type SMA struct{}

// Keys implements Keyed.
func (SMA) Keys() []string { return []string{"sma"} }

// Compute implements Indicator.
func (SMA) Compute(bars []ohlc.Bar, params Params) map[string][]float64 {
	return map[string][]float64{"sma": sma(closes(bars), params.Int("period", defaultPeriod))}
}

func sma(values []float64, period int) []float64 {
	out := series(len(values))
	for i := period - 1; i < len(values); i++ {
		out[i] = floats.Sum(values[i-period+1:i+1]) / float64(period)
	}
	return out
}

// EMA is the exponential moving average of closes, seeded with the SMA of
// the first period closes.
// Params: "period" (default 20). Output: "ema".
type EMA struct{}

// Keys implements Keyed.
func (EMA) Keys() []string { return []string{"ema"} }

// Compute implements Indicator.
func (EMA) Compute(bars []ohlc.Bar, params Params) map[string][]float64 {
	period := params.Int("period", defaultPeriod)
	values := closes(bars)
	out := series(len(values))
	if len(values) < period {
		return map[string][]float64{"ema": out}
	}
	alpha := 2 / float64(period+1)
	prev := floats.Sum(values[:period]) / float64(period)
	out[period-1] = prev
	for i := period; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}
	return map[string][]float64{"ema": out}
}
