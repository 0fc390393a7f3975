// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ohlc

import (
	"math"
	"math/rand/v2"
)

// Walk generates a reproducible random-walk series for demos and tests.
type Walk struct {
	rng      *rand.Rand
	price    float64
	next     int64
	interval int64
}

// NewWalk starts a walk at price 100 whose first bar opens at start.
func NewWalk(start, interval int64, seed uint64) *Walk {
	return &Walk{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		price:    100,
		next:     start,
		interval: max(interval, 1),
	}
}

// Next returns the following bar.
func (w *Walk) Next() Bar {
	open := w.price
	c := math.Max(1, open*(1+w.rng.NormFloat64()*0.01))
	b := Bar{
		Time:   w.next,
		Open:   open,
		High:   math.Max(open, c) * (1 + w.rng.Float64()*0.005),
		Low:    math.Min(open, c) * (1 - w.rng.Float64()*0.005),
		Close:  c,
		Volume: math.Round(1000 + w.rng.Float64()*9000),
	}
	w.price = c
	w.next += w.interval
	return b
}

// Bars returns the next n bars.
func (w *Walk) Bars(n int) []Bar {
	out := make([]Bar, max(n, 0))
	for i := range out {
		out[i] = w.Next()
	}
	return out
}

// Tick moves the close of b like a live trade would, widening the high or
// low as needed.
func (w *Walk) Tick(b Bar) Bar {
	b.Close = math.Max(0.01, b.Close*(1+w.rng.NormFloat64()*0.002))
	b.High = math.Max(b.High, b.Close)
	b.Low = math.Min(b.Low, b.Close)
	b.Volume += math.Round(w.rng.Float64() * 100)
	w.price = b.Close
	return b
}
