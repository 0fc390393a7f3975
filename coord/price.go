// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package coord

import "math"

// minLogPrice replaces non-positive prices on a logarithmic scale.
const minLogPrice = 1e-12

// PriceTransform maps prices to vertical media pixels for one frame.
// The zero value is not useful; use NewPriceTransform.
type PriceTransform struct {
	min, max float64 // requested range, sanitised
	lo, hi   float64 // range in transform space (ln for log scales)
	height   float64
	log      bool
}

// NewPriceTransform returns the transform of the price range [min, max]
// onto a pane of the given media height. y grows downwards: max maps to 0,
// min maps to height.
//
// On a logarithmic scale the linear formula is applied to ln(price).
// An empty or inverted range is widened to a unit range around its centre
// and a non-positive height is treated as 1.
func NewPriceTransform(min, max, height float64, log bool) PriceTransform {
	if !isFinite(min) || !isFinite(max) {
		min, max = 0, 1
	}
	if min > max {
		min, max = max, min
	}
	if !isFinite(height) || height <= 0 {
		height = 1
	}

	lo, hi := min, max
	if log {
		lo = math.Log(math.Max(min, minLogPrice))
		hi = math.Log(math.Max(max, minLogPrice))
	}
	if hi-lo == 0 {
		lo -= 0.5
		hi += 0.5
	}

	return PriceTransform{
		min:    min,
		max:    max,
		lo:     lo,
		hi:     hi,
		height: height,
		log:    log,
	}
}

// Min returns the lower bound of the price range.
func (t PriceTransform) Min() float64 { return t.min }

// Max returns the upper bound of the price range.
func (t PriceTransform) Max() float64 { return t.max }

// Height returns the pane height in media pixels.
func (t PriceTransform) Height() float64 { return t.height }

// Log reports whether the transform is logarithmic.
func (t PriceTransform) Log() bool { return t.log }

// PriceToY maps a price to a media y coordinate.
// Non-finite prices map to the bottom of the pane.
func (t PriceTransform) PriceToY(price float64) float64 {
	if !isFinite(price) {
		return t.height
	}
	v := price
	if t.log {
		v = math.Log(math.Max(price, minLogPrice))
	}
	return t.height * (1 - (v-t.lo)/(t.hi-t.lo))
}

// YToPrice is the inverse of PriceToY.
func (t PriceTransform) YToPrice(y float64) float64 {
	if !isFinite(y) {
		y = t.height
	}
	v := t.lo + (1-y/t.height)*(t.hi-t.lo)
	if t.log {
		return math.Exp(v)
	}
	return v
}

// Percent converts a price to percent change against base, the convention
// of the percentage scale mode. A zero base yields 0.
func Percent(price, base float64) float64 {
	if base == 0 || !isFinite(base) || !isFinite(price) {
		return 0
	}
	return (price/base - 1) * 100
}
