// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package coord

import "math"

// maxTicks bounds the tick list whatever the caller asks for.
const maxTicks = 256

// PriceScale is the vertical scale of one frame: the displayed range and
// the tick values to label.
type PriceScale struct {
	Min   float64
	Max   float64
	Step  float64
	Ticks []float64
}

// Contains reports whether v lies inside the scale range.
func (s PriceScale) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// NiceNumber returns a "nice" number approximately equal to x: 1, 2 or 5
// (or 10) times a power of ten. With round set the closest nice number is
// returned, otherwise the smallest nice number not below x.
func NiceNumber(x float64, round bool) float64 {
	if !isFinite(x) || x <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(x))
	pow := math.Pow(10, exp)
	f := x / pow

	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * pow
}

// NiceScale expands [min, max] outward to nice round numbers and returns an
// evenly spaced tick list with roughly approxTicks entries.
func NiceScale(min, max float64, approxTicks int) PriceScale {
	if !isFinite(min) || !isFinite(max) {
		min, max = 0, 1
	}
	if min > max {
		min, max = max, min
	}
	if max == min {
		min -= 0.5
		max += 0.5
	}
	approxTicks = clampInt(approxTicks, 2, maxTicks)

	span := NiceNumber(max-min, false)
	step := NiceNumber(span/float64(approxTicks-1), true)
	niceMin := math.Floor(min/step) * step
	niceMax := math.Ceil(max/step) * step

	n := int(math.Round((niceMax-niceMin)/step)) + 1
	n = clampInt(n, 1, maxTicks+1)
	ticks := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := niceMin + float64(i)*step
		ticks = append(ticks, roundTo(v, step))
	}

	return PriceScale{
		Min:   niceMin,
		Max:   niceMax,
		Step:  step,
		Ticks: ticks,
	}
}

// StepDecimals returns how many fraction digits are needed to print
// multiples of step without noise.
func StepDecimals(step float64) int {
	if !isFinite(step) || step <= 0 || step >= 1 {
		return 0
	}
	return clampInt(int(math.Ceil(-math.Log10(step)-1e-9)), 0, 12)
}

// roundTo removes accumulated float noise from a multiple of step.
func roundTo(v, step float64) float64 {
	d := StepDecimals(step)
	p := math.Pow(10, float64(d))
	return math.Round(v*p) / p
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
