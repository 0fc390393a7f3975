// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import "strconv"

// FibRatios are the retracement levels drawn by FibRetracement.
var FibRatios = [...]float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1, 1.618, 2.618}

// FibLevel is one rung of a retracement ladder.
type FibLevel struct {
	Ratio float64
	Price float64
}

// FibLevels returns the ladder between two anchor prices:
// price = start + (end-start)*(1-ratio).
func FibLevels(start, end float64) []FibLevel {
	out := make([]FibLevel, len(FibRatios))
	for i, r := range FibRatios {
		out[i] = FibLevel{Ratio: r, Price: start + (end-start)*(1-r)}
	}
	return out
}

// Label formats the level as "61.8% (price)".
func (l FibLevel) Label(price string) string {
	return strconv.FormatFloat(l.Ratio*100, 'f', 1, 64) + "% (" + price + ")"
}
