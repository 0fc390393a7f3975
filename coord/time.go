// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package coord

import "math"

// Range is the visible window of bar indexes, both ends inclusive.
// Count is zero when there is nothing to show.
type Range struct {
	Start int
	End   int
	Count int
}

// Contains reports whether index i is inside the range.
func (r Range) Contains(i int) bool {
	return r.Count > 0 && i >= r.Start && i <= r.End
}

// Empty reports whether the range holds no bars.
func (r Range) Empty() bool {
	return r.Count <= 0
}

// LeftEdge returns the unclamped index of the leftmost bar slot of the
// window. The window may extend past either end of the data (right padding,
// scrolled into history); the horizontal mapping uses this edge so that
// empty slots keep their width.
func LeftEdge(lastIndex, scrollOffset, rightPadding, count int) int {
	end := lastIndex - scrollOffset + rightPadding
	return end - count + 1
}

// VisibleRange computes the visible window:
//
//	end   = lastIndex - scrollOffset + rightPadding
//	start = end - count + 1
//
// with both ends clamped into [0, lastIndex].
func VisibleRange(lastIndex, scrollOffset, rightPadding, count int) Range {
	if lastIndex < 0 || count <= 0 {
		return Range{}
	}
	end := lastIndex - scrollOffset + rightPadding
	start := end - count + 1

	end = clampInt(end, 0, lastIndex)
	start = clampInt(start, 0, lastIndex)
	if end < start {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end, Count: end - start + 1}
}

// TimeScale maps bar indexes to horizontal media pixels. Bar i occupies the
// slot [(i-LeftEdge)*BarSpacing, (i-LeftEdge+1)*BarSpacing) and is centred in it.
type TimeScale struct {
	LeftEdge   float64
	BarSpacing float64
}

func (s TimeScale) spacing() float64 {
	if !isFinite(s.BarSpacing) || s.BarSpacing <= 0 {
		return 1
	}
	return s.BarSpacing
}

// IndexToX returns the media x of the centre of bar index i.
func (s TimeScale) IndexToX(i float64) float64 {
	if !isFinite(i) {
		return 0
	}
	return (i - s.LeftEdge + 0.5) * s.spacing()
}

// XToIndex is the inverse of IndexToX.
func (s TimeScale) XToIndex(x float64) float64 {
	if !isFinite(x) {
		return s.LeftEdge
	}
	return x/s.spacing() + s.LeftEdge - 0.5
}

// NearestIndex returns the bar index whose slot contains media x.
func (s TimeScale) NearestIndex(x float64) int {
	return int(math.Round(s.XToIndex(x)))
}

// timeSteps are the bar strides used between time labels.
var timeSteps = []int{1, 2, 3, 5, 10, 15, 20, 30, 50, 100, 200, 250, 500, 1000, 2000, 5000, 10000}

// TimeStep returns the smallest label stride, in bars, that keeps labels at
// least minLabelPx media pixels apart.
func TimeStep(barSpacing, minLabelPx float64) int {
	if !isFinite(barSpacing) || barSpacing <= 0 {
		barSpacing = 1
	}
	need := minLabelPx / barSpacing
	for _, s := range timeSteps {
		if float64(s) >= need {
			return s
		}
	}
	return timeSteps[len(timeSteps)-1]
}

// TimeTicks returns the bar indexes inside r that carry a time label.
// Ticks are aligned to absolute indexes so they do not jitter while scrolling.
func TimeTicks(r Range, barSpacing, minLabelPx float64) []int {
	if r.Empty() {
		return nil
	}
	step := TimeStep(barSpacing, minLabelPx)
	first := (r.Start + step - 1) / step * step
	ticks := make([]int, 0, r.Count/step+1)
	for i := first; i <= r.End; i += step {
		ticks = append(ticks, i)
	}
	return ticks
}
