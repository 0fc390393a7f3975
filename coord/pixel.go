// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package coord

import "math"

// candleBodyFraction is the share of the bar spacing taken by a candle body.
const candleBodyFraction = 0.8

// Position is a snapped run of bitmap pixels: the first pixel and the
// number of pixels covered.
type Position struct {
	Position int
	Length   int
}

// End returns the first pixel after the run.
func (p Position) End() int {
	return p.Position + p.Length
}

// SafeRatio returns ratio, or 1 when ratio is not a usable pixel ratio.
func SafeRatio(ratio float64) float64 {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 1
	}
	return ratio
}

// MediaToBitmap scales a media coordinate to the nearest bitmap pixel.
func MediaToBitmap(v, ratio float64) int {
	if !isFinite(v) {
		return 0
	}
	return int(math.Round(v * SafeRatio(ratio)))
}

// BitmapToMedia is the inverse of MediaToBitmap.
func BitmapToMedia(px int, ratio float64) float64 {
	return float64(px) / SafeRatio(ratio)
}

// PositionsLine snaps a stroke of the given media width centred on a media
// coordinate. The stroke covers whole bitmap pixels only, so it renders
// without anti-aliasing blur. Length never drops below one pixel.
func PositionsLine(center, width, ratio float64) Position {
	ratio = SafeRatio(ratio)
	length := 1
	if isFinite(width) && width > 0 {
		length = max(1, int(math.Floor(width*ratio)))
	}
	return Position{
		Position: MediaToBitmap(center, ratio) - length/2,
		Length:   length,
	}
}

// PositionsBox snaps a filled span of the given media width centred on a
// media coordinate. The span is symmetric around the centre pixel and at
// least one pixel long.
func PositionsBox(center, width, ratio float64) Position {
	ratio = SafeRatio(ratio)
	length := 1
	if isFinite(width) && width > 0 {
		length = max(1, int(math.Round(width*ratio)))
	}
	return Position{
		Position: MediaToBitmap(center, ratio) - length/2,
		Length:   length,
	}
}

// CandleBodyWidth returns the body width in bitmap pixels for a bitmap bar
// spacing. It shrinks with the spacing but never reaches zero.
func CandleBodyWidth(barSpacing float64) float64 {
	if !isFinite(barSpacing) || barSpacing <= 0 {
		return 1
	}
	return math.Max(1, math.Floor(barSpacing*candleBodyFraction))
}

// WickWidth returns the wick width in bitmap pixels for a bitmap bar
// spacing: one media pixel, capped so it stays thinner than the body.
func WickWidth(barSpacing, ratio float64) int {
	w := int(math.Floor(SafeRatio(ratio)))
	body := int(CandleBodyWidth(barSpacing))
	if w > body/3 {
		w = body / 3
	}
	return max(1, w)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
