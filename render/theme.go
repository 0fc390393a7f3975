// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// Theme holds the colors and sizes shared by all layers.
// Sizes are in media pixels.
type Theme struct {
	Background     gg.RGBA
	Grid           gg.RGBA
	Text           gg.RGBA
	AxisBackground gg.RGBA
	AxisBorder     gg.RGBA

	Bullish     gg.RGBA
	Bearish     gg.RGBA
	BullishWick gg.RGBA
	BearishWick gg.RGBA

	VolumeBullish gg.RGBA
	VolumeBearish gg.RGBA

	Line           gg.RGBA
	AreaFill       gg.RGBA
	BaselineTop    gg.RGBA
	BaselineBottom gg.RGBA

	Crosshair      gg.RGBA
	CrosshairLabel gg.RGBA

	Drawing    gg.RGBA
	Handle     gg.RGBA
	HandleFill gg.RGBA

	FontSize      float64
	LineWidth     float64
	LabelPadding  float64
	MinTickSpaceX float64
}

// DarkTheme returns the default dark palette.
func DarkTheme() *Theme {
	return &Theme{
		Background:     gg.Hex("#131722"),
		Grid:           gg.Hex("#1f2433"),
		Text:           gg.Hex("#b2b5be"),
		AxisBackground: gg.Hex("#131722"),
		AxisBorder:     gg.Hex("#2a2e39"),

		Bullish:     gg.Hex("#26a69a"),
		Bearish:     gg.Hex("#ef5350"),
		BullishWick: gg.Hex("#26a69a"),
		BearishWick: gg.Hex("#ef5350"),

		VolumeBullish: gg.Hex("#26a69a66"),
		VolumeBearish: gg.Hex("#ef535066"),

		Line:           gg.Hex("#2962ff"),
		AreaFill:       gg.Hex("#2962ff40"),
		BaselineTop:    gg.Hex("#26a69a40"),
		BaselineBottom: gg.Hex("#ef535040"),

		Crosshair:      gg.Hex("#758696"),
		CrosshairLabel: gg.Hex("#363a45"),

		Drawing:    gg.Hex("#2962ff"),
		Handle:     gg.Hex("#2962ff"),
		HandleFill: gg.Hex("#131722"),

		FontSize:      11,
		LineWidth:     2,
		LabelPadding:  4,
		MinTickSpaceX: 80,
	}
}

// LightTheme returns the default light palette.
func LightTheme() *Theme {
	t := DarkTheme()
	t.Background = gg.Hex("#ffffff")
	t.Grid = gg.Hex("#f0f3fa")
	t.Text = gg.Hex("#131722")
	t.AxisBackground = gg.Hex("#ffffff")
	t.AxisBorder = gg.Hex("#e0e3eb")
	t.Crosshair = gg.Hex("#9598a1")
	t.CrosshairLabel = gg.Hex("#131722")
	t.HandleFill = gg.Hex("#ffffff")
	return t
}

// ThemeByName returns a fresh copy of a built-in theme ("dark" or "light").
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("render: unknown theme %q", name)
	}
}

// Clone returns a copy that can be modified independently.
func (t *Theme) Clone() *Theme {
	c := *t
	return &c
}

// SetColor overrides one color by its config key (for example "bullish" or
// "grid") with a hex value.
func (t *Theme) SetColor(key, hex string) error {
	if !validHex(hex) {
		return fmt.Errorf("render: invalid color %q for %q", hex, key)
	}
	dst := t.colorByKey(key)
	if dst == nil {
		return fmt.Errorf("render: unknown theme color %q", key)
	}
	*dst = gg.Hex(hex)
	return nil
}

func (t *Theme) colorByKey(key string) *gg.RGBA {
	switch key {
	case "background":
		return &t.Background
	case "grid":
		return &t.Grid
	case "text":
		return &t.Text
	case "axis_background":
		return &t.AxisBackground
	case "axis_border":
		return &t.AxisBorder
	case "bullish":
		return &t.Bullish
	case "bearish":
		return &t.Bearish
	case "bullish_wick":
		return &t.BullishWick
	case "bearish_wick":
		return &t.BearishWick
	case "volume_bullish":
		return &t.VolumeBullish
	case "volume_bearish":
		return &t.VolumeBearish
	case "line":
		return &t.Line
	case "area_fill":
		return &t.AreaFill
	case "baseline_top":
		return &t.BaselineTop
	case "baseline_bottom":
		return &t.BaselineBottom
	case "crosshair":
		return &t.Crosshair
	case "crosshair_label":
		return &t.CrosshairLabel
	case "drawing":
		return &t.Drawing
	case "handle":
		return &t.Handle
	case "handle_fill":
		return &t.HandleFill
	}
	return nil
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (gg.RGBA, error) {
	if !validHex(s) {
		return gg.RGBA{}, fmt.Errorf("render: invalid color %q", s)
	}
	return gg.Hex(s), nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// SetColor sets the current color of dc.
func SetColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}
