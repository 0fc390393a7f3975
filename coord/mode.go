// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package coord

import "fmt"

// ScaleMode selects how prices are laid out on the vertical axis.
type ScaleMode int

const (
	// ScaleLinear maps prices linearly.
	ScaleLinear ScaleMode = iota

	// ScaleLog maps log(price) linearly.
	ScaleLog

	// ScalePercentage is linear in price but labels the axis as percent
	// change from the first visible bar's close.
	ScalePercentage
)

var scaleModeNames = [...]string{"linear", "log", "percentage"}

// String returns the config name of the mode.
func (m ScaleMode) String() string {
	if m < 0 || int(m) >= len(scaleModeNames) {
		return fmt.Sprintf("ScaleMode(%d)", int(m))
	}
	return scaleModeNames[m]
}

// Log reports whether the mode uses a logarithmic transform.
func (m ScaleMode) Log() bool {
	return m == ScaleLog
}

// ParseScaleMode parses a config name ("linear", "log", "percentage").
func ParseScaleMode(s string) (ScaleMode, error) {
	for i, name := range scaleModeNames {
		if s == name {
			return ScaleMode(i), nil
		}
	}
	return ScaleLinear, fmt.Errorf("coord: unknown scale mode %q", s)
}
