// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import (
	"errors"
	"fmt"
	"maps"
	"math"
)

// ErrInvalidDrawing is returned when a drawing has an unknown kind, the
// wrong number of anchors or non-finite values.
var ErrInvalidDrawing = errors.New("drawing: invalid drawing")

// AnchorPoint is a control point in data space. Time is a unix timestamp
// in seconds.
type AnchorPoint struct {
	Price float64
	Time  int64
}

// Style controls how a drawing is painted. Empty colors fall back to the
// theme.
type Style struct {
	Color  string  // hex stroke color
	Width  float64 // stroke width in logical px; 0 means 1
	Dashed bool
	Fill   string // hex fill color; empty disables the fill
	Label  bool   // price labels on horizontal lines and Fibonacci levels
}

// State is the lifecycle state stored on a drawing.
type State int

const (
	StateIdle State = iota
	StateCreating
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreating:
		return "creating"
	case StateSelected:
		return "selected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Drawing is one annotation.
type Drawing struct {
	ID      string
	Kind    Kind
	Points  []AnchorPoint
	Style   Style
	State   State
	Locked  bool
	Visible bool
	Meta    map[string]string
}

// Clone returns a deep copy.
func (d Drawing) Clone() Drawing {
	d.Points = append([]AnchorPoint(nil), d.Points...)
	if d.Meta != nil {
		d.Meta = maps.Clone(d.Meta)
	}
	return d
}

// Validate checks the kind, the anchor count and that all anchors are
// finite.
func (d *Drawing) Validate() error {
	info, ok := d.Kind.info()
	if !ok {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidDrawing, int(d.Kind))
	}
	if len(d.Points) != info.points {
		return fmt.Errorf("%w: %s needs %d points, has %d", ErrInvalidDrawing, info.name, info.points, len(d.Points))
	}
	for i, p := range d.Points {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("%w: point %d price %v", ErrInvalidDrawing, i, p.Price)
		}
	}
	if w := d.Style.Width; math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%w: style width %v", ErrInvalidDrawing, w)
	}
	return nil
}
