// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import "fmt"

// Kind is the closed set of annotation types.
type Kind int

const (
	TrendLine Kind = iota
	Ray
	ExtendedLine
	HorizontalLine
	HorizontalRay
	VerticalLine
	CrossLine
	FibRetracement
	Rectangle
	ParallelChannel
)

// hitFunc reports whether logical point (x, y) touches the body of a
// projected shape.
type hitFunc func(s shape, x, y float64) bool

// drawFunc paints a projected drawing.
type drawFunc func(c *canvas)

type kindInfo struct {
	name   string
	points int
	style  Style
	hit    hitFunc
	draw   drawFunc
}

var kinds = [...]kindInfo{
	TrendLine:       {name: "trend_line", points: 2, style: Style{Width: 2}, hit: hitSegment, draw: drawSegment},
	Ray:             {name: "ray", points: 2, style: Style{Width: 2}, hit: hitRay, draw: drawRay},
	ExtendedLine:    {name: "extended_line", points: 2, style: Style{Width: 2}, hit: hitLine, draw: drawExtended},
	HorizontalLine:  {name: "horizontal_line", points: 1, style: Style{Width: 1, Label: true}, hit: hitHorizontal, draw: drawHorizontal},
	HorizontalRay:   {name: "horizontal_ray", points: 1, style: Style{Width: 1, Label: true}, hit: hitHorizontalRay, draw: drawHorizontalRay},
	VerticalLine:    {name: "vertical_line", points: 1, style: Style{Width: 1}, hit: hitVertical, draw: drawVertical},
	CrossLine:       {name: "cross_line", points: 1, style: Style{Width: 1}, hit: hitCross, draw: drawCross},
	FibRetracement:  {name: "fib_retracement", points: 2, style: Style{Width: 1, Fill: "#2962ff1a", Label: true}, hit: hitFib, draw: drawFib},
	Rectangle:       {name: "rectangle", points: 2, style: Style{Width: 1, Fill: "#2962ff33"}, hit: hitRectangle, draw: drawRectangle},
	ParallelChannel: {name: "parallel_channel", points: 3, style: Style{Width: 2, Fill: "#2962ff1a"}, hit: hitChannel, draw: drawChannel},
}

func (k Kind) info() (kindInfo, bool) {
	if k < 0 || int(k) >= len(kinds) {
		return kindInfo{}, false
	}
	return kinds[k], true
}

// String returns the persisted name of the kind.
func (k Kind) String() string {
	if s, ok := k.info(); ok {
		return s.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Points returns the number of anchors the kind requires, or 0 for an
// unknown kind.
func (k Kind) Points() int {
	s, _ := k.info()
	return s.points
}

// DefaultStyle returns the style new drawings of this kind start with.
func (k Kind) DefaultStyle() Style {
	s, _ := k.info()
	return s.style
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := k.info()
	return ok
}

// ParseKind resolves a persisted kind name.
func ParseKind(name string) (Kind, error) {
	for i, s := range kinds {
		if s.name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidDrawing, name)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	for i := range kinds {
		out[i] = Kind(i)
	}
	return out
}
