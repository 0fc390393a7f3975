// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import "math"

// Hit thresholds in logical pixels.
const (
	AnchorRadius     = 7.0
	LineTolerance    = 6.0
	ChannelTolerance = 10.0
	RectTolerance    = 6.0
)

type pt struct {
	X, Y float64
}

func (p pt) sub(q pt) pt        { return pt{p.X - q.X, p.Y - q.Y} }
func (p pt) add(q pt) pt        { return pt{p.X + q.X, p.Y + q.Y} }
func (p pt) scale(s float64) pt { return pt{p.X * s, p.Y * s} }
func (p pt) dot(q pt) float64   { return p.X*q.X + p.Y*q.Y }
func (p pt) dist(q pt) float64  { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p pt) finite() bool       { return finite(p.X) && finite(p.Y) }

// shape is a drawing projected to logical pixels together with the pane
// size.
type shape struct {
	pts  []pt
	w, h float64
}

// distProjected returns the distance from p to the point a + t*(b-a), with
// t clamped to [lo, hi].
func distProjected(p, a, b pt, lo, hi float64) float64 {
	d := b.sub(a)
	l2 := d.dot(d)
	if l2 == 0 {
		return p.dist(a)
	}
	t := p.sub(a).dot(d) / l2
	t = math.Max(lo, math.Min(hi, t))
	return p.dist(a.add(d.scale(t)))
}

func distSegment(p, a, b pt) float64 { return distProjected(p, a, b, 0, 1) }
func distRay(p, a, b pt) float64     { return distProjected(p, a, b, 0, math.Inf(1)) }
func distLine(p, a, b pt) float64    { return distProjected(p, a, b, math.Inf(-1), math.Inf(1)) }

// rayEnd returns where the ray from a through b leaves the pane
// [0, w] x [0, h]. A degenerate ray returns b.
func rayEnd(a, b pt, w, h float64) pt {
	d := b.sub(a)
	if d.X == 0 && d.Y == 0 {
		return b
	}
	t := math.Inf(1)
	if d.X > 0 {
		t = math.Min(t, (w-a.X)/d.X)
	} else if d.X < 0 {
		t = math.Min(t, -a.X/d.X)
	}
	if d.Y > 0 {
		t = math.Min(t, (h-a.Y)/d.Y)
	} else if d.Y < 0 {
		t = math.Min(t, -a.Y/d.Y)
	}
	if t < 1 || math.IsInf(t, 0) {
		t = 1
	}
	return a.add(d.scale(t))
}

// channelOffset returns the vertical pixel offset of the parallel line
// that passes through the third anchor.
func channelOffset(a, b, c pt) float64 {
	d := b.sub(a)
	if d.X == 0 {
		return c.Y - a.Y
	}
	return c.Y - (a.Y + d.Y*(c.X-a.X)/d.X)
}

func hitSegment(s shape, x, y float64) bool {
	return distSegment(pt{x, y}, s.pts[0], s.pts[1]) <= LineTolerance
}

func hitRay(s shape, x, y float64) bool {
	return distRay(pt{x, y}, s.pts[0], s.pts[1]) <= LineTolerance
}

func hitLine(s shape, x, y float64) bool {
	return distLine(pt{x, y}, s.pts[0], s.pts[1]) <= LineTolerance
}

func hitHorizontal(s shape, _, y float64) bool {
	return math.Abs(y-s.pts[0].Y) <= LineTolerance
}

func hitHorizontalRay(s shape, x, y float64) bool {
	return x >= s.pts[0].X-LineTolerance && math.Abs(y-s.pts[0].Y) <= LineTolerance
}

func hitVertical(s shape, x, _ float64) bool {
	return math.Abs(x-s.pts[0].X) <= LineTolerance
}

func hitCross(s shape, x, y float64) bool {
	return math.Abs(x-s.pts[0].X) <= LineTolerance || math.Abs(y-s.pts[0].Y) <= LineTolerance
}

// hitFib tests membership of the vertical band between the two anchor
// price levels, limited horizontally to the ladder.
func hitFib(s shape, x, y float64) bool {
	a, b := s.pts[0], s.pts[1]
	top, bottom := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	left, right := math.Min(a.X, b.X), math.Max(a.X, b.X)
	return y >= top-LineTolerance && y <= bottom+LineTolerance &&
		x >= left-LineTolerance && x <= right+LineTolerance
}

func hitRectangle(s shape, x, y float64) bool {
	a, b := s.pts[0], s.pts[1]
	return x >= math.Min(a.X, b.X)-RectTolerance && x <= math.Max(a.X, b.X)+RectTolerance &&
		y >= math.Min(a.Y, b.Y)-RectTolerance && y <= math.Max(a.Y, b.Y)+RectTolerance
}

func hitChannel(s shape, x, y float64) bool {
	p := pt{x, y}
	a, b := s.pts[0], s.pts[1]
	if distSegment(p, a, b) <= ChannelTolerance {
		return true
	}
	if len(s.pts) < 3 {
		return false
	}
	off := pt{0, channelOffset(a, b, s.pts[2])}
	return distSegment(p, a.add(off), b.add(off)) <= ChannelTolerance
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
