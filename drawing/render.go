// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/render"
)

const (
	handleOuter = 6.0 // logical px
	handleInner = 4.0
	labelInset  = 4.0
)

// Renderer paints the drawings of an engine.
type Renderer struct {
	e *Engine
}

// NewRenderer returns a renderer over e.
func NewRenderer(e *Engine) *Renderer {
	return &Renderer{e: e}
}

// DrawCommitted paints idle, visible drawings. It belongs on the main
// buffer.
func (r *Renderer) DrawCommitted(dc *gg.Context, f *render.Frame) {
	for _, d := range r.e.drawings {
		if d.Visible && d.State == StateIdle {
			r.draw(dc, f, d, false)
		}
	}
}

// DrawActive paints the drawing being created or the selected drawing
// together with its anchor handles. It belongs on the overlay buffer.
func (r *Renderer) DrawActive(dc *gg.Context, f *render.Frame) {
	for _, d := range r.e.drawings {
		if d.Visible && d.State != StateIdle {
			r.draw(dc, f, d, true)
		}
	}
}

// canvas is a drawing projected to bitmap pixels with its resolved style.
type canvas struct {
	dc      *gg.Context
	f       *render.Frame
	d       *Drawing
	proj    Projector
	pts     []pt
	ratio   float64
	w, h    float64
	stroke  gg.RGBA
	fill    gg.RGBA
	hasFill bool
}

func (r *Renderer) draw(dc *gg.Context, f *render.Frame, d *Drawing, handles bool) {
	info, ok := d.Kind.info()
	if !ok {
		return
	}
	s, ok := r.e.project(d)
	if !ok {
		return
	}
	ratio := f.Ratio()
	c := &canvas{
		dc:    dc,
		f:     f,
		d:     d,
		proj:  r.e.proj,
		pts:   make([]pt, len(s.pts)),
		ratio: ratio,
		w:     float64(f.BitmapWidth),
		h:     float64(f.BitmapHeight),
	}
	for i, p := range s.pts {
		c.pts[i] = p.scale(ratio)
	}
	c.resolveStyle()

	need := info.points
	if d.Kind == ParallelChannel && d.State == StateCreating {
		need = 2
	}
	if len(c.pts) >= need {
		info.draw(c)
	}
	if handles {
		c.handles()
	}
}

func (c *canvas) resolveStyle() {
	th := c.f.Theme
	if th == nil {
		th = render.DarkTheme()
	}
	c.stroke = th.Drawing
	if c.d.Style.Color != "" {
		c.stroke = gg.Hex(c.d.Style.Color)
	}
	if c.d.Style.Fill != "" {
		c.fill = gg.Hex(c.d.Style.Fill)
		c.hasFill = true
	}
}

func (c *canvas) setStroke() {
	w := c.d.Style.Width
	if w <= 0 {
		w = 1
	}
	render.SetColor(c.dc, c.stroke)
	c.dc.SetLineWidth(w * c.ratio)
	c.dc.SetLineCap(gg.LineCapButt)
	if c.d.Style.Dashed {
		c.dc.SetDash(6*c.ratio, 4*c.ratio)
	} else {
		c.dc.ClearDash()
	}
}

// line strokes one segment.
func (c *canvas) line(a, b pt) {
	c.setStroke()
	c.dc.MoveTo(a.X, a.Y)
	c.dc.LineTo(b.X, b.Y)
	_ = c.dc.Stroke()
	c.dc.ClearDash()
}

func (c *canvas) polygon(ps ...pt) {
	if !c.hasFill {
		return
	}
	render.SetColor(c.dc, c.fill)
	for i, p := range ps {
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
		} else {
			c.dc.LineTo(p.X, p.Y)
		}
	}
	c.dc.ClosePath()
	_ = c.dc.Fill()
}

// text draws s in the stroke color with its baseline at (x, y). Negative
// x right-aligns the text against the pane edge.
func (c *canvas) text(s string, x, y float64) {
	face := c.f.Face()
	if face == nil {
		return
	}
	c.dc.SetFont(face)
	if x < 0 {
		w, _ := c.dc.MeasureString(s)
		x = c.w - w - labelInset*c.ratio
	}
	render.SetColor(c.dc, c.stroke)
	c.dc.DrawString(s, x, y)
}

func (c *canvas) price(p float64) string {
	return c.f.Formatter().Price(p, c.f.Decimals())
}

func (c *canvas) handles() {
	th := c.f.Theme
	if th == nil {
		th = render.DarkTheme()
	}
	for _, p := range c.pts {
		render.SetColor(c.dc, th.Handle)
		c.dc.DrawCircle(p.X, p.Y, handleOuter*c.ratio)
		_ = c.dc.Fill()
		render.SetColor(c.dc, th.HandleFill)
		c.dc.DrawCircle(p.X, p.Y, handleInner*c.ratio)
		_ = c.dc.Fill()
	}
}

func drawSegment(c *canvas) {
	c.line(c.pts[0], c.pts[1])
}

func drawRay(c *canvas) {
	c.line(c.pts[0], rayEnd(c.pts[0], c.pts[1], c.w, c.h))
}

func drawExtended(c *canvas) {
	c.line(rayEnd(c.pts[1], c.pts[0], c.w, c.h), rayEnd(c.pts[0], c.pts[1], c.w, c.h))
}

func drawHorizontal(c *canvas) {
	y := c.pts[0].Y
	c.line(pt{0, y}, pt{c.w, y})
	if c.d.Style.Label {
		c.text(c.price(c.d.Points[0].Price), -1, y-labelInset*c.ratio)
	}
}

func drawHorizontalRay(c *canvas) {
	p := c.pts[0]
	c.line(p, pt{c.w, p.Y})
	if c.d.Style.Label {
		c.text(c.price(c.d.Points[0].Price), -1, p.Y-labelInset*c.ratio)
	}
}

func drawVertical(c *canvas) {
	x := c.pts[0].X
	c.line(pt{x, 0}, pt{x, c.h})
}

func drawCross(c *canvas) {
	p := c.pts[0]
	c.line(pt{p.X, 0}, pt{p.X, c.h})
	c.line(pt{0, p.Y}, pt{c.w, p.Y})
}

// drawFib draws the retracement ladder between the anchors' x positions,
// filling the band between consecutive levels.
func drawFib(c *canvas) {
	start, end := c.d.Points[0], c.d.Points[1]
	left := math.Min(c.pts[0].X, c.pts[1].X)
	right := math.Max(c.pts[0].X, c.pts[1].X)
	levels := FibLevels(start.Price, end.Price)

	ys := make([]float64, len(levels))
	for i, l := range levels {
		_, y := c.proj.ToPixel(AnchorPoint{Price: l.Price, Time: start.Time})
		ys[i] = y * c.ratio
	}
	for i := 1; i < len(ys); i++ {
		c.polygon(pt{left, ys[i-1]}, pt{right, ys[i-1]}, pt{right, ys[i]}, pt{left, ys[i]})
	}
	for i, l := range levels {
		c.line(pt{left, ys[i]}, pt{right, ys[i]})
		if c.d.Style.Label {
			c.text(l.Label(c.price(l.Price)), left+labelInset*c.ratio, ys[i]-labelInset*c.ratio)
		}
	}
}

func drawRectangle(c *canvas) {
	a, b := c.pts[0], c.pts[1]
	tl := pt{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
	br := pt{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
	tr, bl := pt{br.X, tl.Y}, pt{tl.X, br.Y}
	c.polygon(tl, tr, br, bl)
	c.setStroke()
	c.dc.DrawRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
	_ = c.dc.Stroke()
	c.dc.ClearDash()
}

// drawChannel draws the main segment and, once the third anchor exists, a
// parallel segment through it with the band between them filled.
func drawChannel(c *canvas) {
	a, b := c.pts[0], c.pts[1]
	if len(c.pts) >= 3 {
		off := pt{0, channelOffset(a, b, c.pts[2])}
		c.polygon(a, b, b.add(off), a.add(off))
		c.line(a.add(off), b.add(off))
	}
	c.line(a, b)
}
