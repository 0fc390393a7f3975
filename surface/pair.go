// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/coord"
)

// Common errors returned by Pair operations.
var (
	// ErrPairClosed is returned when operations are attempted on a closed pair.
	ErrPairClosed = errors.New("surface: pair is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")
)

// DrawFunc paints one buffer. The context has been cleared to transparent
// and is sized in bitmap pixels.
type DrawFunc func(dc *gg.Context)

// Pair is the main + top raster buffer pair of a chart pane.
//
// Pair is NOT safe for concurrent use.
type Pair struct {
	main *gg.Context
	top  *gg.Context

	mainDirty bool
	topDirty  bool

	mediaWidth  float64
	mediaHeight float64
	ratio       float64
	width       int // bitmap
	height      int // bitmap

	closed bool
}

// NewPair allocates both buffers for a pane of the given media size at the
// given device pixel ratio. Both buffers start dirty.
func NewPair(mediaWidth, mediaHeight, ratio float64) (*Pair, error) {
	p := &Pair{}
	if err := p.allocate(mediaWidth, mediaHeight, ratio); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNewPair is like NewPair but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNewPair(mediaWidth, mediaHeight, ratio float64) *Pair {
	p, err := NewPair(mediaWidth, mediaHeight, ratio)
	if err != nil {
		panic(err)
	}
	return p
}

func bitmapSize(mediaWidth, mediaHeight, ratio float64) (int, int, error) {
	if math.IsNaN(mediaWidth) || math.IsNaN(mediaHeight) || mediaWidth <= 0 || mediaHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: width=%v, height=%v", ErrInvalidDimensions, mediaWidth, mediaHeight)
	}
	w := max(1, coord.MediaToBitmap(mediaWidth, ratio))
	h := max(1, coord.MediaToBitmap(mediaHeight, ratio))
	return w, h, nil
}

func (p *Pair) allocate(mediaWidth, mediaHeight, ratio float64) error {
	w, h, err := bitmapSize(mediaWidth, mediaHeight, ratio)
	if err != nil {
		return err
	}
	p.release()
	p.main = gg.NewContext(w, h)
	p.top = gg.NewContext(w, h)
	p.mediaWidth = mediaWidth
	p.mediaHeight = mediaHeight
	p.ratio = coord.SafeRatio(ratio)
	p.width = w
	p.height = h
	p.mainDirty = true
	p.topDirty = true
	return nil
}

// MediaSize returns the pane size in media pixels.
func (p *Pair) MediaSize() (width, height float64) {
	return p.mediaWidth, p.mediaHeight
}

// BitmapSize returns the buffer size in bitmap pixels.
func (p *Pair) BitmapSize() (width, height int) {
	return p.width, p.height
}

// PixelRatio returns the device pixel ratio the buffers were sized for.
func (p *Pair) PixelRatio() float64 {
	return p.ratio
}

// InvalidateMain marks the main buffer for redraw on the next Paint.
func (p *Pair) InvalidateMain() {
	p.mainDirty = true
}

// InvalidateTop marks the top buffer for redraw on the next Paint.
func (p *Pair) InvalidateTop() {
	p.topDirty = true
}

// InvalidateAll marks both buffers for redraw on the next Paint.
func (p *Pair) InvalidateAll() {
	p.mainDirty = true
	p.topDirty = true
}

// IsDirty reports the pending dirty flags.
func (p *Pair) IsDirty() (main, top bool) {
	return p.mainDirty, p.topDirty
}

// Paint redraws the buffers whose dirty flag is set and clears the flags.
// The main buffer is always completed before the top buffer is touched.
// It reports whether any buffer was repainted, which tells the caller that
// dependent surfaces (axes) need to resync.
func (p *Pair) Paint(drawMain, drawTop DrawFunc) bool {
	if p.closed {
		return false
	}
	repainted := false
	if p.mainDirty {
		p.mainDirty = false
		p.main.Clear()
		if drawMain != nil {
			drawMain(p.main)
		}
		repainted = true
	}
	if p.closed {
		// closed by drawMain
		return repainted
	}
	if p.topDirty {
		p.topDirty = false
		p.top.Clear()
		if drawTop != nil {
			drawTop(p.top)
		}
		repainted = true
	}
	return repainted
}

// Resize reallocates both buffers at the new physical size and marks them
// dirty. Old pixel content is discarded, never rescaled.
func (p *Pair) Resize(mediaWidth, mediaHeight, ratio float64) error {
	if p.closed {
		return ErrPairClosed
	}
	if mediaWidth == p.mediaWidth && mediaHeight == p.mediaHeight && coord.SafeRatio(ratio) == p.ratio {
		return nil
	}
	if err := p.allocate(mediaWidth, mediaHeight, ratio); err != nil {
		return fmt.Errorf("surface: resize failed: %w", err)
	}
	return nil
}

// Main returns the main buffer, or nil once the pair is closed.
func (p *Pair) Main() *gg.Context {
	if p.closed {
		return nil
	}
	return p.main
}

// Top returns the overlay buffer, or nil once the pair is closed.
func (p *Pair) Top() *gg.Context {
	if p.closed {
		return nil
	}
	return p.top
}

// Composite returns a new image with the top buffer blended over the main
// buffer. It returns nil once the pair is closed.
func (p *Pair) Composite() *image.RGBA {
	if p.closed {
		return nil
	}
	_ = p.main.FlushGPU()
	_ = p.top.FlushGPU()
	out := p.main.ResizeTarget().ToImage()
	draw.Draw(out, out.Bounds(), p.top.ResizeTarget().ToImage(), image.Point{}, draw.Over)
	return out
}

// Close releases both buffers.
// Close is idempotent - multiple calls are safe.
func (p *Pair) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.release()
	return nil
}

// Closed reports whether Close has been called.
func (p *Pair) Closed() bool {
	return p.closed
}

func (p *Pair) release() {
	if p.main != nil {
		_ = p.main.Close()
		p.main = nil
	}
	if p.top != nil {
		_ = p.top.Close()
		p.top = nil
	}
}
