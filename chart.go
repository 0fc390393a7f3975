// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/coord"
	"github.com/gogpu/chart/drawing"
	"github.com/gogpu/chart/indicator"
	"github.com/gogpu/chart/ohlc"
	"github.com/gogpu/chart/render"
	"github.com/gogpu/chart/surface"
)

var (
	// ErrClosed is returned by operations on a closed chart.
	ErrClosed = errors.New("chart: closed")

	// ErrNoScheduler is returned by Start when no Scheduler was configured.
	ErrNoScheduler = errors.New("chart: no scheduler")

	// ErrInvalidRange is returned by SetPriceRange for an unusable range.
	ErrInvalidRange = errors.New("chart: invalid price range")
)

// Chart is an interactive price chart: one pane with its price and time
// axes, the bar series, indicator overlays and annotations.
//
// Chart is NOT safe for concurrent use. Drive it from the host's UI
// goroutine: input handlers, data updates and frame ticks.
type Chart struct {
	opts options

	width, height float64 // media px, axes included
	ratio         float64

	bars  ohlc.Bars
	drawn []ohlc.Bar // bars as drawn (Heikin-Ashi applied)

	scrollOffset int
	visibleBars  int
	mode         coord.ScaleMode
	series       render.SeriesType
	magnet       bool

	manual               bool
	manualMin, manualMax float64

	pointer   pointerState
	drag      *dragState
	pinch     *pinchState
	crosshair render.CrosshairState

	pair      *surface.Pair
	priceAxis *gg.Context
	timeAxis  *gg.Context
	cached    *layout

	main, top pipeline

	engine   *drawing.Engine
	drawings *drawing.Renderer

	theme      *render.Theme
	fonts      *render.Fonts
	ownFonts   bool
	format     *render.Formatter
	registry   *indicator.Registry
	indicators []*IndicatorInstance

	cancelFrame func()
	frameSeq    uint64
	running     bool
	frames      uint64

	closed bool
	log    *slog.Logger
}

// New creates a chart of the given size in media (CSS) pixels, axes
// included.
func New(width, height float64, opts ...Option) (*Chart, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Chart{
		opts:        o,
		width:       width,
		height:      height,
		ratio:       o.pixelRatio,
		visibleBars: clampBars(o.visibleBars, o.minVisible, o.maxVisible),
		mode:        o.scaleMode,
		series:      o.series,
		magnet:      o.magnet,
		theme:       o.theme,
		fonts:       o.fonts,
		format:      o.format,
		registry:    o.registry,
		log:         Logger(),
	}
	if c.theme == nil {
		c.theme = render.DarkTheme()
	}
	if c.format == nil {
		c.format = render.DefaultFormatter()
	}
	if c.registry == nil {
		c.registry = indicator.Default()
	}
	if c.fonts == nil {
		f, err := render.DefaultFonts()
		if err != nil {
			c.log.Warn("chart: default font unavailable, labels disabled", "err", err)
		} else {
			c.fonts = f
			c.ownFonts = true
		}
	}

	engineOpts := []drawing.Option{drawing.WithLogger(c.log)}
	if o.idFunc != nil {
		engineOpts = append(engineOpts, drawing.WithIDFunc(o.idFunc))
	}
	c.engine = drawing.NewEngine(projector{c}, engineOpts...)
	c.engine.OnChange(c.onDrawingChange)
	c.drawings = drawing.NewRenderer(c.engine)
	c.installBuiltins()

	if err := c.allocate(); err != nil {
		c.releaseFonts()
		return nil, err
	}
	c.log.Debug("chart: created", "width", width, "height", height, "ratio", c.ratio)
	return c, nil
}

func clampBars(n, lo, hi int) int {
	return min(max(n, lo), hi)
}

// axisSize returns the media size of the price axis width and the time
// axis height, zero without axes.
func (c *Chart) axisSize() (float64, float64) {
	if !c.opts.axes {
		return 0, 0
	}
	return render.PriceAxisWidth, render.TimeAxisHeight
}

// paneSize returns the media size of the price pane.
func (c *Chart) paneSize() (float64, float64) {
	aw, ah := c.axisSize()
	return c.width - aw, c.height - ah
}

func (c *Chart) allocate() error {
	pw, ph := c.paneSize()
	if c.pair == nil {
		pair, err := surface.NewPair(pw, ph, c.ratio)
		if err != nil {
			return fmt.Errorf("chart: create surfaces: %w", err)
		}
		c.pair = pair
	} else if err := c.pair.Resize(pw, ph, c.ratio); err != nil {
		return fmt.Errorf("chart: resize surfaces: %w", err)
	}

	c.releaseAxes()
	if c.opts.axes {
		aw, ah := c.axisSize()
		bw, bh := c.pair.BitmapSize()
		c.priceAxis = gg.NewContext(max(1, coord.MediaToBitmap(aw, c.ratio)), bh)
		c.timeAxis = gg.NewContext(bw, max(1, coord.MediaToBitmap(ah, c.ratio)))
	}
	c.invalidateAll()
	return nil
}

func (c *Chart) releaseAxes() {
	if c.priceAxis != nil {
		_ = c.priceAxis.Close()
		c.priceAxis = nil
	}
	if c.timeAxis != nil {
		_ = c.timeAxis.Close()
		c.timeAxis = nil
	}
}

func (c *Chart) releaseFonts() {
	if c.ownFonts && c.fonts != nil {
		_ = c.fonts.Close()
	}
	c.fonts = nil
}

// Resize changes the chart size and device pixel ratio. Buffer content is
// discarded and repainted on the next frame.
func (c *Chart) Resize(width, height, ratio float64) error {
	if c.closed {
		return ErrClosed
	}
	ratio = coord.SafeRatio(ratio)
	if width == c.width && height == c.height && ratio == c.ratio {
		return nil
	}
	oldW, oldH, oldR := c.width, c.height, c.ratio
	c.width, c.height, c.ratio = width, height, ratio
	if err := c.allocate(); err != nil {
		c.width, c.height, c.ratio = oldW, oldH, oldR
		return err
	}
	c.updateCrosshair()
	c.log.Debug("chart: resized", "width", width, "height", height, "ratio", ratio)
	return nil
}

func (c *Chart) invalidateMain() {
	c.cached = nil
	if c.pair != nil {
		c.pair.InvalidateMain()
	}
}

func (c *Chart) invalidateTop() {
	if c.pair != nil {
		c.pair.InvalidateTop()
	}
}

func (c *Chart) invalidateAll() {
	c.cached = nil
	if c.pair != nil {
		c.pair.InvalidateAll()
	}
}

func (c *Chart) onDrawingChange(ch drawing.Change) {
	if ch&drawing.ChangeMain != 0 {
		c.invalidateMain()
	}
	if ch&drawing.ChangeTop != 0 {
		c.invalidateTop()
	}
}

// SetData replaces the whole series, scrolls to the newest bar and
// repaints everything. Bars must be ordered by strictly increasing time.
func (c *Chart) SetData(bars []ohlc.Bar) {
	if c.closed {
		return
	}
	c.bars = slices.Clone(bars)
	c.scrollOffset = 0
	c.dataChanged()
	c.invalidateAll()
	c.updateCrosshair()
}

// UpdateBar applies a live update. A bar with the time of the newest bar
// replaces it; a newer bar is appended; an older bar is ignored. It
// reports whether the series changed.
func (c *Chart) UpdateBar(b ohlc.Bar) bool {
	if c.closed {
		return false
	}
	n := len(c.bars)
	idx := n
	switch {
	case n > 0 && b.Time == c.bars[n-1].Time:
		idx = n - 1
		c.bars[idx] = b
	case n == 0 || b.Time > c.bars[n-1].Time:
		c.bars = append(c.bars, b)
		if c.scrollOffset > 0 {
			// keep a history view on the same bars
			c.scrollOffset++
		}
	default:
		return false
	}

	// The legend shows the hovered bar, or the newest one.
	legendHit := !c.crosshair.Visible || c.crosshair.Index == idx
	c.dataChanged()
	c.invalidateMain()
	if legendHit {
		c.invalidateTop()
	}
	// An append at the live edge shifts every bar under the pointer.
	c.updateCrosshair()
	return true
}

// PrependBars splices older history in front of the series. Bars that are
// not strictly older than the current first bar are dropped. The visible
// window keeps showing the same bars. It returns the number of bars added.
func (c *Chart) PrependBars(older []ohlc.Bar) int {
	if c.closed || len(older) == 0 {
		return 0
	}
	kept := make([]ohlc.Bar, 0, len(older))
	for _, b := range older {
		if len(c.bars) > 0 && b.Time >= c.bars[0].Time {
			continue
		}
		if len(kept) > 0 && b.Time <= kept[len(kept)-1].Time {
			continue
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return 0
	}
	c.bars = append(kept, c.bars...)
	if c.crosshair.Visible {
		c.crosshair.Index += len(kept)
	}
	c.dataChanged()
	c.invalidateAll()
	c.log.Debug("chart: prepended history", "bars", len(kept))
	return len(kept)
}

// dataChanged refreshes everything derived from the bars.
func (c *Chart) dataChanged() {
	c.refreshDrawn()
	c.recomputeIndicators()
	if c.scrollOffset > c.maxScroll() {
		c.scrollOffset = c.maxScroll()
	}
}

func (c *Chart) refreshDrawn() {
	if c.series == render.SeriesHeikinAshi {
		c.drawn = render.HeikinAshi(c.bars)
		return
	}
	c.drawn = c.bars
}

// SetVisibleBars sets the zoom level, clamped to the configured limits.
// It reports whether the zoom changed.
func (c *Chart) SetVisibleBars(n int) bool {
	if c.closed {
		return false
	}
	n = clampBars(n, c.opts.minVisible, c.opts.maxVisible)
	if n == c.visibleBars {
		return false
	}
	c.visibleBars = n
	c.invalidateAll()
	c.updateCrosshair()
	return true
}

// maxScroll keeps at least the first bar inside the window.
func (c *Chart) maxScroll() int {
	return max(0, len(c.bars)-1)
}

// ScrollTo sets the number of bars the view is scrolled back from the
// newest bar, clamped to [0, lastIndex].
func (c *Chart) ScrollTo(offset int) bool {
	if c.closed {
		return false
	}
	offset = min(max(offset, 0), c.maxScroll())
	if offset == c.scrollOffset {
		return false
	}
	c.scrollOffset = offset
	c.invalidateAll()
	c.updateCrosshair()
	return true
}

// ScrollToEnd shows the newest bar.
func (c *Chart) ScrollToEnd() bool {
	return c.ScrollTo(0)
}

// SetScaleMode switches between linear, logarithmic and percentage price
// scales.
func (c *Chart) SetScaleMode(m coord.ScaleMode) {
	if c.closed || m == c.mode {
		return
	}
	c.mode = m
	c.invalidateAll()
	c.updateCrosshair()
}

// SetSeriesType changes how the bars are drawn.
func (c *Chart) SetSeriesType(t render.SeriesType) {
	if c.closed || t == c.series {
		return
	}
	c.series = t
	c.refreshDrawn()
	c.invalidateAll()
	c.updateCrosshair()
}

// SetPriceRange fixes the vertical range instead of fitting it to the
// visible bars.
func (c *Chart) SetPriceRange(lo, hi float64) error {
	if c.closed {
		return ErrClosed
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	if c.mode.Log() && lo <= 0 {
		return fmt.Errorf("%w: log scale needs positive prices, got %v", ErrInvalidRange, lo)
	}
	c.manual, c.manualMin, c.manualMax = true, lo, hi
	c.invalidateAll()
	c.updateCrosshair()
	return nil
}

// ResetPriceRange returns to fitting the visible bars.
func (c *Chart) ResetPriceRange() {
	if c.closed || !c.manual {
		return
	}
	c.manual = false
	c.invalidateAll()
	c.updateCrosshair()
}

// SetMagnet toggles crosshair snapping onto OHLC values.
func (c *Chart) SetMagnet(on bool) {
	if c.closed || on == c.magnet {
		return
	}
	c.magnet = on
	c.updateCrosshair()
}

// ViewportState is a snapshot of the viewport.
type ViewportState struct {
	ScrollOffset   int
	VisibleBars    int
	RightPadding   int
	MinVisibleBars int
	MaxVisibleBars int
	BarSpacing     float64 // media px
	ScaleMode      coord.ScaleMode
	Series         render.SeriesType
	Magnet         bool
	PriceRangeSet  bool
	PaneWidth      float64
	PaneHeight     float64
	PixelRatio     float64
}

// Viewport returns the current viewport state.
func (c *Chart) Viewport() ViewportState {
	l := c.layout()
	return ViewportState{
		ScrollOffset:   c.scrollOffset,
		VisibleBars:    c.visibleBars,
		RightPadding:   c.opts.rightPadding,
		MinVisibleBars: c.opts.minVisible,
		MaxVisibleBars: c.opts.maxVisible,
		BarSpacing:     l.time.BarSpacing,
		ScaleMode:      c.mode,
		Series:         c.series,
		Magnet:         c.magnet,
		PriceRangeSet:  c.manual,
		PaneWidth:      l.paneW,
		PaneHeight:     l.paneH,
		PixelRatio:     c.ratio,
	}
}

// VisibleRange returns the bar indexes currently on screen.
func (c *Chart) VisibleRange() coord.Range {
	return c.layout().rng
}

// PriceScale returns the vertical range and tick values of the current
// frame.
func (c *Chart) PriceScale() coord.PriceScale {
	s := c.layout().scale
	s.Ticks = slices.Clone(s.Ticks)
	return s
}

// Crosshair returns the crosshair state. Coordinates are pane media px.
func (c *Chart) Crosshair() render.CrosshairState {
	return c.crosshair
}

// Bars returns a copy of the series.
func (c *Chart) Bars() []ohlc.Bar {
	return slices.Clone(c.bars)
}

// Engine returns the annotation engine. Annotations added through it are
// projected through this chart's viewport.
func (c *Chart) Engine() *drawing.Engine {
	return c.engine
}

// Theme returns the chart theme. Changes take effect after Invalidate.
func (c *Chart) Theme() *render.Theme {
	return c.theme
}

// Invalidate forces a full repaint on the next frame.
func (c *Chart) Invalidate() {
	if !c.closed {
		c.invalidateAll()
	}
}

// Frames returns how many frames repainted at least one buffer.
func (c *Chart) Frames() uint64 {
	return c.frames
}

// Render paints whatever is dirty. Axes are redrawn when either buffer
// repainted. It reports whether anything was painted.
func (c *Chart) Render() bool {
	if c.closed {
		return false
	}
	var f *render.Frame
	frame := func() *render.Frame {
		if f == nil {
			f = c.frame(c.layout())
		}
		return f
	}
	repainted := c.pair.Paint(
		func(dc *gg.Context) { c.main.run(dc, frame(), c.Closed) },
		func(dc *gg.Context) { c.top.run(dc, frame(), c.Closed) },
	)
	if !repainted || c.closed {
		return repainted
	}
	if c.opts.axes {
		render.PriceAxis(c.priceAxis, frame())
		render.TimeAxis(c.timeAxis, frame())
	}
	c.frames++
	c.log.Debug("chart: frame painted", "frame", c.frames, "start", f.Range.Start, "end", f.Range.End)
	return true
}

// Start begins the render loop on the configured Scheduler: every tick
// renders and schedules the next one.
func (c *Chart) Start() error {
	if c.closed {
		return ErrClosed
	}
	if c.opts.scheduler == nil {
		return ErrNoScheduler
	}
	if c.running {
		return nil
	}
	c.running = true
	c.schedule()
	return nil
}

// Stop cancels the pending frame and ends the render loop.
func (c *Chart) Stop() {
	c.running = false
	c.frameSeq++
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
}

func (c *Chart) schedule() {
	c.frameSeq++
	seq := c.frameSeq
	c.cancelFrame = c.opts.scheduler.Schedule(func() { c.tick(seq) })
}

// tick is one frame. A tick that outlived Stop or Close is a no-op.
func (c *Chart) tick(seq uint64) {
	if c.closed || !c.running || seq != c.frameSeq {
		return
	}
	c.cancelFrame = nil
	c.Render()
	if c.running && !c.closed {
		c.schedule()
	}
}

// bitmapSize returns the full chart size in device pixels.
func (c *Chart) bitmapSize() (int, int) {
	w, h := c.pair.BitmapSize()
	if c.opts.axes {
		w += c.priceAxis.Width()
		h += c.timeAxis.Height()
	}
	return w, h
}

// Snapshot renders pending changes and returns the composed chart: pane,
// price axis on the right and time axis below. It returns nil once closed.
func (c *Chart) Snapshot() *image.RGBA {
	if c.closed {
		return nil
	}
	c.Render()
	w, h := c.bitmapSize()
	out := gg.NewContext(w, h)
	defer func() { _ = out.Close() }()

	out.ClearWithColor(c.theme.AxisBackground)
	out.DrawImage(gg.ImageBufFromImage(c.pair.Composite()), 0, 0)
	if c.opts.axes {
		pw, ph := c.pair.BitmapSize()
		out.DrawImage(gg.ImageBufFromImage(c.priceAxis.Image()), float64(pw), 0)
		out.DrawImage(gg.ImageBufFromImage(c.timeAxis.Image()), 0, float64(ph))
	}
	return out.ResizeTarget().ToImage()
}

// DrawTo renders pending changes and draws the composed chart onto dc with
// its top-left corner at (x, y) in dc's coordinates.
func (c *Chart) DrawTo(dc *gg.Context, x, y float64) error {
	img := c.Snapshot()
	if img == nil {
		return ErrClosed
	}
	dc.DrawImage(gg.ImageBufFromImage(img), x, y)
	return nil
}

// Close stops the render loop, detaches input and releases the surfaces.
// Close is idempotent and may be called from inside a renderer.
func (c *Chart) Close() error {
	if c.closed {
		return nil
	}
	c.Stop()
	c.closed = true
	c.engine.OnChange(nil)
	c.pointer = pointerState{}
	c.drag = nil
	c.pinch = nil
	c.crosshair = render.CrosshairState{}
	c.indicators = nil
	c.releaseAxes()
	err := c.pair.Close()
	c.releaseFonts()
	c.log.Debug("chart: closed", "frames", c.frames)
	return err
}

// Closed reports whether Close has been called.
func (c *Chart) Closed() bool {
	return c.closed
}
