// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Projector maps anchors to logical pane pixels and back. The chart
// implements it over its live viewport.
type Projector interface {
	ToPixel(p AnchorPoint) (x, y float64)
	FromPixel(x, y float64) AnchorPoint
	PaneSize() (width, height float64)
}

// Mode is the interaction state of the engine.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCreating
	ModeSelected
	ModeDragging
	ModeMoving
)

var modeNames = [...]string{"idle", "creating", "selected", "dragging", "moving"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Change tells the chart which buffers an engine mutation affects.
type Change uint8

const (
	// ChangeMain means committed drawings changed.
	ChangeMain Change = 1 << iota
	// ChangeTop means the active or selected drawing changed.
	ChangeTop
)

// Hit is the result of a hit test.
type Hit struct {
	ID     string
	Anchor int // anchor index, or -1 for the body
}

// Key names accepted by KeyDown.
const (
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
)

type grabOffset struct {
	price float64
	time  int64
}

// Engine owns the drawings and runs the interaction state machine.
type Engine struct {
	proj     Projector
	drawings []*Drawing

	mode      Mode
	tool      Kind
	activeID  string // drawing being created or selected
	committed int    // anchors committed by clicks while creating
	anchor    int    // anchor being dragged
	offsets   []grabOffset

	onChange func(Change)
	log      *slog.Logger
	newID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for dropped records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIDFunc replaces the id generator (uuid by default).
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewEngine creates an engine projecting through p.
func NewEngine(p Projector, opts ...Option) *Engine {
	e := &Engine{
		proj:  p,
		log:   slog.New(slog.DiscardHandler),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New returns a visible drawing of kind k with its default style.
func New(k Kind, points ...AnchorPoint) Drawing {
	return Drawing{Kind: k, Points: points, Style: k.DefaultStyle(), Visible: true}
}

// OnChange registers the callback invoked after every mutation.
func (e *Engine) OnChange(fn func(Change)) {
	e.onChange = fn
}

func (e *Engine) notify(c Change) {
	if e.onChange != nil {
		e.onChange(c)
	}
}

// Mode returns the current interaction state.
func (e *Engine) Mode() Mode {
	return e.mode
}

// ActiveTool returns the tool being used to create a drawing.
func (e *Engine) ActiveTool() (Kind, bool) {
	return e.tool, e.mode == ModeCreating
}

// Drawings returns a copy of all drawings in z-order, bottom first.
func (e *Engine) Drawings() []Drawing {
	out := make([]Drawing, len(e.drawings))
	for i, d := range e.drawings {
		out[i] = d.Clone()
	}
	return out
}

// Selected returns a copy of the selected drawing.
func (e *Engine) Selected() (Drawing, bool) {
	if e.mode == ModeCreating || e.activeID == "" {
		return Drawing{}, false
	}
	_, d := e.find(e.activeID)
	if d == nil {
		return Drawing{}, false
	}
	return d.Clone(), true
}

func (e *Engine) find(id string) (int, *Drawing) {
	for i, d := range e.drawings {
		if d.ID == id {
			return i, d
		}
	}
	return -1, nil
}

func (e *Engine) active() *Drawing {
	if e.activeID == "" {
		return nil
	}
	_, d := e.find(e.activeID)
	return d
}

// ActivateTool starts creating a drawing of kind k. Any creation in
// progress is canceled and the selection is cleared.
func (e *Engine) ActivateTool(k Kind) bool {
	if !k.Valid() {
		return false
	}
	e.dropPartial()
	e.clearSelection()
	d := &Drawing{
		ID:      e.newID(),
		Kind:    k,
		Style:   k.DefaultStyle(),
		State:   StateCreating,
		Visible: true,
	}
	e.drawings = append(e.drawings, d)
	e.mode = ModeCreating
	e.tool = k
	e.activeID = d.ID
	e.committed = 0
	e.notify(ChangeMain | ChangeTop)
	return true
}

// CancelTool removes the partial drawing of an unfinished creation.
func (e *Engine) CancelTool() bool {
	if e.mode != ModeCreating {
		return false
	}
	e.dropPartial()
	e.notify(ChangeTop)
	return true
}

func (e *Engine) dropPartial() {
	if e.mode != ModeCreating {
		return
	}
	if i, _ := e.find(e.activeID); i >= 0 {
		e.drawings = slices.Delete(e.drawings, i, i+1)
	}
	e.reset()
}

func (e *Engine) clearSelection() bool {
	changed := false
	for _, d := range e.drawings {
		if d.State == StateSelected {
			d.State = StateIdle
			changed = true
		}
	}
	if e.mode == ModeSelected || e.mode == ModeDragging || e.mode == ModeMoving {
		e.reset()
	}
	return changed
}

func (e *Engine) reset() {
	e.mode = ModeIdle
	e.activeID = ""
	e.committed = 0
	e.anchor = -1
	e.offsets = nil
}

func (e *Engine) selectDrawing(d *Drawing) {
	e.clearSelection()
	d.State = StateSelected
	e.mode = ModeSelected
	e.activeID = d.ID
}

// PointerDown handles a press at logical pixel (x, y). It reports whether
// the engine consumed the event.
func (e *Engine) PointerDown(x, y float64) bool {
	switch e.mode {
	case ModeCreating:
		return e.commitPoint(x, y)
	case ModeDragging, ModeMoving:
		return true
	}

	hit, ok := e.HitTest(x, y)
	if !ok {
		if e.clearSelection() {
			e.notify(ChangeMain | ChangeTop)
		}
		return false
	}
	_, d := e.find(hit.ID)
	if d.State != StateSelected {
		e.selectDrawing(d)
		e.notify(ChangeMain | ChangeTop)
	}
	if d.Locked {
		return true
	}
	if hit.Anchor >= 0 {
		e.mode = ModeDragging
		e.anchor = hit.Anchor
		return true
	}
	grab := e.proj.FromPixel(x, y)
	e.offsets = make([]grabOffset, len(d.Points))
	for i, p := range d.Points {
		e.offsets[i] = grabOffset{price: p.Price - grab.Price, time: p.Time - grab.Time}
	}
	e.mode = ModeMoving
	return true
}

func (e *Engine) commitPoint(x, y float64) bool {
	d := e.active()
	if d == nil {
		e.reset()
		return false
	}
	d.Points = append(d.Points[:e.committed], e.proj.FromPixel(x, y))
	e.committed++
	if e.committed < d.Kind.Points() {
		e.notify(ChangeTop)
		return true
	}
	d.State = StateIdle
	e.reset()
	e.notify(ChangeMain | ChangeTop)
	return true
}

// PointerMove handles pointer motion at logical pixel (x, y). While
// creating it moves the trailing preview anchor; while dragging or moving
// it edits the selected drawing.
func (e *Engine) PointerMove(x, y float64) bool {
	d := e.active()
	if d == nil {
		return false
	}
	switch e.mode {
	case ModeCreating:
		p := e.proj.FromPixel(x, y)
		if len(d.Points) > e.committed {
			d.Points[e.committed] = p
		} else {
			d.Points = append(d.Points, p)
		}
	case ModeDragging:
		if e.anchor < 0 || e.anchor >= len(d.Points) {
			return false
		}
		d.Points[e.anchor] = e.proj.FromPixel(x, y)
	case ModeMoving:
		g := e.proj.FromPixel(x, y)
		for i, off := range e.offsets {
			d.Points[i] = AnchorPoint{Price: g.Price + off.price, Time: g.Time + off.time}
		}
	default:
		return false
	}
	e.notify(ChangeTop)
	return true
}

// PointerUp ends an anchor drag or a body move.
func (e *Engine) PointerUp(x, y float64) bool {
	if e.mode != ModeDragging && e.mode != ModeMoving {
		return false
	}
	e.mode = ModeSelected
	e.anchor = -1
	e.offsets = nil
	return true
}

// KeyDown handles Escape (cancel creation or clear the selection) and
// Delete/Backspace (remove the selected drawing).
func (e *Engine) KeyDown(key string) bool {
	switch key {
	case KeyEscape:
		if e.mode == ModeCreating {
			return e.CancelTool()
		}
		if e.clearSelection() {
			e.notify(ChangeMain | ChangeTop)
			return true
		}
	case KeyDelete, KeyBackspace:
		if e.mode == ModeSelected || e.mode == ModeDragging || e.mode == ModeMoving {
			return e.Remove(e.activeID)
		}
	}
	return false
}

// HitTest returns the topmost drawing under logical pixel (x, y). Anchors
// are tested before the body of each drawing.
func (e *Engine) HitTest(x, y float64) (Hit, bool) {
	p := pt{x, y}
	for i := len(e.drawings) - 1; i >= 0; i-- {
		d := e.drawings[i]
		if !d.Visible || d.State == StateCreating {
			continue
		}
		s, ok := e.project(d)
		if !ok {
			continue
		}
		for j, a := range s.pts {
			if p.dist(a) <= AnchorRadius {
				return Hit{ID: d.ID, Anchor: j}, true
			}
		}
		if info, ok := d.Kind.info(); ok && len(s.pts) >= info.points && info.hit(s, x, y) {
			return Hit{ID: d.ID, Anchor: -1}, true
		}
	}
	return Hit{}, false
}

// project maps a drawing's anchors to logical pixels.
func (e *Engine) project(d *Drawing) (shape, bool) {
	if e.proj == nil {
		return shape{}, false
	}
	w, h := e.proj.PaneSize()
	s := shape{pts: make([]pt, len(d.Points)), w: w, h: h}
	for i, a := range d.Points {
		x, y := e.proj.ToPixel(a)
		s.pts[i] = pt{x, y}
		if !s.pts[i].finite() {
			return shape{}, false
		}
	}
	return s, true
}

// Add inserts a complete drawing on top and returns its id. A missing id
// is generated.
func (e *Engine) Add(d Drawing) (string, error) {
	d = d.Clone()
	if err := d.Validate(); err != nil {
		return "", err
	}
	if d.ID == "" {
		d.ID = e.newID()
	}
	if i, _ := e.find(d.ID); i >= 0 {
		return "", fmt.Errorf("%w: duplicate id %q", ErrInvalidDrawing, d.ID)
	}
	d.State = StateIdle
	e.drawings = append(e.drawings, &d)
	e.notify(ChangeMain)
	return d.ID, nil
}

// Remove deletes a drawing. Removing the active drawing resets the state
// machine.
func (e *Engine) Remove(id string) bool {
	i, _ := e.find(id)
	if i < 0 {
		return false
	}
	e.drawings = slices.Delete(e.drawings, i, i+1)
	if id == e.activeID {
		e.reset()
	}
	e.notify(ChangeMain | ChangeTop)
	return true
}

// Clear removes every drawing.
func (e *Engine) Clear() {
	e.drawings = nil
	e.reset()
	e.notify(ChangeMain | ChangeTop)
}

// Select selects a visible drawing by id; an empty id clears the
// selection. It is refused while a drawing is being created.
func (e *Engine) Select(id string) bool {
	if e.mode == ModeCreating {
		return false
	}
	if id == "" {
		if e.clearSelection() {
			e.notify(ChangeMain | ChangeTop)
			return true
		}
		return false
	}
	_, d := e.find(id)
	if d == nil || !d.Visible {
		return false
	}
	e.selectDrawing(d)
	e.notify(ChangeMain | ChangeTop)
	return true
}

// SetLocked locks or unlocks a drawing. Locked drawings can be selected
// but not dragged or moved.
func (e *Engine) SetLocked(id string, locked bool) bool {
	_, d := e.find(id)
	if d == nil {
		return false
	}
	d.Locked = locked
	if locked && (e.mode == ModeDragging || e.mode == ModeMoving) && id == e.activeID {
		e.mode = ModeSelected
		e.offsets = nil
	}
	return true
}

// SetVisible shows or hides a drawing. Hiding the selected drawing clears
// the selection.
func (e *Engine) SetVisible(id string, visible bool) bool {
	_, d := e.find(id)
	if d == nil {
		return false
	}
	d.Visible = visible
	if !visible && d.State == StateSelected {
		e.clearSelection()
	}
	e.notify(ChangeMain | ChangeTop)
	return true
}

// SetStyle replaces the style of a drawing.
func (e *Engine) SetStyle(id string, s Style) bool {
	_, d := e.find(id)
	if d == nil {
		return false
	}
	d.Style = s
	if d.State == StateIdle {
		e.notify(ChangeMain)
	} else {
		e.notify(ChangeTop)
	}
	return true
}

// Load replaces all drawings. Invalid drawings are skipped with a
// warning. Every loaded drawing starts idle. It returns how many were
// loaded.
func (e *Engine) Load(ds []Drawing) int {
	e.drawings = e.drawings[:0]
	e.reset()
	seen := make(map[string]bool, len(ds))
	for _, d := range ds {
		d = d.Clone()
		if err := d.Validate(); err != nil {
			e.log.Warn("drawing: skipped invalid drawing", "id", d.ID, "err", err)
			continue
		}
		if d.ID == "" || seen[d.ID] {
			d.ID = e.newID()
		}
		seen[d.ID] = true
		d.State = StateIdle
		e.drawings = append(e.drawings, &d)
	}
	e.notify(ChangeMain | ChangeTop)
	return len(e.drawings)
}

// Save serialises the committed drawings. A drawing still being created
// is not part of the document.
func (e *Engine) Save() ([]byte, error) {
	ds := slices.DeleteFunc(e.Drawings(), func(d Drawing) bool {
		return d.State == StateCreating
	})
	return Marshal(ds)
}

// Restore loads drawings from JSON. Malformed records are dropped with a
// warning; only an unreadable document is an error.
func (e *Engine) Restore(data []byte) error {
	ds, dropped, err := decode(data)
	if err != nil {
		return err
	}
	for _, d := range dropped {
		e.log.Warn("drawing: dropped malformed record", "err", d)
	}
	e.Load(ds)
	return nil
}
