// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// linearProjector maps time linearly to x and price linearly to y.
type linearProjector struct {
	t0       int64
	secPerPx float64
	top      float64 // price at y = 0
	bottom   float64 // price at y = h
	w, h     float64
}

func (p *linearProjector) ToPixel(a AnchorPoint) (float64, float64) {
	x := float64(a.Time-p.t0) / p.secPerPx
	y := p.h * (p.top - a.Price) / (p.top - p.bottom)
	return x, y
}

func (p *linearProjector) FromPixel(x, y float64) AnchorPoint {
	return AnchorPoint{
		Price: p.top - y/p.h*(p.top-p.bottom),
		Time:  p.t0 + int64(math.Round(x*p.secPerPx)),
	}
}

func (p *linearProjector) PaneSize() (float64, float64) { return p.w, p.h }

// newProjector: t=10 -> x=100, price 120..90 over 300px (10 px per unit).
func newProjector() *linearProjector {
	return &linearProjector{secPerPx: 0.1, top: 120, bottom: 90, w: 400, h: 300}
}

func near(a, b AnchorPoint) bool {
	return a.Time == b.Time && math.Abs(a.Price-b.Price) < 1e-9
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("d%d", n)
	}
}

func newTestEngine() (*Engine, *[]Change) {
	var changes []Change
	e := NewEngine(newProjector(), WithIDFunc(seqIDs()))
	e.OnChange(func(c Change) { changes = append(changes, c) })
	return e, &changes
}

func addTrendLine(t *testing.T, e *Engine) string {
	t.Helper()
	id, err := e.Add(New(TrendLine, AnchorPoint{Price: 100, Time: 0}, AnchorPoint{Price: 110, Time: 10}))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	return id
}

func TestTrendLineHitScenario(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)

	// Segment (0,200)-(100,100); midpoint (50,150); unit normal (1,1)/sqrt2.
	n := 1 / math.Sqrt2
	hit, ok := e.HitTest(50+3*n, 150+3*n)
	if !ok || hit.ID != id || hit.Anchor != -1 {
		t.Errorf("HitTest 3px off = %+v, %v; want body hit on %s", hit, ok, id)
	}
	if hit, ok := e.HitTest(50+20*n, 150+20*n); ok {
		t.Errorf("HitTest 20px off = %+v, want miss", hit)
	}
}

func TestHitTestAnchorsFirst(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)

	hit, ok := e.HitTest(102, 101)
	if !ok || hit.ID != id || hit.Anchor != 1 {
		t.Errorf("HitTest near anchor = %+v, %v; want anchor 1", hit, ok)
	}
}

func TestHitTestTopmostAndHidden(t *testing.T) {
	e, _ := newTestEngine()
	bottom := addTrendLine(t, e)
	top := addTrendLine(t, e)

	if hit, _ := e.HitTest(50, 150); hit.ID != top {
		t.Errorf("HitTest = %s, want topmost %s", hit.ID, top)
	}
	e.SetVisible(top, false)
	if hit, _ := e.HitTest(50, 150); hit.ID != bottom {
		t.Errorf("HitTest with top hidden = %s, want %s", hit.ID, bottom)
	}
}

func TestHitTestKinds(t *testing.T) {
	p := AnchorPoint{Price: 105, Time: 10} // (100, 150)
	q := AnchorPoint{Price: 95, Time: 20}  // (200, 250)
	tests := []struct {
		d         Drawing
		hit, miss [2]float64
	}{
		{New(HorizontalLine, p), [2]float64{390, 154}, [2]float64{390, 170}},
		{New(HorizontalRay, p), [2]float64{300, 146}, [2]float64{20, 150}},
		{New(VerticalLine, p), [2]float64{104, 10}, [2]float64{120, 10}},
		{New(CrossLine, p), [2]float64{300, 152}, [2]float64{300, 100}},
		{New(Ray, p, q), [2]float64{300, 350}, [2]float64{0, 50}},
		{New(ExtendedLine, p, q), [2]float64{0, 50}, [2]float64{0, 80}},
		{New(FibRetracement, p, q), [2]float64{150, 200}, [2]float64{150, 280}},
		{New(Rectangle, p, q), [2]float64{150, 200}, [2]float64{250, 200}},
		{New(ParallelChannel, p, q, AnchorPoint{Price: 110, Time: 15}), [2]float64{170, 124}, [2]float64{150, 230}},
	}
	for _, tt := range tests {
		e, _ := newTestEngine()
		if _, err := e.Add(tt.d); err != nil {
			t.Fatalf("%v: Add() error = %v", tt.d.Kind, err)
		}
		if _, ok := e.HitTest(tt.hit[0], tt.hit[1]); !ok {
			t.Errorf("%v: HitTest%v missed", tt.d.Kind, tt.hit)
		}
		if h, ok := e.HitTest(tt.miss[0], tt.miss[1]); ok {
			t.Errorf("%v: HitTest%v = %+v, want miss", tt.d.Kind, tt.miss, h)
		}
	}
}

func TestCreateTrendLine(t *testing.T) {
	e, changes := newTestEngine()

	if !e.ActivateTool(TrendLine) {
		t.Fatal("ActivateTool() = false")
	}
	if e.Mode() != ModeCreating {
		t.Fatalf("Mode() = %v, want creating", e.Mode())
	}
	if k, ok := e.ActiveTool(); !ok || k != TrendLine {
		t.Errorf("ActiveTool() = %v, %v", k, ok)
	}

	*changes = nil
	e.PointerMove(10, 10)
	e.PointerMove(20, 20)
	d := e.Drawings()[0]
	if len(d.Points) != 1 {
		t.Fatalf("preview points = %d, want 1", len(d.Points))
	}
	if len(*changes) != 2 || (*changes)[0] != ChangeTop {
		t.Errorf("preview changes = %v, want top only", *changes)
	}

	if !e.PointerDown(0, 200) {
		t.Fatal("PointerDown() while creating = false")
	}
	e.PointerMove(50, 150)
	e.PointerMove(80, 120)
	if got := len(e.Drawings()[0].Points); got != 2 {
		t.Fatalf("points after first commit + preview = %d, want 2", got)
	}
	e.PointerDown(100, 100)

	if e.Mode() != ModeIdle {
		t.Errorf("Mode() after completion = %v, want idle", e.Mode())
	}
	if _, ok := e.ActiveTool(); ok {
		t.Error("tool still active after completion")
	}
	d = e.Drawings()[0]
	want := []AnchorPoint{{Price: 100, Time: 0}, {Price: 110, Time: 10}}
	if d.State != StateIdle || len(d.Points) != 2 || !near(d.Points[0], want[0]) || !near(d.Points[1], want[1]) {
		t.Errorf("drawing = %+v, want idle with %v", d, want)
	}
}

func TestCreateSinglePointTool(t *testing.T) {
	e, _ := newTestEngine()
	e.ActivateTool(HorizontalLine)
	e.PointerDown(30, 150)
	if e.Mode() != ModeIdle {
		t.Fatalf("Mode() = %v, want idle after one click", e.Mode())
	}
	if d := e.Drawings(); len(d) != 1 || !near(d[0].Points[0], AnchorPoint{Price: 105, Time: 3}) {
		t.Errorf("drawings = %+v", d)
	}
}

func TestEscapeCancelsCreation(t *testing.T) {
	e, _ := newTestEngine()
	e.ActivateTool(Rectangle)
	e.PointerDown(10, 10)

	if !e.KeyDown(KeyEscape) {
		t.Fatal("KeyDown(Escape) = false")
	}
	if len(e.Drawings()) != 0 || e.Mode() != ModeIdle {
		t.Errorf("after cancel: %d drawings, mode %v", len(e.Drawings()), e.Mode())
	}
}

func TestActivateToolReplacesPartial(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)
	e.Select(id)

	e.ActivateTool(Rectangle)
	e.PointerDown(10, 10)
	e.ActivateTool(TrendLine)

	ds := e.Drawings()
	if len(ds) != 2 {
		t.Fatalf("drawings = %d, want 2 (committed + new partial)", len(ds))
	}
	if ds[0].State != StateIdle {
		t.Errorf("previous selection state = %v, want idle", ds[0].State)
	}
	if ds[1].Kind != TrendLine || ds[1].State != StateCreating || len(ds[1].Points) != 0 {
		t.Errorf("new partial = %+v", ds[1])
	}
}

func TestSelectMoveDeselect(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)

	if !e.PointerDown(50, 150) {
		t.Fatal("PointerDown on body = false")
	}
	if e.Mode() != ModeMoving {
		t.Fatalf("Mode() = %v, want moving", e.Mode())
	}
	// Move by +20px x (2s) and -10px y (+1 price).
	e.PointerMove(70, 140)
	e.PointerUp(70, 140)
	if e.Mode() != ModeSelected {
		t.Errorf("Mode() after up = %v, want selected", e.Mode())
	}
	d, ok := e.Selected()
	if !ok || d.ID != id {
		t.Fatalf("Selected() = %v, %v", d.ID, ok)
	}
	want := []AnchorPoint{{Price: 101, Time: 2}, {Price: 111, Time: 12}}
	for i := range want {
		if !near(d.Points[i], want[i]) {
			t.Errorf("point %d = %+v, want %+v", i, d.Points[i], want[i])
		}
	}

	if e.PointerDown(390, 10) {
		t.Error("PointerDown on empty space = true, want false")
	}
	if e.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", e.Mode())
	}
	if _, ok := e.Selected(); ok {
		t.Error("drawing still selected")
	}
}

func TestDragAnchor(t *testing.T) {
	e, _ := newTestEngine()
	addTrendLine(t, e)

	e.PointerDown(100, 100)
	if e.Mode() != ModeDragging {
		t.Fatalf("Mode() = %v, want dragging", e.Mode())
	}
	e.PointerMove(150, 50)
	e.PointerUp(150, 50)

	d := e.Drawings()[0]
	if d.Points[0] != (AnchorPoint{Price: 100, Time: 0}) {
		t.Errorf("fixed anchor moved to %+v", d.Points[0])
	}
	if !near(d.Points[1], AnchorPoint{Price: 115, Time: 15}) {
		t.Errorf("dragged anchor = %+v, want {115 15}", d.Points[1])
	}
}

func TestLockedSelectableNotMovable(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)
	e.SetLocked(id, true)

	if !e.PointerDown(50, 150) {
		t.Fatal("PointerDown on locked drawing = false")
	}
	if e.Mode() != ModeSelected {
		t.Errorf("Mode() = %v, want selected", e.Mode())
	}
	if e.PointerMove(90, 90) {
		t.Error("PointerMove on locked drawing = true")
	}
	if got := e.Drawings()[0].Points[0]; got != (AnchorPoint{Price: 100, Time: 0}) {
		t.Errorf("locked drawing moved to %+v", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)

	if e.KeyDown(KeyDelete) {
		t.Error("Delete with nothing selected = true")
	}
	e.Select(id)
	if !e.KeyDown(KeyBackspace) {
		t.Fatal("Backspace with selection = false")
	}
	if len(e.Drawings()) != 0 || e.Mode() != ModeIdle {
		t.Errorf("after delete: %d drawings, mode %v", len(e.Drawings()), e.Mode())
	}
}

func TestMisuseIsNoop(t *testing.T) {
	e, _ := newTestEngine()
	if e.PointerMove(1, 1) || e.PointerUp(1, 1) || e.CancelTool() || e.KeyDown(KeyEscape) {
		t.Error("idle engine consumed an event")
	}
	if e.ActivateTool(Kind(99)) {
		t.Error("ActivateTool(unknown) = true")
	}
	if e.Select("nope") || e.Remove("nope") || e.SetStyle("nope", Style{}) {
		t.Error("operation on unknown id = true")
	}
}

func TestAddValidates(t *testing.T) {
	e, _ := newTestEngine()
	if _, err := e.Add(New(TrendLine, AnchorPoint{Price: 1})); !errors.Is(err, ErrInvalidDrawing) {
		t.Errorf("Add(1-point trend line) error = %v", err)
	}
	if _, err := e.Add(New(HorizontalLine, AnchorPoint{Price: math.NaN()})); !errors.Is(err, ErrInvalidDrawing) {
		t.Errorf("Add(NaN) error = %v", err)
	}
	d := New(HorizontalLine, AnchorPoint{Price: 1})
	d.ID = "x"
	e.Add(d)
	if _, err := e.Add(d); !errors.Is(err, ErrInvalidDrawing) {
		t.Errorf("Add(duplicate) error = %v", err)
	}
}

func TestLoadResetsState(t *testing.T) {
	e, changes := newTestEngine()
	d := New(Rectangle, AnchorPoint{Price: 1, Time: 1}, AnchorPoint{Price: 2, Time: 2})
	d.State = StateSelected
	bad := New(Rectangle, AnchorPoint{Price: 1})

	*changes = nil
	if n := e.Load([]Drawing{d, bad}); n != 1 {
		t.Fatalf("Load() = %d, want 1", n)
	}
	got := e.Drawings()[0]
	if got.State != StateIdle || got.ID == "" {
		t.Errorf("loaded drawing = %+v, want idle with id", got)
	}
	if len(*changes) != 1 || (*changes)[0] != ChangeMain|ChangeTop {
		t.Errorf("changes = %v", *changes)
	}
}

func TestAnnotationZoomInvariance(t *testing.T) {
	proj := newProjector()
	e := NewEngine(proj)
	id, _ := e.Add(New(FibRetracement, AnchorPoint{Price: 100, Time: 0}, AnchorPoint{Price: 110, Time: 10}))
	before, _ := e.project(e.drawings[0])
	anchors := e.Drawings()[0].Points

	// scroll, zoom, scroll back, unzoom
	proj.t0 += 5
	proj.secPerPx *= 2
	proj.top, proj.bottom = 130, 80
	e.HitTest(10, 10)
	proj.t0 -= 5
	proj.secPerPx /= 2
	proj.top, proj.bottom = 120, 90

	after, _ := e.project(e.drawings[0])
	for i := range before.pts {
		if before.pts[i] != after.pts[i] {
			t.Errorf("point %d moved from %+v to %+v", i, before.pts[i], after.pts[i])
		}
	}
	if got := e.Drawings()[0].Points; got[0] != anchors[0] || got[1] != anchors[1] {
		t.Errorf("anchors of %s changed: %v -> %v", id, anchors, got)
	}
}

func TestFibLevels(t *testing.T) {
	levels := FibLevels(100, 200)
	if len(levels) != len(FibRatios) {
		t.Fatalf("len = %d", len(levels))
	}
	for _, l := range levels {
		if l.Ratio == 0.5 && l.Price != 150 {
			t.Errorf("level 0.5 price = %v, want 150", l.Price)
		}
	}
	if levels[0].Price != 200 || levels[6].Price != 100 {
		t.Errorf("level 0 = %v, level 1 = %v; want 200, 100", levels[0].Price, levels[6].Price)
	}
	if got := (FibLevel{Ratio: 0.618}).Label("123.45"); got != "61.8% (123.45)" {
		t.Errorf("Label() = %q", got)
	}
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
		if n := k.Points(); n < 1 || n > 3 {
			t.Errorf("%v.Points() = %d, want 1..3", k, n)
		}
	}
	if _, err := ParseKind("pitchfork"); !errors.Is(err, ErrInvalidDrawing) {
		t.Errorf("ParseKind(pitchfork) error = %v", err)
	}
	if Kind(-1).Valid() || Kind(-1).Points() != 0 {
		t.Error("Kind(-1) reported valid")
	}
}
