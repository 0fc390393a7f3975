// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMarshalRoundTrip(t *testing.T) {
	in := []Drawing{
		{
			ID:     "a",
			Kind:   ParallelChannel,
			Points: []AnchorPoint{{Price: 100.25, Time: 1700000000}, {Price: 110, Time: 1700003600}, {Price: 104.5, Time: 1700001800}},
			Style:  Style{Color: "#2962ff", Width: 1.5, Dashed: true, Fill: "#2962ff33", Label: true},
			Locked: true,
			Meta:   map[string]string{"note": "weekly", "author": "x"},
		},
		New(HorizontalLine, AnchorPoint{Price: 0.000123, Time: -5}),
	}
	in[1].ID = "b"

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v\njson: %s", out, in, data)
	}
}

func TestMarshalOmitsState(t *testing.T) {
	d := New(VerticalLine, AnchorPoint{Price: 1, Time: 2})
	d.ID = "v"
	d.State = StateSelected
	data, err := Marshal([]Drawing{d})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "state") || strings.Contains(string(data), "selected") {
		t.Errorf("document carries interaction state: %s", data)
	}
	out, _ := Unmarshal(data)
	if out[0].State != StateIdle {
		t.Errorf("decoded state = %v, want idle", out[0].State)
	}
}

func TestMarshalRejectsInvalid(t *testing.T) {
	if _, err := Marshal([]Drawing{New(Rectangle)}); !errors.Is(err, ErrInvalidDrawing) {
		t.Errorf("Marshal(invalid) error = %v, want ErrInvalidDrawing", err)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	for _, doc := range []string{``, `{"id":"a"}`, `[{"id":`, `"drawings"`} {
		if _, err := Unmarshal([]byte(doc)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Unmarshal(%q) error = %v, want ErrMalformed", doc, err)
		}
	}
}

func TestUnmarshalDropsBadRecords(t *testing.T) {
	doc := `[
		{"id":"ok","type":"trend_line","points":[{"price":1,"time":1},{"price":2,"time":2}]},
		{"id":"kind","type":"pitchfork","points":[{"price":1,"time":1}]},
		{"id":"count","type":"rectangle","points":[{"price":1,"time":1}]},
		{"id":"price","type":"horizontal_line","points":[{"price":"high","time":1}]},
		{"id":"time","type":"horizontal_line","points":[{"price":1}]},
		42
	]`
	ds, dropped, err := decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	if len(ds) != 1 || ds[0].ID != "ok" {
		t.Errorf("decoded = %+v, want only \"ok\"", ds)
	}
	if len(dropped) != 5 {
		t.Errorf("dropped = %d, want 5: %v", len(dropped), dropped)
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	ds, err := Unmarshal([]byte(`[{"type":"ray","points":[{"price":1,"time":1},{"price":2,"time":2}],"meta":{"n":1,"s":"x"}}]`))
	if err != nil || len(ds) != 1 {
		t.Fatalf("Unmarshal() = %v, %v", ds, err)
	}
	d := ds[0]
	if d.ID == "" {
		t.Error("missing id not generated")
	}
	if !d.Visible {
		t.Error("visible should default to true")
	}
	if d.Style != Ray.DefaultStyle() {
		t.Errorf("style = %+v, want kind default", d.Style)
	}
	if want := map[string]string{"n": "1", "s": "x"}; !reflect.DeepEqual(d.Meta, want) {
		t.Errorf("meta = %v, want %v", d.Meta, want)
	}
}

func TestUnmarshalKeepsNonStringMeta(t *testing.T) {
	doc := `[{"type":"cross_line","points":[{"price":1,"time":1}],` +
		`"meta":{"n":3.5,"ok":true,"tags":["a","b"],"nested":{"k":1},"none":null,"s":"x"}}]`
	ds, err := Unmarshal([]byte(doc))
	if err != nil || len(ds) != 1 {
		t.Fatalf("Unmarshal() = %v, %v", ds, err)
	}
	want := map[string]string{
		"n":      "3.5",
		"ok":     "true",
		"tags":   `["a","b"]`,
		"nested": `{"k":1}`,
		"none":   "null",
		"s":      "x",
	}
	if !reflect.DeepEqual(ds[0].Meta, want) {
		t.Errorf("meta = %v, want %v", ds[0].Meta, want)
	}

	// Values survive a second round trip as strings.
	data, err := Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	again, err := Unmarshal(data)
	if err != nil || len(again) != 1 {
		t.Fatalf("Unmarshal() = %v, %v", again, err)
	}
	if !reflect.DeepEqual(again[0].Meta, want) {
		t.Errorf("meta after round trip = %v, want %v", again[0].Meta, want)
	}
}

func TestEngineSaveRestore(t *testing.T) {
	e, _ := newTestEngine()
	addTrendLine(t, e)
	e.Add(New(CrossLine, AnchorPoint{Price: 105, Time: 5}))

	data, err := e.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	other := NewEngine(newProjector())
	if err := other.Restore(data); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !reflect.DeepEqual(e.Drawings(), other.Drawings()) {
		t.Errorf("restored drawings differ:\n got: %+v\nwant: %+v", other.Drawings(), e.Drawings())
	}
	if err := other.Restore([]byte(`{}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("Restore({}) error = %v", err)
	}
	if len(other.Drawings()) != 2 {
		t.Error("failed Restore replaced existing drawings")
	}
}

func TestSaveSkipsDrawingInProgress(t *testing.T) {
	e, _ := newTestEngine()
	id := addTrendLine(t, e)

	if !e.ActivateTool(TrendLine) {
		t.Fatal("ActivateTool() = false")
	}
	e.PointerDown(50, 100)

	check := func(stage string) {
		t.Helper()
		data, err := e.Save()
		if err != nil {
			t.Fatalf("Save() %s error = %v", stage, err)
		}
		ds, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal() %s error = %v", stage, err)
		}
		if len(ds) != 1 || ds[0].ID != id {
			t.Errorf("saved %s = %+v, want only %s", stage, ds, id)
		}
	}

	// One anchor placed: the partial drawing would fail validation.
	check("after first click")

	// Preview anchor follows the pointer: the partial looks complete.
	e.PointerMove(80, 120)
	check("after move")

	e.PointerDown(100, 100)
	data, err := e.Save()
	if err != nil {
		t.Fatalf("Save() after commit error = %v", err)
	}
	ds, err := Unmarshal(data)
	if err != nil || len(ds) != 2 {
		t.Errorf("saved after commit = %v, %v; want 2 drawings", ds, err)
	}
}
