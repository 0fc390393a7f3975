// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/valyala/fastjson"
)

// ErrMalformed is returned by Unmarshal when the document is not a JSON
// array.
var ErrMalformed = errors.New("drawing: malformed document")

// Marshal encodes drawings as a JSON array of
//
//	{"id", "type", "points": [{"price", "time"}], "style", "locked", "visible", "meta"}
//
// The interaction state is not written.
func Marshal(ds []Drawing) ([]byte, error) {
	var a fastjson.Arena
	arr := a.NewArray()
	for i := range ds {
		d := &ds[i]
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("drawing %q: %w", d.ID, err)
		}
		arr.SetArrayItem(i, encode(&a, d))
	}
	return arr.MarshalTo(nil), nil
}

func encode(a *fastjson.Arena, d *Drawing) *fastjson.Value {
	o := a.NewObject()
	o.Set("id", a.NewString(d.ID))
	o.Set("type", a.NewString(d.Kind.String()))

	pts := a.NewArray()
	for i, p := range d.Points {
		po := a.NewObject()
		po.Set("price", a.NewNumberFloat64(p.Price))
		po.Set("time", a.NewNumberString(strconv.FormatInt(p.Time, 10)))
		pts.SetArrayItem(i, po)
	}
	o.Set("points", pts)

	st := a.NewObject()
	st.Set("color", a.NewString(d.Style.Color))
	st.Set("width", a.NewNumberFloat64(d.Style.Width))
	st.Set("dashed", boolValue(a, d.Style.Dashed))
	st.Set("fill", a.NewString(d.Style.Fill))
	st.Set("label", boolValue(a, d.Style.Label))
	o.Set("style", st)

	o.Set("locked", boolValue(a, d.Locked))
	o.Set("visible", boolValue(a, d.Visible))

	meta := a.NewObject()
	for _, k := range slices.Sorted(maps.Keys(d.Meta)) {
		meta.Set(k, a.NewString(d.Meta[k]))
	}
	o.Set("meta", meta)
	return o
}

func boolValue(a *fastjson.Arena, b bool) *fastjson.Value {
	if b {
		return a.NewTrue()
	}
	return a.NewFalse()
}

// Unmarshal decodes a document written by Marshal. Records with an unknown
// type, the wrong number of points or non-finite values are dropped. Only
// a document that is not a JSON array returns ErrMalformed. Every drawing
// is returned idle. Meta values that are not strings keep their JSON text.
func Unmarshal(data []byte) ([]Drawing, error) {
	ds, _, err := decode(data)
	return ds, err
}

// decode returns the valid drawings plus one error per dropped record.
func decode(data []byte) ([]Drawing, []error, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	items, err := v.Array()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	ds := make([]Drawing, 0, len(items))
	var dropped []error
	for i, item := range items {
		d, err := decodeDrawing(item)
		if err != nil {
			dropped = append(dropped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		ds = append(ds, d)
	}
	return ds, dropped, nil
}

func decodeDrawing(v *fastjson.Value) (Drawing, error) {
	if v.Type() != fastjson.TypeObject {
		return Drawing{}, fmt.Errorf("%w: record is %s", ErrInvalidDrawing, v.Type())
	}
	kind, err := ParseKind(string(v.GetStringBytes("type")))
	if err != nil {
		return Drawing{}, err
	}
	d := Drawing{
		ID:      string(v.GetStringBytes("id")),
		Kind:    kind,
		Style:   kind.DefaultStyle(),
		Locked:  v.GetBool("locked"),
		Visible: true,
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if vis := v.Get("visible"); vis != nil {
		d.Visible = vis.GetBool()
	}

	for i, pv := range v.GetArray("points") {
		p, err := decodePoint(pv)
		if err != nil {
			return Drawing{}, fmt.Errorf("point %d: %w", i, err)
		}
		d.Points = append(d.Points, p)
	}

	if st := v.Get("style"); st != nil && st.Type() == fastjson.TypeObject {
		d.Style = Style{
			Color:  string(st.GetStringBytes("color")),
			Width:  st.GetFloat64("width"),
			Dashed: st.GetBool("dashed"),
			Fill:   string(st.GetStringBytes("fill")),
			Label:  st.GetBool("label"),
		}
	}

	if mo := v.GetObject("meta"); mo != nil {
		mo.Visit(func(k []byte, mv *fastjson.Value) {
			if d.Meta == nil {
				d.Meta = make(map[string]string)
			}
			if mv.Type() == fastjson.TypeString {
				d.Meta[string(k)] = string(mv.GetStringBytes())
				return
			}
			// other values are kept as their JSON text
			d.Meta[string(k)] = string(mv.MarshalTo(nil))
		})
	}

	if err := d.Validate(); err != nil {
		return Drawing{}, err
	}
	return d, nil
}

func decodePoint(v *fastjson.Value) (AnchorPoint, error) {
	pv, tv := v.Get("price"), v.Get("time")
	if pv == nil || tv == nil {
		return AnchorPoint{}, fmt.Errorf("%w: missing price or time", ErrInvalidDrawing)
	}
	price, err := pv.Float64()
	if err != nil {
		return AnchorPoint{}, fmt.Errorf("%w: price: %v", ErrInvalidDrawing, err)
	}
	t, err := tv.Int64()
	if err != nil {
		return AnchorPoint{}, fmt.Errorf("%w: time: %v", ErrInvalidDrawing, err)
	}
	return AnchorPoint{Price: price, Time: t}, nil
}
