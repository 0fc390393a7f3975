// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/chart/indicator"
	"github.com/gogpu/chart/render"
)

// palette colours indicator outputs that have no explicit colour.
var palette = []string{"#f7931a", "#2962ff", "#e040fb", "#00bcd4", "#ffeb3b"}

// IndicatorStyle is how an indicator instance is drawn. Colors apply to
// the outputs in order and repeat; empty means the default palette.
type IndicatorStyle struct {
	Colors   []string
	Width    float64 // media px
	BandFill string  // fill between banded outputs; empty derives it from the line colour
}

// IndicatorInstance is one indicator shown on a chart. Its outputs are
// recomputed whenever the bars change.
type IndicatorInstance struct {
	c      *Chart
	name   string
	params indicator.Params
	style  IndicatorStyle
	ind    indicator.Indicator
	keys   []string
	values map[string][]float64
	err    error
}

// AddIndicator computes the named indicator over the bars and overlays it
// on the main buffer.
func (c *Chart) AddIndicator(name string, params indicator.Params, style IndicatorStyle) (*IndicatorInstance, error) {
	if c.closed {
		return nil, ErrClosed
	}
	ind, err := c.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	for _, s := range style.Colors {
		if _, err := render.ParseColor(s); err != nil {
			return nil, fmt.Errorf("chart: indicator %s: %w", name, err)
		}
	}
	if style.BandFill != "" {
		if _, err := render.ParseColor(style.BandFill); err != nil {
			return nil, fmt.Errorf("chart: indicator %s: %w", name, err)
		}
	}
	in := &IndicatorInstance{c: c, name: name, params: maps.Clone(params), style: style, ind: ind}
	in.compute()
	c.indicators = append(c.indicators, in)
	c.invalidateMain()
	c.invalidateTop() // legend
	return in, nil
}

// Indicators returns the instances in drawing order.
func (c *Chart) Indicators() []*IndicatorInstance {
	return slices.Clone(c.indicators)
}

func (c *Chart) recomputeIndicators() {
	for _, in := range c.indicators {
		in.compute()
	}
}

func (in *IndicatorInstance) compute() {
	out, err := in.c.registry.Compute(in.name, in.c.bars, in.params)
	in.err = err
	if err != nil {
		in.c.log.Warn("chart: indicator failed", "name", in.name, "err", err)
		in.values, in.keys = nil, nil
		return
	}
	in.values = out
	in.keys = indicator.Keys(in.ind, out)
}

// Name returns the registry name.
func (in *IndicatorInstance) Name() string { return in.name }

// Label returns the legend text, such as "boll 20 2".
func (in *IndicatorInstance) Label() string {
	var b strings.Builder
	b.WriteString(in.name)
	for _, k := range slices.Sorted(maps.Keys(in.params)) {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(in.params[k], 'f', -1, 64))
	}
	return b.String()
}

// Keys returns the output names in display order.
func (in *IndicatorInstance) Keys() []string { return slices.Clone(in.keys) }

// Values returns a copy of one output series, parallel to the bars.
func (in *IndicatorInstance) Values(key string) []float64 {
	return slices.Clone(in.values[key])
}

// Err returns the error of the last computation.
func (in *IndicatorInstance) Err() error { return in.err }

// Remove takes the instance off the chart. Calling it twice is safe.
func (in *IndicatorInstance) Remove() {
	c := in.c
	i := slices.Index(c.indicators, in)
	if i < 0 {
		return
	}
	c.indicators = slices.Delete(c.indicators, i, i+1)
	if !c.closed {
		c.invalidateMain()
		c.invalidateTop()
	}
}

func (in *IndicatorInstance) overlay() (render.Overlay, bool) {
	if len(in.keys) == 0 {
		return render.Overlay{}, false
	}
	colors := in.style.Colors
	if len(colors) == 0 {
		colors = palette
	}
	o := render.Overlay{Name: in.Label(), Lines: make([]render.OverlayLine, len(in.keys))}
	for i, k := range in.keys {
		o.Lines[i] = render.OverlayLine{
			Key:    k,
			Values: in.values[k],
			Color:  gg.Hex(colors[i%len(colors)]),
			Width:  in.style.Width,
		}
	}
	if b, ok := in.ind.(indicator.Banded); ok {
		upper, lower := b.Band()
		ui, li := slices.Index(in.keys, upper), slices.Index(in.keys, lower)
		if ui >= 0 && li >= 0 {
			fill := o.Lines[ui].Color
			fill.A = 0.08
			if in.style.BandFill != "" {
				fill = gg.Hex(in.style.BandFill)
			}
			o.Band = &render.Band{Upper: ui, Lower: li, Color: fill}
		}
	}
	return o, true
}

func (c *Chart) overlays() []render.Overlay {
	out := make([]render.Overlay, 0, len(c.indicators))
	for _, in := range c.indicators {
		if o, ok := in.overlay(); ok {
			out = append(out, o)
		}
	}
	return out
}
