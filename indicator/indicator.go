// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package indicator

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/gogpu/chart/ohlc"
)

var (
	// ErrUnknownIndicator is returned when a name is not registered.
	ErrUnknownIndicator = errors.New("indicator: unknown indicator")

	// ErrOutputLength is returned when an indicator produces a series that
	// is not parallel to the input bars.
	ErrOutputLength = errors.New("indicator: output length mismatch")
)

// None marks an undefined output value.
var None = math.NaN()

// IsNone reports whether v is undefined.
func IsNone(v float64) bool {
	return math.IsNaN(v)
}

// Params are numeric indicator parameters such as "period".
type Params map[string]float64

// Float returns the parameter or def when it is missing or not finite.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Int returns the parameter rounded to an int, or def when missing or < 1.
func (p Params) Int(key string, def int) int {
	v := p.Float(key, float64(def))
	if v < 1 {
		return def
	}
	return int(math.Round(v))
}

// Indicator computes output series from bars. Every returned slice must be
// as long as bars.
type Indicator interface {
	Compute(bars []ohlc.Bar, params Params) map[string][]float64
}

// Keyed is implemented by indicators that report their output names in
// display order.
type Keyed interface {
	Keys() []string
}

// Banded is implemented by indicators whose outputs enclose a band.
type Banded interface {
	Band() (upper, lower string)
}

// Func adapts a plain function to Indicator.
type Func func(bars []ohlc.Bar, params Params) map[string][]float64

// Compute calls f.
func (f Func) Compute(bars []ohlc.Bar, params Params) map[string][]float64 {
	return f(bars, params)
}

// Keys returns the output names of ind: the declared order when it is
// Keyed, otherwise the sorted names of out.
func Keys(ind Indicator, out map[string][]float64) []string {
	if k, ok := ind.(Keyed); ok {
		return k.Keys()
	}
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Registry maps names to indicators. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Indicator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Indicator)}
}

// Default returns a registry with the built-in indicators: "sma", "ema",
// "boll" and "vwap".
func Default() *Registry {
	r := NewRegistry()
	r.Register("sma", SMA{})
	r.Register("ema", EMA{})
	r.Register("boll", Bollinger{})
	r.Register("vwap", VWAP{})
	return r
}

// Register adds or replaces an indicator.
func (r *Registry) Register(name string, ind Indicator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[name] = ind
}

// Lookup returns the indicator registered under name.
func (r *Registry) Lookup(name string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ind, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
	}
	return ind, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.m))
	for n := range r.m {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Compute runs the named indicator and checks that every output is
// parallel to bars.
func (r *Registry) Compute(name string, bars []ohlc.Bar, params Params) (map[string][]float64, error) {
	ind, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	out := ind.Compute(bars, params)
	for k, v := range out {
		if len(v) != len(bars) {
			return nil, fmt.Errorf("%w: %s.%s has %d values for %d bars", ErrOutputLength, name, k, len(v), len(bars))
		}
	}
	return out, nil
}

// series returns a slice of n None values.
func series(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = None
	}
	return s
}

func closes(bars []ohlc.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
