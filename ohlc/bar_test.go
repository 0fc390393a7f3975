// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ohlc

import (
	"math"
	"testing"
)

func hourly(n int) Bars {
	bs := make(Bars, n)
	for i := range bs {
		bs[i] = Bar{Time: int64(i) * 3600, Open: 10, High: 11, Low: 9, Close: 10}
	}
	return bs
}

func TestBarBullish(t *testing.T) {
	tests := []struct {
		name string
		bar  Bar
		want bool
	}{
		{"up", Bar{Open: 1, Close: 2}, true},
		{"down", Bar{Open: 2, Close: 1}, false},
		{"doji", Bar{Open: 2, Close: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bar.Bullish(); got != tt.want {
				t.Errorf("Bullish() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBarValid(t *testing.T) {
	if !(Bar{Open: 1, High: 2, Low: 0.5, Close: 1.5}).Valid() {
		t.Error("finite bar should be valid")
	}
	if (Bar{Open: math.NaN()}).Valid() {
		t.Error("NaN open should be invalid")
	}
	if (Bar{High: math.Inf(1)}).Valid() {
		t.Error("Inf high should be invalid")
	}
}

func TestBarsIndexOf(t *testing.T) {
	bs := hourly(10)
	tests := []struct {
		name string
		time int64
		want float64
	}{
		{"first", 0, 0},
		{"exact", 5 * 3600, 5},
		{"between", 5*3600 + 1800, 5.5},
		{"future", 12 * 3600, 12},
		{"past", -2 * 3600, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bs.IndexOf(tt.time); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("IndexOf(%d) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestBarsTimeAtInverse(t *testing.T) {
	bs := hourly(10)
	for _, idx := range []float64{-3, 0, 2.5, 7, 9, 14.25} {
		ts := bs.TimeAt(idx)
		if got := bs.IndexOf(ts); math.Abs(got-idx) > 1e-9 {
			t.Errorf("IndexOf(TimeAt(%v)) = %v", idx, got)
		}
	}
}

func TestBarsDegenerate(t *testing.T) {
	var empty Bars
	if got := empty.IndexOf(100); got != 0 {
		t.Errorf("empty IndexOf = %v, want 0", got)
	}
	if got := empty.TimeAt(3); got != 0 {
		t.Errorf("empty TimeAt = %v, want 0", got)
	}
	if got := empty.LastIndex(); got != -1 {
		t.Errorf("empty LastIndex = %v, want -1", got)
	}

	one := Bars{{Time: 42}}
	if got := one.IndexOf(1000); got != 0 {
		t.Errorf("single IndexOf = %v, want 0", got)
	}
	if got := one.TimeAt(5); got != 42 {
		t.Errorf("single TimeAt = %v, want 42", got)
	}
}

func TestBarsInterval(t *testing.T) {
	if got := hourly(3).Interval(); got != 3600 {
		t.Errorf("Interval() = %d, want 3600", got)
	}
	if got := hourly(1).Interval(); got != 0 {
		t.Errorf("Interval() = %d, want 0", got)
	}
}

func TestWalk(t *testing.T) {
	a := NewWalk(1000, 60, 7).Bars(200)
	b := NewWalk(1000, 60, 7).Bars(200)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bar %d differs between walks with the same seed", i)
		}
		x := a[i]
		if !x.Valid() || x.Low > min(x.Open, x.Close) || x.High < max(x.Open, x.Close) {
			t.Errorf("bar %d inconsistent: %+v", i, x)
		}
		if x.Time != 1000+int64(i)*60 {
			t.Errorf("bar %d time = %d", i, x.Time)
		}
		if i > 0 && x.Open != a[i-1].Close {
			t.Errorf("bar %d opens at %v, previous close %v", i, x.Open, a[i-1].Close)
		}
	}
}

func TestWalkTick(t *testing.T) {
	w := NewWalk(0, 60, 1)
	b := w.Next()
	for range 100 {
		b = w.Tick(b)
		if b.Close > b.High || b.Close < b.Low || b.Time != 0 {
			t.Fatalf("tick broke the bar: %+v", b)
		}
	}
	if n := w.Next(); n.Open != b.Close || n.Time != 60 {
		t.Errorf("next bar after ticks = %+v, want open %v at 60", n, b.Close)
	}
}
