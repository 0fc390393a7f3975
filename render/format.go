// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const day = 24 * 60 * 60

// Formatter turns prices, volumes and timestamps into axis and legend text.
type Formatter struct {
	printer  *message.Printer
	location *time.Location
}

// NewFormatter returns a formatter for the given locale. A nil location
// means UTC.
func NewFormatter(tag language.Tag, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{printer: message.NewPrinter(tag), location: loc}
}

// DefaultFormatter uses English digit grouping and UTC.
func DefaultFormatter() *Formatter {
	return NewFormatter(language.English, time.UTC)
}

// Price formats v with a fixed number of decimals and locale grouping.
func (f *Formatter) Price(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	decimals = max(0, min(decimals, 10))
	return f.printer.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}

// Percent formats a percent change with an explicit sign.
func (f *Formatter) Percent(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	s := f.Price(v, decimals) + "%"
	if v > 0 {
		s = "+" + s
	}
	return s
}

// Volume formats v compactly with SI suffixes (1.25k, 3.4M).
func (f *Formatter) Volume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	if math.Abs(v) < 1000 {
		return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	}
	return strings.ReplaceAll(humanize.SIWithDigits(v, 2, ""), " ", "")
}

// Time formats a unix timestamp at a granularity suited to the bar
// interval in seconds.
func (f *Formatter) Time(t, interval int64) string {
	ts := time.Unix(t, 0).In(f.location)
	switch {
	case interval >= 28*day:
		return ts.Format("Jan 2006")
	case interval >= day:
		return ts.Format("2006-01-02")
	case interval > 0 && interval < 60:
		return ts.Format("15:04:05")
	default:
		return ts.Format("01-02 15:04")
	}
}

// TimeFull formats a timestamp for the crosshair label.
func (f *Formatter) TimeFull(t, interval int64) string {
	ts := time.Unix(t, 0).In(f.location)
	if interval >= day {
		return ts.Format("Mon 02 Jan 2006")
	}
	return ts.Format("Mon 02 Jan 2006 15:04")
}
