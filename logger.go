// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so disabled logging skips message formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for chart, its drawing engines and the
// underlying gg rasteriser. By default nothing is logged. Pass nil to
// restore the silent default.
//
// Log levels used by chart:
//   - [slog.LevelDebug]: frame repaints, resizes, pipeline changes
//   - [slog.LevelWarn]: dropped drawing records, failing indicators
//
// Example:
//
//	chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// SetLogger is safe for concurrent use. Charts created earlier keep the
// logger their drawing engine was built with.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
		gg.SetLogger(nil)
	} else {
		gg.SetLogger(l)
	}
	loggerPtr.Store(l)
}

// Logger returns the current chart logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
