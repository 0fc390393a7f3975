// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package indicator computes technical indicators over bar series.
//
// An [Indicator] returns named output series, each parallel to the input
// bars. Values that are not yet defined (the warm-up of a moving average)
// are [None]. Indicators are looked up by name in a [Registry], which the
// chart receives explicitly:
//
//	reg := indicator.Default()
//	out, err := reg.Compute("boll", bars, indicator.Params{"period": 20, "k": 2})
//	upper := out["upper"]
package indicator
