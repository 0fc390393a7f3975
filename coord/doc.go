// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package coord maps chart data space to device pixels.
//
// Everything in this package is a pure function or an immutable value. Two
// pixel spaces are used throughout the chart:
//
//   - media (logical) pixels: device independent, used for layout, pointer
//     input and hit-testing
//   - bitmap (physical) pixels: media pixels scaled by the device pixel ratio,
//     used for rasterisation
//
// Data space is (price, bar index). Bar indexes are fractional where needed;
// [TimeScale] maps them horizontally and [PriceTransform] maps prices
// vertically.
//
// All functions are total. Degenerate input (empty price range, zero height,
// zero bar spacing, NaN) yields a finite default so that no NaN or Inf can
// leak into drawing coordinates.
package coord
