// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drawing implements user-drawn chart annotations.
//
// Annotations are stored in data space: every anchor is a (price, time)
// pair, never a pixel position. A [Projector] supplied by the chart maps
// anchors to logical pixels and back, so annotations follow the chart
// through scroll, zoom and resize without being touched.
//
// The [Engine] is the interaction state machine:
//
//	idle -> creating -> idle           tool completes or is canceled
//	idle <-> selected                  click a drawing / click empty space
//	selected -> dragging -> selected   drag an anchor
//	selected -> moving -> selected     drag the body
//
// The [Renderer] draws idle drawings onto the main buffer and the drawing
// being created or edited, with its anchor handles, onto the overlay.
//
// Drawings persist as a JSON array through [Marshal] and [Unmarshal].
// Interaction state is not persisted.
//
// # Thread Safety
//
// Engine and Renderer are NOT safe for concurrent use.
package drawing
