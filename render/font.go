// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts caches label faces by pixel size over a single font source.
type Fonts struct {
	source *text.FontSource
	faces  map[float64]text.Face
}

// NewFonts parses TrueType/OpenType data.
func NewFonts(data []byte) (*Fonts, error) {
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	return &Fonts{source: src, faces: make(map[float64]text.Face)}, nil
}

// DefaultFonts returns fonts backed by the embedded Go Regular face.
func DefaultFonts() (*Fonts, error) {
	return NewFonts(goregular.TTF)
}

// LoadFonts reads a font file from disk.
func LoadFonts(path string) (*Fonts, error) {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load font %s: %w", path, err)
	}
	return &Fonts{source: src, faces: make(map[float64]text.Face)}, nil
}

// Face returns the face for a size in bitmap pixels. A nil receiver
// returns nil, which disables text.
func (f *Fonts) Face(size float64) text.Face {
	if f == nil || f.source == nil || size <= 0 {
		return nil
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := f.source.Face(size)
	f.faces[size] = face
	return face
}

// Close releases the font source.
// Close is idempotent - multiple calls are safe.
func (f *Fonts) Close() error {
	if f == nil || f.source == nil {
		return nil
	}
	err := f.source.Close()
	f.source = nil
	f.faces = nil
	return err
}
