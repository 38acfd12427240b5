// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render draws series, axes and overlays onto owned raster layers.
//
// The drawing functions keep no state between calls: the same inputs always
// produce the same pixels.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Layer is one independently owned drawing surface. The main chart, the hover
// overlay and the timeline each get their own and a Chart composes them.
type Layer struct {
	dc *gg.Context
}

// NewLayer creates a transparent layer. Sizes below one pixel are raised to one
// so degenerate viewports still have a valid surface.
func NewLayer(width, height int) *Layer {
	return &Layer{dc: gg.NewContext(max(width, 1), max(height, 1))}
}

// Resize replaces the surface with a transparent one of the new size.
func (l *Layer) Resize(width, height int) {
	l.dc = gg.NewContext(max(width, 1), max(height, 1))
}

// Width returns the surface width in pixels.
func (l *Layer) Width() int {
	return l.dc.Width()
}

// Height returns the surface height in pixels.
func (l *Layer) Height() int {
	return l.dc.Height()
}

// Clear makes every pixel transparent.
func (l *Layer) Clear() {
	l.dc.SetColor(color.Transparent)
	l.dc.Clear()
}

// Fill paints every pixel with c.
func (l *Layer) Fill(c color.Color) {
	l.dc.SetColor(c)
	l.dc.Clear()
}

// Image returns the layer's pixels. The image is live: later drawing changes it.
func (l *Layer) Image() *image.RGBA {
	return l.dc.Image().(*image.RGBA)
}

// Placement positions a layer inside a composed image.
type Placement struct {
	Layer *Layer
	X, Y  int
}

// Compose paints background and then each layer in order onto a new image.
func Compose(width, height int, background color.Color, layers ...Placement) *image.RGBA {
	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetColor(background)
	dc.Clear()
	for _, p := range layers {
		if p.Layer == nil {
			continue
		}
		dc.DrawImage(p.Layer.Image(), p.X, p.Y)
	}
	return dc.Image().(*image.RGBA)
}
