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

package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestHalfBlocks_Solid(t *testing.T) {
	out := HalfBlocks(solid(8, 8, color.RGBA{R: 255, A: 255}), 4, 2)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "▀▀▀▀", ansi.Strip(line))
		// One style for the whole row plus the reset.
		assert.Equal(t, 2, strings.Count(line, "\x1b["))
		assert.True(t, strings.HasSuffix(line, ansi.ResetStyle))
	}
}

func TestHalfBlocks_StyleChanges(t *testing.T) {
	img := solid(2, 2, color.White)
	img.Set(1, 0, color.Black)
	img.Set(1, 1, color.Black)

	out := HalfBlocks(img, 2, 1)
	assert.Equal(t, "▀▀", ansi.Strip(out))
	assert.Equal(t, 3, strings.Count(out, "\x1b["))
}

func TestHalfBlocks_Empty(t *testing.T) {
	assert.Empty(t, HalfBlocks(nil, 4, 4))
	assert.Empty(t, HalfBlocks(solid(4, 4, color.White), 0, 4))
	assert.Empty(t, HalfBlocks(solid(4, 4, color.White), 4, 0))
}

func TestGrid(t *testing.T) {
	g := Grid{Cols: 10, Rows: 5, Width: 40, Height: 100}

	x, y := g.Pixel(0, 0)
	assert.InDelta(t, 2.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)

	x, y = g.Pixel(9, 4)
	assert.InDelta(t, 38.0, x, 1e-9)
	assert.InDelta(t, 90.0, y, 1e-9)

	tests := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 0},
		{3.9, 19.9, 0, 0},
		{4, 20, 1, 1},
		{39.9, 99.9, 9, 4},
		{-5, -5, 0, 0},
		{500, 500, 9, 4},
	}
	for _, tt := range tests {
		col, row := g.Cell(tt.x, tt.y)
		assert.Equal(t, tt.col, col, "x=%v", tt.x)
		assert.Equal(t, tt.row, row, "y=%v", tt.y)
	}

	assert.True(t, g.Contains(0, 0))
	assert.True(t, g.Contains(9, 4))
	assert.False(t, g.Contains(10, 0))
	assert.False(t, g.Contains(0, -1))

	var zero Grid
	x, y = zero.Pixel(1, 1)
	assert.Zero(t, x)
	assert.Zero(t, y)
}
