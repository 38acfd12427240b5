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

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// upperHalf is drawn with the upper pixel as foreground and the lower pixel as
// background, so one cell shows two vertical pixels.
const upperHalf = "▀"

// HalfBlocks renders img into cols x rows terminal cells. The image is scaled to
// cols x 2*rows pixels first. Style sequences are only emitted when a cell's
// colours differ from its left neighbour's.
func HalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 || img == nil {
		return ""
	}
	small := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := small.Bounds()

	var sb strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var prevTop, prevBottom colorful.Color
		for col := range cols {
			top := cellColor(small.At(b.Min.X+col, b.Min.Y+2*row))
			bottom := cellColor(small.At(b.Min.X+col, b.Min.Y+2*row+1))
			if col == 0 || top != prevTop || bottom != prevBottom {
				sb.WriteString(ansi.Style{}.ForegroundColor(top).BackgroundColor(bottom).String())
				prevTop, prevBottom = top, bottom
			}
			sb.WriteString(upperHalf)
		}
		sb.WriteString(ansi.ResetStyle)
	}
	return sb.String()
}

// cellColor quantises a pixel to 8 bits per channel so neighbouring cells with
// the same visible colour share one style sequence.
func cellColor(c color.Color) colorful.Color {
	cc, _ := colorful.MakeColor(c)
	r, g, b := cc.RGB255()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Grid maps terminal cells onto the pixels of an image drawn with HalfBlocks.
type Grid struct {
	Cols, Rows int // Cell area
	Width      int // Image width in pixels
	Height     int // Image height in pixels
}

// Pixel returns the image coordinates at the centre of a cell.
func (g Grid) Pixel(col, row int) (x, y float64) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0
	}
	x = (float64(col) + 0.5) * float64(g.Width) / float64(g.Cols)
	y = (float64(row) + 0.5) * float64(g.Height) / float64(g.Rows)
	return x, y
}

// Cell returns the cell containing pixel (x, y).
func (g Grid) Cell(x, y float64) (col, row int) {
	if g.Width <= 0 || g.Height <= 0 {
		return 0, 0
	}
	col = int(x * float64(g.Cols) / float64(g.Width))
	row = int(y * float64(g.Rows) / float64(g.Height))
	return max(0, min(col, g.Cols-1)), max(0, min(row, g.Rows-1))
}

// Contains reports whether the cell lies inside the grid.
func (g Grid) Contains(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}
