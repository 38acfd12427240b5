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

package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/teradata-labs/timechart/pkg/render"
)

// Theme is the set of terminal styles derived from a chart theme.
type Theme struct {
	Background color.Color
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Title      lipgloss.Style
	Balloon    lipgloss.Style
	Error      lipgloss.Style
}

// FromStyle derives terminal styles from the chart theme so the chrome matches
// the image.
func FromStyle(s render.Style) Theme {
	bg, _ := colorful.MakeColor(s.Background)
	text, _ := colorful.MakeColor(s.Text)
	border, _ := colorful.MakeColor(s.Frame)
	return Theme{
		Background: bg,
		Text:       lipgloss.NewStyle().Foreground(text),
		Muted:      lipgloss.NewStyle().Foreground(Dim(text, bg)),
		Title:      lipgloss.NewStyle().Foreground(text).Bold(true),
		Balloon: lipgloss.NewStyle().
			Background(bg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#f34c44")),
	}
}

// Dim blends c halfway towards the background, for disabled entries.
func Dim(c, bg colorful.Color) colorful.Color {
	return c.BlendLab(bg, 0.5).Clamped()
}

// SeriesColor parses a series colour, falling back to grey.
func SeriesColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}
