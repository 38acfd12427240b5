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
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Sections is how many labelled ticks each axis gets.
type Sections struct {
	X int
	Y int
}

// Style holds everything about how a chart looks that is not data.
type Style struct {
	Name       string
	Background color.Color
	Grid       color.Color
	Text       color.Color
	Guide      color.Color // Hover guide line
	DotFill    color.Color // Inside of the hover dots
	Mask       color.Color // Timeline area outside the selected window
	Frame      color.Color // Selected window borders and handles

	LineWidth  float64
	GridWidth  float64
	GuideWidth float64
	DotRadius  float64
	Sections   Sections
}

// DayStyle returns the light theme.
func DayStyle() Style {
	return Style{
		Name:       "day",
		Background: colorful.MustParseHex("#ffffff"),
		Grid:       colorful.MustParseHex("#f2f4f5"),
		Text:       colorful.MustParseHex("#96a2aa"),
		Guide:      color.NRGBA{R: 221, G: 234, B: 243, A: 178},
		DotFill:    colorful.MustParseHex("#ffffff"),
		Mask:       color.NRGBA{R: 245, G: 249, B: 251, A: 204},
		Frame:      color.NRGBA{R: 221, G: 234, B: 243, A: 255},
		LineWidth:  3,
		GridWidth:  1,
		GuideWidth: 1,
		DotRadius:  5,
		Sections:   Sections{X: 6, Y: 6},
	}
}

// NightStyle returns the dark theme.
func NightStyle() Style {
	s := DayStyle()
	s.Name = "night"
	s.Background = colorful.MustParseHex("#242f3e")
	s.Grid = colorful.MustParseHex("#293544")
	s.Text = colorful.MustParseHex("#546778")
	s.Guide = color.NRGBA{R: 59, G: 74, B: 90, A: 178}
	s.DotFill = colorful.MustParseHex("#242f3e")
	s.Mask = color.NRGBA{R: 31, G: 42, B: 56, A: 153}
	s.Frame = color.NRGBA{R: 64, G: 86, B: 107, A: 255}
	return s
}

// StyleByName returns the theme called name, falling back to the day theme.
func StyleByName(name string) Style {
	if name == "night" {
		return NightStyle()
	}
	return DayStyle()
}
