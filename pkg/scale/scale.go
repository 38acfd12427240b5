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

// Package scale converts between column indexes, pixel x-coordinates and value
// y-coordinates. Everything here is a pure function of its arguments.
//
// Pixel coordinates are rounded half-up (floor(v+0.5)) before they are used so
// that stroked lines stay crisp; renderers and hit tests must share this rounding.
package scale

import (
	"fmt"
	"math"

	"github.com/teradata-labs/timechart/pkg/series"
)

// Range is a half-open window [Start, End) of x-axis indexes.
type Range struct {
	Start int
	End   int
}

// Full returns the range covering n columns.
func Full(n int) Range {
	return Range{Start: 0, End: n}
}

// Len returns the number of columns in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Valid reports whether 0 <= Start < End <= n.
func (r Range) Valid(n int) bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= n
}

// Clamp forces the range into [0, n], keeping at least one column when n > 0.
func (r Range) Clamp(n int) Range {
	if n <= 0 {
		return Range{}
	}
	r.Start = max(0, min(r.Start, n-1))
	r.End = max(r.Start+1, min(r.End, n))
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Extent is the vertical value span the plot is scaled to.
type Extent struct {
	Min float64
	Max float64
}

// Span returns Max-Min.
func (e Extent) Span() float64 {
	return e.Max - e.Min
}

// Flat reports whether the extent has no height.
func (e Extent) Flat() bool {
	return e.Max-e.Min == 0
}

// Viewport is the pixel size of a drawing surface plus its vertical margins.
type Viewport struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
}

// Baseline returns the y of the bottom of the plot area.
func (v Viewport) Baseline() float64 {
	return v.Height - v.MarginBottom
}

// PlotHeight returns the height available between the margins, never negative.
func (v Viewport) PlotHeight() float64 {
	return max(0, v.Height-v.MarginTop-v.MarginBottom)
}

// Index identifies a column both on the whole x-axis and inside a range.
type Index struct {
	Global int
	Local  int
}

// Round rounds half-up, the rounding used for every pixel coordinate.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// ColumnWidth returns the pixel distance between two neighbouring columns when
// visibleCount columns span viewportWidth. The last column lands exactly on the
// right edge.
func ColumnWidth(viewportWidth float64, visibleCount int) float64 {
	return viewportWidth / float64(max(visibleCount-1, 1))
}

// ColumnX returns the rounded pixel x of the local column of r.
func ColumnX(local int, viewportWidth float64, r Range) float64 {
	return Round(float64(local) * viewportWidth / float64(max(r.Len()-1, 1)))
}

// Columns converts a pixel distance to a distance in columns when visibleCount
// columns span viewportWidth. It multiplies before dividing so a pixel exactly
// halfway between two columns yields exactly k+0.5. A non-positive viewport
// yields 0.
func Columns(px, viewportWidth float64, visibleCount int) float64 {
	if viewportWidth <= 0 {
		return 0
	}
	return px * float64(max(visibleCount-1, 1)) / viewportWidth
}

// ValueToY maps value from [e.Min, e.Max] onto [v.Baseline(), v.MarginTop].
// A flat extent maps every value to the baseline.
func ValueToY(value float64, v Viewport, e Extent) float64 {
	if e.Flat() {
		return Round(v.Baseline())
	}
	return Round(v.Baseline() - (value-e.Min)/e.Span()*v.PlotHeight())
}

// PixelToIndex returns the column nearest to x. Ties go to the higher column and
// positions outside the viewport clamp to the first or last column of r.
func PixelToIndex(x, viewportWidth float64, r Range) Index {
	n := r.Len()
	if n <= 0 {
		return Index{Global: r.Start}
	}
	local := int(Round(Columns(x, viewportWidth, n)))
	local = max(0, min(local, n-1))
	return Index{Global: r.Start + local, Local: local}
}

// ComputeExtent returns the span of every value of ss inside r. With zeroBaseline
// the minimum never goes above zero, so positive data is drawn from the bottom
// of the plot. No series yields the zero extent.
func ComputeExtent(ss []*series.Series, r Range, zeroBaseline bool) Extent {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range ss {
		start := max(0, r.Start)
		end := max(0, min(r.End, len(s.Values)))
		for _, v := range s.Values[min(start, end):end] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return Extent{}
	}
	if zeroBaseline {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	return Extent{Min: lo, Max: hi}
}
