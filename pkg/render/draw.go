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
	"time"

	"github.com/teradata-labs/timechart/pkg/scale"
	"github.com/teradata-labs/timechart/pkg/series"
)

// Plot is one frame's worth of input to the graph renderer.
type Plot struct {
	Series   []*series.Series // Drawn in order; hidden ones are skipped
	Range    scale.Range
	Viewport scale.Viewport
	Extent   scale.Extent
}

func (p Plot) drawable(l *Layer) bool {
	return l != nil && p.Viewport.Width > 0 && p.Viewport.Height > 0 && p.Range.Len() > 0
}

// DrawSeries strokes s over the columns of r as one polyline with round joins and
// caps. A range with a single point draws a dot and an empty one draws nothing.
func DrawSeries(l *Layer, s *series.Series, r scale.Range, v scale.Viewport, e scale.Extent, lineWidth float64) {
	start := max(r.Start, 0)
	end := min(r.End, len(s.Values))
	if end <= start {
		return
	}

	dc := l.dc
	dc.SetColor(s.RGB)
	if end-start == 1 {
		x := scale.ColumnX(start-r.Start, v.Width, r)
		y := scale.ValueToY(s.Values[start], v, e)
		dc.DrawCircle(x, y, lineWidth/2)
		dc.Fill()
		return
	}

	dc.SetLineWidth(lineWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for i := start; i < end; i++ {
		x := scale.ColumnX(i-r.Start, v.Width, r)
		y := scale.ValueToY(s.Values[i], v, e)
		if i == start {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

// DrawGraphs clears the layer and draws every visible series of p. The timeline
// uses it directly; the main chart adds axes through DrawChart.
func DrawGraphs(l *Layer, p Plot, style Style) {
	l.Clear()
	if !p.drawable(l) {
		return
	}
	drawVisible(l, p, style)
}

// DrawChart clears the layer and draws the grid, the date labels and then the
// visible series on top.
func DrawChart(l *Layer, p Plot, xs []float64, style Style) {
	l.Clear()
	if !p.drawable(l) {
		return
	}
	DrawGrid(l, p, style)
	DrawXLabels(l, p, xs, style)
	drawVisible(l, p, style)
}

func drawVisible(l *Layer, p Plot, style Style) {
	for _, s := range p.Series {
		if s.Visible {
			DrawSeries(l, s, p.Range, p.Viewport, p.Extent, style.LineWidth)
		}
	}
}

// DrawGrid draws Sections.Y horizontal lines from the top of the extent down to
// its bottom, each labelled with its value.
func DrawGrid(l *Layer, p Plot, style Style) {
	n := style.Sections.Y
	if n < 2 || p.Extent.Flat() {
		n = 1
	}
	dc := l.dc
	dc.SetLineWidth(style.GridWidth)
	for i := 0; i < n; i++ {
		value := p.Extent.Min
		if n > 1 {
			value = p.Extent.Max - float64(i)*p.Extent.Span()/float64(n-1)
		}
		// Half pixel offset keeps a one pixel line on a single row.
		y := scale.ValueToY(value, p.Viewport, p.Extent) + 0.5
		dc.SetColor(style.Grid)
		dc.DrawLine(0, y, p.Viewport.Width, y)
		dc.Stroke()

		dc.SetColor(style.Text)
		dc.DrawStringAnchored(FormatCompact(value), 2, y-4, 0, 0)
	}
}

// DrawXLabels writes Sections.X dates along the bottom margin, evenly spread over
// the columns of the range. The first label is left aligned and the last right
// aligned so neither is cut off.
func DrawXLabels(l *Layer, p Plot, xs []float64, style Style) {
	n := p.Range.Len()
	if style.Sections.X < 1 || n < 1 || p.Viewport.MarginBottom <= 0 {
		return
	}
	ticks := min(style.Sections.X, n)
	y := p.Viewport.Height - p.Viewport.MarginBottom/2
	dc := l.dc
	dc.SetColor(style.Text)
	for k := 0; k < ticks; k++ {
		local := 0
		if ticks > 1 {
			local = int(scale.Round(float64(k*(n-1)) / float64(ticks-1)))
		}
		global := p.Range.Start + local
		if global < 0 || global >= len(xs) {
			continue
		}
		anchor := 0.5
		switch {
		case ticks == 1, k == 0:
			anchor = 0
		case k == ticks-1:
			anchor = 1
		}
		label := time.UnixMilli(int64(xs[global])).UTC().Format("Jan 2")
		dc.DrawStringAnchored(label, scale.ColumnX(local, p.Viewport.Width, p.Range), y, anchor, 0.5)
	}
}

// DrawSelector dims the timeline outside [left, right] and draws the window
// frame with its two resize handles.
func DrawSelector(l *Layer, left, right, handleWidth float64, style Style) {
	w, h := float64(l.Width()), float64(l.Height())
	left = scale.Round(max(0, left))
	right = scale.Round(min(w, right))
	if right <= left {
		return
	}

	dc := l.dc
	dc.SetColor(style.Mask)
	if left > 0 {
		dc.DrawRectangle(0, 0, left, h)
		dc.Fill()
	}
	if right < w {
		dc.DrawRectangle(right, 0, w-right, h)
		dc.Fill()
	}

	dc.SetColor(style.Frame)
	hw := min(handleWidth, (right-left)/2)
	dc.DrawRectangle(left, 0, hw, h)
	dc.DrawRectangle(right-hw, 0, hw, h)
	dc.Fill()
	// Top and bottom borders of the window.
	dc.DrawRectangle(left+hw, 0, right-left-2*hw, 1)
	dc.DrawRectangle(left+hw, h-1, right-left-2*hw, 1)
	dc.Fill()
}

// DrawGuide draws the vertical hover line at x between the plot margins.
func DrawGuide(l *Layer, x float64, v scale.Viewport, style Style) {
	dc := l.dc
	x = scale.Round(x) + 0.5
	dc.SetLineWidth(style.GuideWidth)
	dc.SetColor(style.Guide)
	dc.DrawLine(x, v.Baseline(), x, v.MarginTop)
	dc.Stroke()
}

// DrawDot draws a hover marker: a filled circle outlined in the series colour.
func DrawDot(l *Layer, x, y float64, stroke color.Color, style Style) {
	dc := l.dc
	dc.DrawCircle(x, y, style.DotRadius)
	dc.SetColor(style.DotFill)
	dc.FillPreserve()
	dc.SetColor(stroke)
	dc.SetLineWidth(style.LineWidth)
	dc.Stroke()
}
