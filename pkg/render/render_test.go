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
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/timechart/pkg/scale"
	"github.com/teradata-labs/timechart/pkg/series"
)

func newSeries(t *testing.T, id, hex string, values ...float64) *series.Series {
	t.Helper()
	s, err := series.NewSeries(id, id, hex, values)
	require.NoError(t, err)
	return s
}

func opaquePixels(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func testPlot(t *testing.T) Plot {
	a := newSeries(t, "A", "#F34C44", 0, 10, 5, 20, 15)
	b := newSeries(t, "B", "#3DC23F", 3, 4, 12, 1, 2)
	return Plot{
		Series:   []*series.Series{a, b},
		Range:    scale.Full(5),
		Viewport: scale.Viewport{Width: 100, Height: 50},
		Extent:   scale.Extent{Min: 0, Max: 20},
	}
}

func TestDrawSeries_ColourOnTheLine(t *testing.T) {
	flat := newSeries(t, "F", "#F34C44", 10, 10, 10)
	l := NewLayer(100, 50)
	DrawSeries(l, flat, scale.Full(3), scale.Viewport{Width: 100, Height: 50}, scale.Extent{Min: 0, Max: 20}, 3)

	c := l.Image().RGBAAt(50, 25)
	assert.InDelta(t, 0xF3, int(c.R), 1)
	assert.InDelta(t, 0x4C, int(c.G), 1)
	assert.InDelta(t, 0x44, int(c.B), 1)
	assert.Equal(t, uint8(0xFF), c.A)

	assert.Zero(t, l.Image().RGBAAt(50, 5).A, "nothing drawn away from the line")
}

func TestDrawGraphs_Idempotent(t *testing.T) {
	p := testPlot(t)
	style := DayStyle()

	l := NewLayer(100, 50)
	DrawGraphs(l, p, style)
	first := bytes.Clone(l.Image().Pix)

	DrawGraphs(l, p, style)
	assert.Equal(t, first, l.Image().Pix)

	other := NewLayer(100, 50)
	DrawGraphs(other, p, style)
	assert.Equal(t, first, other.Image().Pix)

	chart := NewLayer(100, 50)
	DrawChart(chart, p, []float64{0, 1, 2, 3, 4}, style)
	firstChart := bytes.Clone(chart.Image().Pix)
	DrawChart(chart, p, []float64{0, 1, 2, 3, 4}, style)
	assert.Equal(t, firstChart, chart.Image().Pix)
}

func TestDrawGraphs_ClearsPreviousFrame(t *testing.T) {
	p := testPlot(t)
	l := NewLayer(100, 50)
	DrawGraphs(l, p, DayStyle())
	require.NotZero(t, opaquePixels(l.Image()))

	onlyB := p
	onlyB.Series = []*series.Series{p.Series[1]}
	DrawGraphs(l, onlyB, DayStyle())

	fresh := NewLayer(100, 50)
	DrawGraphs(fresh, onlyB, DayStyle())
	assert.Equal(t, fresh.Image().Pix, l.Image().Pix, "no pixels of A survive the redraw")
}

func TestDrawGraphs_SkipsHidden(t *testing.T) {
	p := testPlot(t)
	p.Series[0].Visible = false
	p.Series[1].Visible = false

	l := NewLayer(100, 50)
	DrawGraphs(l, p, DayStyle())
	assert.Zero(t, opaquePixels(l.Image()))
}

func TestDrawSeries_Degenerate(t *testing.T) {
	v := scale.Viewport{Width: 100, Height: 50}
	e := scale.Extent{Min: 0, Max: 20}

	t.Run("no points", func(t *testing.T) {
		empty := newSeries(t, "E", "#000000")
		l := NewLayer(100, 50)
		assert.NotPanics(t, func() { DrawSeries(l, empty, scale.Range{}, v, e, 3) })
		assert.Zero(t, opaquePixels(l.Image()))
	})

	t.Run("single point draws a dot", func(t *testing.T) {
		one := newSeries(t, "O", "#000000", 10, 20, 30)
		l := NewLayer(100, 50)
		DrawSeries(l, one, scale.Range{Start: 1, End: 2}, v, e, 4)
		assert.NotZero(t, opaquePixels(l.Image()))
		assert.NotZero(t, l.Image().RGBAAt(0, 0).A, "dot at the left column, top row")
	})

	t.Run("range past the data", func(t *testing.T) {
		short := newSeries(t, "S", "#000000", 1, 2)
		l := NewLayer(100, 50)
		assert.NotPanics(t, func() { DrawSeries(l, short, scale.Range{Start: 5, End: 9}, v, e, 3) })
	})

	t.Run("zero sized viewport", func(t *testing.T) {
		p := testPlot(t)
		p.Viewport = scale.Viewport{}
		l := NewLayer(0, 0)
		assert.NotPanics(t, func() { DrawChart(l, p, nil, DayStyle()) })
		assert.Equal(t, 1, l.Width())
	})

	t.Run("flat extent", func(t *testing.T) {
		p := testPlot(t)
		p.Extent = scale.Extent{Min: 3, Max: 3}
		l := NewLayer(100, 50)
		assert.NotPanics(t, func() { DrawChart(l, p, []float64{0, 1, 2, 3, 4}, DayStyle()) })
	})
}

func TestDrawSelector(t *testing.T) {
	l := NewLayer(100, 20)
	DrawSelector(l, 40, 80, 5, DayStyle())
	img := l.Image()

	assert.NotZero(t, img.RGBAAt(10, 10).A, "left of the window is masked")
	assert.NotZero(t, img.RGBAAt(90, 10).A, "right of the window is masked")
	assert.Zero(t, img.RGBAAt(60, 10).A, "inside the window is left clear")
	assert.NotZero(t, img.RGBAAt(42, 10).A, "left handle")
	assert.NotZero(t, img.RGBAAt(77, 10).A, "right handle")
}

func TestDrawGuideAndDot(t *testing.T) {
	l := NewLayer(100, 50)
	v := scale.Viewport{Width: 100, Height: 50, MarginTop: 5, MarginBottom: 5}
	DrawGuide(l, 30, v, DayStyle())
	assert.NotZero(t, l.Image().RGBAAt(30, 25).A)
	assert.Zero(t, l.Image().RGBAAt(30, 1).A, "guide stops at the top margin")

	l.Clear()
	DrawDot(l, 50, 25, newSeries(t, "A", "#F34C44").RGB, DayStyle())
	centre := l.Image().RGBAAt(50, 25)
	assert.Equal(t, uint8(0xFF), centre.R, "dot is filled with the day background")
	assert.Equal(t, uint8(0xFF), centre.G)
}

func TestCompose(t *testing.T) {
	top := NewLayer(10, 10)
	top.Fill(DayStyle().Grid)
	bottom := NewLayer(10, 5)

	img := Compose(10, 20, NightStyle().Background, Placement{Layer: top}, Placement{Layer: bottom, Y: 15}, Placement{})
	assert.Equal(t, image.Rect(0, 0, 10, 20), img.Bounds())
	assert.Equal(t, uint8(0xf2), img.RGBAAt(5, 5).R)
	assert.Equal(t, uint8(0x24), img.RGBAAt(5, 17).R, "transparent layer shows the background")
}

func TestFormatCompact(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		950:     "950",
		12.345:  "12.3",
		1200:    "1.2K",
		-1500:   "-1.5K",
		3500000: "3.5M",
		7e9:     "7B",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCompact(in), "FormatCompact(%v)", in)
	}
}

func TestStyleByName(t *testing.T) {
	assert.Equal(t, "night", StyleByName("night").Name)
	assert.Equal(t, "day", StyleByName("day").Name)
	assert.Equal(t, "day", StyleByName("sepia").Name)
}
