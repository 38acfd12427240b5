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

package balloon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/timechart/pkg/render"
	"github.com/teradata-labs/timechart/pkg/scale"
	"github.com/teradata-labs/timechart/pkg/series"
)

const day = 86400000.0

func testView(t *testing.T) View {
	t.Helper()
	start := 1542412800000.0 // Sat Nov 17 2018 UTC
	x := []float64{start, start + day, start + 2*day, start + 3*day, start + 4*day}
	a, err := series.NewSeries("y0", "A", "#3DC23F", []float64{0, 10, 5, 20, 15})
	require.NoError(t, err)
	b, err := series.NewSeries("y1", "B", "#F34C44", []float64{1234567, 2, 3, 4, 5.5})
	require.NoError(t, err)
	ds, err := series.NewDataset(x, a, b)
	require.NoError(t, err)
	return View{
		Dataset:  ds,
		Range:    scale.Full(5),
		Viewport: scale.Viewport{Width: 100, Height: 50},
		Extent:   scale.Extent{Min: 0, Max: 20},
	}
}

func TestInspect_SnapsToNearestColumn(t *testing.T) {
	p, err := NewInspector("en", nil)
	require.NoError(t, err)
	view := testView(t)

	tests := []struct {
		x      float64
		global int
		label  string
	}{
		{x: 0, global: 0, label: "Sat, Nov 17"},
		{x: 12.49, global: 0, label: "Sat, Nov 17"},
		{x: 12.5, global: 1, label: "Sun, Nov 18"}, // exactly between columns 0 and 1
		{x: 37.5, global: 2, label: "Mon, Nov 19"},
		{x: 100, global: 4, label: "Wed, Nov 21"},
		{x: 500, global: 4, label: "Wed, Nov 21"},
		{x: -20, global: 0, label: "Sat, Nov 17"},
	}
	for _, tt := range tests {
		pl := p.Inspect(tt.x, view)
		assert.Equal(t, tt.global, pl.Index.Global, "x=%v", tt.x)
		assert.Equal(t, tt.label, pl.Label, "x=%v", tt.x)
		assert.Equal(t, scale.ColumnX(pl.Index.Local, 100, view.Range), pl.X)
	}
}

func TestInspect_Items(t *testing.T) {
	p, err := NewInspector("", nil)
	require.NoError(t, err)
	view := testView(t)

	pl := p.Inspect(0, view)
	require.Len(t, pl.Items, 2)
	assert.Equal(t, "A", pl.Items[0].Name)
	assert.Equal(t, "#3DC23F", pl.Items[0].Color)
	assert.Equal(t, 1234567.0, pl.Items[1].Value)
	assert.Equal(t, "1,234,567", pl.Items[1].Text)

	pl = p.Inspect(100, view)
	assert.Equal(t, "5.5", pl.Items[1].Text)
	assert.Equal(t, "Wed, Nov 21\n15 A\n5.5 B", pl.String())
}

func TestInspect_SubRange(t *testing.T) {
	p, err := NewInspector("en", nil)
	require.NoError(t, err)
	view := testView(t)
	view.Range = scale.Range{Start: 2, End: 5}

	pl := p.Inspect(50, view)
	assert.Equal(t, scale.Index{Global: 3, Local: 1}, pl.Index)
	assert.Equal(t, 50.0, pl.X)
	assert.Equal(t, 20.0, pl.Items[0].Value)
}

func TestInspect_SkipsHiddenSeries(t *testing.T) {
	p, err := NewInspector("en", nil)
	require.NoError(t, err)
	view := testView(t)
	require.NoError(t, view.Dataset.SetVisible("y1", false))

	pl := p.Inspect(25, view)
	require.Len(t, pl.Items, 1)
	assert.Equal(t, "y0", pl.Items[0].ID)
}

func TestInspect_Empty(t *testing.T) {
	p, err := NewInspector("en", nil)
	require.NoError(t, err)

	assert.True(t, p.Inspect(10, View{}).Empty())
	view := testView(t)
	view.Range = scale.Range{}
	assert.True(t, p.Inspect(10, view).Empty())
}

func TestFormat_Locale(t *testing.T) {
	en, err := NewInspector("en-US", nil)
	require.NoError(t, err)
	de, err := NewInspector("de", nil)
	require.NoError(t, err)

	assert.Equal(t, "1,234,567", en.Format(1234567))
	assert.Equal(t, "1.234.567", de.Format(1234567))
	assert.Equal(t, "0", en.Format(0))

	_, err = NewInspector("not a locale!", nil)
	assert.Error(t, err)
}

func TestDrawAndHide(t *testing.T) {
	p, err := NewInspector("en", nil)
	require.NoError(t, err)
	view := testView(t)
	require.NoError(t, view.Dataset.SetVisible("y1", false))
	style := render.DayStyle()
	overlay := render.NewLayer(100, 50)

	pl := p.Inspect(25, view)
	p.Draw(overlay, pl, view, style)
	img := overlay.Image()

	// A's value 10 sits halfway up: the dot centre is filled with the dot colour.
	dot := img.RGBAAt(25, 25)
	assert.Equal(t, uint8(255), dot.R)
	assert.Equal(t, uint8(255), dot.A)
	// The guide runs the full plot height.
	assert.NotZero(t, img.RGBAAt(25, 3).A)
	// Nothing far from the column.
	assert.Zero(t, img.RGBAAt(80, 40).A)

	p.Hide(overlay)
	assert.Zero(t, overlay.Image().RGBAAt(25, 25).A)
	assert.Zero(t, overlay.Image().RGBAAt(25, 3).A)
}

func TestDraw_EmptyPayloadClears(t *testing.T) {
	p, err := NewInspector("en", nil)
	require.NoError(t, err)
	overlay := render.NewLayer(10, 10)
	overlay.Fill(render.DayStyle().Text)

	p.Draw(overlay, Payload{}, View{}, render.DayStyle())
	assert.Zero(t, overlay.Image().RGBAAt(5, 5).A)
}

func TestPlace(t *testing.T) {
	v := scale.Viewport{Width: 300, Height: 200, MarginTop: 10}
	tests := []struct {
		name   string
		anchor float64
		boxW   float64
		want   Placement
	}{
		{name: "near left edge", anchor: 50, boxW: 80, want: Placement{Left: 50, Top: 10, Side: SideRight}},
		{name: "at left edge", anchor: 0, boxW: 80, want: Placement{Left: 0, Top: 10, Side: SideRight}},
		{name: "near right edge", anchor: 250, boxW: 80, want: Placement{Left: 170, Top: 10, Side: SideLeft}},
		{name: "at right edge", anchor: 300, boxW: 80, want: Placement{Left: 220, Top: 10, Side: SideLeft}},
		{name: "centred", anchor: 150, boxW: 80, want: Placement{Left: 110, Top: 10, Side: SideCenter}},
		{name: "box wider than viewport", anchor: 100, boxW: 400, want: Placement{Left: 0, Top: 10, Side: SideRight}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.anchor, tt.boxW, 40, v))
		})
	}
}

func TestPlace_InsideViewport(t *testing.T) {
	v := scale.Viewport{Width: 240, Height: 120, MarginTop: 15}
	for x := -10.0; x <= 250; x += 0.5 {
		pl := Place(x, 70, 30, v)
		assert.GreaterOrEqual(t, pl.Left, 0.0)
		assert.LessOrEqual(t, pl.Left+70, 240.0)
		assert.GreaterOrEqual(t, pl.Top, 0.0)
		assert.LessOrEqual(t, pl.Top+30, 120.0)
	}
}
