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

// Package balloon implements the hover balloon: it maps a pointer x to the nearest
// column, collects the values of the visible series there and draws the guide
// line and dots on the overlay layer.
package balloon

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/teradata-labs/timechart/pkg/render"
	"github.com/teradata-labs/timechart/pkg/scale"
	"github.com/teradata-labs/timechart/pkg/series"
)

// DateLayout is the balloon header format: short weekday, short month, day.
const DateLayout = "Mon, Jan 2"

// View is what the inspector reads from the chart for one lookup.
type View struct {
	Dataset  *series.Dataset
	Range    scale.Range
	Viewport scale.Viewport
	Extent   scale.Extent
}

// Item is one visible series at the hovered column.
type Item struct {
	ID    string
	Name  string
	Color string
	RGB   colorful.Color
	Value float64
	Text  string // Value formatted for the inspector's locale
}

// Payload is everything a host needs to show the balloon.
type Payload struct {
	Index scale.Index
	X     float64 // Pixel x of the snapped column
	Time  time.Time
	Label string
	Items []Item
}

// Empty reports whether the payload has nothing to show.
func (p Payload) Empty() bool {
	return len(p.Items) == 0
}

// String renders the payload as plain text, one item per line.
func (p Payload) String() string {
	var sb strings.Builder
	sb.WriteString(p.Label)
	for _, it := range p.Items {
		fmt.Fprintf(&sb, "\n%s %s", it.Text, it.Name)
	}
	return sb.String()
}

// Inspector inspects and draws hover state. It holds no per-hover state itself.
type Inspector struct {
	tag     language.Tag
	printer *message.Printer
	logger  *zap.Logger
}

// NewInspector creates an inspector formatting values for the given BCP 47 locale.
// An empty locale means English.
func NewInspector(locale string, logger *zap.Logger) (*Inspector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tag := language.English
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("balloon locale %q: %w", locale, err)
		}
		tag = t
	}
	return &Inspector{
		tag:     tag,
		printer: message.NewPrinter(tag),
		logger:  logger,
	}, nil
}

// Locale returns the language tag values are formatted with.
func (p *Inspector) Locale() language.Tag {
	return p.tag
}

// Format formats a value with locale digit grouping.
func (p *Inspector) Format(v float64) string {
	return p.printer.Sprint(number.Decimal(v))
}

// Inspect returns the payload for a pointer at x. Ties between two columns go to
// the right one.
func (p *Inspector) Inspect(x float64, view View) Payload {
	ds := view.Dataset
	if ds == nil || ds.Len() == 0 || view.Range.Len() <= 0 {
		return Payload{}
	}
	idx := scale.PixelToIndex(x, view.Viewport.Width, view.Range)
	global := max(0, min(idx.Global, ds.Len()-1))
	t := ds.Time(global)

	out := Payload{
		Index: idx,
		X:     scale.ColumnX(idx.Local, view.Viewport.Width, view.Range),
		Time:  t,
		Label: t.Format(DateLayout),
	}
	for _, s := range ds.Visible() {
		v := s.Values[global]
		out.Items = append(out.Items, Item{
			ID:    s.ID,
			Name:  s.Name,
			Color: s.Color,
			RGB:   s.RGB,
			Value: v,
			Text:  p.Format(v),
		})
	}
	return out
}

// Draw clears the overlay and draws the guide at the payload's column and one dot
// per item.
func (p *Inspector) Draw(overlay *render.Layer, pl Payload, view View, style render.Style) {
	overlay.Clear()
	if pl.Empty() || view.Viewport.Width <= 0 || view.Viewport.Height <= 0 {
		return
	}
	render.DrawGuide(overlay, pl.X, view.Viewport, style)
	for _, it := range pl.Items {
		y := scale.ValueToY(it.Value, view.Viewport, view.Extent)
		render.DrawDot(overlay, pl.X, y, it.RGB, style)
	}
}

// Hide clears the overlay.
func (p *Inspector) Hide(overlay *render.Layer) {
	overlay.Clear()
}

// Side is where the balloon sits relative to its anchor.
type Side int

const (
	SideCenter Side = iota
	SideRight
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	default:
		return "center"
	}
}

// Placement is the top-left corner of the balloon box in viewport pixels.
type Placement struct {
	Left float64
	Top  float64
	Side Side
}

// Place positions a boxW x boxH balloon for an anchor at anchorX. Near the left
// edge the box opens to the right of the anchor, near the right edge to its left,
// and elsewhere it is centred. The result always lies inside the viewport when
// the box fits.
func Place(anchorX, boxW, boxH float64, v scale.Viewport) Placement {
	var pl Placement
	switch {
	case anchorX <= boxW:
		pl.Left, pl.Side = anchorX, SideRight
	case anchorX >= v.Width-boxW:
		pl.Left, pl.Side = anchorX-boxW, SideLeft
	default:
		pl.Left, pl.Side = anchorX-boxW/2, SideCenter
	}
	pl.Left = scale.Round(max(0, min(pl.Left, v.Width-boxW)))
	pl.Top = max(0, min(v.MarginTop, v.Height-boxH))
	return pl
}
