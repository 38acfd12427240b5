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

// Package series holds the in-memory model of a chart dataset: a shared x-axis of
// timestamps and the named numeric columns plotted against it.
package series

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidDocument is returned when the input does not match the document schema.
	ErrInvalidDocument = errors.New("invalid chart document")
	// ErrMissingX is returned when no column has type "x".
	ErrMissingX = errors.New(`missing "x" column`)
	// ErrLengthMismatch is returned when a column is not aligned with the x-axis.
	ErrLengthMismatch = errors.New("column length mismatch")
	// ErrUnknownType is returned for column types other than "line" and "x".
	ErrUnknownType = errors.New("unknown column type")
	// ErrInvalidColor is returned when a colour is not a #rgb or #rrggbb value.
	ErrInvalidColor = errors.New("invalid colour")
	// ErrNoSeries is returned when a document has an x-axis but nothing to plot.
	ErrNoSeries = errors.New("no line series")
	// ErrDuplicateSeries is returned when two columns share an id.
	ErrDuplicateSeries = errors.New("duplicate series id")
	// ErrEmptyAxis is returned when the x-axis has no values.
	ErrEmptyAxis = errors.New("empty x-axis")
	// ErrUnknownSeries is returned when a series id is not part of the dataset.
	ErrUnknownSeries = errors.New("unknown series")
)

// Column types understood by the loader.
const (
	TypeLine = "line"
	TypeX    = "x"
)

// Series is one named numeric column plotted as a line.
type Series struct {
	ID      string
	Name    string
	Color   string         // As given in the document, e.g. "#3DC23F"
	RGB     colorful.Color // Parsed colour
	Values  []float64      // One value per x-axis index
	Visible bool
}

// ParseColor parses a #rgb or #rrggbb colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return c, nil
}

// NewSeries creates a visible series. An empty name falls back to the id.
func NewSeries(id, name, hex string, values []float64) (*Series, error) {
	rgb, err := ParseColor(hex)
	if err != nil {
		return nil, fmt.Errorf("series %s: %w", id, err)
	}
	if name == "" {
		name = id
	}
	return &Series{
		ID:      id,
		Name:    name,
		Color:   hex,
		RGB:     rgb,
		Values:  values,
		Visible: true,
	}, nil
}

// Dataset is the x-axis plus every series aligned to it, in document order.
type Dataset struct {
	X      []float64 // Epoch milliseconds
	series []*Series
	index  map[string]*Series
}

// NewDataset checks the alignment invariant and indexes the series by id.
func NewDataset(x []float64, series ...*Series) (*Dataset, error) {
	if len(series) == 0 {
		return nil, ErrNoSeries
	}
	if len(x) == 0 {
		return nil, ErrEmptyAxis
	}
	ds := &Dataset{
		X:      x,
		series: make([]*Series, 0, len(series)),
		index:  make(map[string]*Series, len(series)),
	}
	for _, s := range series {
		if len(s.Values) != len(x) {
			return nil, fmt.Errorf("%w: series %s has %d values, x-axis has %d",
				ErrLengthMismatch, s.ID, len(s.Values), len(x))
		}
		if _, dup := ds.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeries, s.ID)
		}
		ds.series = append(ds.series, s)
		ds.index[s.ID] = s
	}
	return ds, nil
}

// Len returns the number of columns on the x-axis.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Series returns all series in document order.
func (d *Dataset) Series() []*Series {
	out := make([]*Series, len(d.series))
	copy(out, d.series)
	return out
}

// Lookup finds a series by id.
func (d *Dataset) Lookup(id string) (*Series, bool) {
	s, ok := d.index[id]
	return s, ok
}

// Visible returns the visible series in document order.
func (d *Dataset) Visible() []*Series {
	out := make([]*Series, 0, len(d.series))
	for _, s := range d.series {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// VisibleCount returns how many series are visible.
func (d *Dataset) VisibleCount() int {
	n := 0
	for _, s := range d.series {
		if s.Visible {
			n++
		}
	}
	return n
}

// SetVisible sets the visibility flag of a series. It does not enforce any
// policy about how many series stay visible; that belongs to the caller.
func (d *Dataset) SetVisible(id string, visible bool) error {
	s, ok := d.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSeries, id)
	}
	s.Visible = visible
	return nil
}

// Time returns the x-axis value at i as a UTC time. i is clamped to the axis.
func (d *Dataset) Time(i int) time.Time {
	if len(d.X) == 0 {
		return time.Time{}
	}
	i = max(0, min(i, len(d.X)-1))
	return time.UnixMilli(int64(d.X[i])).UTC()
}

// Monotonic reports whether the x-axis is strictly increasing. Index based lookups
// assume it is, but the loader does not reject data that is not.
func (d *Dataset) Monotonic() bool {
	for i := 1; i < len(d.X); i++ {
		if d.X[i] <= d.X[i-1] {
			return false
		}
	}
	return true
}
