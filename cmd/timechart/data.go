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

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/teradata-labs/timechart/pkg/chart"
	"github.com/teradata-labs/timechart/pkg/series"
)

var (
	// ErrNoMatch is returned when a --hide pattern matches no series.
	ErrNoMatch = errors.New("no series matches")
	// ErrChartIndex is returned when --chart is past the end of the file.
	ErrChartIndex = errors.New("chart index out of range")
)

// pickDataset returns the index-th chart of a loaded file.
func pickDataset(sets []*series.Dataset, index int) (*series.Dataset, error) {
	if index < 0 || index >= len(sets) {
		return nil, fmt.Errorf("%w: %d, file has %d", ErrChartIndex, index, len(sets))
	}
	return sets[index], nil
}

// newChart loads path and registers a chart for the selected document.
func (a *app) newChart(path string, index int, opts chart.Options) (*chart.Chart, error) {
	sets, err := series.LoadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := pickDataset(sets, index)
	if err != nil {
		return nil, err
	}
	return a.registry().Create(ds, opts)
}

// newCharts registers a chart for every document in path.
func (a *app) newCharts(path string, opts chart.Options) ([]*chart.Chart, error) {
	sets, err := series.LoadFile(path)
	if err != nil {
		return nil, err
	}
	r := a.registry()
	for i, ds := range sets {
		if _, err := r.Create(ds, opts); err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
	}
	return r.List(), nil
}

func (a *app) registry() *chart.Registry {
	if a.charts == nil {
		a.charts = chart.NewRegistry(a.logger)
	}
	return a.charts
}

// matchSeries resolves a pattern to a series id. Ids and names match exactly
// first, otherwise the best fuzzy match on the name wins.
func matchSeries(list []chart.SeriesInfo, pattern string) (string, error) {
	names := make([]string, len(list))
	for i, s := range list {
		if s.ID == pattern || strings.EqualFold(s.Name, pattern) {
			return s.ID, nil
		}
		names[i] = s.Name
	}
	matches := fuzzy.Find(pattern, names)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w %q", ErrNoMatch, pattern)
	}
	return list[matches[0].Index].ID, nil
}

// hideSeries hides every series matched by patterns. Hiding the last visible
// series is refused by the chart and reported as an error.
func hideSeries(c *chart.Chart, patterns []string) error {
	for _, p := range patterns {
		id, err := matchSeries(c.SeriesList(), p)
		if err != nil {
			return err
		}
		ok, err := c.ToggleVisibility(id, false)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cannot hide %s: it is the last visible series", id)
		}
	}
	return nil
}
