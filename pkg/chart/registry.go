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

package chart

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/pkg/series"
)

// Registry hands out chart ids and keeps the charts of one page or session in
// creation order.
type Registry struct {
	logger *zap.Logger
	charts map[string]*Chart
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger: logger,
		charts: make(map[string]*Chart),
	}
}

// Create builds a chart with a fresh id and registers it.
func (r *Registry) Create(ds *series.Dataset, opts Options) (*Chart, error) {
	id := uuid.NewString()
	c, err := New(id, ds, opts, r.logger.With(zap.String("chart", id)))
	if err != nil {
		return nil, err
	}
	r.charts[id] = c
	r.order = append(r.order, id)
	r.logger.Debug("chart created", zap.String("chart", id), zap.Int("columns", ds.Len()))
	return c, nil
}

// Get looks a chart up by id.
func (r *Registry) Get(id string) (*Chart, bool) {
	c, ok := r.charts[id]
	return c, ok
}

// List returns every chart in creation order.
func (r *Registry) List() []*Chart {
	out := make([]*Chart, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.charts[id])
	}
	return out
}

// Remove drops a chart. It reports whether the id was registered.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.charts[id]; !ok {
		return false
	}
	delete(r.charts, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of registered charts.
func (r *Registry) Len() int {
	return len(r.order)
}
