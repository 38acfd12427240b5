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

// Package timeline implements the range selector: a draggable, resizable window
// over the whole x-axis that decides which columns the main chart shows.
//
// The window lives in pixel space as an offset from the right edge plus a width.
// Gestures change that geometry; the visible range is always derived from it.
package timeline

import (
	"fmt"

	"github.com/teradata-labs/timechart/pkg/scale"
	"go.uber.org/zap"
)

// Mode is what a drag is doing to the window.
type Mode int

const (
	// Pan moves the whole window.
	Pan Mode = iota
	// ResizeLeft moves the left edge and keeps the right edge fixed.
	ResizeLeft
	// ResizeRight moves the right edge and keeps the left edge fixed.
	ResizeRight
)

func (m Mode) String() string {
	switch m {
	case Pan:
		return "pan"
	case ResizeLeft:
		return "resize-left"
	case ResizeRight:
		return "resize-right"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// State is the selector's drag state.
type State struct {
	Dragging bool
	Mode     Mode // Meaningful only while Dragging
}

func (s State) String() string {
	if !s.Dragging {
		return "idle"
	}
	return "dragging(" + s.Mode.String() + ")"
}

// Geometry is the window in pixels.
type Geometry struct {
	OffsetRight float64 // Distance from the window's right edge to the canvas' right edge
	Width       float64
	CanvasWidth float64
}

// Left returns the x of the window's left edge.
func (g Geometry) Left() float64 {
	return g.CanvasWidth - g.OffsetRight - g.Width
}

// Right returns the x of the window's right edge.
func (g Geometry) Right() float64 {
	return g.CanvasWidth - g.OffsetRight
}

// Options configures a Selector.
type Options struct {
	// MinFraction is the smallest window width as a fraction of the canvas.
	MinFraction float64
	// InitialFraction is the width of the first window, anchored to the right.
	InitialFraction float64
	// HandleWidth is the grab area of each edge in pixels.
	HandleWidth float64
	// OnRangeChange is called synchronously for every accepted gesture step.
	OnRangeChange func(scale.Range)
	Logger        *zap.Logger
}

// Selector is the range selector state machine. It is driven from a single
// goroutine.
type Selector struct {
	opts    Options
	columns int
	geo     Geometry
	last    Geometry // Last geometry on a non-empty canvas
	state   State
	anchorX float64
	logger  *zap.Logger
}

// New creates an idle selector over columns x-axis columns on a canvas of the
// given width.
func New(columns int, canvasWidth float64, opts Options) *Selector {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MinFraction <= 0 || opts.MinFraction > 1 {
		opts.MinFraction = 0.25
	}
	if opts.InitialFraction <= 0 || opts.InitialFraction > 1 {
		opts.InitialFraction = 1
	}
	s := &Selector{
		opts:    opts,
		columns: columns,
		logger:  opts.Logger,
	}
	s.geo = Geometry{
		CanvasWidth: max(0, canvasWidth),
		Width:       max(opts.InitialFraction, opts.MinFraction) * max(0, canvasWidth),
	}
	return s
}

// Geometry returns a copy of the current window geometry.
func (s *Selector) Geometry() Geometry {
	return s.geo
}

// State returns the current drag state.
func (s *Selector) State() State {
	return s.state
}

// Columns returns the number of x-axis columns the selector spans.
func (s *Selector) Columns() int {
	return s.columns
}

// MinWidth returns the smallest allowed window width in pixels.
func (s *Selector) MinWidth() float64 {
	return s.opts.MinFraction * s.geo.CanvasWidth
}

// Range derives the visible range from the window. The window size in columns
// depends only on the window width, so panning never changes it.
func (s *Selector) Range() scale.Range {
	return rangeOf(s.geo, s.columns)
}

func rangeOf(g Geometry, columns int) scale.Range {
	if columns <= 0 {
		return scale.Range{}
	}
	if g.CanvasWidth <= 0 || g.Width <= 0 {
		return scale.Full(columns)
	}
	size := int(scale.Round(scale.Columns(g.Width, g.CanvasWidth, columns))) + 1
	size = max(1, min(size, columns))
	start := int(scale.Round(scale.Columns(g.Left(), g.CanvasWidth, columns)))
	start = max(0, min(start, columns-size))
	return scale.Range{Start: start, End: start + size}
}

// HitTest reports what a press at x would grab.
func (s *Selector) HitTest(x float64) (Mode, bool) {
	left, right := s.geo.Left(), s.geo.Right()
	if x < left || x > right {
		return 0, false
	}
	hw := min(s.opts.HandleWidth, s.geo.Width/2)
	switch {
	case x < left+hw:
		return ResizeLeft, true
	case x > right-hw:
		return ResizeRight, true
	default:
		return Pan, true
	}
}

// PointerDown starts a drag when x is on the window. It reports whether a drag
// started.
func (s *Selector) PointerDown(x float64) bool {
	mode, ok := s.HitTest(x)
	if !ok {
		return false
	}
	s.state = State{Dragging: true, Mode: mode}
	s.anchorX = x
	s.logger.Debug("timeline drag started", zap.Stringer("mode", mode), zap.Float64("x", x))
	return true
}

// PointerMove applies one drag step. The step is measured from the last accepted
// pointer position; a rejected resize leaves geometry and anchor untouched so the
// drag can continue from where it last succeeded. It reports whether the step was
// accepted (and the range emitted).
func (s *Selector) PointerMove(x float64) bool {
	if !s.state.Dragging {
		return false
	}
	dx := s.anchorX - x
	next, ok := s.step(s.state.Mode, dx)
	if !ok {
		s.logger.Debug("timeline step rejected",
			zap.Stringer("mode", s.state.Mode),
			zap.Float64("dx", dx),
			zap.Float64("width", s.geo.Width))
		return false
	}
	s.geo = next
	s.anchorX = x
	s.emit()
	return true
}

// PointerUp ends the drag.
func (s *Selector) PointerUp() {
	s.state = State{}
}

// PointerLeave ends the drag when the pointer leaves with no button pressed. A
// drag that leaves with the button held keeps going.
func (s *Selector) PointerLeave(buttonHeld bool) {
	if !buttonHeld {
		s.state = State{}
	}
}

// step computes the geometry after moving by dx, where positive dx means the
// pointer moved left.
func (s *Selector) step(mode Mode, dx float64) (Geometry, bool) {
	g := s.geo
	w := g.CanvasWidth
	switch mode {
	case Pan:
		g.OffsetRight = clamp(g.OffsetRight+dx, 0, w-g.Width)
		return g, true
	case ResizeLeft:
		g.Width += dx
		if g.Width < s.MinWidth() || g.Left() < 0 {
			return s.geo, false
		}
		return g, true
	case ResizeRight:
		g.OffsetRight += dx
		g.Width -= dx
		if g.OffsetRight < 0 || g.Width < s.MinWidth() {
			return s.geo, false
		}
		return g, true
	default:
		return s.geo, false
	}
}

// Resize adapts the window to a new canvas width, keeping the fraction of the
// canvas the window covers and its relative position.
func (s *Selector) Resize(canvasWidth float64) {
	canvasWidth = max(0, canvasWidth)
	if s.geo.CanvasWidth > 0 {
		s.last = s.geo
	}
	// A collapsed canvas keeps no fractions, so scale from the last real one.
	old := s.last
	g := Geometry{CanvasWidth: canvasWidth}
	if old.CanvasWidth > 0 {
		g.OffsetRight = old.OffsetRight / old.CanvasWidth * canvasWidth
		g.Width = old.Width / old.CanvasWidth * canvasWidth
	} else {
		g.Width = max(s.opts.InitialFraction, s.opts.MinFraction) * canvasWidth
	}
	g.Width = clamp(g.Width, s.opts.MinFraction*canvasWidth, canvasWidth)
	g.OffsetRight = clamp(g.OffsetRight, 0, canvasWidth-g.Width)
	s.geo = g
}

// SetColumns changes the size of the x-axis, e.g. after a reload. The geometry
// is kept, so the selected fraction of the axis stays the same.
func (s *Selector) SetColumns(columns int) {
	s.columns = max(0, columns)
}

func (s *Selector) emit() {
	if s.opts.OnRangeChange != nil {
		s.opts.OnRangeChange(s.Range())
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
