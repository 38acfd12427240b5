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
	"fmt"
	"time"

	"github.com/teradata-labs/timechart/internal/frame"
	"github.com/teradata-labs/timechart/pkg/render"
)

// Options sizes and tunes one chart.
type Options struct {
	Width          int
	MainHeight     int
	TimelineHeight int
	// TimelineGap is the space between the main chart and the timeline in the
	// composed image.
	TimelineGap int

	MarginTop    float64
	MarginBottom float64
	LineWidth    float64
	SectionsX    int
	SectionsY    int
	ZeroBaseline bool

	MinFraction     float64
	InitialFraction float64
	HandleWidth     float64

	FrameInterval time.Duration
	LeaveDelay    time.Duration
	Locale        string
	Night         bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:           640,
		MainHeight:      320,
		TimelineHeight:  64,
		TimelineGap:     12,
		MarginTop:       10,
		MarginBottom:    30,
		LineWidth:       3,
		SectionsX:       6,
		SectionsY:       6,
		ZeroBaseline:    true,
		MinFraction:     0.25,
		InitialFraction: 0.25,
		HandleWidth:     8,
		FrameInterval:   frame.Interval60Hz,
		LeaveDelay:      frame.Interval60Hz,
		Locale:          "en",
	}
}

// Validate rejects options no chart can be built with.
func (o Options) Validate() error {
	switch {
	case o.Width < 0 || o.MainHeight < 0 || o.TimelineHeight < 0 || o.TimelineGap < 0:
		return fmt.Errorf("%w: negative size %dx%d/%d", ErrInvalidOptions, o.Width, o.MainHeight, o.TimelineHeight)
	case o.MarginTop < 0 || o.MarginBottom < 0:
		return fmt.Errorf("%w: negative margin", ErrInvalidOptions)
	case o.LineWidth <= 0:
		return fmt.Errorf("%w: line width must be positive, got %v", ErrInvalidOptions, o.LineWidth)
	case o.MinFraction <= 0 || o.MinFraction > 0.5:
		return fmt.Errorf("%w: min fraction must be in (0, 0.5], got %v", ErrInvalidOptions, o.MinFraction)
	case o.InitialFraction < o.MinFraction || o.InitialFraction > 1:
		return fmt.Errorf("%w: initial fraction must be in [%v, 1], got %v", ErrInvalidOptions, o.MinFraction, o.InitialFraction)
	case o.HandleWidth < 0:
		return fmt.Errorf("%w: negative handle width", ErrInvalidOptions)
	case o.FrameInterval < 0 || o.LeaveDelay < 0:
		return fmt.Errorf("%w: negative frame interval or leave delay", ErrInvalidOptions)
	}
	return nil
}

func (o Options) style(night bool) render.Style {
	s := render.DayStyle()
	if night {
		s = render.NightStyle()
	}
	s.LineWidth = o.LineWidth
	if o.SectionsX > 0 {
		s.Sections.X = o.SectionsX
	}
	if o.SectionsY > 0 {
		s.Sections.Y = o.SectionsY
	}
	return s
}
