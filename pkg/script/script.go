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

// Package script replays timestamped pointer gestures against a chart and
// records what the chart published in response. Scripts are YAML:
//
//	name: pan-right
//	chart:
//	  initial_fraction: 0.5
//	steps:
//	  - {at: 0, do: down, x: 75}
//	  - {at: 0, do: move, x: 25}
//	  - {at: 16, do: tick}
//	  - {at: 20, do: up}
//
// Times are milliseconds from the start of the script.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/timechart/pkg/chart"
)

// Step kinds.
const (
	StepDown       = "down"
	StepMove       = "move"
	StepUp         = "up"
	StepLeave      = "leave"
	StepHover      = "hover"
	StepHoverLeave = "hover_leave"
	StepTick       = "tick"
	StepToggle     = "toggle"
	StepResize     = "resize"
	StepTheme      = "theme"
)

var (
	// ErrInvalidScript is returned for scripts that cannot be replayed.
	ErrInvalidScript = errors.New("invalid script")
	// ErrUnknownStep is returned for a step kind the runner does not know.
	ErrUnknownStep = errors.New("unknown step")
)

// Script is a named sequence of steps plus chart option overrides.
type Script struct {
	Name  string    `yaml:"name"`
	Chart Overrides `yaml:"chart"`
	Steps []Step    `yaml:"steps"`
}

// Overrides replaces chart options for one script. Unset fields keep the
// configured value.
type Overrides struct {
	Width           *int     `yaml:"width"`
	MainHeight      *int     `yaml:"main_height"`
	TimelineHeight  *int     `yaml:"timeline_height"`
	TimelineGap     *int     `yaml:"timeline_gap"`
	MarginTop       *float64 `yaml:"margin_top"`
	MarginBottom    *float64 `yaml:"margin_bottom"`
	MinFraction     *float64 `yaml:"min_fraction"`
	InitialFraction *float64 `yaml:"initial_fraction"`
	HandleWidth     *float64 `yaml:"handle_width"`
	ZeroBaseline    *bool    `yaml:"zero_baseline"`
	Night           *bool    `yaml:"night"`
	Locale          *string  `yaml:"locale"`
}

// Apply returns opts with the overrides set.
func (o Overrides) Apply(opts chart.Options) chart.Options {
	set(&opts.Width, o.Width)
	set(&opts.MainHeight, o.MainHeight)
	set(&opts.TimelineHeight, o.TimelineHeight)
	set(&opts.TimelineGap, o.TimelineGap)
	set(&opts.MarginTop, o.MarginTop)
	set(&opts.MarginBottom, o.MarginBottom)
	set(&opts.MinFraction, o.MinFraction)
	set(&opts.InitialFraction, o.InitialFraction)
	set(&opts.HandleWidth, o.HandleWidth)
	set(&opts.ZeroBaseline, o.ZeroBaseline)
	set(&opts.Night, o.Night)
	set(&opts.Locale, o.Locale)
	return opts
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Step is one input event.
type Step struct {
	At   int64   `yaml:"at"` // Milliseconds from the start
	Do   string  `yaml:"do"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Held bool    `yaml:"held"` // leave: button still pressed

	Series  string `yaml:"series"`  // toggle
	Visible bool   `yaml:"visible"` // toggle

	Width          int `yaml:"width"`           // resize
	Height         int `yaml:"height"`          // resize
	TimelineHeight int `yaml:"timeline_height"` // resize

	// Frame captures the composed image after the step.
	Frame bool `yaml:"frame"`
}

// Parse decodes and checks a script. Unknown keys are rejected so a typo does
// not silently turn into a zero value.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads and parses a script file.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks step kinds, their arguments and that time never goes back.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	var last int64
	for i, st := range s.Steps {
		if st.At < last {
			return fmt.Errorf("%w: step %d at %dms is before the previous step at %dms", ErrInvalidScript, i, st.At, last)
		}
		last = st.At
		switch st.Do {
		case StepDown, StepMove, StepUp, StepLeave, StepHover, StepHoverLeave, StepTick, StepTheme:
		case StepToggle:
			if st.Series == "" {
				return fmt.Errorf("%w: step %d: toggle needs a series", ErrInvalidScript, i)
			}
		case StepResize:
			if st.Width <= 0 || st.Height <= 0 || st.TimelineHeight <= 0 {
				return fmt.Errorf("%w: step %d: resize needs width, height and timeline_height", ErrInvalidScript, i)
			}
		default:
			return fmt.Errorf("%w: step %d: %w %q", ErrInvalidScript, i, ErrUnknownStep, st.Do)
		}
	}
	return nil
}
