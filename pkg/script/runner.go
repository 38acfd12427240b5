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

package script

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/internal/pubsub"
	"github.com/teradata-labs/timechart/pkg/balloon"
	"github.com/teradata-labs/timechart/pkg/chart"
	"github.com/teradata-labs/timechart/pkg/render"
	"github.com/teradata-labs/timechart/pkg/scale"
)

// FrameFunc receives the composed image after a step marked with frame: true.
// n counts captured frames from zero.
type FrameFunc func(n int, step Step, img *image.RGBA) error

// Runner replays scripts.
type Runner struct {
	// Start is the time of the first step. The zero value is fine since only
	// differences matter.
	Start  time.Time
	Frame  FrameFunc
	Logger *zap.Logger
}

// Transcript is the line-by-line record of a replay.
type Transcript struct {
	Lines  []string
	Frames int
}

// String joins the lines, each terminated by a newline.
func (t *Transcript) String() string {
	var sb strings.Builder
	for _, l := range t.Lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (t *Transcript) add(format string, args ...any) {
	t.Lines = append(t.Lines, fmt.Sprintf(format, args...))
}

// Run replays s against c. Every event the chart publishes while a step runs is
// recorded under that step, and the transcript ends with the final state.
func (r *Runner) Run(c *chart.Chart, s *Script) (*Transcript, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tr := &Transcript{}
	if s.Name != "" {
		tr.add("# %s", s.Name)
	}
	tr.add("start range %s extent %s", c.Range(), formatExtent(c.Extent()))

	unsubs := []func(){
		c.SubscribeRange(func(ev pubsub.Event[scale.Range]) {
			tr.add("  range %s", ev.Payload)
		}),
		c.SubscribeVisibility(func(ev pubsub.Event[chart.VisibilityChange]) {
			state := "hidden"
			if ev.Payload.Visible {
				state = "shown"
			}
			tr.add("  visibility %s %s", ev.Payload.ID, state)
		}),
		c.SubscribeTheme(func(ev pubsub.Event[render.Style]) {
			tr.add("  theme %s", ev.Payload.Name)
		}),
		c.SubscribeBalloon(func(ev pubsub.Event[balloon.Payload]) {
			tr.add("  balloon %s%s", ev.Type, formatPayload(ev))
		}),
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	for i, st := range s.Steps {
		now := r.Start.Add(time.Duration(st.At) * time.Millisecond)
		tr.add("%dms %s", st.At, describe(st))
		if err := r.apply(c, st, now, tr); err != nil {
			return tr, fmt.Errorf("step %d (%s): %w", i, st.Do, err)
		}
		if st.Frame && r.Frame != nil {
			if err := r.Frame(tr.Frames, st, c.Compose()); err != nil {
				return tr, fmt.Errorf("step %d frame: %w", i, err)
			}
			tr.Frames++
		}
		logger.Debug("script step", zap.Int("step", i), zap.String("do", st.Do), zap.Int64("at_ms", st.At))
	}

	visible := make([]string, 0)
	for _, info := range c.SeriesList() {
		if info.Visible {
			visible = append(visible, info.ID)
		}
	}
	tr.add("end range %s extent %s visible %s", c.Range(), formatExtent(c.Extent()), strings.Join(visible, ","))
	return tr, nil
}

func (r *Runner) apply(c *chart.Chart, st Step, now time.Time, tr *Transcript) error {
	switch st.Do {
	case StepDown:
		if !c.TimelineDown(st.X, now) {
			tr.add("  miss")
			return nil
		}
		_, state := c.Selector()
		tr.add("  grab %s", state.Mode)
	case StepMove:
		c.TimelineMove(st.X, now)
	case StepUp:
		c.TimelineUp(now)
	case StepLeave:
		c.TimelineLeave(st.Held, now)
	case StepHover:
		if !c.Hovering() {
			c.HoverEnter(now)
		}
		c.HoverMove(st.X, st.Y, now)
	case StepHoverLeave:
		c.HoverLeave(now)
	case StepTick:
		c.Tick(now)
	case StepToggle:
		ok, err := c.ToggleVisibility(st.Series, st.Visible)
		if err != nil {
			return err
		}
		if !ok {
			tr.add("  refused")
		}
	case StepResize:
		c.OnViewportResize(st.Width, st.Height, st.TimelineHeight)
	case StepTheme:
		c.OnColorModeChange()
	default:
		return fmt.Errorf("%w %q", ErrUnknownStep, st.Do)
	}
	return nil
}

func describe(st Step) string {
	switch st.Do {
	case StepDown, StepMove:
		return st.Do + " x=" + num(st.X)
	case StepHover:
		return st.Do + " x=" + num(st.X) + " y=" + num(st.Y)
	case StepLeave:
		return st.Do + " held=" + strconv.FormatBool(st.Held)
	case StepToggle:
		return fmt.Sprintf("%s %s visible=%t", st.Do, st.Series, st.Visible)
	case StepResize:
		return fmt.Sprintf("%s %dx%d+%d", st.Do, st.Width, st.Height, st.TimelineHeight)
	default:
		return st.Do
	}
}

func formatPayload(ev pubsub.Event[balloon.Payload]) string {
	if ev.Type == pubsub.DeletedEvent {
		return ""
	}
	p := ev.Payload
	var sb strings.Builder
	fmt.Fprintf(&sb, " #%d %s", p.Index.Global, p.Label)
	for _, it := range p.Items {
		fmt.Fprintf(&sb, " | %s %s", it.Name, it.Text)
	}
	return sb.String()
}

func formatExtent(e scale.Extent) string {
	return num(e.Min) + ".." + num(e.Max)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
