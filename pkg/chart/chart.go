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

// Package chart is the controller tying a dataset to its layers: the main chart,
// the hover overlay and the timeline with its range selector.
//
// A Chart is driven from one goroutine. Pointer handlers take the event time so
// throttling and debouncing are deterministic, and the host calls Tick from its
// frame loop to run trailing work. Notifications are published synchronously,
// after the redraw they describe, in subscription order.
package chart

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/internal/frame"
	"github.com/teradata-labs/timechart/internal/pubsub"
	"github.com/teradata-labs/timechart/pkg/balloon"
	"github.com/teradata-labs/timechart/pkg/render"
	"github.com/teradata-labs/timechart/pkg/scale"
	"github.com/teradata-labs/timechart/pkg/series"
	"github.com/teradata-labs/timechart/pkg/timeline"
)

var (
	// ErrInvalidOptions is returned for options a chart cannot be built with.
	ErrInvalidOptions = errors.New("invalid chart options")
	// ErrNoDataset is returned when a chart is created without data.
	ErrNoDataset = errors.New("no dataset")
)

// SeriesInfo describes one series for legends and switches.
type SeriesInfo struct {
	ID      string
	Name    string
	Color   string
	Visible bool
}

// VisibilityChange is published when a series is shown or hidden.
type VisibilityChange struct {
	ID      string
	Visible bool
}

// Chart is one interactive chart.
type Chart struct {
	id     string
	opts   Options
	ds     *series.Dataset
	night  bool
	logger *zap.Logger

	main     *render.Layer
	overlay  *render.Layer
	mini     *render.Layer
	selector *timeline.Selector
	hover    *balloon.Inspector

	rng      scale.Range
	payload  balloon.Payload
	shown    bool
	hovering bool
	hoverX   float64

	dragMoves  *frame.Throttle
	hoverMoves *frame.Throttle
	leave      *frame.Debounce

	ranges     *pubsub.Broker[scale.Range]
	visibility *pubsub.Broker[VisibilityChange]
	themes     *pubsub.Broker[render.Style]
	balloons   *pubsub.Broker[balloon.Payload]
}

// New creates a chart and draws its first frame.
func New(id string, ds *series.Dataset, opts Options, logger *zap.Logger) (*Chart, error) {
	if err := checkDataset(ds); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hover, err := balloon.NewInspector(opts.Locale, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if !ds.Monotonic() {
		logger.Warn("x-axis is not strictly increasing; hover lookups may be off",
			zap.String("chart", id))
	}

	c := &Chart{
		id:         id,
		opts:       opts,
		ds:         ds,
		night:      opts.Night,
		logger:     logger,
		main:       render.NewLayer(opts.Width, opts.MainHeight),
		overlay:    render.NewLayer(opts.Width, opts.MainHeight),
		mini:       render.NewLayer(opts.Width, opts.TimelineHeight),
		hover:      hover,
		dragMoves:  frame.NewThrottle(opts.FrameInterval),
		hoverMoves: frame.NewThrottle(opts.FrameInterval),
		leave:      frame.NewDebounce(opts.LeaveDelay),
		ranges:     pubsub.NewBroker[scale.Range](),
		visibility: pubsub.NewBroker[VisibilityChange](),
		themes:     pubsub.NewBroker[render.Style](),
		balloons:   pubsub.NewBroker[balloon.Payload](),
	}
	c.selector = timeline.New(ds.Len(), float64(opts.Width), timeline.Options{
		MinFraction:     opts.MinFraction,
		InitialFraction: opts.InitialFraction,
		HandleWidth:     opts.HandleWidth,
		OnRangeChange:   c.onRangeChange,
		Logger:          logger,
	})
	c.rng = c.selector.Range()
	c.redraw()
	return c, nil
}

// ID returns the chart's identifier.
func (c *Chart) ID() string {
	return c.id
}

// Dataset returns the chart's data.
func (c *Chart) Dataset() *series.Dataset {
	return c.ds
}

// Options returns the options the chart was built with, with the current size.
func (c *Chart) Options() Options {
	return c.opts
}

// Night reports whether the night theme is active.
func (c *Chart) Night() bool {
	return c.night
}

// Style returns the active theme.
func (c *Chart) Style() render.Style {
	return c.opts.style(c.night)
}

// Range returns the visible range.
func (c *Chart) Range() scale.Range {
	return c.rng
}

// Extent returns the value extent of the visible series over the visible range.
// It is computed on every call.
func (c *Chart) Extent() scale.Extent {
	return scale.ComputeExtent(c.ds.Visible(), c.rng, c.opts.ZeroBaseline)
}

// Selector returns the timeline window geometry and drag state.
func (c *Chart) Selector() (timeline.Geometry, timeline.State) {
	return c.selector.Geometry(), c.selector.State()
}

// Hovering reports whether the pointer is over the main chart.
func (c *Chart) Hovering() bool {
	return c.hovering
}

// Balloon returns the payload on display, if any.
func (c *Chart) Balloon() (balloon.Payload, bool) {
	return c.payload, c.shown
}

// SeriesList returns every series in dataset order.
func (c *Chart) SeriesList() []SeriesInfo {
	all := c.ds.Series()
	out := make([]SeriesInfo, 0, len(all))
	for _, s := range all {
		out = append(out, SeriesInfo{ID: s.ID, Name: s.Name, Color: s.Color, Visible: s.Visible})
	}
	return out
}

// ToggleVisibility shows or hides a series. Hiding the last visible series is
// refused: it reports false and nothing changes.
func (c *Chart) ToggleVisibility(id string, visible bool) (bool, error) {
	s, ok := c.ds.Lookup(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", series.ErrUnknownSeries, id)
	}
	if s.Visible == visible {
		return true, nil
	}
	if !visible && c.ds.VisibleCount() <= 1 {
		c.logger.Debug("refusing to hide the last visible series", zap.String("series", id))
		return false, nil
	}
	if err := c.ds.SetVisible(id, visible); err != nil {
		return false, err
	}
	c.redraw()
	c.refreshBalloon()
	c.visibility.Publish(pubsub.NewUpdatedEvent(VisibilityChange{ID: id, Visible: visible}))
	return true, nil
}

// OnColorModeChange switches between the day and night themes.
func (c *Chart) OnColorModeChange() {
	c.night = !c.night
	c.redraw()
	c.refreshBalloon()
	c.themes.Publish(pubsub.NewUpdatedEvent(c.Style()))
}

// OnViewportResize resizes every layer. The timeline window keeps the fraction of
// the axis it covered.
func (c *Chart) OnViewportResize(width, mainHeight, timelineHeight int) {
	c.opts.Width = max(0, width)
	c.opts.MainHeight = max(0, mainHeight)
	c.opts.TimelineHeight = max(0, timelineHeight)
	c.main.Resize(c.opts.Width, c.opts.MainHeight)
	c.overlay.Resize(c.opts.Width, c.opts.MainHeight)
	c.mini.Resize(c.opts.Width, c.opts.TimelineHeight)
	c.selector.Resize(float64(c.opts.Width))
	c.hideBalloon()
	c.updateRange(c.selector.Range())
}

// SetDataset replaces the data, e.g. after the file was reloaded. Series that
// keep their id keep their visibility, and the timeline window keeps its
// fraction of the axis.
func (c *Chart) SetDataset(ds *series.Dataset) error {
	if err := checkDataset(ds); err != nil {
		return err
	}
	for _, s := range ds.Series() {
		if old, ok := c.ds.Lookup(s.ID); ok {
			s.Visible = old.Visible
		}
	}
	if ds.VisibleCount() == 0 {
		// Every previously visible series is gone.
		first := ds.Series()[0]
		first.Visible = true
	}
	if !ds.Monotonic() {
		c.logger.Warn("reloaded x-axis is not strictly increasing", zap.String("chart", c.id))
	}
	c.ds = ds
	c.selector.SetColumns(ds.Len())
	c.hideBalloon()
	c.updateRange(c.selector.Range())
	return nil
}

// checkDataset rejects datasets not built by series.NewDataset, such as a zero
// value, which have nothing to plot.
func checkDataset(ds *series.Dataset) error {
	switch {
	case ds == nil:
		return ErrNoDataset
	case len(ds.Series()) == 0:
		return series.ErrNoSeries
	case ds.Len() == 0:
		return series.ErrEmptyAxis
	}
	return nil
}

// TimelineDown starts a drag on the timeline. It reports whether the press hit
// the window.
func (c *Chart) TimelineDown(x float64, now time.Time) bool {
	c.dragMoves.Cancel()
	if !c.selector.PointerDown(x) {
		return false
	}
	c.drawTimeline()
	return true
}

// TimelineMove moves an active drag, at most once per frame.
func (c *Chart) TimelineMove(x float64, now time.Time) {
	if !c.selector.State().Dragging {
		return
	}
	c.dragMoves.Call(now, func() {
		c.selector.PointerMove(x)
	})
}

// TimelineUp ends the drag. A move still waiting for its frame is applied first.
func (c *Chart) TimelineUp(now time.Time) {
	c.dragMoves.Drain(now)
	c.selector.PointerUp()
	c.drawTimeline()
}

// TimelineLeave handles the pointer leaving the timeline. With the button still
// held the drag continues.
func (c *Chart) TimelineLeave(buttonHeld bool, now time.Time) {
	if buttonHeld {
		c.selector.PointerLeave(true)
		return
	}
	c.dragMoves.Drain(now)
	c.selector.PointerLeave(false)
	c.drawTimeline()
}

// HoverEnter handles the pointer entering the main chart. A pending hide from a
// recent leave is cancelled.
func (c *Chart) HoverEnter(now time.Time) {
	c.leave.Cancel()
	c.hovering = true
}

// HoverMove updates the balloon for a pointer at (x, y), at most once per frame.
func (c *Chart) HoverMove(x, y float64, now time.Time) {
	c.leave.Cancel()
	c.hovering = true
	c.hoverMoves.Call(now, func() {
		c.showBalloon(x)
	})
}

// HoverLeave hides the balloon after the leave delay unless the pointer comes
// back first.
func (c *Chart) HoverLeave(now time.Time) {
	c.hovering = false
	c.hoverMoves.Cancel()
	c.leave.Call(now, c.hideBalloon)
}

// Tick runs trailing pointer work that is due at now. Hosts call it once per
// frame.
func (c *Chart) Tick(now time.Time) {
	c.dragMoves.Flush(now)
	c.hoverMoves.Flush(now)
	c.leave.Flush(now)
}

// SubscribeRange registers fn for visible range changes.
func (c *Chart) SubscribeRange(fn func(pubsub.Event[scale.Range])) (unsubscribe func()) {
	return c.ranges.Subscribe(fn)
}

// SubscribeVisibility registers fn for series visibility changes.
func (c *Chart) SubscribeVisibility(fn func(pubsub.Event[VisibilityChange])) (unsubscribe func()) {
	return c.visibility.Subscribe(fn)
}

// SubscribeTheme registers fn for theme changes.
func (c *Chart) SubscribeTheme(fn func(pubsub.Event[render.Style])) (unsubscribe func()) {
	return c.themes.Subscribe(fn)
}

// SubscribeBalloon registers fn for the balloon being shown, moved or hidden.
func (c *Chart) SubscribeBalloon(fn func(pubsub.Event[balloon.Payload])) (unsubscribe func()) {
	return c.balloons.Subscribe(fn)
}

// MainImage returns the main chart layer.
func (c *Chart) MainImage() *image.RGBA {
	return c.main.Image()
}

// OverlayImage returns the hover overlay layer.
func (c *Chart) OverlayImage() *image.RGBA {
	return c.overlay.Image()
}

// TimelineImage returns the timeline layer.
func (c *Chart) TimelineImage() *image.RGBA {
	return c.mini.Image()
}

// TimelineTop returns the y of the timeline in the composed image.
func (c *Chart) TimelineTop() int {
	return c.opts.MainHeight + c.opts.TimelineGap
}

// Bounds returns the size of the composed image.
func (c *Chart) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.opts.Width, c.TimelineTop()+c.opts.TimelineHeight)
}

// Compose flattens the main chart, the overlay and the timeline onto the theme
// background.
func (c *Chart) Compose() *image.RGBA {
	b := c.Bounds()
	return render.Compose(b.Dx(), b.Dy(), c.Style().Background,
		render.Placement{Layer: c.main},
		render.Placement{Layer: c.overlay},
		render.Placement{Layer: c.mini, Y: c.TimelineTop()},
	)
}

// MainViewport returns the main chart's viewport.
func (c *Chart) MainViewport() scale.Viewport {
	return scale.Viewport{
		Width:        float64(c.opts.Width),
		Height:       float64(c.opts.MainHeight),
		MarginTop:    c.opts.MarginTop,
		MarginBottom: c.opts.MarginBottom,
	}
}

func (c *Chart) timelineViewport() scale.Viewport {
	h := float64(c.opts.TimelineHeight)
	m := min(4, h/4)
	return scale.Viewport{Width: float64(c.opts.Width), Height: h, MarginTop: m, MarginBottom: m}
}

func (c *Chart) view() balloon.View {
	return balloon.View{
		Dataset:  c.ds,
		Range:    c.rng,
		Viewport: c.MainViewport(),
		Extent:   c.Extent(),
	}
}

func (c *Chart) onRangeChange(r scale.Range) {
	c.updateRange(r)
}

// updateRange redraws for r and publishes it when it differs from the current
// range. The timeline is redrawn either way since the window moved.
func (c *Chart) updateRange(r scale.Range) {
	changed := r != c.rng
	c.rng = r
	c.redraw()
	c.refreshBalloon()
	if changed {
		c.logger.Debug("visible range changed", zap.String("chart", c.id), zap.Stringer("range", r))
		c.ranges.Publish(pubsub.NewUpdatedEvent(r))
	}
}

func (c *Chart) redraw() {
	style := c.Style()
	render.DrawChart(c.main, render.Plot{
		Series:   c.ds.Series(),
		Range:    c.rng,
		Viewport: c.MainViewport(),
		Extent:   c.Extent(),
	}, c.ds.X, style)
	c.drawTimeline()
}

func (c *Chart) drawTimeline() {
	style := c.Style()
	style.LineWidth = max(1, style.LineWidth/2)
	full := scale.Full(c.ds.Len())
	render.DrawGraphs(c.mini, render.Plot{
		Series:   c.ds.Series(),
		Range:    full,
		Viewport: c.timelineViewport(),
		Extent:   scale.ComputeExtent(c.ds.Visible(), full, c.opts.ZeroBaseline),
	}, style)
	g := c.selector.Geometry()
	render.DrawSelector(c.mini, g.Left(), g.Right(), c.opts.HandleWidth, style)
}

func (c *Chart) showBalloon(x float64) {
	p := c.hover.Inspect(x, c.view())
	if p.Empty() {
		c.hideBalloon()
		return
	}
	ev := pubsub.NewUpdatedEvent(p)
	if !c.shown {
		ev = pubsub.NewCreatedEvent(p)
	}
	c.hoverX = x
	c.payload = p
	c.shown = true
	c.hover.Draw(c.overlay, p, c.view(), c.Style())
	c.balloons.Publish(ev)
}

// refreshBalloon redraws a visible balloon against the current state. It does
// nothing when the balloon is hidden.
func (c *Chart) refreshBalloon() {
	if c.shown {
		c.showBalloon(c.hoverX)
	}
}

func (c *Chart) hideBalloon() {
	c.overlay.Clear()
	if !c.shown {
		return
	}
	p := c.payload
	c.payload = balloon.Payload{}
	c.shown = false
	c.balloons.Publish(pubsub.NewDeletedEvent(p))
}
