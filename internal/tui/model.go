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

// Package tui hosts a chart in the terminal. The composed chart image is drawn
// with half-block cells, the mouse drives the timeline and the hover balloon,
// and the keyboard toggles series and themes.
package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/internal/frame"
	"github.com/teradata-labs/timechart/internal/pubsub"
	"github.com/teradata-labs/timechart/internal/tui/styles"
	"github.com/teradata-labs/timechart/pkg/balloon"
	"github.com/teradata-labs/timechart/pkg/chart"
	"github.com/teradata-labs/timechart/pkg/render"
	"github.com/teradata-labs/timechart/pkg/scale"
	"github.com/teradata-labs/timechart/pkg/series"
)

// PixelsPerCell is how many chart pixels one terminal column covers. The chart
// is drawn at this resolution and scaled down, which keeps lines smooth.
const PixelsPerCell = 4

// Rows taken by the title, legend and help lines.
const chromeRows = 3

type tickMsg time.Time

// ReloadMsg carries datasets reloaded from disk.
type ReloadMsg struct {
	Sets []*series.Dataset
}

// ReloadErrorMsg reports a failed reload.
type ReloadErrorMsg struct {
	Err error
}

// Model is the bubbletea model for one chart.
type Model struct {
	chart  *chart.Chart
	title  string
	keys   KeyMap
	help   help.Model
	logger *zap.Logger
	now    func() time.Time
	copy   func(string) error

	width, height int
	grid          Grid
	timelineRows  int

	dragging bool
	hovering bool
	dirty    bool
	body     string
	status   string
	unsubs   []func()
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now for pointer timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// New creates a model around c. The chart is resized on the first window size
// message.
func New(c *chart.Chart, title string, opts ...Option) *Model {
	m := &Model{
		chart:  c,
		title:  title,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: zap.NewNop(),
		now:    time.Now,
		copy:   clipboard.WriteAll,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	invalidate := func() { m.dirty = true }
	m.unsubs = []func(){
		c.SubscribeRange(func(pubsub.Event[scale.Range]) { invalidate() }),
		c.SubscribeVisibility(func(pubsub.Event[chart.VisibilityChange]) { invalidate() }),
		c.SubscribeTheme(func(pubsub.Event[render.Style]) { invalidate() }),
		c.SubscribeBalloon(func(pubsub.Event[balloon.Payload]) { invalidate() }),
	}
	return m
}

// Close removes the model's chart subscriptions.
func (m *Model) Close() {
	for _, u := range m.unsubs {
		u()
	}
	m.unsubs = nil
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(frame.Interval60Hz, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.chart.Tick(time.Time(msg))
		return m, m.tick()

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		x, y, ok := m.pointer(mouse)
		if ok && m.inTimeline(y) && m.chart.TimelineDown(x, m.now()) {
			m.dragging = true
			m.dirty = true
		}
		return m, nil

	case tea.MouseMotionMsg:
		m.handleMotion(msg.Mouse())
		return m, nil

	case tea.MouseReleaseMsg:
		if m.dragging {
			m.chart.TimelineUp(m.now())
			m.dragging = false
			m.dirty = true
		}
		return m, nil

	case ReloadMsg:
		if len(msg.Sets) == 0 {
			return m, nil
		}
		if err := m.chart.SetDataset(msg.Sets[0]); err != nil {
			m.status = styles.ErrorIcon + " " + err.Error()
			return m, nil
		}
		m.dirty = true
		m.status = styles.LoadingIcon + " reloaded"
		return m, nil

	case ReloadErrorMsg:
		m.status = styles.ErrorIcon + " reload failed: " + msg.Err.Error()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Theme):
		m.chart.OnColorModeChange()

	case key.Matches(msg, m.keys.Toggle):
		m.toggle(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.Copy):
		p, ok := m.chart.Balloon()
		if !ok {
			m.status = styles.InfoIcon + " hover the chart first"
			break
		}
		if err := m.copy(p.String()); err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(err))
			m.status = styles.ErrorIcon + " " + err.Error()
			break
		}
		m.status = styles.CheckIcon + " copied " + p.Label

	case key.Matches(msg, m.keys.Left):
		m.nudge(-1)

	case key.Matches(msg, m.keys.Right):
		m.nudge(1)
	}
	return m, nil
}

func (m *Model) toggle(i int) {
	list := m.chart.SeriesList()
	if i < 0 || i >= len(list) {
		return
	}
	s := list[i]
	ok, err := m.chart.ToggleVisibility(s.ID, !s.Visible)
	switch {
	case err != nil:
		m.status = styles.ErrorIcon + " " + err.Error()
	case !ok:
		m.status = styles.WarningIcon + " " + s.Name + " is the last visible series"
	default:
		m.status = ""
	}
}

// nudge pans the timeline window by one column with a synthetic drag.
func (m *Model) nudge(dir int) {
	geo, state := m.chart.Selector()
	if state.Dragging || geo.Width <= 0 {
		return
	}
	step := scale.ColumnWidth(geo.CanvasWidth, m.chart.Dataset().Len())
	now := m.now()
	center := geo.Left() + geo.Width/2
	if !m.chart.TimelineDown(center, now) {
		return
	}
	m.chart.TimelineMove(center+float64(dir)*step, now)
	m.chart.TimelineUp(now)
	m.dirty = true
}

func (m *Model) handleMotion(mouse tea.Mouse) {
	x, y, ok := m.pointer(mouse)
	now := m.now()
	if m.dragging {
		m.chart.TimelineMove(x, now)
		if !ok || !m.inTimeline(y) {
			m.chart.TimelineLeave(true, now)
		}
		return
	}
	if ok && m.inMain(y) {
		if !m.hovering {
			m.chart.HoverEnter(now)
			m.hovering = true
		}
		m.chart.HoverMove(x, y, now)
		return
	}
	if m.hovering {
		m.chart.HoverLeave(now)
		m.hovering = false
	}
}

// pointer converts a mouse position to chart pixels. ok is false outside the
// chart area; x and y are still usable for drags that left it.
func (m *Model) pointer(mouse tea.Mouse) (x, y float64, ok bool) {
	col, row := mouse.X, mouse.Y-1
	x, y = m.grid.Pixel(col, row)
	return x, y, m.grid.Contains(col, row)
}

func (m *Model) inMain(y float64) bool {
	return y < float64(m.chart.Options().MainHeight)
}

func (m *Model) inTimeline(y float64) bool {
	return y >= float64(m.chart.TimelineTop())
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.SetWidth(width)

	rows := max(4, height-chromeRows)
	m.timelineRows = max(2, rows/5)
	gapRows := 1
	mainRows := max(1, rows-m.timelineRows-gapRows)

	// Each cell row holds two pixel rows of the downscaled image.
	px := PixelsPerCell
	m.chart.OnViewportResize(width*px, mainRows*2*px, m.timelineRows*2*px)
	m.grid = Grid{
		Cols:   width,
		Rows:   rows,
		Width:  width * px,
		Height: m.chart.Bounds().Dy(),
	}
	m.dirty = true
	m.logger.Debug("terminal resized", zap.Int("cols", width), zap.Int("rows", rows))
}

func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	if m.width <= 0 || m.height <= 0 {
		v.SetContent("")
		return v
	}

	theme := styles.FromStyle(m.chart.Style())
	if m.dirty {
		m.body = HalfBlocks(m.chart.Compose(), m.grid.Cols, m.grid.Rows)
		m.dirty = false
	}

	screen := strings.Join([]string{
		m.titleLine(theme),
		m.body,
		m.legendLine(theme),
		m.help.View(m.keys),
	}, "\n")

	layers := []*lipgloss.Layer{lipgloss.NewLayer(screen)}
	if box, left, top, ok := m.balloonBox(theme); ok {
		layers = append(layers, lipgloss.NewLayer(box).X(left).Y(top).Z(1))
	}
	v.SetContent(lipgloss.NewCanvas(layers...).Render())
	v.BackgroundColor = theme.Background
	v.WindowTitle = m.title
	return v
}

func (m *Model) titleLine(theme styles.Theme) string {
	ds := m.chart.Dataset()
	r := m.chart.Range()
	line := theme.Title.Render(m.title)
	if r.Len() > 0 {
		from := ds.Time(r.Start).Format("Jan 2, 2006")
		to := ds.Time(r.End - 1).Format("Jan 2, 2006")
		line += theme.Muted.Render(fmt.Sprintf("  %s - %s", from, to))
	}
	return ansi.Truncate(line, m.width, "…")
}

// legendLine lists the series with their toggle keys. The last visible series
// is drawn dimmed since it cannot be hidden.
func (m *Model) legendLine(theme styles.Theme) string {
	list := m.chart.SeriesList()
	visible := 0
	for _, s := range list {
		if s.Visible {
			visible++
		}
	}
	bg, _ := colorful.MakeColor(theme.Background)

	parts := make([]string, 0, len(list)+1)
	for i, s := range list {
		c := styles.SeriesColor(s.Color)
		icon := styles.SeriesShown
		label := theme.Text
		switch {
		case !s.Visible:
			icon = styles.SeriesHidden
			label = theme.Muted
		case visible == 1:
			c = styles.Dim(c, bg)
		}
		swatch := lipgloss.NewStyle().Foreground(c).Render(icon)
		parts = append(parts, fmt.Sprintf("%d %s %s", i+1, swatch, label.Render(s.Name)))
	}
	if m.status != "" {
		parts = append(parts, theme.Muted.Render(m.status))
	}
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

// balloonBox renders the balloon and positions it over the main chart in cell
// coordinates.
func (m *Model) balloonBox(theme styles.Theme) (box string, left, top int, ok bool) {
	p, shown := m.chart.Balloon()
	if !shown || p.Empty() {
		return "", 0, 0, false
	}
	lines := []string{theme.Title.Render(p.Label)}
	for _, it := range p.Items {
		c := styles.SeriesColor(it.Color)
		lines = append(lines, lipgloss.NewStyle().Foreground(c).Render(it.Text+" "+it.Name))
	}
	box = theme.Balloon.Render(strings.Join(lines, "\n"))

	anchor, _ := m.grid.Cell(p.X, 0)
	mainRows := m.grid.Rows - m.timelineRows
	pl := balloon.Place(float64(anchor), float64(lipgloss.Width(box)), float64(lipgloss.Height(box)),
		scale.Viewport{Width: float64(m.grid.Cols), Height: float64(mainRows)})
	return box, int(pl.Left), 1 + int(pl.Top), true
}
