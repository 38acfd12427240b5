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

// Package config loads timechart settings from defaults, timechart.yaml,
// TIMECHART_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/teradata-labs/timechart/internal/frame"
	"github.com/teradata-labs/timechart/pkg/chart"
	"github.com/teradata-labs/timechart/pkg/render"
)

// DefaultConfigFileName is searched for (without extension) in the config paths.
const DefaultConfigFileName = "timechart"

// EnvPrefix prefixes every environment variable, e.g. TIMECHART_CHART_WIDTH.
const EnvPrefix = "TIMECHART"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full set of settings.
type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Timeline TimelineConfig `mapstructure:"timeline"`
	Balloon  BalloonConfig  `mapstructure:"balloon"`
	Theme    string         `mapstructure:"theme"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ChartConfig sizes the main chart.
type ChartConfig struct {
	Width        int     `mapstructure:"width"`
	Height       int     `mapstructure:"height"`
	MarginTop    float64 `mapstructure:"margin_top"`
	MarginBottom float64 `mapstructure:"margin_bottom"`
	LineWidth    float64 `mapstructure:"line_width"`
	SectionsX    int     `mapstructure:"sections_x"`
	SectionsY    int     `mapstructure:"sections_y"`
	ZeroBaseline bool    `mapstructure:"zero_baseline"`
}

// TimelineConfig sizes the timeline and its selection window.
type TimelineConfig struct {
	Height          int     `mapstructure:"height"`
	Gap             int     `mapstructure:"gap"`
	MinFraction     float64 `mapstructure:"min_fraction"`
	InitialFraction float64 `mapstructure:"initial_fraction"`
	HandleWidth     float64 `mapstructure:"handle_width"`
}

// BalloonConfig tunes hover handling.
type BalloonConfig struct {
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	LeaveDelay    time.Duration `mapstructure:"leave_delay"`
	Locale        string        `mapstructure:"locale"`
}

// LoggingConfig selects the log level and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	d := chart.DefaultOptions()

	v.SetDefault("chart.width", d.Width)
	v.SetDefault("chart.height", d.MainHeight)
	v.SetDefault("chart.margin_top", d.MarginTop)
	v.SetDefault("chart.margin_bottom", d.MarginBottom)
	v.SetDefault("chart.line_width", d.LineWidth)
	v.SetDefault("chart.sections_x", d.SectionsX)
	v.SetDefault("chart.sections_y", d.SectionsY)
	v.SetDefault("chart.zero_baseline", d.ZeroBaseline)

	v.SetDefault("timeline.height", d.TimelineHeight)
	v.SetDefault("timeline.gap", d.TimelineGap)
	v.SetDefault("timeline.min_fraction", d.MinFraction)
	v.SetDefault("timeline.initial_fraction", d.InitialFraction)
	v.SetDefault("timeline.handle_width", d.HandleWidth)

	v.SetDefault("balloon.frame_interval", frame.Interval60Hz)
	v.SetDefault("balloon.leave_delay", frame.Interval60Hz)
	v.SetDefault("balloon.locale", d.Locale)

	v.SetDefault("theme", "day")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the configuration into v and decodes it. Precedence, highest first:
// flags bound to v, environment, config file, defaults. A missing config file is
// not an error unless cfgFile names it explicitly.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "timechart"))
		}
		v.SetConfigName(DefaultConfigFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no chart can be drawn with.
func (c *Config) Validate() error {
	switch c.Theme {
	case "day", "night":
	default:
		return fmt.Errorf("%w: theme %q, want day or night", ErrInvalid, c.Theme)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q, want console or json", ErrInvalid, c.Logging.Format)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 || c.Timeline.Height <= 0 {
		return fmt.Errorf("%w: chart and timeline sizes must be positive", ErrInvalid)
	}
	if c.Chart.MarginTop+c.Chart.MarginBottom >= float64(c.Chart.Height) {
		return fmt.Errorf("%w: margins leave no room in a %dpx chart", ErrInvalid, c.Chart.Height)
	}
	if err := c.ChartOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ChartOptions converts the configuration into chart options.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{
		Width:           c.Chart.Width,
		MainHeight:      c.Chart.Height,
		TimelineHeight:  c.Timeline.Height,
		TimelineGap:     c.Timeline.Gap,
		MarginTop:       c.Chart.MarginTop,
		MarginBottom:    c.Chart.MarginBottom,
		LineWidth:       c.Chart.LineWidth,
		SectionsX:       c.Chart.SectionsX,
		SectionsY:       c.Chart.SectionsY,
		ZeroBaseline:    c.Chart.ZeroBaseline,
		MinFraction:     c.Timeline.MinFraction,
		InitialFraction: c.Timeline.InitialFraction,
		HandleWidth:     c.Timeline.HandleWidth,
		FrameInterval:   c.Balloon.FrameInterval,
		LeaveDelay:      c.Balloon.LeaveDelay,
		Locale:          c.Balloon.Locale,
		Night:           c.Theme == "night",
	}
}

// Style returns the configured theme.
func (c *Config) Style() render.Style {
	return render.StyleByName(c.Theme)
}

var (
	mu     sync.RWMutex
	global *Config
)

// Get returns the configuration installed with Set, or nil.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Set installs cfg as the process configuration.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	global = cfg
}
