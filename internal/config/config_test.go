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

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Chart.Width)
	assert.Equal(t, 320, cfg.Chart.Height)
	assert.True(t, cfg.Chart.ZeroBaseline)
	assert.Equal(t, 0.25, cfg.Timeline.MinFraction)
	assert.Equal(t, time.Second/60, cfg.Balloon.FrameInterval)
	assert.Equal(t, "day", cfg.Theme)
	assert.Equal(t, "info", cfg.Logging.Level)

	opts := cfg.ChartOptions()
	assert.False(t, opts.Night)
	assert.NoError(t, opts.Validate())
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(viper.New(), "testdata/timechart.yaml")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Chart.Width)
	assert.Equal(t, 400, cfg.Chart.Height)
	assert.False(t, cfg.Chart.ZeroBaseline)
	assert.Equal(t, 0.2, cfg.Timeline.MinFraction)
	assert.Equal(t, 8*time.Millisecond, cfg.Balloon.FrameInterval)
	assert.Equal(t, "de", cfg.Balloon.Locale)
	assert.Equal(t, "night", cfg.Style().Name)
	assert.True(t, cfg.ChartOptions().Night)
	// Keys the file leaves out keep their defaults.
	assert.Equal(t, 64, cfg.Timeline.Height)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TIMECHART_CHART_WIDTH", "1024")
	t.Setenv("TIMECHART_THEME", "day")
	cfg, err := Load(viper.New(), "testdata/timechart.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Chart.Width)
	assert.Equal(t, "day", cfg.Theme)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(viper.New(), "testdata/missing.yaml")
	assert.Error(t, err)

	_, err = Load(viper.New(), "testdata/bad_theme.yaml")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	base := func(t *testing.T) *Config {
		t.Chdir(t.TempDir())
		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min fraction above half", func(c *Config) { c.Timeline.MinFraction = 0.75 }},
		{"zero width", func(c *Config) { c.Chart.Width = 0 }},
		{"margins fill the chart", func(c *Config) { c.Chart.MarginTop = 200; c.Chart.MarginBottom = 120 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative line width", func(c *Config) { c.Chart.LineWidth = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base(t)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestGlobal(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	cfg := &Config{Theme: "night"}
	Set(cfg)
	assert.Same(t, cfg, Get())
}
