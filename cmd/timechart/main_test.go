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
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/timechart/internal/config"
	"github.com/teradata-labs/timechart/pkg/chart"
	"github.com/teradata-labs/timechart/pkg/series"
)

// testdata resolves a fixture before the test moves to a temporary directory.
func testdata(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	return p
}

func mustLoad(t *testing.T) *series.Dataset {
	t.Helper()
	sets, err := series.LoadFile(testdata(t, "chart.json"))
	require.NoError(t, err)
	return sets[0]
}

// execute runs the CLI in an empty directory so no stray config file is read.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "timechart 0.3.0")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", testdata(t, "chart.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "1 chart, 2 series, 5 columns")
}

func TestValidate_Invalid(t *testing.T) {
	out, err := execute(t, "validate", testdata(t, "chart.json"), testdata(t, "no_series.json"), "missing.json")
	require.Error(t, err)
	assert.Equal(t, "2 of 3 files invalid", err.Error())
	assert.Contains(t, out, "× missing.json")
}

func TestRender_File(t *testing.T) {
	data := testdata(t, "chart.json")
	_, err := execute(t, "render", data, "-o", "out.png", "--width", "200", "--height", "100", "--hover", "50")
	require.NoError(t, err)

	f, err := os.Open("out.png")
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	d := chart.DefaultOptions()
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100+d.TimelineGap+d.TimelineHeight, img.Bounds().Dy())
}

func TestRender_Stdout(t *testing.T) {
	out, err := execute(t, "render", testdata(t, "chart.json"), "-o", "-", "--hide", "left")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultOptions().Width, img.Bounds().Dx())
}

func TestRender_All(t *testing.T) {
	_, err := execute(t, "render", testdata(t, "two.json"), "--all", "-o", "chart.png")
	require.NoError(t, err)
	for _, name := range []string{"chart-0.png", "chart-1.png"} {
		_, err := os.Stat(name)
		assert.NoError(t, err, name)
	}

	_, err = execute(t, "render", testdata(t, "two.json"), "--all", "-o", "-")
	assert.Error(t, err)
}

func TestNumbered(t *testing.T) {
	assert.Equal(t, "chart-1.png", numbered("chart.png", 1))
	assert.Equal(t, "out/a.b-0.png", numbered("out/a.b.png", 0))
	assert.Equal(t, "plain-2", numbered("plain", 2))
}

func TestRender_Errors(t *testing.T) {
	data := testdata(t, "chart.json")

	_, err := execute(t, "render", data, "--hide", "y0,y1", "-o", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last visible")

	_, err = execute(t, "render", data, "--hide", "qqq")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = execute(t, "render", data, "--chart", "3")
	assert.ErrorIs(t, err, ErrChartIndex)

	_, err = execute(t, "render", data, "--theme", "purple")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "render", data, "--config", testdata(t, "bad_theme.yaml"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestReplay(t *testing.T) {
	golden, err := os.ReadFile(filepath.Join("..", "..", "pkg", "script", "testdata", "TestRun_Golden.golden"))
	require.NoError(t, err)
	script := testdata(t, "../../../pkg/script/testdata/pan_hover_toggle.yaml")

	out, err := execute(t, "replay", testdata(t, "chart.json"), script, "--frames", "frames")
	require.NoError(t, err)
	assert.Equal(t, string(golden), out)

	// The script marks no frames, so the directory stays empty.
	entries, err := os.ReadDir("frames")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMatchSeries(t *testing.T) {
	list := []chart.SeriesInfo{
		{ID: "y0", Name: "Joined"},
		{ID: "y1", Name: "Left"},
	}
	tests := []struct {
		pattern string
		want    string
		err     error
	}{
		{"y1", "y1", nil},
		{"joined", "y0", nil},
		{"jnd", "y0", nil},
		{"lft", "y1", nil},
		{"zzz", "", ErrNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := matchSeries(list, tt.pattern)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWritePNG_File(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "chart-*.png")
	require.NoError(t, err)
	defer f.Close()

	c, err := chart.New("t", mustLoad(t), chart.DefaultOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, writePNG(f, c.Compose()))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
