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
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/teradata-labs/timechart/pkg/chart"
)

// ErrTerminalOutput is returned when PNG bytes would be written to a terminal.
var ErrTerminalOutput = errors.New("refusing to write PNG data to a terminal")

type renderOptions struct {
	output string
	index  int
	hide   []string
	hover  float64
	all    bool
}

func newRenderCmd(a *app) *cobra.Command {
	o := renderOptions{hover: -1}
	cmd := &cobra.Command{
		Use:   "render <data.json>",
		Short: "Render a chart to PNG",
		Long: heredoc.Doc(`
			Render one chart of a data file to a PNG image: the main chart over
			the selected range, and the timeline with its selection window.

			Examples:
			  timechart render chart.json -o chart.png
			  timechart render charts.json --chart 2 --hide joined -o - | imgcat
			  timechart render chart.json --hover 320 --theme night
			  timechart render charts.json --all -o out/chart.png
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.OutOrStdout(), args[0], o)
		},
	}
	cmd.Flags().StringVarP(&o.output, "output", "o", "chart.png", `output file, "-" for stdout`)
	cmd.Flags().IntVar(&o.index, "chart", 0, "index of the chart in a multi-chart file")
	cmd.Flags().StringSliceVar(&o.hide, "hide", nil, "series to hide, by id or (fuzzy) name")
	cmd.Flags().Float64Var(&o.hover, "hover", -1, "show the balloon for this x pixel")
	cmd.Flags().BoolVar(&o.all, "all", false, "render every chart, numbering the output files")
	return cmd
}

func (a *app) render(stdout io.Writer, path string, o renderOptions) error {
	if !o.all {
		c, err := a.newChart(path, o.index, a.cfg.ChartOptions())
		if err != nil {
			return err
		}
		return a.renderChart(stdout, c, o.output, o)
	}

	if o.output == "-" {
		return errors.New("--all needs an output file name")
	}
	charts, err := a.newCharts(path, a.cfg.ChartOptions())
	if err != nil {
		return err
	}
	for i, c := range charts {
		if err := a.renderChart(stdout, c, numbered(o.output, i), o); err != nil {
			return fmt.Errorf("chart %d: %w", i, err)
		}
	}
	return nil
}

// numbered inserts -i before the extension: chart.png becomes chart-1.png.
func numbered(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}

func (a *app) renderChart(stdout io.Writer, c *chart.Chart, output string, o renderOptions) error {
	if err := hideSeries(c, o.hide); err != nil {
		return err
	}
	if o.hover >= 0 {
		now := time.Now()
		c.HoverEnter(now)
		c.HoverMove(o.hover, 0, now)
	}

	img := c.Compose()
	if output == "-" {
		return writePNG(stdout, img)
	}
	if err := gg.SavePNG(output, img); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	a.logger.Info("chart rendered",
		zap.String("chart", c.ID()),
		zap.String("output", output),
		zap.Stringer("range", c.Range()),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}

// writePNG encodes img to w unless w is an interactive terminal.
func writePNG(w io.Writer, img image.Image) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { // #nosec G115 -- file descriptors fit in int
		return ErrTerminalOutput
	}
	return png.Encode(w, img)
}
