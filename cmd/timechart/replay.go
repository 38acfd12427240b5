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
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/pkg/script"
)

type replayOptions struct {
	index  int
	frames string
}

func newReplayCmd(a *app) *cobra.Command {
	var o replayOptions
	cmd := &cobra.Command{
		Use:   "replay <data.json> <script.yaml>",
		Short: "Replay a gesture script and print what the chart emitted",
		Long: heredoc.Doc(`
			Replay a YAML script of timestamped pointer, toggle, resize and
			theme steps against a chart. Every range, visibility, theme and
			balloon event is printed under the step that caused it.

			Steps marked "frame: true" are also saved as PNG images when
			--frames names a directory.
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.replay(cmd.OutOrStdout(), args[0], args[1], o)
		},
	}
	cmd.Flags().IntVar(&o.index, "chart", 0, "index of the chart in a multi-chart file")
	cmd.Flags().StringVar(&o.frames, "frames", "", "directory for PNG frames")
	return cmd
}

func (a *app) replay(stdout io.Writer, dataPath, scriptPath string, o replayOptions) error {
	s, err := script.ParseFile(scriptPath)
	if err != nil {
		return err
	}
	c, err := a.newChart(dataPath, o.index, s.Chart.Apply(a.cfg.ChartOptions()))
	if err != nil {
		return err
	}

	r := &script.Runner{Logger: a.logger}
	if o.frames != "" {
		if err := os.MkdirAll(o.frames, 0o755); err != nil { // #nosec G301 -- output directory chosen by the user
			return fmt.Errorf("create frames directory: %w", err)
		}
		r.Frame = func(n int, _ script.Step, img *image.RGBA) error {
			return gg.SavePNG(filepath.Join(o.frames, fmt.Sprintf("frame-%03d.png", n)), img)
		}
	}

	tr, err := r.Run(c, s)
	if tr != nil {
		if _, werr := io.WriteString(stdout, tr.String()); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return err
	}
	a.logger.Debug("script replayed", zap.String("script", scriptPath), zap.Int("frames", tr.Frames))
	return nil
}
