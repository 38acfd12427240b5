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
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/internal/log"
	"github.com/teradata-labs/timechart/internal/tui"
	"github.com/teradata-labs/timechart/internal/watch"
	"github.com/teradata-labs/timechart/pkg/series"
)

type viewOptions struct {
	index   int
	hide    []string
	watch   bool
	logFile string
}

func newViewCmd(a *app) *cobra.Command {
	var o viewOptions
	cmd := &cobra.Command{
		Use:   "view <data.json>",
		Short: "Explore a chart in the terminal",
		Long: heredoc.Doc(`
			Open a chart in the terminal. Drag the window on the timeline to
			pick the range, drag its edges to resize it, and hover the main
			chart to read values.

			Keys: 1-9 toggle series, n switches the theme, y copies the
			balloon, left/right pan by one column, ? shows help, q quits.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd.Context(), args[0], o)
		},
	}
	cmd.Flags().IntVar(&o.index, "chart", 0, "index of the chart in a multi-chart file")
	cmd.Flags().StringSliceVar(&o.hide, "hide", nil, "series to hide, by id or (fuzzy) name")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "reload the data file when it changes")
	cmd.Flags().StringVar(&o.logFile, "log-file", "", "write logs to this file (logs are off otherwise)")
	return cmd
}

func (a *app) view(ctx context.Context, path string, o viewOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger := zap.NewNop()
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- path from the command line
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		if logger, err = log.NewWriter(f, a.cfg.Logging.Level); err != nil {
			return err
		}
	}
	a.logger = logger
	log.SetLogger(logger)

	c, err := a.newChart(path, o.index, a.cfg.ChartOptions())
	if err != nil {
		return err
	}
	if err := hideSeries(c, o.hide); err != nil {
		return err
	}

	m := tui.New(c, filepath.Base(path), tui.WithLogger(logger))
	defer m.Close()
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithEnvironment(os.Environ()))

	if o.watch {
		w, err := watch.New(watch.Config{
			Path:   path,
			Logger: logger,
			OnReload: func(sets []*series.Dataset) {
				ds, err := pickDataset(sets, o.index)
				if err != nil {
					p.Send(tui.ReloadErrorMsg{Err: err})
					return
				}
				p.Send(tui.ReloadMsg{Sets: []*series.Dataset{ds}})
			},
			OnError: func(err error) {
				p.Send(tui.ReloadErrorMsg{Err: err})
			},
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
