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
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/teradata-labs/timechart/internal/tui/styles"
	"github.com/teradata-labs/timechart/pkg/series"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <data.json>...",
		Short: "Check data files against the chart document schema",
		Long: heredoc.Doc(`
			Validate chart documents. A file may hold one document or an array
			of them. Every file is checked; the command fails if any is invalid.

			Examples:
			  timechart validate chart.json
			  timechart validate data/*.json
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) validate(stdout io.Writer, paths []string) error {
	invalid := 0
	for _, path := range paths {
		sets, err := series.LoadFile(path)
		if err != nil {
			invalid++
			fmt.Fprintf(stdout, "%s %s: %v\n", styles.ErrorIcon, path, err)
			continue
		}
		for i, ds := range sets {
			if !ds.Monotonic() {
				fmt.Fprintf(stdout, "%s %s: chart %d has a non-increasing x-axis\n", styles.WarningIcon, path, i)
			}
		}
		fmt.Fprintf(stdout, "%s %s: %s\n", styles.CheckIcon, path, summary(sets))
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d files invalid", invalid, len(paths))
	}
	return nil
}

func summary(sets []*series.Dataset) string {
	lines, columns := 0, 0
	for _, ds := range sets {
		lines += len(ds.Series())
		columns += ds.Len()
	}
	noun := "charts"
	if len(sets) == 1 {
		noun = "chart"
	}
	return fmt.Sprintf("%d %s, %d series, %d columns", len(sets), noun, lines, columns)
}
