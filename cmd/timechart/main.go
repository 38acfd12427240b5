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

// Command timechart renders and explores time-series line charts with an
// interactive range selector.
package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/internal/config"
	"github.com/teradata-labs/timechart/internal/log"
	"github.com/teradata-labs/timechart/internal/version"
	"github.com/teradata-labs/timechart/pkg/chart"
)

// app is the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
	charts  *chart.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "timechart",
		Short: "Time-series line charts with a draggable range selector",
		Long: heredoc.Doc(`
			timechart draws line charts from JSON column documents. The lower
			timeline shows the whole axis with a window that selects the range
			drawn in the main chart; hovering the main chart shows a balloon
			with the values of the nearest column.
		`),
		Version:           version.Get(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.SetHelpTemplate(`{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}
Quick Start:
  timechart validate chart.json
  timechart render chart.json -o chart.png
  timechart view chart.json --watch
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./timechart.yaml)")
	flags.Int("width", 0, "chart width in pixels")
	flags.Int("height", 0, "main chart height in pixels")
	flags.String("theme", "", "colour theme (day, night)")
	flags.String("locale", "", "locale for balloon numbers, e.g. en or de")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = a.v.BindPFlag("chart.width", flags.Lookup("width"))
	_ = a.v.BindPFlag("chart.height", flags.Lookup("height"))
	_ = a.v.BindPFlag("theme", flags.Lookup("theme"))
	_ = a.v.BindPFlag("balloon.locale", flags.Lookup("locale"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		newRenderCmd(a),
		newReplayCmd(a),
		newViewCmd(a),
		newValidateCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration and installs the logger before any command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := log.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	config.Set(cfg)
	log.SetLogger(logger)
	return nil
}

func main() {
	err := newRootCmd().Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
