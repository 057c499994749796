/*
 * main.go, part of goatmos.
 *
 *
 * Copyright 2024 The goatmos authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// goatmos parses, edits and runs the coupled photochemical and climate models.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	atmos "github.com/goatmos/goatmos"
	"github.com/goatmos/goatmos/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	outputDir  string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "goatmos",
	Short: "goatmos - tools for the coupled photochemical and climate models",
	Long: `goatmos turns the text output of the photochemical and climate models into
CSV tables, edits the species file, and runs coupled simulations, keeping a ledger
of the runs in a SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid logging level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		if cfg.Logging.File != "" {
			zc.OutputPaths = []string{cfg.Logging.File}
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		atmos.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "goatmos.yaml", "configuration file")

	parseCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", ".", "directory for the CSV files")
	parsePhotochemCmd.Flags().BoolVar(&strictKeys, "strict", false, "require the altitude keys of all the tables to match")
	parsePhotochemCmd.Flags().BoolVar(&keepStopLine, "keep-stop-line", false, "keep the line that ends the flux section as a data row")
	parseCmd.AddCommand(parseClimaCmd, parsePhotochemCmd)

	speciesModifyCmd.Flags().StringToStringVar(&concentrations, "conc", nil, "mixing ratio overrides, NAME=value")
	speciesModifyCmd.Flags().StringToStringVar(&fluxes, "flux", nil, "surface flux overrides, NAME=value")
	speciesModifyCmd.Flags().StringVarP(&speciesOut, "output", "o", "", "write here instead of overwriting the input")
	speciesCmd.AddCommand(speciesModifyCmd)

	runCmd.Flags().Float64Var(&scaling, "scaling", 1, "factor applied to all the configured fluxes")
	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list, 0 for all")

	rootCmd.AddCommand(parseCmd, speciesCmd, runCmd, scanCmd, runsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
