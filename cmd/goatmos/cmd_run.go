/*
 * cmd_run.go, part of goatmos.
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

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/goatmos/goatmos/driver"
	"github.com/goatmos/goatmos/run"
	"github.com/goatmos/goatmos/runstore"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scaling float64
	limit   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one coupled simulation",
	Args:  cobra.NoArgs,
	RunE:  runSimulation,
}

var scanCmd = &cobra.Command{
	Use:   "scan [scaling...]",
	Short: "Run one coupled simulation per flux scaling factor",
	Long: `Runs a coupled simulation for each scaling factor given, or for each one in
species.flux_scalings in the configuration if none is given.`,
	RunE: scanSimulations,
}

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recorded runs, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listRuns,
}

func newRunner() (*run.Runner, *runstore.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	d, err := driver.NewLocal(cfg.Simulation.ModelDir)
	if err != nil {
		return nil, nil, err
	}
	store, err := runstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	return run.New(d, cfg, store), store, nil
}

func report(cmd *cobra.Command, res *run.Result) {
	r := res.Record
	status := "ok"
	if r.Error != "" {
		status = "failed: " + r.Error
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s scaling=%g converged=%v iterations=%d %s\n  output: %s\n",
		r.ID, r.Scaling, r.Converged, r.Iterations, status, r.OutputDir)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	runner, store, err := newRunner()
	if err != nil {
		return err
	}
	defer store.Close()
	res, err := runner.Run(cmd.Context(), scaling)
	report(cmd, res)
	return err
}

func scanSimulations(cmd *cobra.Command, args []string) error {
	scalings := cfg.Species.FluxScalings
	if len(args) > 0 {
		var err error
		if scalings, err = parseScalings(args); err != nil {
			return err
		}
	}
	if len(scalings) == 0 {
		return fmt.Errorf("no flux scalings given")
	}
	runner, store, err := newRunner()
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("starting scan", zap.Float64s("scalings", scalings))
	results, err := runner.Scan(cmd.Context(), scalings)
	for _, res := range results {
		report(cmd, res)
	}
	return err
}

func parseScalings(args []string) ([]float64, error) {
	ret, err := numbersList(args)
	if err != nil {
		return nil, err
	}
	for _, v := range ret {
		if v <= 0 {
			return nil, fmt.Errorf("invalid flux scaling %g", v)
		}
	}
	return ret, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := runstore.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	var runs []*runstore.Run
	if len(args) == 1 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		r, err := store.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		runs = append(runs, r)
	} else if runs, err = store.List(cmd.Context(), limit); err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSCALING\tCONVERGED\tITERATIONS\tDIVFrms\tERROR")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%v\t%d\t%g\t%s\n", r.ID, r.Started.Format("2006-01-02 15:04:05"),
			r.Scaling, r.Converged, r.Iterations, r.FinalDIVFrms, r.Error)
	}
	return w.Flush()
}
