/*
 * cmd_parse.go, part of goatmos.
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

	"github.com/goatmos/goatmos/clima"
	"github.com/goatmos/goatmos/photochem"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	strictKeys   bool
	keepStopLine bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert model output to CSV tables",
}

var parseClimaCmd = &cobra.Command{
	Use:   "clima [clima_allout.tab]",
	Short: "Parse the climate model output",
	Long: `Writes the initial and final atmospheric state tables and the iteration
table of a climate model output file as CSV files in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: parseClima,
}

var parsePhotochemCmd = &cobra.Command{
	Use:   "photochem [out.out]",
	Short: "Parse the photochemical model output",
	Long: `Writes the flux and mixing ratio tables of a photochemical model output file
as CSV files in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: parsePhotochem,
}

func parseClima(cmd *cobra.Command, args []string) error {
	res, err := clima.ParseFile(args[0])
	if err != nil {
		return err
	}
	if err := res.WriteCSV(outputDir); err != nil {
		return err
	}
	rows, _ := res.Iterations.Dims()
	logger.Info("parsed climate output", zap.String("file", args[0]), zap.Int("iterations", rows))
	c := res.Convergence(clima.Criteria{
		DIVFrms: cfg.Convergence.DIVFrms,
		DT:      cfg.Convergence.DT,
		Window:  cfg.Convergence.Window,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "iterations: %d\nfinal DIVFrms: %g\nmax |DT| (last %d): %g\nconverged: %v\n",
		c.Iterations, c.FinalDIVFrms, cfg.Convergence.Window, c.MaxAbsDT, c.Converged)
	return nil
}

func parsePhotochem(cmd *cobra.Command, args []string) error {
	res, err := photochem.ParseFile(args[0], photochem.Options{Strict: strictKeys, KeepStopLine: keepStopLine})
	if err != nil {
		return err
	}
	if err := res.WriteCSV(outputDir); err != nil {
		return err
	}
	fr, fc := res.Fluxes.Dims()
	mr, mc := res.MixingRatios.Dims()
	logger.Info("parsed photochemical output", zap.String("file", args[0]), zap.Int("tables", len(res.All)))
	fmt.Fprintf(cmd.OutOrStdout(), "fluxes: %d rows, %d columns\nmixing ratios: %d rows, %d columns\n", fr, fc, mr, mc)
	return nil
}
