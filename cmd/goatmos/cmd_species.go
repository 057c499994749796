/*
 * cmd_species.go, part of goatmos.
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

	atmos "github.com/goatmos/goatmos"
	"github.com/goatmos/goatmos/species"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	concentrations map[string]string
	fluxes         map[string]string
	speciesOut     string
)

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Species file commands",
}

var speciesModifyCmd = &cobra.Command{
	Use:   "modify [species.dat]",
	Short: "Fix mixing ratios or surface fluxes in a species file",
	Long: `Sets the lower boundary condition of the given species to a fixed mixing
ratio (--conc) or a fixed upward flux (--flux). Example:

  goatmos species modify species.dat --conc O2=0.21 --flux CH4=1e11`,
	Args: cobra.ExactArgs(1),
	RunE: modifySpecies,
}

func numbers(m map[string]string) (map[string]float64, error) {
	ret := make(map[string]float64, len(m))
	for k, v := range m {
		f, err := atmos.ParseNumber(v)
		if err != nil {
			return nil, fmt.Errorf("override for %s: %w", k, err)
		}
		ret[k] = f
	}
	return ret, nil
}

func numbersList(s []string) ([]float64, error) {
	ret, err := atmos.ParseNumbers(s...)
	if err != nil {
		return nil, fmt.Errorf("invalid number: %w", err)
	}
	return ret, nil
}

func modifySpecies(cmd *cobra.Command, args []string) error {
	conc, err := numbers(concentrations)
	if err != nil {
		return err
	}
	flux, err := numbers(fluxes)
	if err != nil {
		return err
	}
	f, err := species.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := f.Modify(conc, flux); err != nil {
		return atmos.Decorate(err, "species modify", args[0])
	}
	out := speciesOut
	if out == "" {
		out = args[0]
	}
	if err := f.WriteFile(out); err != nil {
		return err
	}
	logger.Info("species file written", zap.String("file", out), zap.Int("records", len(f.Records)))
	return nil
}
