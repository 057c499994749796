/*
 * photochem.go, part of goatmos.
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

package photochem

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	atmos "github.com/goatmos/goatmos"
)

// Section markers in the photochemical output.
const (
	FluxesMarker       = "FLUXES OF LONG-LIVED SPECIES"
	AqueousMarker      = "AQUEOUS PHASE SPECIES"
	MixingRatiosMarker = "MIXING RATIOS OF LONG-LIVED SPECIES"
	OzoneMarker        = "OZONE COLUMN DEPTH"
	TPTLMarker         = "TP, TL"
)

// Names of the CSV files written by WriteCSV.
const (
	FluxesFile       = "parsed_photochem_fluxes.csv"
	MixingRatiosFile = "parsed_photochem_mixing_ratios.csv"
)

// tptlLines is the length of the sub-header that starts with TPTLMarker.
const tptlLines = 3

// Options modifies the behavior of the parser.
type Options struct {
	//Strict checks that the altitude column agrees across the slices of a table.
	Strict bool
	//KeepStopLine keeps the AqueousMarker line as the last row of the flux table.
	//The line is not numeric, so with this set only the raw tables can be used.
	KeepStopLine bool
}

// Result holds the tables recovered from a photochemical output file.
type Result struct {
	//every table with a "Z," header, wherever it appears.
	All          atmos.TableSet
	FluxTables   atmos.TableSet
	MixingTables atmos.TableSet
	Fluxes       *atmos.NumericTable
	MixingRatios *atmos.NumericTable
	//line of the last MixingRatiosMarker
	MixingLine int
}

// ParseFile parses the photochemical output file name.
func ParseFile(name string, opts ...Options) (*Result, error) {
	lines, err := atmos.ReadLinesFile(name)
	if err != nil {
		return nil, err
	}
	res, err := Parse(lines, opts...)
	return res, atmos.Decorate(err, "photochem.ParseFile", filepath.Base(name))
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...Options) (*Result, error) {
	lines, err := atmos.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines, opts...)
}

// Parse recovers the flux and mixing ratio tables from lines.
func Parse(lines atmos.Lines, opts ...Options) (*Result, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	ret, err := tables(lines, o)
	if err != nil {
		return ret, atmos.Decorate(err, "photochem.Parse", "")
	}
	var aopts []atmos.AssembleOption
	if o.Strict {
		aopts = append(aopts, atmos.Strict())
	}
	ret.Fluxes, err = assemble(ret.FluxTables, "fluxes", aopts)
	if err != nil {
		return ret, atmos.Decorate(err, "photochem.Parse", "")
	}
	ret.MixingRatios, err = assemble(ret.MixingTables, "mixing ratios", aopts)
	if err != nil {
		return ret, atmos.Decorate(err, "photochem.Parse", "")
	}
	return ret, nil
}

// Tables only recovers the raw tables, without joining them or reading the numbers.
func Tables(lines atmos.Lines, opts ...Options) (*Result, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	ret, err := tables(lines, o)
	return ret, atmos.Decorate(err, "photochem.Tables", "")
}

func tables(lines atmos.Lines, o Options) (*Result, error) {
	all := &atmos.SectionReader{Marker: atmos.JoinedContains("Z,"), ArmOnMarker: true}
	flux := &atmos.SectionReader{
		Start:        atmos.RawContains(FluxesMarker),
		Marker:       atmos.JoinedContains("Z"),
		Stop:         atmos.RawContains(AqueousMarker),
		KeepStopLine: o.KeepStopLine,
	}
	ret := new(Result)
	//first pass
	err := lines.Each(func(n int, l string) (bool, error) {
		if err := all.Feed(n, l); err != nil {
			return false, err
		}
		if err := flux.Feed(n, l); err != nil {
			return false, err
		}
		if strings.Contains(l, MixingRatiosMarker) {
			ret.MixingLine = n
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	ret.All = all.Tables()
	ret.FluxTables = flux.Tables()
	if ret.MixingLine == 0 {
		return ret, atmos.NewError(atmos.ErrUnexpectedFormat, 0, "", "no %q section", MixingRatiosMarker)
	}
	//second pass, starting at the last mixing ratios heading
	mix := &atmos.SectionReader{
		Start:       atmos.RawContains(MixingRatiosMarker),
		Marker:      atmos.JoinedContains("Z,"),
		ArmOnMarker: true,
		Skip:        atmos.RawContains(TPTLMarker),
		SkipLines:   tptlLines,
		Stop:        atmos.RawContains(OzoneMarker),
		Terminal:    true,
	}
	ret.MixingTables, err = atmos.ReadSectionsFrom(lines, ret.MixingLine, mix)
	if err != nil {
		return nil, err
	}
	atmos.Logger("photochem").Debug("parsed photochemical output",
		zap.Int("all", len(ret.All)), zap.Int("flux", len(ret.FluxTables)),
		zap.Int("mixing", len(ret.MixingTables)), zap.Int("mixing_line", ret.MixingLine))
	return ret, nil
}

func assemble(set atmos.TableSet, what string, aopts []atmos.AssembleOption) (*atmos.NumericTable, error) {
	t, err := atmos.Assemble(set, aopts...)
	if err != nil {
		var e *atmos.Error
		if errors.As(err, &e) && e.Line == 0 {
			e.Message = what + ": " + e.Message
		}
		return nil, err
	}
	return t.Numeric()
}

// WriteCSV writes the joined flux and mixing ratio tables in R to dir, as FluxesFile and MixingRatiosFile.
// Each row starts with its index.
func (R *Result) WriteCSV(dir string) error {
	err := atmos.WriteFile(filepath.Join(dir, FluxesFile), func(w io.Writer) error {
		return atmos.WriteNumericCSV(w, R.Fluxes, true)
	})
	if err != nil {
		return err
	}
	return atmos.WriteFile(filepath.Join(dir, MixingRatiosFile), func(w io.Writer) error {
		return atmos.WriteNumericCSV(w, R.MixingRatios, true)
	})
}
