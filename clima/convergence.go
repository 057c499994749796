/*
 * convergence.go, part of goatmos.
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

package clima

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Criteria decides when a climate run is considered converged.
type Criteria struct {
	DIVFrms float64 //max. final rms flux divergence
	DT      float64 //max. |DT(ND)| over the window, in K
	Window  int     //last iterations to consider
}

// DefaultCriteria returns the criteria used when none are configured.
func DefaultCriteria() Criteria {
	return Criteria{DIVFrms: 1e-3, DT: 1e-2, Window: 10}
}

// Convergence summarizes the iteration diagnostics of a climate run.
type Convergence struct {
	Iterations   int
	FinalDIVFrms float64
	MeanDT       float64 //mean DT(ND) over the window
	StdDT        float64
	MaxAbsDT     float64
	Converged    bool
}

// Convergence evaluates the iterations in R against c. A run without iterations
// never converges.
func (R *Result) Convergence(c Criteria) Convergence {
	var ret Convergence
	if R.Iterations == nil {
		return ret
	}
	divf := R.Iterations.Col("DIVFrms")
	dt := R.Iterations.Col("DT(ND)")
	ret.Iterations = len(divf)
	if ret.Iterations == 0 {
		return ret
	}
	ret.FinalDIVFrms = divf[len(divf)-1]
	w := c.Window
	if w <= 0 || w > len(dt) {
		w = len(dt)
	}
	window := dt[len(dt)-w:]
	ret.MeanDT, ret.StdDT = stat.MeanStdDev(window, nil)
	if w < 2 {
		ret.StdDT = 0 //MeanStdDev gives NaN for a single value
	}
	ret.MaxAbsDT = floats.Norm(window, math.Inf(1))
	ret.Converged = math.Abs(ret.FinalDIVFrms) <= c.DIVFrms && ret.MaxAbsDT <= c.DT
	return ret
}
