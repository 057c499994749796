/*
 * format.go, part of goatmos.
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

package species

// Header is written at the top of every species file.
const Header = `***** SPECIES DEFINITIONS *****
*
*define LL,SL,TD, etc here
*
*LBOUND = lower boundary conditions
* 0 = constant deposition velocity (VDEP)
* 1 = constant mixing ratio
* 2 = constant upward flux (SGFLUX)
* 3 = constant vdep + vertically distributed upward flux  (uses SGFLUX and DISTH)
*
*MBOUND - Upper boundary conditions
* 0 = CONSTANT EFFUSION VELOCITY (VEFF)  - (H and H2 set in code for molecular diffusion/diffusion limited flux)
* 1 = constant mixing ratio - never been used so needs testing
* 2 = CONSTANT FLUX (SMFLUX) (option for CO2/CO/0 in code)
*
* 
`

// Section headings, in the order they are written.
const (
	LongLivedHeading  = "*   LONG-LIVED O H C S N CL LBOUND  VDEP0   FIXEDMR SGFLUX    DISTH MBOUND SMFLUX  VEFF0  \n"
	TridiagHeading    = "\n* NQ should be the number above\n*   TRIDIAGONAL SOLVER\n"
	ShortLivedHeading = "*NQ1 should be the number directly above\n*   SHORT-LIVED SPECIES\n"
	InertHeading      = "*   INERT SPECIES\n"
	OtherHeading      = "* NSP should be the number directly above\n"
)

// Field names, in file order, for each kind.
var (
	ElementFields   = []string{"O", "H", "C", "S", "N", "CL"}
	LongLivedFields = []string{"O", "H", "C", "S", "N", "CL", "LBOUND", "VDEP0", "FIXEDMR", "SGFLUX", "DISTH", "MBOUND", "SMFLUX", "VEFF0"}
	InertFields     = []string{"O", "H", "C", "S", "N", "CL", "FIXEDMR"}
)

// NameWidth is the width of the species name column.
const NameWidth = 11

const kindWidth = 4

// Column widths for each field, by kind. A value is padded with spaces up to the width
// of its column, and followed by at least one space.
var (
	longLivedWidths = map[string]int{
		"O": 2, "H": 2, "C": 2, "S": 2, "N": 2, "CL": 5,
		"LBOUND": 6, "VDEP0": 8, "FIXEDMR": 10, "SGFLUX": 12, "DISTH": 8, "MBOUND": 7, "SMFLUX": 8, "VEFF0": 0,
	}
	elementWidths = map[string]int{"O": 2, "H": 2, "C": 2, "S": 2, "N": 2, "CL": 2}
	inertWidths   = map[string]int{"O": 2, "H": 2, "C": 2, "S": 2, "N": 2, "CL": 5, "FIXEDMR": 6}
)

// Boundary condition codes set by Modify.
const (
	ConcentrationLBOUND = "2"
	FluxLBOUND          = "3"
)

// NumberFormat is the format used for the values set by Modify.
const NumberFormat = "%.3E"
