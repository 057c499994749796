/*
 * doc.go, part of goatmos.
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

/*
Package atmos is the main package of goatmos. It recovers tables from the text output
of the coupled photochemistry/climate model and provides the pieces the stage-specific
packages are built on.

	**goatmos Capabilities**

    Reads numbers from fixed-width Fortran output, including those where the
	exponent marker was lost (5.36-102 for 5.36E-102).

    Recovers tables from files where table boundaries are only marked by repeated
	header lines, with start, stop and skip triggers (SectionReader).

    Concatenates the partial tables of a section into a single wide table,
	optionally checking that the altitude column agrees (Assemble).

    Writes tables as CSV.

    Parses the climate model output (package clima) and the photochemical model
	output (package photochem).

    Reads, modifies and writes the species definition file (package species)
	and the key = value input parameter files (package params).

    Drives a coupled run of the external model (packages driver and run) and
	keeps a record of runs (package runstore).

All errors returned by this package and its sub-packages unwrap to one of the
Err* sentinels, and carry the line number and content of the offending line
when there is one.
*/
package atmos
