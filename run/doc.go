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
Run drives coupled simulations: it edits the species and parameter files of the model,
runs the photochemical and climate models through a driver.Driver, parses what they
write, checks whether the climate model converged, and keeps a record of the run.

A Runner does one run at a time. Scan runs one simulation per flux scaling factor, in
order, which is how a planet is moved away from its star (fluxes scale as 1/d²).
*/
package run
