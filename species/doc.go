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
Species is a package for reading, editing and writing the species definition file
(species.dat) of the photochemical model.

Each data line defines one species: its name, a kind tag and a fixed, kind-dependent,
list of fields. Long-lived species (LL) carry the element counts, the boundary condition
codes and the deposition, mixing ratio and flux values; short-lived (SL) and other species
only the element counts; inert species (IN) the element counts and a fixed mixing ratio.
The model indexes species by position, so the order of the records is preserved, and
fields are kept as the text they were read as, so that untouched records are written
back exactly as they were.
*/
package species
