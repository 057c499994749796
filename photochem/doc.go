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
Package photochem reads the text output of the photochemical stage of the coupled model.

The tables of interest (fluxes and mixing ratios of the long-lived species) are printed
in slices of a few species each, every slice repeating the altitude column Z. The parser
recovers the slices and joins them into one table per quantity. The mixing ratio tables
are only recognizable after the last "MIXING RATIOS OF LONG-LIVED SPECIES" heading, so
the file is scanned twice.
*/
package photochem
