/*
 * lines_test.go, part of goatmos.
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

package atmos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(Te *testing.T) {
	lines, err := ReadLines(strings.NewReader("a\r\nb\n\nc"))
	require.NoError(Te, err)
	assert.Equal(Te, Lines{"a", "b", "", "c"}, lines)
	assert.Equal(Te, "b", lines.Line(2))
	assert.Equal(Te, "", lines.Line(0))
	assert.Equal(Te, "", lines.Line(5))

	var seen []int
	err = lines.Each(func(n int, l string) (bool, error) {
		seen = append(seen, n)
		return l != "b", nil
	})
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 2}, seen)
}

func TestReadLinesFile(Te *testing.T) {
	lines, err := ReadLinesFile("test/out.out")
	require.NoError(Te, err)
	assert.Contains(Te, lines.Line(1), "PHOTOCHEMICAL MODEL OUTPUT")
	_, err = ReadLinesFile("test/does-not-exist")
	assert.Error(Te, err)
}
