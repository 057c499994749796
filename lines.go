/*
 * lines.go, part of goatmos.
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
	"bufio"
	"io"
	"os"
	"strings"
)

// Lines is the content of one text file, one element per line, without
// line terminators. It can be scanned as many times as needed.
// Line numbers used throughout goatmos are 1-based indexes into it.
type Lines []string

const maxLineLength = 1024 * 1024

// ReadLines reads all of r.
func ReadLines(r io.Reader) (Lines, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	ret := make(Lines, 0, 1024)
	for sc.Scan() {
		ret = append(ret, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// ReadLinesFile reads the whole file name. The file is closed before returning.
func ReadLinesFile(name string) (Lines, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// Each calls fn for every line, with its line number, until fn returns false or an error.
func (L Lines) Each(fn func(n int, line string) (bool, error)) error {
	for i, l := range L {
		goon, err := fn(i+1, l)
		if err != nil {
			return err
		}
		if !goon {
			break
		}
	}
	return nil
}

// Line returns line n, or an empty string if n is out of range.
func (L Lines) Line(n int) string {
	if n < 1 || n > len(L) {
		return ""
	}
	return L[n-1]
}
