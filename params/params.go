/*
 * params.go, part of goatmos.
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
Package params reads and edits the model's input parameter files (input_clima.dat,
input_photchem.dat and the like). Those are lists of

	KEY=   value     ! comment

lines. Lines starting with "*", "C" or "c" are comments. Values are numbers, or strings
if quoted. Editing a value rewrites only the text of that value: every other byte of the
file is written back as it was read.
*/
package params

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	atmos "github.com/goatmos/goatmos"
	"github.com/pkg/errors"
)

// separator splits a parameter line into key, value and comment.
var separator = regexp.MustCompile("= |=\t|!|\t")

// ErrNoParameter is returned when a key is not in the file.
var ErrNoParameter = errors.New("no such parameter")

// Value is the value of a parameter.
type Value struct {
	Text   string //as written, without the quotes if quoted.
	Quoted bool
}

type entry struct {
	key        string
	start, end int //byte range of the value text in the line, quotes included.
	value      Value
}

// File is a parameter file.
type File struct {
	lines   []string
	entries map[string]*entry
	keys    []string
	line    map[string]int
}

func commentLine(s string) bool {
	return strings.HasPrefix(s, "*") || strings.HasPrefix(s, "C") || strings.HasPrefix(s, "c")
}

// parseLine obtains the parameter in a non comment line.
func parseLine(s string, n int) (*entry, error) {
	loc := separator.FindStringIndex(s)
	if loc == nil {
		return nil, atmos.NewError(atmos.ErrUnexpectedFormat, n, s, "no separator after key")
	}
	key := strings.TrimSpace(s[:loc[0]])
	rest := s[loc[1]:]
	seg := rest
	if l := separator.FindStringIndex(rest); l != nil {
		seg = rest[:l[0]]
	}
	text := strings.TrimSpace(seg)
	if text == "" {
		return nil, atmos.NewError(atmos.ErrUnexpectedFormat, n, s, "no value for %s", key)
	}
	start := loc[1] + strings.Index(seg, text)
	E := &entry{key: key, start: start, end: start + len(text)}
	if strings.HasPrefix(text, "\"") {
		E.value = Value{Text: strings.Trim(text, "\""), Quoted: true}
		return E, nil
	}
	if _, err := atmos.ParseNumber(text); err != nil {
		return nil, atmos.NewError(atmos.ErrMalformedNumber, n, s, "value of %s: %q", key, text)
	}
	E.value = Value{Text: text}
	return E, nil
}

// Read reads a parameter file.
func Read(r io.Reader) (*File, error) {
	lines, err := atmos.ReadLines(r)
	if err != nil {
		return nil, err
	}
	F := &File{lines: lines, entries: make(map[string]*entry), line: make(map[string]int)}
	err = lines.Each(func(n int, s string) (bool, error) {
		if s == "" || commentLine(s) {
			return true, nil
		}
		E, err := parseLine(s, n)
		if err != nil {
			return false, err
		}
		if _, ok := F.entries[E.key]; !ok {
			F.keys = append(F.keys, E.key)
		}
		F.entries[E.key] = E
		F.line[E.key] = n - 1
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return F, nil
}

// ReadFile reads the parameter file with the given name.
func ReadFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	F, err := Read(f)
	if err != nil {
		return nil, atmos.Decorate(err, "params.ReadFile", filepath.Base(name))
	}
	return F, nil
}

// Keys returns the parameter names in file order.
func (F *File) Keys() []string {
	return append([]string(nil), F.keys...)
}

// Get returns the value of key, and whether the file defines it.
func (F *File) Get(key string) (Value, bool) {
	E, ok := F.entries[key]
	if !ok {
		return Value{}, false
	}
	return E.value, true
}

// Float returns the numeric value of key.
func (F *File) Float(key string) (float64, error) {
	v, ok := F.Get(key)
	if !ok {
		return 0, errors.Wrap(ErrNoParameter, key)
	}
	if v.Quoted {
		return 0, errors.Errorf("parameter %s is a string", key)
	}
	return atmos.ParseNumber(v.Text)
}

// String returns the value of key as text.
func (F *File) String(key string) (string, error) {
	v, ok := F.Get(key)
	if !ok {
		return "", errors.Wrap(ErrNoParameter, key)
	}
	return v.Text, nil
}

// Set replaces the text of the value of key with text. A shorter text is padded with spaces,
// so comments stay in their columns.
func (F *File) Set(key, text string) error {
	E, ok := F.entries[key]
	if !ok {
		return errors.Wrap(ErrNoParameter, key)
	}
	n := F.line[key]
	s := F.lines[n]
	rep := text
	if len(rep) < E.end-E.start {
		rep += strings.Repeat(" ", E.end-E.start-len(rep))
	}
	F.lines[n] = s[:E.start] + rep + s[E.end:]
	E.end = E.start + len(text)
	E.value = Value{Text: strings.Trim(text, "\""), Quoted: strings.HasPrefix(text, "\"")}
	return nil
}

// SetFloat sets a numeric value.
func (F *File) SetFloat(key string, v float64) error {
	return F.Set(key, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetInt sets an integer value.
func (F *File) SetInt(key string, v int) error {
	return F.Set(key, strconv.Itoa(v))
}

// SetString sets a quoted string value.
func (F *File) SetString(key, v string) error {
	return F.Set(key, "\""+v+"\"")
}

// Write writes the file.
func (F *File) Write(w io.Writer) error {
	for _, v := range F.lines {
		if _, err := io.WriteString(w, v+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the file to the given path.
func (F *File) WriteFile(name string) error {
	return atmos.WriteFile(name, F.Write)
}
