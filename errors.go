/*
 * errors.go, part of goatmos.
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
	"errors"
	"fmt"
	"strings"
)

// Sentinels for the error kinds produced by the parsers and writers in this module.
// Every *Error unwraps to one of them, so callers can use errors.Is.
var (
	ErrMalformedNumber         = errors.New("malformed number")
	ErrUnexpectedFormat        = errors.New("unexpected format")
	ErrRowCountMismatch        = errors.New("row count mismatch")
	ErrKeyMismatch             = errors.New("key mismatch")
	ErrConflictingModification = errors.New("conflicting modification")
	ErrUnknownRecordKind       = errors.New("unknown record kind")
	ErrUnknownSpecies          = errors.New("unknown species")
)

// Decorator is implemented by all errors in this module. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Decorator interface {
	Error() string
	Decorate(string) []string //Adds the caller to the decoration slice and returns it. An empty string only returns the current value.
}

// Error is the general structure for errors in goatmos. It fulfills Decorator.
// Line is 1-based; 0 means the error is not tied to a line.
type Error struct {
	Kind     error
	FileName string
	Line     int
	Content  string
	Message  string
	deco     []string
}

// NewError returns an *Error of the given kind. content is the raw offending line, if any.
func NewError(kind error, line int, content, format string, a ...any) *Error {
	return &Error{Kind: kind, Line: line, Content: content, Message: fmt.Sprintf(format, a...)}
}

func (E *Error) Error() string {
	var b strings.Builder
	b.WriteString(E.Kind.Error())
	if E.FileName != "" {
		b.WriteString(" in " + E.FileName)
	}
	if E.Line > 0 {
		fmt.Fprintf(&b, " at line %d", E.Line)
	}
	if E.Message != "" {
		b.WriteString(": " + E.Message)
	}
	if E.Content != "" {
		fmt.Fprintf(&b, " (line: %q)", E.Content)
	}
	if len(E.deco) > 0 {
		b.WriteString(" [" + strings.Join(E.deco, " <- ") + "]")
	}
	return b.String()
}

// Unwrap returns the sentinel for the error kind.
func (E *Error) Unwrap() error { return E.Kind }

// Decorate adds new information to the error.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Decorate adds caller to err's decoration slice if err is one of ours,
// and sets the file name when it is not set yet. Other errors pass unchanged.
func Decorate(err error, caller, filename string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	e.Decorate(caller)
	if e.FileName == "" {
		e.FileName = filename
	}
	return e
}
