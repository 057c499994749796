/*
 * numeric.go, part of goatmos.
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
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseNumber reads tok as a float64. Fixed-width Fortran output drops the
// exponent marker when the exponent has 3 digits, so a token that fails a
// direct parse is read as a mantissa followed by a signed exponent
// (5.36-102 means 5.36E-102). That repair is only done for exponents above 99.
// Non-finite values are rejected.
func ParseNumber(tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, NewError(ErrMalformedNumber, 0, "", "%q is not finite", tok)
		}
		return f, nil
	}
	mantissa, sign, exponent, ok := splitExponent(tok)
	if !ok {
		return 0, NewError(ErrMalformedNumber, 0, "", "can't read %q as a number", tok)
	}
	e, err := strconv.Atoi(exponent)
	if err != nil {
		return 0, NewError(ErrMalformedNumber, 0, "", "can't read exponent of %q", tok)
	}
	if e <= 99 {
		//this is not the missing-E artifact, something else is wrong with the output.
		logger.Warn("malformed number with a two-digit exponent", zap.String("token", tok))
		return 0, NewError(ErrMalformedNumber, 0, "", "%q has a %d-digit exponent and no exponent marker", tok, len(exponent))
	}
	f, err = strconv.ParseFloat(mantissa+"E"+sign+exponent, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, NewError(ErrMalformedNumber, 0, "", "can't repair %q", tok)
	}
	return f, nil
}

// splitExponent splits tok on its last '-' or, if no '-' split is possible, on its last '+'.
// A sign in the first position belongs to the mantissa.
func splitExponent(tok string) (mantissa, sign, exponent string, ok bool) {
	for _, s := range []string{"-", "+"} {
		i := strings.LastIndex(tok, s)
		if i <= 0 || i == len(tok)-1 {
			continue
		}
		return tok[:i], s, tok[i+1:], true
	}
	return "", "", "", false
}

// ParseNumbers applies ParseNumber to every element of s.
func ParseNumbers(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		f, err := ParseNumber(v)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

// FormatNumber renders v the way the model's post-processing scripts have always
// written floats: shortest representation, integral values with a trailing ".0",
// exponential notation below 1e-4 and from 1e16 on.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	a := math.Abs(v)
	if v == math.Trunc(v) && a < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	if a >= 1e-4 && a < 1e16 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', -1, 64)
}
