/*
 * species.go, part of goatmos.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	atmos "github.com/goatmos/goatmos"
	"go.uber.org/zap"
)

// Kind is the kind of a species record.
type Kind int

const (
	LongLived Kind = iota
	ShortLived
	Inert
	Other
)

func (K Kind) String() string {
	switch K {
	case LongLived:
		return "long-lived"
	case ShortLived:
		return "short-lived"
	case Inert:
		return "inert"
	}
	return "other"
}

// Fields returns the names of the fields a record of kind K carries, in file order.
func (K Kind) Fields() []string {
	switch K {
	case LongLived:
		return LongLivedFields
	case Inert:
		return InertFields
	}
	return ElementFields
}

func (K Kind) widths() map[string]int {
	switch K {
	case LongLived:
		return longLivedWidths
	case Inert:
		return inertWidths
	}
	return elementWidths
}

// kindOf classifies a record from its kind tag.
func kindOf(tag string) Kind {
	switch {
	case con(tag, "LL"):
		return LongLived
	case con(tag, "SL"):
		return ShortLived
	case con(tag, "IN"):
		return Inert
	}
	return Other
}

var con = strings.Contains

// Record is one species definition. Values holds the fields of the record's kind,
// as text, in the order given by Kind.Fields. Tokens after the last field and
// before a comment are kept in Extra.
type Record struct {
	Name    string
	Tag     string //the kind tag as written, LL, SL, IN, TD, HV...
	Kind    Kind
	Values  []string
	Extra   []string
	Comment string //from the "!" on, empty if none.
	Line    int
	Raw     string
}

func (R *Record) index(field string) int {
	for i, v := range R.Kind.Fields() {
		if v == field {
			return i
		}
	}
	return -1
}

// Get returns the text of the given field and whether the record has it.
func (R *Record) Get(field string) (string, bool) {
	i := R.index(field)
	if i < 0 {
		return "", false
	}
	return R.Values[i], true
}

// Float returns the value of the given field as a number.
func (R *Record) Float(field string) (float64, error) {
	s, ok := R.Get(field)
	if !ok {
		return 0, atmos.NewError(atmos.ErrUnexpectedFormat, R.Line, R.Raw, "%s species %s has no field %s", R.Kind, R.Name, field)
	}
	f, err := atmos.ParseNumber(s)
	if err != nil {
		return 0, atmos.NewError(atmos.ErrMalformedNumber, R.Line, R.Raw, "field %s of %s: %q", field, R.Name, s)
	}
	return f, nil
}

// Set replaces the text of the given field.
func (R *Record) Set(field, value string) error {
	i := R.index(field)
	if i < 0 {
		return atmos.NewError(atmos.ErrUnexpectedFormat, R.Line, R.Raw, "%s species %s has no field %s", R.Kind, R.Name, field)
	}
	R.Values[i] = value
	return nil
}

// Tridiagonal returns true if the record belongs to the tridiagonal solver block.
func (R *Record) Tridiagonal() bool {
	return R.Kind == Other && R.Tag == "TD"
}

// String renders the record as a species file line, without the line break.
func (R *Record) String() string {
	var b strings.Builder
	b.WriteString(pad(R.Name, NameWidth))
	b.WriteString(pad(R.Tag, kindWidth))
	widths := R.Kind.widths()
	for i, f := range R.Kind.Fields() {
		b.WriteString(pad(R.Values[i], widths[f]))
	}
	for _, v := range R.Extra {
		b.WriteString(v + " ")
	}
	b.WriteString(R.Comment)
	return strings.TrimRight(b.String(), " ")
}

// pad returns word followed by enough spaces to fill width, and at least one.
func pad(word string, width int) string {
	n := width - len(word)
	if n < 1 {
		n = 1
	}
	return word + strings.Repeat(" ", n)
}

// parseRecord reads a record from a data line.
func parseRecord(line string, n int) (*Record, error) {
	R := &Record{Line: n, Raw: line}
	data := line
	if i := strings.Index(line, "!"); i >= 0 {
		data = line[:i]
		R.Comment = strings.TrimRight(line[i:], " \t")
	}
	tokens := strings.Fields(data)
	if len(tokens) < 2 {
		return nil, atmos.NewError(atmos.ErrUnknownRecordKind, n, line, "record without a kind")
	}
	R.Name = tokens[0]
	R.Tag = tokens[1]
	R.Kind = kindOf(R.Tag)
	nf := len(R.Kind.Fields())
	if len(tokens)-2 < nf {
		return nil, atmos.NewError(atmos.ErrUnknownRecordKind, n, line, "%s record %s has %d fields, %d needed", R.Kind, R.Name, len(tokens)-2, nf)
	}
	R.Values = append([]string(nil), tokens[2:2+nf]...)
	if len(tokens) > 2+nf {
		R.Extra = append([]string(nil), tokens[2+nf:]...)
	}
	return R, nil
}

// File is a species definition file. Records are kept in the order they were read.
type File struct {
	Records []*Record
}

// Read reads a species file. Lines starting with "*" and blank lines are ignored.
func Read(r io.Reader) (*File, error) {
	F := new(File)
	br := bufio.NewReader(r)
	n := 0
	for {
		s, err := br.ReadString('\n')
		if s != "" {
			n++
			line := strings.TrimRight(s, "\r\n")
			if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "*") {
				rec, err2 := parseRecord(line, n)
				if err2 != nil {
					return nil, err2
				}
				F.Records = append(F.Records, rec)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	atmos.Logger("species").Debug("read species file", zap.Int("records", len(F.Records)))
	return F, nil
}

// ReadFile reads the species file with the given name.
func ReadFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	F, err := Read(f)
	if err != nil {
		return nil, atmos.Decorate(err, "species.ReadFile", filepath.Base(name))
	}
	return F, nil
}

// Kind returns the records of kind k, in file order.
func (F *File) Kind(k Kind) []*Record {
	var ret []*Record
	for _, v := range F.Records {
		if v.Kind == k {
			ret = append(ret, v)
		}
	}
	return ret
}

// Get returns the first record with the given name, or nil.
func (F *File) Get(name string) *Record {
	for _, v := range F.Records {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Names returns the species names, in file order.
func (F *File) Names() []string {
	ret := make([]string, 0, len(F.Records))
	for _, v := range F.Records {
		ret = append(ret, v.Name)
	}
	return ret
}

// Write writes the file in the layout the model expects: the header, the long-lived
// species, the tridiagonal solver block, the short-lived, the inert, and the rest.
func (F *File) Write(w io.Writer) error {
	var td, other []*Record
	for _, v := range F.Kind(Other) {
		if v.Tridiagonal() {
			td = append(td, v)
		} else {
			other = append(other, v)
		}
	}
	bw := bufio.NewWriter(w)
	section := func(heading string, recs []*Record) {
		bw.WriteString(heading)
		for _, v := range recs {
			bw.WriteString(v.String())
			bw.WriteString("\n")
		}
	}
	section(Header, nil)
	section(LongLivedHeading, F.Kind(LongLived))
	section(TridiagHeading, td)
	section(ShortLivedHeading, F.Kind(ShortLived))
	section(InertHeading, F.Kind(Inert))
	section(OtherHeading, other)
	return bw.Flush()
}

// WriteFile writes the file to the given path.
func (F *File) WriteFile(name string) error {
	return atmos.WriteFile(name, F.Write)
}

// Modify applies mixing ratio (concentrations) and surface flux (fluxes) overrides.
// A concentration fixes the mixing ratio of a long-lived or inert species; a flux fixes
// the upward flux of a long-lived species. Nothing is modified if any override fails.
func (F *File) Modify(concentrations, fluxes map[string]float64) error {
	for _, name := range sortedKeys(concentrations) {
		if _, ok := fluxes[name]; ok {
			return atmos.NewError(atmos.ErrConflictingModification, 0, "", "species %s has both a concentration and a flux override", name)
		}
	}
	type change struct {
		rec    *Record
		fields map[string]string
	}
	var changes []change
	for _, name := range sortedKeys(concentrations) {
		rec := F.Get(name)
		if rec == nil {
			return atmos.NewError(atmos.ErrUnknownSpecies, 0, "", "concentration override for %s", name)
		}
		val := fmt.Sprintf(NumberFormat, concentrations[name])
		switch rec.Kind {
		case LongLived:
			changes = append(changes, change{rec, map[string]string{"LBOUND": ConcentrationLBOUND, "FIXEDMR": val}})
		case Inert:
			changes = append(changes, change{rec, map[string]string{"FIXEDMR": val}})
		default:
			return atmos.NewError(atmos.ErrUnknownSpecies, rec.Line, rec.Raw, "%s is %s, it takes no concentration override", name, rec.Kind)
		}
	}
	for _, name := range sortedKeys(fluxes) {
		rec := F.Get(name)
		if rec == nil {
			return atmos.NewError(atmos.ErrUnknownSpecies, 0, "", "flux override for %s", name)
		}
		if rec.Kind != LongLived {
			return atmos.NewError(atmos.ErrUnknownSpecies, rec.Line, rec.Raw, "%s is %s, it takes no flux override", name, rec.Kind)
		}
		changes = append(changes, change{rec, map[string]string{"LBOUND": FluxLBOUND, "SGFLUX": fmt.Sprintf(NumberFormat, fluxes[name])}})
	}
	log := atmos.Logger("species")
	for _, c := range changes {
		for f, v := range c.fields {
			if err := c.rec.Set(f, v); err != nil {
				return err
			}
		}
		log.Debug("modified species", zap.String("species", c.rec.Name), zap.Any("fields", c.fields))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
