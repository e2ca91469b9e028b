package match

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/keyword-mapper/internal/normalize"
)

// Screaming Frog "Internal: All" column names read by the scorer.
const (
	ColumnAddress         = "Address"
	ColumnTitle           = "Title 1"
	ColumnH1              = "H1-1"
	ColumnH2              = "H2-1"
	ColumnMetaDescription = "Meta Description 1"
	ColumnMetaKeywords    = "Meta Keywords 1"
)

// URLColumns are the header spellings of the URL column, in lookup order.
// Exports saved by spreadsheet tools often carry a byte-order mark or stray quotes.
var URLColumns = []string{
	ColumnAddress,
	"\ufeff" + ColumnAddress,
	`"` + ColumnAddress + `"`,
	"address",
	"URL",
}

var scoredColumns = []string{
	ColumnTitle,
	ColumnH1,
	ColumnMetaDescription,
	ColumnH2,
	ColumnMetaKeywords,
}

// ErrMalformedRecord is returned when a record's fields cannot be extracted.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one row of a site export, keyed by column header.
// A missing column and an empty value are equivalent.
type Record map[string]string

// Get returns the raw value of a column.
func (r Record) Get(column string) string {
	return r[column]
}

// URL resolves the page address through URLColumns. The first alias holding a
// non-empty value wins, even when it trims to "".
func (r Record) URL() string {
	for _, column := range URLColumns {
		if v, ok := r[column]; ok && v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Prepared is a record with its scored fields normalized once up front.
type Prepared struct {
	Record Record
	URL    string
	Fields [fieldCount]string
	// Err is set when extraction failed; such a record scores 0 for every keyword.
	Err error
}

// Text returns the normalized text of a field.
func (p *Prepared) Text(f Field) string {
	return p.Fields[f]
}

// Prepare extracts and normalizes the scored fields of a record.
func Prepare(r Record) Prepared {
	p := Prepared{Record: r, URL: r.URL()}

	for _, column := range append([]string{ColumnAddress}, scoredColumns...) {
		value := r.Get(column)
		if column == ColumnAddress {
			value = p.URL
		}
		if !utf8.ValidString(value) {
			p.Err = fmt.Errorf("%w: invalid UTF-8 in %s", ErrMalformedRecord, column)
			return p
		}
	}

	p.Fields[FieldTitle] = normalize.Text(r.Get(ColumnTitle))
	p.Fields[FieldH1] = normalize.Text(r.Get(ColumnH1))
	p.Fields[FieldURL] = normalize.URLWords(p.URL)
	p.Fields[FieldMetaDescription] = normalize.Text(r.Get(ColumnMetaDescription))
	p.Fields[FieldH2] = normalize.Text(r.Get(ColumnH2))
	p.Fields[FieldMetaKeywords] = normalize.Text(r.Get(ColumnMetaKeywords))

	return p
}

// PrepareAll prepares records preserving their order.
func PrepareAll(records []Record) []Prepared {
	prepared := make([]Prepared, len(records))
	for i, r := range records {
		prepared[i] = Prepare(r)
	}
	return prepared
}
