package import_pkg

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/keyword-mapper/internal/match"
)

const sniffRunes = 1024

// LoadSiteExport reads a Screaming Frog style export. The delimiter is tab
// when the first 1024 characters hold more tabs than commas, comma otherwise.
// Header names are kept verbatim; with duplicate names the last column wins.
func LoadSiteExport(path string) ([]match.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open site export %s: %w", path, err)
	}
	defer file.Close()

	records, err := ReadSiteExport(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadSiteExport parses site-export rows from r.
func ReadSiteExport(r io.Reader) ([]match.Record, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	sample, _ := br.Peek(sniffRunes * utf8.UTFMax)

	reader := csv.NewReader(br)
	reader.Comma = DetectDelimiter(sample)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []match.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+2, err)
		}

		record := make(match.Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			record[name] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}

// DetectDelimiter picks tab or comma from the first 1024 characters of sample.
func DetectDelimiter(sample []byte) rune {
	var text strings.Builder
	n := 0
	for len(sample) > 0 && n < sniffRunes {
		r, size := utf8.DecodeRune(sample)
		text.WriteRune(r)
		sample = sample[size:]
		n++
	}

	s := text.String()
	tabs := strings.Count(s, "\t")
	if tabs > 0 && tabs > strings.Count(s, ",") {
		return '\t'
	}
	return ','
}
