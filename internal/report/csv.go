// Package report writes mapping results and summarizes them.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/keyword-mapper/internal/match"
)

// Header is the column order of a result file.
var Header = []string{
	"keyword",
	"matched_url",
	"match_score",
	"page_title",
	"h1_heading",
	"meta_description",
	"match_quality",
}

// Placeholders written in the matched_url column.
const (
	NoMatch  = "NO_MATCH"
	URLError = "URL_ERROR"
)

// Column limits, in characters.
const (
	maxTitleChars           = 150
	maxH1Chars              = 100
	maxMetaDescriptionChars = 200
)

// ErrMalformedResults is returned when a result file cannot be read back.
var ErrMalformedResults = errors.New("malformed results file")

// Row is one line of a result file.
type Row struct {
	Keyword         string        `json:"keyword"`
	MatchedURL      string        `json:"matched_url"`
	Score           float64       `json:"match_score"`
	Title           string        `json:"page_title"`
	H1              string        `json:"h1_heading"`
	MetaDescription string        `json:"meta_description"`
	Quality         match.Quality `json:"match_quality"`
}

// Matched reports whether the row carries an accepted match.
func (r Row) Matched() bool {
	return r.Quality != match.QualityNone
}

// Rows lays out one row per keyword line, in input order.
func Rows(store *match.Store) []Row {
	tiers := match.DefaultTiers()
	keywords := store.Keywords()
	rows := make([]Row, 0, len(keywords))

	for _, keyword := range keywords {
		entry, _ := store.Get(keyword)
		if !entry.IsMatched() {
			rows = append(rows, Row{Keyword: keyword, MatchedURL: NoMatch, Quality: match.QualityNone})
			continue
		}

		c := entry.Candidate
		url := c.URL
		if url == "" {
			url = URLError
		}
		rows = append(rows, Row{
			Keyword:         keyword,
			MatchedURL:      url,
			Score:           c.Score,
			Title:           truncate(c.Title, maxTitleChars),
			H1:              truncate(c.H1, maxH1Chars),
			MetaDescription: truncate(c.MetaDescription, maxMetaDescriptionChars),
			Quality:         tiers.Quality(c.Score),
		})
	}
	return rows
}

// Write writes the result CSV for store to w.
func Write(w io.Writer, store *match.Store) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range Rows(store) {
		record := []string{
			row.Keyword,
			row.MatchedURL,
			strconv.FormatFloat(row.Score, 'f', 2, 64),
			row.Title,
			row.H1,
			row.MetaDescription,
			string(row.Quality),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", row.Keyword, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSV writes the result file at path, replacing any existing file.
func WriteCSV(path string, store *match.Store) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(file, store); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Read parses result rows from r.
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedResults, err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformedResults, i+1, header[i], name)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResults, err)
		}

		score, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad score %q", ErrMalformedResults, len(rows)+2, record[2])
		}
		rows = append(rows, Row{
			Keyword:         record[0],
			MatchedURL:      record[1],
			Score:           score,
			Title:           record[3],
			H1:              record[4],
			MetaDescription: record[5],
			Quality:         match.Quality(record[6]),
		})
	}
	return rows, nil
}

// ReadCSV loads a result file back into a Mapping Store.
func ReadCSV(path string) (*match.Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return StoreFromRows(rows), nil
}

// StoreFromRows rebuilds a Mapping Store. NO_MATCH rows are unmatched and
// URL_ERROR rows are accepted matches with an empty URL.
func StoreFromRows(rows []Row) *match.Store {
	store := match.NewStore()
	for _, row := range rows {
		if row.MatchedURL == NoMatch {
			store.Set(row.Keyword, match.Unmatched())
			continue
		}
		url := row.MatchedURL
		if url == URLError {
			url = ""
		}
		store.Set(row.Keyword, match.Matched(&match.Candidate{
			URL:             url,
			Score:           row.Score,
			Title:           row.Title,
			H1:              row.H1,
			MetaDescription: row.MetaDescription,
		}))
	}
	return store
}

func truncate(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
