// Package import_pkg loads the two inputs of a mapping run: the keyword list
// and the crawled pages, from a site-export CSV/TSV or from a SQL table.
package import_pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keyword-mapper/internal/match"
)

var (
	// ErrNoHeader is returned when a site export has no header row.
	ErrNoHeader = errors.New("site export has no header row")
	// ErrNoKeywords is returned when a keywords file holds no non-blank line.
	ErrNoKeywords = errors.New("keywords file contains no keywords")
)

// RecordSource yields the candidate records of a crawl, in source order.
type RecordSource interface {
	LoadRecords(ctx context.Context) ([]match.Record, error)
	Describe() string
}

// CSVSource reads records from a site-export file.
type CSVSource struct {
	Path string
}

// LoadRecords implements RecordSource.
func (s CSVSource) LoadRecords(ctx context.Context) ([]match.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadSiteExport(s.Path)
}

// Describe implements RecordSource.
func (s CSVSource) Describe() string {
	return s.Path
}

// stringValue converts a scanned column value to its text form.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}
