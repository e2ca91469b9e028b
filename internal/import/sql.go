package import_pkg

import (
	"context"
	"fmt"

	"github.com/keyword-mapper/internal/db"
	"github.com/keyword-mapper/internal/match"
)

// SQLImporter reads crawl rows from a database table whose columns are named
// like the export headers ("Address", "Title 1", "H1-1", ...).
type SQLImporter struct {
	conn  *db.Connection
	table string
}

// NewSQLImporter creates an importer for table. An empty table selects the
// first user table of the database.
func NewSQLImporter(conn *db.Connection, table string) *SQLImporter {
	return &SQLImporter{conn: conn, table: table}
}

// Describe implements RecordSource.
func (si *SQLImporter) Describe() string {
	if si.table == "" {
		return si.conn.Driver
	}
	return si.conn.Driver + ":" + si.table
}

// Table resolves the table that LoadRecords reads.
func (si *SQLImporter) Table(ctx context.Context) (string, error) {
	if si.table != "" {
		return si.table, nil
	}
	table, err := si.conn.FirstUserTable(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find a crawl table: %w", err)
	}
	si.table = table
	return table, nil
}

// LoadRecords implements RecordSource. Rows come back in storage order, by
// rowid for sqlite tables that have one, so the tie-break stays stable across
// runs.
func (si *SQLImporter) LoadRecords(ctx context.Context) ([]match.Record, error) {
	table, err := si.Table(ctx)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT * FROM %s", db.QuoteIdent(table))
	if si.conn.HasRowID(ctx, table) {
		q += " ORDER BY rowid"
	}

	rows, err := si.conn.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	values := make([]any, len(cols))
	scans := make([]any, len(cols))
	for i := range values {
		scans[i] = &values[i]
	}

	var records []match.Record
	for rows.Next() {
		if err := rows.Scan(scans...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(records)+1, table, err)
		}
		record := make(match.Record, len(cols))
		for i, col := range cols {
			record[col] = stringValue(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	return records, nil
}
