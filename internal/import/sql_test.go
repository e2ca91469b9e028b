package import_pkg

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyword-mapper/internal/db"
	"github.com/keyword-mapper/internal/match"
)

func seedCrawl(t *testing.T) *db.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.SourceConfig{Driver: db.DriverSQLite, DSN: filepath.Join(t.TempDir(), "crawl.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.DB.ExecContext(ctx, `CREATE TABLE "internal_all" (
		"Address" TEXT, "Title 1" TEXT, "H1-1" TEXT, "Word Count" INTEGER)`)
	require.NoError(t, err)
	_, err = conn.DB.ExecContext(ctx, `INSERT INTO "internal_all" VALUES
		('https://site.com/red-shoes', 'Red Shoes Sale', 'Buy Red Shoes', 120),
		('https://site.com/boots', 'Winter Boots', NULL, 80)`)
	require.NoError(t, err)

	return conn
}

func TestSQLImporterLoadRecords(t *testing.T) {
	conn := seedCrawl(t)

	imp := NewSQLImporter(conn, "")
	records, err := imp.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "https://site.com/red-shoes", records[0].URL())
	assert.Equal(t, "Red Shoes Sale", records[0].Get(match.ColumnTitle))
	assert.Equal(t, "120", records[0].Get("Word Count"))
	assert.Equal(t, "", records[1].Get(match.ColumnH1))
	assert.Equal(t, "sqlite:internal_all", imp.Describe())
}

func TestSQLImporterFeedsScoring(t *testing.T) {
	conn := seedCrawl(t)

	records, err := NewSQLImporter(conn, "internal_all").LoadRecords(context.Background())
	require.NoError(t, err)

	sel := match.SelectBest("red shoes", match.PrepareAll(records))
	require.True(t, sel.Accepted)
	assert.Equal(t, 120.0, sel.Best.Score)
}

func TestSQLImporterReadsTablesWithoutRowID(t *testing.T) {
	conn := seedCrawl(t)
	ctx := context.Background()

	for _, stmt := range []string{
		`CREATE TABLE "pages" ("Address" TEXT PRIMARY KEY, "Title 1" TEXT) WITHOUT ROWID`,
		`INSERT INTO "pages" VALUES ('https://site.com/a', 'A'), ('https://site.com/b', 'B')`,
		`CREATE VIEW "crawl_view" AS SELECT "Address", "Title 1" FROM "internal_all"`,
	} {
		_, err := conn.DB.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	pages, err := NewSQLImporter(conn, "pages").LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "https://site.com/a", pages[0].URL())

	view, err := NewSQLImporter(conn, "crawl_view").LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, view, 2)
	assert.ElementsMatch(t,
		[]string{"https://site.com/red-shoes", "https://site.com/boots"},
		[]string{view[0].URL(), view[1].URL()})
}

func TestSQLImporterMissingTable(t *testing.T) {
	conn := seedCrawl(t)

	_, err := NewSQLImporter(conn, "nope").LoadRecords(context.Background())
	require.Error(t, err)
}
