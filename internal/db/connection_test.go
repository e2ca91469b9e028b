package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Connection {
	t.Helper()
	conn, err := Open(context.Background(), SourceConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "crawl.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), SourceConfig{Driver: "mysql", DSN: "x"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), SourceConfig{Driver: "sqlite"})
	require.Error(t, err)
}

func TestFirstUserTableAndCountRows(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	_, err := conn.FirstUserTable(ctx)
	require.ErrorIs(t, err, ErrNoTables)

	_, err = conn.DB.ExecContext(ctx, `CREATE TABLE "internal_all" ("Address" TEXT, "Title 1" TEXT)`)
	require.NoError(t, err)
	_, err = conn.DB.ExecContext(ctx, `INSERT INTO "internal_all" VALUES ('https://site.com/a', 'A'), ('https://site.com/b', 'B')`)
	require.NoError(t, err)

	table, err := conn.FirstUserTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "internal_all", table)

	n, err := conn.CountRows(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = conn.CountRows(ctx, "missing")
	require.Error(t, err)
}

func TestHasRowID(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	for _, stmt := range []string{
		`CREATE TABLE "internal_all" ("Address" TEXT, "Title 1" TEXT)`,
		`CREATE TABLE "pages" ("Address" TEXT PRIMARY KEY, "Title 1" TEXT) WITHOUT ROWID`,
		`CREATE VIEW "crawl" AS SELECT * FROM "internal_all"`,
	} {
		_, err := conn.DB.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	assert.True(t, conn.HasRowID(ctx, "internal_all"))
	assert.False(t, conn.HasRowID(ctx, "pages"))
	assert.False(t, conn.HasRowID(ctx, "crawl"))
	assert.False(t, conn.HasRowID(ctx, "missing"))

	pg := &Connection{DB: conn.DB, Driver: DriverPostgres}
	assert.False(t, pg.HasRowID(ctx, "internal_all"))
}

func TestPostgresDSNFromEnv(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "15432")
	t.Setenv("PGUSER", "seo")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("PGDATABASE", "crawls")
	t.Setenv("PGSSLMODE", "")

	assert.Equal(t,
		"host=db.internal port=15432 user=seo dbname=crawls sslmode=disable password=secret",
		PostgresDSNFromEnv())
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"Title 1"`, QuoteIdent("Title 1"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
}
