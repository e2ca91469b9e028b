package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/keyword-mapper/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedDriver is returned for a source type other than postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// ErrNoTables is returned when a SQLite database holds no user tables.
var ErrNoTables = errors.New("no user tables found")

// SourceConfig describes the database a crawl export is read from.
type SourceConfig struct {
	Driver string
	// DSN is a postgres connection string or a sqlite file path. An empty
	// postgres DSN is built from the PG* environment variables.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Connection holds the database connection
type Connection struct {
	DB     *sql.DB
	Driver string
}

// Open opens and pings the configured database.
func Open(ctx context.Context, cfg SourceConfig) (*Connection, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := cfg.DSN

	switch driver {
	case DriverPostgres, "postgresql", "pg":
		driver = DriverPostgres
		if dsn == "" {
			dsn = PostgresDSNFromEnv()
		}
	case DriverSQLite, "sqlite3":
		driver = DriverSQLite
		if dsn == "" {
			return nil, fmt.Errorf("sqlite source requires a database path")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 2
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	return &Connection{DB: db, Driver: driver}, nil
}

// PostgresDSNFromEnv builds a connection string from PGHOST, PGPORT, PGUSER,
// PGPASSWORD, PGDATABASE and PGSSLMODE.
func PostgresDSNFromEnv() string {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnvInt("PGPORT", 5432)
	user := config.GetEnv("PGUSER", "postgres")
	password := config.GetEnv("PGPASSWORD", "")
	dbname := config.GetEnv("PGDATABASE", "seo")
	sslmode := config.GetEnv("PGSSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s", host, port, user, dbname, sslmode)
	if password != "" {
		dsn += " password=" + password
	}
	return dsn
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}

// FirstUserTable returns the alphabetically first user table.
func (c *Connection) FirstUserTable(ctx context.Context) (string, error) {
	q := `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`
	if c.Driver == DriverPostgres {
		q = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name LIMIT 1`
	}

	var name string
	if err := c.DB.QueryRowContext(ctx, q).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoTables
		}
		return "", err
	}
	return name, nil
}

// CountRows counts the rows of a table.
func (c *Connection) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", QuoteIdent(table))
	if err := c.DB.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

// HasRowID reports whether a sqlite table exposes rowid. Views and WITHOUT
// ROWID tables do not; postgres tables never do.
func (c *Connection) HasRowID(ctx context.Context, table string) bool {
	if c.Driver != DriverSQLite {
		return false
	}
	rows, err := c.DB.QueryContext(ctx, fmt.Sprintf("SELECT rowid FROM %s LIMIT 0", QuoteIdent(table)))
	if err != nil {
		return false
	}
	rows.Close()
	return true
}

// QuoteIdent quotes a table or column name for both postgres and sqlite.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
