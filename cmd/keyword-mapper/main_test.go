package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/keyword-mapper/internal/logger"
	"github.com/keyword-mapper/internal/report"
)

const siteExport = `Address,Title 1,H1-1,Meta Description 1,H2-1
https://site.com/,Home,Welcome,,
https://site.com/red-shoes,Red Shoes Sale,Buy Red Shoes,Shop red shoes,
https://site.com/boots,Winter Boots,Boots,Warm boots for winter,
`

func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("keywords.txt", []byte("red shoes\nwinter boots\nzzz qqq\n"), 0o644))
	require.NoError(t, os.WriteFile("internal_all.csv", []byte(siteExport), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), args, &stdout, &stderr)
	return stdout.String() + stderr.String(), err
}

func readResults(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestMapCommand(t *testing.T) {
	dir := workspace(t)

	out, err := run(t, "map", "--no-progress", "--log-file", filepath.Join(dir, "run.log"))
	require.NoError(t, err)

	records := readResults(t, filepath.Join(dir, "keyword_mappings_final.csv"))
	require.Len(t, records, 4)
	assert.Equal(t, report.Header, records[0])
	assert.Equal(t, []string{"red shoes", "https://site.com/red-shoes", "140.00"}, records[1][:3])
	assert.Equal(t, "Excellent", records[1][6])
	assert.Equal(t, "https://site.com/boots", records[2][1])
	assert.Equal(t, []string{"zzz qqq", "NO_MATCH", "0.00", "", "", "", "None"}, records[3])

	assert.Contains(t, out, "Loaded 3 keywords from keywords.txt")
	assert.Contains(t, out, "Completed. 2/3 keywords matched.")
	assert.Contains(t, out, "KEYWORD MAPPING RESULTS")
	assert.Contains(t, out, "Match Rate: 66.7%")

	logData, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "INFO - Results saved to keyword_mappings_final.csv")
}

func TestMapCommandCustomPathsAndWorkers(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.Rename("keywords.txt", "kw.txt"))

	_, err := run(t, "map", "--no-progress", "--log-file", "",
		"--keywords-file", "kw.txt",
		"--screaming-frog-file", "internal_all.csv",
		"--output-file", "out.csv",
		"--workers", "4")
	require.NoError(t, err)

	records := readResults(t, filepath.Join(dir, "out.csv"))
	assert.Len(t, records, 4)
}

func TestMapCommandMissingKeywords(t *testing.T) {
	workspace(t)
	require.NoError(t, os.Remove("keywords.txt"))

	out, err := run(t, "map", "--no-progress", "--log-file", "")
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, out, "Error loading keywords")
	assert.NoFileExists(t, "keyword_mappings_final.csv")
}

func TestMapCommandMissingExport(t *testing.T) {
	workspace(t)

	_, err := run(t, "map", "--no-progress", "--log-file", "", "--screaming-frog-file", "nope.csv")
	require.Error(t, err)
	assert.NoFileExists(t, "keyword_mappings_final.csv")
}

func TestMapCommandSQLiteSource(t *testing.T) {
	dir := workspace(t)
	dbPath := filepath.Join(dir, "crawl.db")

	conn, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE pages ("Address" TEXT, "Title 1" TEXT, "H1-1" TEXT)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO pages VALUES ('https://site.com/red-shoes', 'Red Shoes Sale', 'Buy Red Shoes')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = run(t, "map", "--no-progress", "--log-file", "", "--source", "sqlite", "--dsn", dbPath)
	require.NoError(t, err)

	records := readResults(t, filepath.Join(dir, "keyword_mappings_final.csv"))
	require.Len(t, records, 4)
	assert.Equal(t, []string{"red shoes", "https://site.com/red-shoes", "120.00"}, records[1][:3])

	out, err := run(t, "ping", "--log-file", "", "--source", "sqlite", "--dsn", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Crawl rows in pages: 1")
}

func TestInvalidLogLevel(t *testing.T) {
	workspace(t)

	out, err := run(t, "map", "--log-level", "LOUD", "--log-file", "")
	require.ErrorIs(t, err, logger.ErrInvalidLevel)
	assert.Contains(t, out, "Error:")
}

func TestSummaryCommand(t *testing.T) {
	workspace(t)

	_, err := run(t, "map", "--no-progress", "--log-file", "", "--output-file", "results.csv")
	require.NoError(t, err)

	out, err := run(t, "summary", "--log-file", "", "--results", "results.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Keywords: 3")
	assert.Contains(t, out, "Matched Keywords: 2")

	require.NoError(t, os.WriteFile("broken.csv", []byte("not,a,result\n"), 0o644))
	_, err = run(t, "summary", "--log-file", "", "--results", "broken.csv")
	require.ErrorIs(t, err, report.ErrMalformedResults)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile("keyword-mapper.yaml", []byte("output_file: from-config.csv\nlog:\n  file: \"\"\nprogress: false\n"), 0o644))
	t.Setenv("KWMAP_KEYWORDS_FILE", "env-keywords.txt")
	require.NoError(t, os.WriteFile("env-keywords.txt", []byte("winter boots\n"), 0o644))

	_, err := run(t, "map")
	require.NoError(t, err)

	records := readResults(t, filepath.Join(dir, "from-config.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, "winter boots", records[1][0])
}

func TestVersionCommand(t *testing.T) {
	workspace(t)

	out, err := run(t, "version", "--log-file", "")
	require.NoError(t, err)
	assert.Contains(t, out, "keyword-mapper dev")
}
