package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "keywords.txt", cfg.KeywordsFile)
	assert.Equal(t, "internal_all.csv", cfg.SiteExportFile)
	assert.Equal(t, "keyword_mappings_final.csv", cfg.OutputFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "keyword_mapper.log", cfg.Log.File)
	assert.True(t, cfg.Log.Console)
	assert.Equal(t, SourceCSV, cfg.Source.Type)
	assert.Equal(t, 1, cfg.Match.Workers)
	assert.True(t, cfg.Progress)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address())
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mapper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
keywords_file: from-file.txt
output_file: from-file.csv
log:
  level: debug
match:
  workers: 2
source:
  type: SQLite
  dsn: crawl.db
`), 0o644))

	t.Setenv("KWMAP_OUTPUT_FILE", "from-env.csv")
	t.Setenv("KWMAP_MATCH_WORKERS", "3")

	flags := pflag.NewFlagSet("map", pflag.ContinueOnError)
	flags.String("output-file", "flag-default.csv", "")
	flags.Int("workers", 1, "")
	require.NoError(t, flags.Parse([]string{"--workers", "6"}))

	cfg, err := Load(cfgPath, flags, map[string]string{
		"output_file":   "output-file",
		"match.workers": "workers",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-file.txt", cfg.KeywordsFile)
	// unset flag does not shadow the environment
	assert.Equal(t, "from-env.csv", cfg.OutputFile)
	assert.Equal(t, 6, cfg.Match.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, SourceSQLite, cfg.Source.Type)
	assert.Equal(t, "crawl.db", cfg.Source.DSN)
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil, nil)
	require.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KWMAP_TEST_ONE=from-dotenv\nKWMAP_TEST_TWO=from-dotenv\n"), 0o644))
	t.Setenv("KWMAP_TEST_TWO", "already-set")
	t.Setenv("KWMAP_TEST_ONE", "")
	os.Unsetenv("KWMAP_TEST_ONE")

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "from-dotenv", os.Getenv("KWMAP_TEST_ONE"))
	assert.Equal(t, "already-set", os.Getenv("KWMAP_TEST_TWO"))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("KWMAP_STR", "value")
	t.Setenv("KWMAP_INT", "42")
	t.Setenv("KWMAP_BAD_INT", "x")
	t.Setenv("KWMAP_BOOL", "yes")

	assert.Equal(t, "value", GetEnv("KWMAP_STR", "d"))
	assert.Equal(t, "d", GetEnv("KWMAP_MISSING", "d"))
	assert.Equal(t, 42, GetEnvInt("KWMAP_INT", 1))
	assert.Equal(t, 1, GetEnvInt("KWMAP_BAD_INT", 1))
	assert.True(t, GetEnvBool("KWMAP_BOOL", false))
	assert.False(t, GetEnvBool("KWMAP_MISSING", false))
}
