// Package config loads keyword-mapper settings from defaults, an optional
// config file, KWMAP_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/keyword-mapper/internal/logger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KWMAP"

// Config is the resolved configuration of a keyword-mapper run.
type Config struct {
	KeywordsFile   string        `mapstructure:"keywords_file"`
	SiteExportFile string        `mapstructure:"site_export_file"`
	OutputFile     string        `mapstructure:"output_file"`
	ResultsFile    string        `mapstructure:"results_file"`
	Progress       bool          `mapstructure:"progress"`
	Log            logger.Config `mapstructure:"log"`
	Source         SourceConfig  `mapstructure:"source"`
	Match          MatchConfig   `mapstructure:"match"`
	Server         ServerConfig  `mapstructure:"server"`
}

// SourceConfig selects where candidate records come from.
type SourceConfig struct {
	// Type is csv, sqlite or postgres.
	Type  string `mapstructure:"type"`
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// MatchConfig tunes the scoring pass.
type MatchConfig struct {
	Workers     int  `mapstructure:"workers"`
	TraceScores bool `mapstructure:"trace_scores"`
}

// ServerConfig is the listen address of the report server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Source types.
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("keywords_file", "keywords.txt")
	v.SetDefault("site_export_file", "internal_all.csv")
	v.SetDefault("output_file", "keyword_mappings_final.csv")
	v.SetDefault("results_file", "keyword_mappings_final.csv")
	v.SetDefault("progress", true)

	v.SetDefault("log.level", logger.DefaultLevel)
	v.SetDefault("log.file", logger.DefaultFile)
	v.SetDefault("log.max_size_mb", logger.DefaultMaxSizeMB)
	v.SetDefault("log.max_backups", logger.DefaultMaxBackups)
	v.SetDefault("log.console", true)

	v.SetDefault("source.type", SourceCSV)
	v.SetDefault("source.dsn", "")
	v.SetDefault("source.table", "")

	v.SetDefault("match.workers", 1)
	v.SetDefault("match.trace_scores", false)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
}

// Load resolves the configuration. cfgFile may be empty, in which case
// ./keyword-mapper.yaml is used when present. bindings maps config keys to
// flag names in flags; only flags the user actually set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("keyword-mapper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range bindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind %s flag: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Log.SetDefaults()
	cfg.Source.Type = strings.ToLower(strings.TrimSpace(cfg.Source.Type))
	if cfg.Match.Workers < 1 {
		cfg.Match.Workers = 1
	}

	return &cfg, nil
}
