// Package logger provides the structured logger used by every keyword-mapper command.
package logger

import (
	"errors"
	"io"
)

// ErrInvalidLevel is returned when a log level name is not recognised.
var ErrInvalidLevel = errors.New("invalid logging level")

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn/warning, error).
	Level string `mapstructure:"level"`
	// File is the path of the rotating log file. Empty disables file output.
	File string `mapstructure:"file"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `mapstructure:"max_backups"`
	// Console enables output to stdout.
	Console bool `mapstructure:"console"`
	// Output replaces stdout as the console destination.
	Output io.Writer `mapstructure:"-"`
}

// Default configuration values.
const (
	DefaultLevel      = "info"
	DefaultFile       = "keyword_mapper.log"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
)

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.MaxBackups < 0 {
		c.MaxBackups = DefaultMaxBackups
	}
}
