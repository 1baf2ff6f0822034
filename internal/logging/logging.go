// Package logging configures the logrus logger shared by every tmplsync
// component.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the configuration of the logger.
type Config struct {
	Level string `json:"level" yaml:"level"`
	Color bool   `json:"color" yaml:"color"`
	// File, when set, sends output to a size-rotated file instead of stderr.
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

// DefaultConfig returns the default configuration of the logger.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Color:      true,
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// Validate checks the level name.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return err
	}
	return nil
}

// New builds a logger from c. The returned closer releases the log file, if
// any, and is always safe to call.
func New(c Config) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	l := logrus.New()
	l.SetLevel(level)

	var out io.WriteCloser = nopCloser{os.Stderr}
	if c.File != "" {
		out = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
		}
	}
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   c.Color && c.File == "",
		DisableColors: !c.Color || c.File != "",
	})
	return l, out, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
