// Package xlogger builds log/slog loggers from configuration.
package xlogger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var ErrUnknownLevel = errors.New("unknown log level")

type Config struct {
	Level      string `yaml:"level" json:"level" default:"info"`
	LogType    string `yaml:"type" json:"type" default:"text"`
	AddSource  bool   `yaml:"add_source" json:"add_source"`
	SourcePath string `yaml:"source_path" json:"source_path"`
}

// Validate checks the fields that New would otherwise silently default.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.LogType) {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("unknown log type %q", c.LogType)
}

// New returns a logger writing to stderr, leaving stdout for command output.
func New(conf Config) *slog.Logger {
	return NewWriter(os.Stderr, conf)
}

// NewWriter returns a logger writing to w.
func NewWriter(w io.Writer, conf Config) *slog.Logger {
	level, err := ParseLevel(conf.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		AddSource:   conf.AddSource,
		Level:       level,
		ReplaceAttr: replaceAttr(conf),
	}

	return slog.New(getHandler(w, conf.LogType, opts))
}

// ParseLevel converts a case-insensitive level name. The empty string is
// info.
func ParseLevel(logLevel string) (slog.Level, error) {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, logLevel)
	}
}

func getHandler(w io.Writer, logType string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(logType) {
	case "json":
		return slog.NewJSONHandler(w, opts)

	default:
		return slog.NewTextHandler(w, opts)
	}
}

func replaceAttr(conf Config) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}

		source, ok := attr.Value.Any().(*slog.Source)
		if !ok || source == nil {
			return attr
		}

		file := source.File
		if conf.SourcePath != "" {
			if index := strings.Index(file, conf.SourcePath); index >= 0 {
				file = file[index+len(conf.SourcePath):]
			}
		}

		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, source.Line))
	}
}
