// Package logging adapts go-hclog to the field-map Logger used across the
// module. Output goes to stderr by default because stdout carries the MCP
// protocol stream.
package logging

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options configures a Logger.
type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer
}

// Logger implements cms.Logger on top of hclog.
type Logger struct {
	hclog hclog.Logger
}

// New creates a logger. Unknown levels fall back to info.
func New(opts Options) *Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	return &Logger{
		hclog: hclog.New(&hclog.LoggerOptions{
			Name:       opts.Name,
			Level:      ParseLevel(opts.Level),
			Output:     output,
			JSONFormat: opts.JSON,
		}),
	}
}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() *Logger {
	return &Logger{hclog: hclog.NewNullLogger()}
}

// ParseLevel maps a level name onto hclog; "" and unknown names mean info.
func ParseLevel(level string) hclog.Level {
	parsed := hclog.LevelFromString(strings.TrimSpace(level))
	if parsed == hclog.NoLevel {
		return hclog.Info
	}

	return parsed
}

// DebugEnabled reports whether level shows debug output.
func DebugEnabled(level string) bool {
	return ParseLevel(level) <= hclog.Debug
}

// Named returns a sub-logger with name appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{hclog: l.hclog.Named(name)}
}

// With returns a logger that always includes fields.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{hclog: l.hclog.With(args(fields)...)}
}

// HCLog exposes the underlying logger.
func (l *Logger) HCLog() hclog.Logger {
	return l.hclog
}

// IsDebug reports whether debug output is enabled.
func (l *Logger) IsDebug() bool {
	return l.hclog.IsDebug()
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.hclog.Debug(msg, args(fields)...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.hclog.Info(msg, args(fields)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.hclog.Warn(msg, args(fields)...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.hclog.Error(msg, args(fields)...)
}

// args flattens fields into hclog key/value pairs, sorted by key.
func args(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]interface{}, 0, len(keys)*2)
	for _, key := range keys {
		out = append(out, key, fields[key])
	}

	return out
}
