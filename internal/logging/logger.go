package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fadedpez/tucobet/internal/types"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var charmLevels = map[Level]log.Level{
	DEBUG: log.DebugLevel,
	INFO:  log.InfoLevel,
	WARN:  log.WarnLevel,
	ERROR: log.ErrorLevel,
}

// String returns the level name
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps a config string such as "debug" or "WARN" to a Level
func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger is our leveled logger backed by charmbracelet/log
type Logger struct {
	base  *log.Logger
	level Level
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(level Level) *Logger {
	return NewLoggerTo(os.Stdout, level, "")
}

// NewLoggerTo creates a logger writing to w with an optional prefix
func NewLoggerTo(w io.Writer, level Level, prefix string) *Logger {
	base := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		CallerOffset:    1,
		TimeFormat:      "2006-01-02 15:04:05.000",
		Prefix:          prefix,
		Level:           charmLevels[level],
	})
	return &Logger{base: base, level: level}
}

// Level returns the minimum level that is emitted
func (l *Logger) Level() Level {
	return l.level
}

// With returns a child logger that attaches key/value pairs to every line
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{base: l.base.With(keyvals...), level: l.level}
}

// WithPrefix returns a child logger with a different prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{base: l.base.WithPrefix(prefix), level: l.level}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.base.Debugf(format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.base.Infof(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.base.Warnf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.base.Errorf(format, v...)
}

// LogError logs a GameError with its code and cause as structured fields
func (l *Logger) LogError(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		keyvals := []interface{}{"code", gameErr.Code}
		if gameErr.Err != nil {
			keyvals = append(keyvals, "cause", gameErr.Err)
		}
		l.base.Error(gameErr.Message, keyvals...)
		return
	}
	l.base.Error("unexpected error", "err", err)
}

// Default logger instance
var Default = NewLogger(INFO)
