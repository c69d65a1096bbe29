package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/fadedpez/cardroyale/internal/types"
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

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

func (l Level) charm() log.Level {
	switch l {
	case DEBUG:
		return log.DebugLevel
	case WARN:
		return log.WarnLevel
	case ERROR:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseLevel maps a config string such as "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger is a leveled printf-style logger with structured fields.
type Logger struct {
	base  *log.Logger
	level Level
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(level Level) *Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, level Level) *Logger {
	base := log.NewWithOptions(w, log.Options{
		Level:           level.charm(),
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
		ReportCaller:    true,
		CallerOffset:    1,
	})
	return &Logger{base: base, level: level}
}

// NewDiscard returns a logger that drops everything. Used by tests.
func NewDiscard() *Logger {
	return &Logger{
		base:  log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		level: ERROR,
	}
}

// With returns a child logger that adds keyvals to every line.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{base: l.base.With(keyvals...), level: l.level}
}

// WithPrefix returns a child logger with the given component prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{base: l.base.WithPrefix(prefix), level: l.level}
}

// Level returns the minimum level that is written.
func (l *Logger) Level() Level {
	return l.level
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

// LogError logs a GameError with appropriate context
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		keyvals := []interface{}{"code", gameErr.Code, "message", gameErr.Message}
		if gameErr.Err != nil {
			keyvals = append(keyvals, "cause", gameErr.Err)
		}
		l.base.Error("game error occurred", keyvals...)
		return
	}
	l.base.Error("unexpected error", "err", err)
}

// Or returns l, or Default when l is nil.
func (l *Logger) Or() *Logger {
	if l == nil {
		return Default
	}
	return l
}

// Default logger instance
var Default = NewLogger(INFO)
