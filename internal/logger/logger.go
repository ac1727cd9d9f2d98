// Package logger provides the leveled loggers used across project-forge.
//
// Output is "[HH:MM:SS] [LEVEL] message". Colors are used only when the
// writer is a terminal and NO_COLOR is not set.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger is the logging surface the core packages depend on
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Level is a minimum severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel accepts debug, info, warn(ing) and error, case-insensitive.
// Anything else is info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ConsoleLogger writes leveled messages to a writer. Safe for concurrent use.
type ConsoleLogger struct {
	mu          sync.Mutex
	writer      io.Writer
	file        *os.File
	level       Level
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger. A nil writer discards everything.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       ParseLevel(level),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// NewFileLogger appends plain (uncolored) lines to path
func NewFileLogger(path, level string) (*ConsoleLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewConsoleLogger(file, level)
	l.file = file
	l.colorOutput = false
	return l, nil
}

func isTerminal(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetLevel changes the minimum level
func (l *ConsoleLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Enabled reports whether messages at level are written
func (l *ConsoleLogger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer != nil && level >= l.level
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

func (l *ConsoleLogger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil || level < l.level {
		return
	}

	ts := l.now().Format("15:04:05")
	tag := level.String()
	if l.colorOutput {
		tag = levelColor(level).Sprint(tag)
	}

	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, tag, fmt.Sprintf(format, args...))
}

func levelColor(level Level) *color.Color {
	switch level {
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// Close closes the log file, if any
func (l *ConsoleLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.writer = nil
		return err
	}
	return nil
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// OrNop returns l, or a NopLogger when l is nil
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
