package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
}

// TestLevelFiltering verifies that messages below the configured level are dropped
func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel Level
		shouldAppear bool
	}{
		{name: "debug sees debug", logLevel: "debug", messageLevel: LevelDebug, shouldAppear: true},
		{name: "debug sees error", logLevel: "debug", messageLevel: LevelError, shouldAppear: true},
		{name: "info blocks debug", logLevel: "info", messageLevel: LevelDebug, shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: LevelInfo, shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: LevelWarn, shouldAppear: true},
		{name: "warn blocks info", logLevel: "warn", messageLevel: LevelInfo, shouldAppear: false},
		{name: "warning alias", logLevel: "WARNING", messageLevel: LevelWarn, shouldAppear: true},
		{name: "error blocks warn", logLevel: "error", messageLevel: LevelWarn, shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: LevelError, shouldAppear: true},
		{name: "invalid defaults to info", logLevel: "loud", messageLevel: LevelDebug, shouldAppear: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewConsoleLogger(buf, tt.logLevel)

			switch tt.messageLevel {
			case LevelDebug:
				l.Debug("msg %d", 1)
			case LevelInfo:
				l.Info("msg %d", 1)
			case LevelWarn:
				l.Warn("msg %d", 1)
			case LevelError:
				l.Error("msg %d", 1)
			}

			contains := strings.Contains(buf.String(), "msg 1")
			if tt.shouldAppear && !contains {
				t.Errorf("expected message to appear, got %q", buf.String())
			}
			if !tt.shouldAppear && contains {
				t.Errorf("expected message to be filtered, got %q", buf.String())
			}
		})
	}
}

func TestFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")
	l.now = fixedClock

	l.Info("copied %s", "a.txt")

	want := "[09:05:07] [INFO] copied a.txt\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestBufferIsNeverColored(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "debug")

	l.Error("boom")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal writer should not get ANSI codes: %q", buf.String())
	}
}

func TestNilWriter(t *testing.T) {
	l := NewConsoleLogger(nil, "debug")
	l.Info("dropped")
	if l.Enabled(LevelError) {
		t.Error("nil writer should disable every level")
	}
}

func TestSetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "error")
	l.SetLevel(LevelDebug)

	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel should lower the threshold")
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.log")

	l, err := NewFileLogger(path, "info")
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	l.Warn("disk %s", "full")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "[WARN] disk full") {
		t.Errorf("unexpected log content %q", data)
	}

	// logging after close is a no-op
	l.Error("late")
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(NopLogger); !ok {
		t.Error("OrNop(nil) should return NopLogger")
	}

	l := NewConsoleLogger(nil, "info")
	if OrNop(l) != Logger(l) {
		t.Error("OrNop should pass through a non-nil logger")
	}
}
