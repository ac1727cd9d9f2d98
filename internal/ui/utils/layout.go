package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/fenilsonani/project-forge/internal/ui/styles"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 60
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 16
	// DefaultWidth is assumed when the output is not a terminal
	DefaultWidth = 80
)

// TerminalWidth returns the width of f, or DefaultWidth when f is not a terminal
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Wrap word-wraps s at width
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// WrapIndented word-wraps s to fit width after indenting every line by n
func WrapIndented(s string, width, n int) string {
	if n < 0 {
		n = 0
	}
	inner := width - n
	if inner < 20 {
		inner = 20
	}
	return indent.String(wordwrap.String(s, inner), uint(n))
}

// Truncate shortens s to width cells, ending it with "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "...")
}

// TruncatePath shortens a path to maxWidth, keeping the file name and
// dropping leading directories first
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if maxWidth < 10 {
		return "..."
	}

	dir, file := filepath.Split(path)
	if len(file) > maxWidth-4 {
		return "..." + file[len(file)-(maxWidth-4):]
	}

	parts := strings.Split(filepath.Clean(dir), string(filepath.Separator))
	kept := file
	for i := len(parts) - 1; i >= 0; i-- {
		next := filepath.Join(parts[i], kept)
		if len(next)+4 > maxWidth {
			break
		}
		kept = next
	}
	return "..." + string(filepath.Separator) + kept
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}

// GetSizeWarningBanner returns a warning banner if terminal is too small
func GetSizeWarningBanner(width, height int) string {
	if width == 0 && height == 0 {
		return ""
	}
	if !IsTerminalTooSmall(width, height) {
		return ""
	}

	warning := fmt.Sprintf("Terminal too small, recommended %dx%d or larger", MinTerminalWidth, MinTerminalHeight)
	warning += styles.DimStyle.Render(fmt.Sprintf(" (current: %dx%d)", width, height))
	return styles.WarningStyle.Render(warning) + "\n\n"
}
