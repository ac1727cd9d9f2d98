package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/internal/ui/utils"
)

// Shortcut is one key hint shown in the status bar
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar displays the current step on the left and key hints on the right
type StatusBar struct {
	step      string
	shortcuts []Shortcut
}

// NewStatusBar creates a status bar for a wizard step
func NewStatusBar(step string, shortcuts ...Shortcut) *StatusBar {
	return &StatusBar{step: step, shortcuts: shortcuts}
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = utils.DefaultWidth
	}

	leftSide := styles.BoldStyle.Render(s.step)

	hints := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		hints = append(hints, fmt.Sprintf("%s:%s", styles.DimStyle.Render(sc.Key), sc.Desc))
	}
	rightSide := strings.Join(hints, " ")

	// -2 for padding
	spacing := width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if spacing < 1 {
		maxRight := width - lipgloss.Width(leftSide) - 3
		rightSide = utils.Truncate(rightSide, maxRight)
		spacing = 1
	}

	return styles.StatusBarStyle.Width(width).Render(leftSide + strings.Repeat(" ", spacing) + rightSide)
}
