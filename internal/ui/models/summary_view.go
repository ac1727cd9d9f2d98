package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/organizer"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/pkg/utils"
)

// SummaryViewModel handles the results view
type SummaryViewModel struct {
	result *project.OrganizeResult
	err    error
}

// NewSummaryViewModel creates a summary for a finished run. result may be
// partial when err is set.
func NewSummaryViewModel(result *project.OrganizeResult, err error) *SummaryViewModel {
	return &SummaryViewModel{result: result, err: err}
}

// Init initializes the summary view
func (m *SummaryViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SummaryViewModel) Update(msg tea.Msg) (*SummaryViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the summary view
func (m *SummaryViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Organize Summary"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.result != nil {
		b.WriteString(fmt.Sprintf("Project: %s\n", styles.FilePathStyle.Render(m.result.ProjectPath)))
		b.WriteString(fmt.Sprintf("Type:    %s\n", styles.ProjectTypeStyle(m.result.Detection.Type).Render(m.result.Detection.String())))

		if sw := m.result.Software; sw != nil {
			b.WriteString(fmt.Sprintf("Software: %d entries preserved\n", len(sw.Copied)))
			if len(sw.Failed) > 0 {
				b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("⚠ %d software entries failed to copy", len(sw.Failed))))
				b.WriteString("\n")
			}
		}

		if files := m.result.Files; files != nil {
			b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ Organized %d files", len(files.Organized))))
			b.WriteString(" ")
			b.WriteString(styles.FileSizeStyle.Render("(" + utils.FormatBytes(files.TotalBytes()) + ")"))
			b.WriteString("\n")

			if len(files.Skipped) > 0 {
				b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("⚠ Skipped %d files", len(files.Skipped))))
				b.WriteString("\n")
			}
			if summary := organizer.FormatErrorSummary(files.Failures()); summary != "" {
				b.WriteString(styles.DimStyle.Render(summary))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press q or enter to exit"))

	return b.String()
}
