package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/ui/styles"
)

// PromptViewModel asks for a single line of text
type PromptViewModel struct {
	title    string
	input    textinput.Model
	validate func(string) error
	err      error
}

// NewPromptViewModel creates a focused prompt prefilled with value
func NewPromptViewModel(title, placeholder, value string, validate func(string) error) *PromptViewModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 48
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()

	return &PromptViewModel{
		title:    title,
		input:    ti,
		validate: validate,
	}
}

// Init initializes the prompt view
func (m *PromptViewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the trimmed input
func (m *PromptViewModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Update handles messages
func (m *PromptViewModel) Update(msg tea.Msg) (*PromptViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := m.Value()
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.err = nil
			return m, func() tea.Msg { return SubmittedMsg{Value: value} }
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m *PromptViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}
