package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/internal/ui/utils"
)

// Option is one choice of a picker
type Option struct {
	Label string
	Value string
	Desc  string
}

// PickerViewModel lets the user choose one option from a list
type PickerViewModel struct {
	title   string
	options []Option
	cursor  int
	width   int
}

// NewPickerViewModel creates a picker with the cursor on the option whose
// value equals selected, or on the first option
func NewPickerViewModel(title string, options []Option, selected string, width int) *PickerViewModel {
	m := &PickerViewModel{
		title:   title,
		options: options,
		width:   width,
	}
	for i, o := range options {
		if o.Value == selected {
			m.cursor = i
			break
		}
	}
	return m
}

// Init initializes the picker view
func (m *PickerViewModel) Init() tea.Cmd {
	return nil
}

// Selected returns the option under the cursor
func (m *PickerViewModel) Selected() (Option, bool) {
	if len(m.options) == 0 {
		return Option{}, false
	}
	return m.options[m.cursor], true
}

// Update handles messages
func (m *PickerViewModel) Update(msg tea.Msg) (*PickerViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if len(m.options) > 0 {
				m.cursor = len(m.options) - 1
			}
		case "enter", " ":
			if opt, ok := m.Selected(); ok {
				return m, func() tea.Msg { return PickedMsg{Option: opt} }
			}
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	return m, nil
}

// View renders the picker
func (m *PickerViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n")

	for i, o := range m.options {
		selected := i == m.cursor
		label := o.Label
		if selected {
			label = styles.SelectedStyle.Render(label)
		}
		b.WriteString(styles.Cursor(selected))
		b.WriteString(label)
		b.WriteString("\n")

		if o.Desc != "" && selected {
			b.WriteString(styles.DimStyle.Render(utils.WrapIndented(o.Desc, m.width, 4)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
