package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/ui/components"
	"github.com/fenilsonani/project-forge/internal/ui/styles"
	uiutils "github.com/fenilsonani/project-forge/internal/ui/utils"
)

const (
	buttonOrganize = iota
	buttonBack
	buttonCancel
	buttonCount
)

var buttonLabels = [buttonCount]string{"Organize", "Back", "Cancel"}

// ConfirmViewModel shows the organize plan and asks for confirmation
type ConfirmViewModel struct {
	plan   *components.InfoPanel
	note   string
	cursor int
	width  int
	height int
}

// NewConfirmViewModel creates a confirm view for plan. A non-empty note is
// shown as a warning below the plan.
func NewConfirmViewModel(plan *components.InfoPanel, note string, width, height int) *ConfirmViewModel {
	if width == 0 {
		width = uiutils.DefaultWidth
	}
	return &ConfirmViewModel{
		plan:   plan,
		note:   note,
		cursor: buttonOrganize,
		width:  width,
		height: height,
	}
}

// Init initializes the confirm view
func (m *ConfirmViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ConfirmViewModel) Update(msg tea.Msg) (*ConfirmViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < buttonCount-1 {
				m.cursor++
			}
		case "tab":
			m.cursor = (m.cursor + 1) % buttonCount
		case "enter":
			return m, m.press(m.cursor)
		case "y":
			return m, m.press(buttonOrganize)
		case "b", "esc":
			return m, m.press(buttonBack)
		case "n":
			return m, m.press(buttonCancel)
		}
	}

	return m, nil
}

func (m *ConfirmViewModel) press(button int) tea.Cmd {
	switch button {
	case buttonOrganize:
		return func() tea.Msg { return ConfirmedMsg{} }
	case buttonBack:
		return func() tea.Msg { return BackMsg{} }
	default:
		return func() tea.Msg { return CancelMsg{} }
	}
}

// View renders the confirmation view
func (m *ConfirmViewModel) View() string {
	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	b.WriteString(styles.TitleStyle.Render("Confirm Organize"))
	b.WriteString("\n")
	b.WriteString(m.plan.Render(m.width))
	b.WriteString("\n\n")

	if m.note != "" {
		b.WriteString(styles.WarningStyle.Render(uiutils.Wrap(m.note, m.width-2)))
		b.WriteString("\n\n")
	}

	buttons := make([]string, 0, buttonCount)
	for i, label := range buttonLabels {
		style := styles.ButtonStyle
		if i == m.cursor {
			style = styles.ActiveButtonStyle
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(strings.Join(buttons, "  "))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Files are copied, never moved. The source tree is left untouched."))

	return b.String()
}
