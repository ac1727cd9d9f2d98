package models

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/detector"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/ui/components"
	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/pkg/utils"
)

// Step is the current screen of the organize wizard
type Step int

const (
	StepName Step = iota
	StepStatus
	StepPattern
	StepConfirm
	StepRunning
	StepSummary
	StepHelp
)

// WizardOptions configures an organize wizard
type WizardOptions struct {
	// Request carries the source and the preselected name, status and pattern
	Request   project.OrganizeRequest
	Detection detector.Detection
	Statuses  []Option
	Patterns  []Option
	// ProjectPath resolves where a project would be created
	ProjectPath func(name, status string) string
	// ValidateName checks the typed project name; nil accepts any non-empty name
	ValidateName func(string) error
	Run          RunFunc
	Progress     *progress.Reporter
}

// AppModel is the root model of the interactive organize wizard
type AppModel struct {
	step         Step
	previousStep Step

	opts WizardOptions
	req  project.OrganizeRequest
	ctx  context.Context

	promptView  *PromptViewModel
	statusView  *PickerViewModel
	patternView *PickerViewModel
	confirmView *ConfirmViewModel
	runView     *RunViewModel
	summaryView *SummaryViewModel

	result    *project.OrganizeResult
	err       error
	cancelled bool

	width  int
	height int
}

// NewAppModel creates the wizard. ctx bounds the organize run.
func NewAppModel(ctx context.Context, opts WizardOptions) *AppModel {
	validate := opts.ValidateName
	if validate == nil {
		validate = func(s string) error {
			if s == "" {
				return fmt.Errorf("project name cannot be empty")
			}
			return nil
		}
	}
	opts.ValidateName = validate

	m := &AppModel{
		step: StepName,
		opts: opts,
		req:  opts.Request,
		ctx:  ctx,
	}
	m.promptView = NewPromptViewModel("Project name", "my-project", m.req.Name, validate)
	return m
}

// Init initializes the model
func (m *AppModel) Init() tea.Cmd {
	return m.promptView.Init()
}

// Step returns the current screen
func (m *AppModel) Step() Step {
	return m.step
}

// Request returns the request as edited so far
func (m *AppModel) Request() project.OrganizeRequest {
	return m.req
}

// Result returns the organize result, nil until a run finished
func (m *AppModel) Result() *project.OrganizeResult {
	return m.result
}

// Err returns the error of the organize run
func (m *AppModel) Err() error {
	return m.err
}

// Cancelled reports whether the user left before starting a run
func (m *AppModel) Cancelled() bool {
	return m.cancelled
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step == StepHelp {
			m.step = m.previousStep
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			switch m.step {
			case StepRunning:
				m.runView.Stop()
				return m, nil
			case StepSummary:
				return m, tea.Quit
			default:
				m.cancelled = true
				return m, tea.Quit
			}
		case "?":
			// the name prompt takes "?" as text
			if m.step != StepName && m.step != StepRunning {
				m.previousStep = m.step
				m.step = StepHelp
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SubmittedMsg:
		m.req.Name = msg.Value
		m.statusView = NewPickerViewModel("Status folder", m.opts.Statuses, m.req.Status, m.width)
		m.step = StepStatus
		return m, nil

	case PickedMsg:
		switch m.step {
		case StepStatus:
			m.req.Status = msg.Option.Value
			m.patternView = NewPickerViewModel("File naming", m.opts.Patterns, m.req.Pattern, m.width)
			m.step = StepPattern
		case StepPattern:
			m.req.Pattern = msg.Option.Value
			m.confirmView = NewConfirmViewModel(m.plan(), m.existingNote(), m.width, m.height)
			m.step = StepConfirm
		}
		return m, nil

	case BackMsg:
		switch m.step {
		case StepName:
			m.cancelled = true
			return m, tea.Quit
		case StepStatus:
			m.step = StepName
		case StepPattern:
			m.step = StepStatus
		case StepConfirm:
			m.step = StepPattern
		}
		return m, nil

	case ConfirmedMsg:
		m.runView = NewRunViewModel(m.ctx, m.opts.Run, m.req, m.opts.Progress, m.width)
		m.step = StepRunning
		return m, m.runView.Init()

	case CancelMsg:
		m.cancelled = true
		return m, tea.Quit

	case OrganizeDoneMsg:
		if m.runView != nil {
			m.runView.Update(msg)
		}
		m.result = msg.Result
		m.err = msg.Err
		m.summaryView = NewSummaryViewModel(msg.Result, msg.Err)
		m.step = StepSummary
		return m, nil
	}

	return m.delegateUpdate(msg)
}

// delegateUpdate delegates the update to the current view
func (m *AppModel) delegateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.step {
	case StepName:
		m.promptView, cmd = m.promptView.Update(msg)
	case StepStatus:
		m.statusView, cmd = m.statusView.Update(msg)
	case StepPattern:
		m.patternView, cmd = m.patternView.Update(msg)
	case StepConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case StepRunning:
		m.runView, cmd = m.runView.Update(msg)
	case StepSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	}

	return m, cmd
}

// View renders the current view
func (m *AppModel) View() string {
	var body string
	var bar *components.StatusBar

	switch m.step {
	case StepName:
		body = m.header() + m.promptView.View()
		bar = components.NewStatusBar("1/4 Name",
			components.Shortcut{Key: "enter", Desc: "next"},
			components.Shortcut{Key: "esc", Desc: "cancel"})
	case StepStatus:
		body = m.header() + m.statusView.View()
		bar = components.NewStatusBar("2/4 Status", pickerShortcuts()...)
	case StepPattern:
		body = m.header() + m.patternView.View()
		bar = components.NewStatusBar("3/4 Naming", pickerShortcuts()...)
	case StepConfirm:
		body = m.confirmView.View()
		bar = components.NewStatusBar("4/4 Confirm",
			components.Shortcut{Key: "←/→", Desc: "move"},
			components.Shortcut{Key: "y", Desc: "organize"},
			components.Shortcut{Key: "b", Desc: "back"},
			components.Shortcut{Key: "n", Desc: "cancel"})
	case StepRunning:
		return m.runView.View()
	case StepSummary:
		return m.summaryView.View()
	case StepHelp:
		return m.renderHelp()
	default:
		return "Loading..."
	}

	return body + "\n" + bar.Render(m.width)
}

func (m *AppModel) header() string {
	var b strings.Builder
	b.WriteString(styles.DimStyle.Render("Source: "))
	b.WriteString(styles.FilePathStyle.Render(m.req.Source))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Type:   "))
	b.WriteString(styles.ProjectTypeStyle(m.opts.Detection.Type).Render(m.opts.Detection.String()))
	b.WriteString("\n\n")
	return b.String()
}

func (m *AppModel) projectPath() string {
	if m.opts.ProjectPath == nil {
		return ""
	}
	return m.opts.ProjectPath(m.req.Name, m.req.Status)
}

// plan lists what the run will do
func (m *AppModel) plan() *components.InfoPanel {
	panel := components.NewInfoPanel("Plan")
	panel.AddItem("Source", m.req.Source)
	panel.AddItem("Project", m.projectPath())
	panel.AddItem("Type", m.opts.Detection.String())
	if m.opts.Detection.IsSoftware() {
		panel.AddItem("Software", "copied verbatim into software/")
	}
	naming := "keep original names"
	if m.req.Pattern != "" {
		naming = m.req.Pattern
	}
	panel.AddItem("Naming", naming)
	if m.req.Verify {
		panel.AddItem("Verify", "SHA-256 of every copy")
	}
	return panel
}

func (m *AppModel) existingNote() string {
	if path := m.projectPath(); path != "" && utils.Exists(path) {
		return "This project already exists. New files are added next to the existing ones and name clashes get a numeric suffix."
	}
	return ""
}

func pickerShortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "↑/↓", Desc: "move"},
		{Key: "enter", Desc: "select"},
		{Key: "esc", Desc: "back"},
		{Key: "?", Desc: "help"},
	}
}

// renderHelp renders the help view for the step it was opened from
func (m *AppModel) renderHelp() string {
	var b strings.Builder

	var helpContent string
	switch m.previousStep {
	case StepStatus:
		helpContent = `Choose the status folder the project is created in.

  ↑/k, ↓/j  Move
  g, G      First, last
  enter     Select
  esc       Back to the project name`
	case StepPattern:
		helpContent = `Choose how organized files are renamed.
"keep original names" copies files under their current names.

  ↑/k, ↓/j  Move
  enter     Select
  esc       Back to the status folder`
	case StepConfirm:
		helpContent = `Review the plan before anything is written.

  ←/→, tab  Switch button
  enter     Press the highlighted button
  y         Organize
  b, esc    Back
  n         Cancel`
	default:
		helpContent = `Press ctrl+c at any time to leave.`
	}

	b.WriteString(styles.TitleStyle.Render("Help"))
	b.WriteString("\n")
	b.WriteString(helpContent)
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Press any key to close"))

	return b.String()
}

// SubmittedMsg carries the text entered in a prompt
type SubmittedMsg struct {
	Value string
}

// PickedMsg carries the option chosen in a picker
type PickedMsg struct {
	Option Option
}

// BackMsg asks to return to the previous step
type BackMsg struct{}

// ConfirmedMsg starts the organize run
type ConfirmedMsg struct{}

// CancelMsg leaves the wizard without running
type CancelMsg struct{}

// ProgressMsg forwards one progress update
type ProgressMsg struct {
	Update progress.Update
}

// OrganizeDoneMsg reports the end of the organize run
type OrganizeDoneMsg struct {
	Result *project.OrganizeResult
	Err    error
}
