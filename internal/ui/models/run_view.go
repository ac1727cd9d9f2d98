package models

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/internal/ui/utils"
)

// RunFunc performs the organize run. Manager.OrganizeExisting satisfies it.
type RunFunc func(ctx context.Context, req project.OrganizeRequest) (*project.OrganizeResult, error)

// RunViewModel shows a spinner and live counters while an organize runs
type RunViewModel struct {
	run       RunFunc
	req       project.OrganizeRequest
	reporter  *progress.Reporter
	updates   <-chan progress.Update
	ctx       context.Context
	cancel    context.CancelFunc
	spinner   spinner.Model
	current   *progress.Update
	startTime time.Time
	stopping  bool
	width     int
}

// NewRunViewModel creates a run view. reporter may be nil.
func NewRunViewModel(ctx context.Context, run RunFunc, req project.OrganizeRequest, reporter *progress.Reporter, width int) *RunViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	ctx, cancel := context.WithCancel(ctx)
	return &RunViewModel{
		run:       run,
		req:       req,
		reporter:  reporter,
		ctx:       ctx,
		cancel:    cancel,
		spinner:   s,
		startTime: time.Now(),
		width:     width,
	}
}

// Init starts the run and the spinner
func (m *RunViewModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.performOrganize}
	if m.reporter != nil {
		m.updates = m.reporter.Subscribe()
		cmds = append(cmds, waitForUpdate(m.updates))
	}
	return tea.Batch(cmds...)
}

// Stop cancels the run. The view keeps spinning until the run returns.
func (m *RunViewModel) Stop() {
	m.stopping = true
	m.cancel()
}

// Update handles messages
func (m *RunViewModel) Update(msg tea.Msg) (*RunViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		u := msg.Update
		m.current = &u
		return m, waitForUpdate(m.updates)

	case OrganizeDoneMsg:
		m.cancel()
		if m.reporter != nil && m.updates != nil {
			m.reporter.Unsubscribe(m.updates)
			m.updates = nil
		}
	}

	return m, nil
}

// View renders the run view
func (m *RunViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Organizing " + m.req.Name))
	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(progress.Format(m.current))
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render("(" + progress.FormatDuration(time.Since(m.startTime)) + ")"))
	b.WriteString("\n")

	if m.current != nil && m.current.CurrentFile != "" {
		b.WriteString(styles.FilePathStyle.Render(utils.TruncatePath(m.current.CurrentFile, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.stopping {
		b.WriteString(styles.WarningStyle.Render("Stopping after the current file..."))
	} else {
		b.WriteString(styles.HelpStyle.Render("ctrl+c stops after the current file"))
	}

	return b.String()
}

func (m *RunViewModel) performOrganize() tea.Msg {
	result, err := m.run(m.ctx, m.req)
	return OrganizeDoneMsg{Result: result, Err: err}
}

// waitForUpdate blocks for the next progress update. A closed channel
// yields no message.
func waitForUpdate(ch <-chan progress.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{Update: u}
	}
}
