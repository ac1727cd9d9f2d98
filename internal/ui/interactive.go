package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/project-forge/internal/config"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/ui/models"
)

// ErrCancelled is returned when the user leaves the wizard before organizing
var ErrCancelled = errors.New("organize cancelled")

// keepNames is the naming option that leaves file names unchanged
const keepNames = "keep original names"

// RunOrganizeWizard asks for the project name, status folder and naming
// pattern, then runs the organize with a live spinner. req supplies the
// source and the preselected answers.
func RunOrganizeWizard(ctx context.Context, mgr *project.Manager, reporter *progress.Reporter, req project.OrganizeRequest) (*project.OrganizeResult, error) {
	detection, err := mgr.DetectProjectType(req.Source)
	if err != nil {
		return nil, err
	}

	cfg := mgr.Config()
	if req.Status == "" {
		req.Status = cfg.Defaults.Status
	}

	m := models.NewAppModel(ctx, models.WizardOptions{
		Request:      req,
		Detection:    detection,
		Statuses:     StatusOptions(cfg, req.Status),
		Patterns:     PatternOptions(cfg),
		ProjectPath:  mgr.ProjectPath,
		ValidateName: project.ValidateName,
		Run:          mgr.OrganizeExisting,
		Progress:     reporter,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running interactive mode: %w", err)
	}

	app, ok := final.(*models.AppModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	if app.Cancelled() {
		return nil, ErrCancelled
	}
	return app.Result(), app.Err()
}

// StatusOptions lists the configured master folders. current is appended
// when it is not one of them.
func StatusOptions(cfg *config.Config, current string) []models.Option {
	options := make([]models.Option, 0, len(cfg.MasterFolders)+1)
	found := false
	for _, f := range cfg.MasterFolders {
		options = append(options, models.Option{Label: f.Name, Value: f.Name, Desc: f.Description})
		if f.Name == current {
			found = true
		}
	}
	if !found && current != "" {
		options = append(options, models.Option{Label: current, Value: current})
	}
	return options
}

// PatternOptions lists "keep original names" followed by the configured
// naming patterns in name order
func PatternOptions(cfg *config.Config) []models.Option {
	names := make([]string, 0, len(cfg.NamingPatterns))
	for name := range cfg.NamingPatterns {
		names = append(names, name)
	}
	sort.Strings(names)

	options := []models.Option{{Label: keepNames, Value: ""}}
	for _, name := range names {
		p := cfg.NamingPatterns[name]
		desc := p.Description
		if p.Example != "" {
			if desc != "" {
				desc += " "
			}
			desc += "e.g. " + p.Example
		}
		options = append(options, models.Option{Label: name, Value: name, Desc: desc})
	}
	return options
}
