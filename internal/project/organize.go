package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/project-forge/internal/detector"
	"github.com/fenilsonani/project-forge/internal/filelock"
	"github.com/fenilsonani/project-forge/internal/organizer"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/security"
	"github.com/fenilsonani/project-forge/internal/software"
)

// OrganizeRequest describes one ingestion of an existing tree
type OrganizeRequest struct {
	Source string
	// Name defaults to the source directory name
	Name string
	// Status defaults to defaults.status
	Status string
	// Pattern is a naming_patterns key; empty keeps file names
	Pattern string
	// Verify re-reads every organized copy
	Verify bool
}

// OrganizeResult merges the software copy and file organization reports
type OrganizeResult struct {
	ProjectPath string               `json:"project_path" yaml:"project_path"`
	Detection   detector.Detection   `json:"detection" yaml:"detection"`
	Software    *software.CopyReport `json:"software,omitempty" yaml:"software,omitempty"`
	Files       *organizer.Report    `json:"files" yaml:"files"`
	Duration    time.Duration        `json:"duration" yaml:"duration"`
}

// OrganizeExisting creates (or reuses) a project and ingests req.Source
// into it: detect the software layout, copy it verbatim into software/,
// then classify every remaining file.
//
// Only one organize may run per project at a time; a second caller gets
// filelock.ErrLocked. On cancellation the partial result is returned along
// with ctx.Err().
func (m *Manager) OrganizeExisting(ctx context.Context, req OrganizeRequest) (*OrganizeResult, error) {
	start := m.now()

	source, err := m.resolveSource(req.Source)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", organizer.ErrSourceNotFound, source)
		}
		return nil, fmt.Errorf("failed to access source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", organizer.ErrSourceNotDir, source)
	}
	if err := m.validator.ValidateSource(source); err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = filepath.Base(source)
	}
	status := req.Status
	if status == "" {
		status = m.cfg.Defaults.Status
	}

	table, err := m.cfg.ClassificationTable()
	if err != nil {
		return nil, err
	}
	ignore, err := m.cfg.IgnoreMatcher()
	if err != nil {
		return nil, err
	}
	namer, err := m.cfg.Namer()
	if err != nil {
		return nil, err
	}
	// an unknown pattern must fail before anything is created
	if _, err := namer.Kind(req.Pattern); err != nil {
		return nil, err
	}

	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateName(status); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if err := security.CheckNotNested(source, m.ProjectPath(name, status)); err != nil {
		return nil, err
	}

	projectPath, err := m.CreateProject(name, status)
	if err != nil {
		return nil, err
	}

	result := &OrganizeResult{
		ProjectPath: projectPath,
		Detection:   detector.Detection{Type: detector.TypeNone},
	}

	err = filelock.WithDirLock(projectPath, func() error {
		m.progress.Publish(progress.Update{Phase: progress.PhaseDetecting, StartTime: start})

		detection, err := m.detector.Detect(source)
		if err != nil {
			return err
		}
		result.Detection = detection
		m.log.Info("Detected project type: %s", detection)

		preserved := append([]string(nil), m.cfg.PreservedSoftwareStructure...)
		var claimed []string
		if detection.IsSoftware() {
			m.progress.Publish(progress.Update{
				Phase:       progress.PhasePreserving,
				ProjectType: string(detection.Type),
				StartTime:   start,
			})

			report, err := m.copier.Copy(source, projectPath, detection)
			if err != nil {
				return fmt.Errorf("failed to copy software structure: %w", err)
			}
			result.Software = report

			if layout, ok := software.LayoutFor(detection.Type); ok {
				preserved = append(preserved, layout.Names()...)
			}
			if detection.SketchDir != "" {
				claimed = append(claimed, detection.SketchDir)
			}
		}

		org := organizer.New(organizer.Options{
			Table:     table,
			Ignore:    ignore,
			Namer:     namer,
			Preserved: preserved,
			Claimed:   claimed,
			Verify:    req.Verify,
			Logger:    m.log,
			Progress:  m.progress,
		})

		files, err := org.Organize(ctx, source, projectPath, req.Pattern)
		result.Files = files
		if err != nil {
			return err
		}

		return m.recordIngest(projectPath, source, detection)
	})

	result.Duration = m.now().Sub(start)
	if err != nil {
		m.progress.Publish(progress.Update{Phase: progress.PhaseError, Error: err, StartTime: start})
		return result, err
	}
	return result, nil
}

// recordIngest stores the detected software type and, when the project has
// no description yet, the first paragraph of the source README
func (m *Manager) recordIngest(projectPath, source string, detection detector.Detection) error {
	meta, err := LoadMetadata(projectPath)
	if err != nil {
		return err
	}

	changed := false
	if detection.IsSoftware() && meta.SoftwareType != string(detection.Type) {
		meta.SoftwareType = string(detection.Type)
		changed = true
	}
	if meta.Description == "" {
		if desc := ReadDescription(source); desc != "" {
			meta.Description = desc
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return WriteMetadata(projectPath, meta)
}
