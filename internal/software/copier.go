// Package software copies recognized software-project layouts verbatim
// into the software/ folder of a project.
package software

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/project-forge/internal/detector"
	"github.com/fenilsonani/project-forge/internal/fsutil"
	"github.com/fenilsonani/project-forge/internal/logger"
)

// Dir is the project subfolder the layout is copied into
const Dir = "software"

// ErrNoSketch is returned for an Arduino detection without a usable sketch directory
var ErrNoSketch = errors.New("arduino project has no sketch directory")

// Failure is one entry that could not be copied
type Failure struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"error" yaml:"error"`
	Err     error  `json:"-" yaml:"-"`
}

// CopyReport records what Copy did
type CopyReport struct {
	Type        detector.ProjectType `json:"type" yaml:"type"`
	SoftwareDir string               `json:"software_dir" yaml:"software_dir"`
	// Copied holds destination paths relative to SoftwareDir
	Copied []string  `json:"copied" yaml:"copied"`
	Failed []Failure `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Copier performs the structural copy. It keeps no state between calls.
type Copier struct {
	log logger.Logger
}

// New creates a Copier. A nil logger discards output.
func New(log logger.Logger) *Copier {
	return &Copier{log: logger.OrNop(log)}
}

// Copy populates <target>/software from source according to detection.
// Missing layout entries are skipped. Per-entry failures are recorded and
// the copy goes on; only an unusable target or an Arduino detection
// without a sketch directory abort.
func (c *Copier) Copy(source, target string, detection detector.Detection) (*CopyReport, error) {
	report := &CopyReport{
		Type:        detection.Type,
		SoftwareDir: filepath.Join(target, Dir),
	}

	layout, ok := LayoutFor(detection.Type)
	if !ok {
		return report, nil
	}

	if detection.Type == detector.TypeArduino {
		if detection.SketchDir == "" {
			return report, ErrNoSketch
		}
		if info, err := os.Stat(detection.SketchDir); err != nil || !info.IsDir() {
			return report, fmt.Errorf("%w: %s", ErrNoSketch, detection.SketchDir)
		}
	}

	if err := os.MkdirAll(report.SoftwareDir, 0755); err != nil {
		return report, fmt.Errorf("failed to create software directory: %w", err)
	}

	if detection.Type == detector.TypeArduino {
		c.copySketch(detection.SketchDir, report)
	}

	for _, name := range layout.Names() {
		src := filepath.Join(source, name)
		if _, err := os.Lstat(src); err != nil {
			if !os.IsNotExist(err) {
				report.fail(name, err)
			}
			continue
		}

		if err := fsutil.CopyEntry(src, filepath.Join(report.SoftwareDir, name)); err != nil {
			report.fail(name, err)
			c.log.Error("Error copying %s: %v", name, err)
			continue
		}
		report.Copied = append(report.Copied, name)
		c.log.Debug("Copied %s", name)
	}

	if detection.Type == detector.TypeArduino {
		c.mergeParentLibraries(source, report)
	}

	c.log.Info("Preserved %s project structure in %s", detection.Type, report.SoftwareDir)
	return report, nil
}

// copySketch merges the sketch directory into software/<sketch name>/
func (c *Copier) copySketch(sketchDir string, report *CopyReport) {
	name := filepath.Base(filepath.Clean(sketchDir))
	dst := filepath.Join(report.SoftwareDir, name)

	if err := fsutil.MergeTree(sketchDir, dst); err != nil {
		report.fail(name, err)
		c.log.Error("Error copying sketch %s: %v", name, err)
		return
	}
	report.Copied = append(report.Copied, name)
	c.log.Debug("Copied sketch %s", name)
}

// mergeParentLibraries merges a libraries folder next to source into
// software/libraries/
func (c *Copier) mergeParentLibraries(source string, report *CopyReport) {
	parent := filepath.Dir(filepath.Clean(source))
	src := filepath.Join(parent, LibrariesDir)

	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return
	}

	if err := fsutil.MergeTree(src, filepath.Join(report.SoftwareDir, LibrariesDir)); err != nil {
		report.fail("../"+LibrariesDir, err)
		c.log.Error("Error copying parent libraries: %v", err)
		return
	}
	report.Copied = append(report.Copied, LibrariesDir)
	c.log.Debug("Merged parent libraries from %s", src)
}

func (r *CopyReport) fail(path string, err error) {
	r.Failed = append(r.Failed, Failure{Path: path, Message: err.Error(), Err: err})
}
