// Package project owns the workspace: status folders, project scaffolds and
// the ingestion of existing trees into new projects.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fenilsonani/project-forge/internal/config"
	"github.com/fenilsonani/project-forge/internal/detector"
	"github.com/fenilsonani/project-forge/internal/logger"
	"github.com/fenilsonani/project-forge/internal/platform"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/security"
	"github.com/fenilsonani/project-forge/internal/software"
)

var (
	// ErrInvalidName is returned for project and folder names that are empty
	// or would escape their parent directory
	ErrInvalidName = errors.New("invalid name")
)

// Manager performs workspace operations against one configuration
type Manager struct {
	cfg       *config.Config
	basePath  string
	log       logger.Logger
	progress  *progress.Reporter
	validator *security.PathValidator
	detector  *detector.Detector
	copier    *software.Copier
	now       func() time.Time
}

// NewManager creates a Manager. An empty base path falls back to
// ~/Projects; Windows drive paths are translated for WSL.
func NewManager(cfg *config.Config, log logger.Logger, reporter *progress.Reporter) (*Manager, error) {
	if cfg == nil {
		cfg = config.GetDefault()
	}
	log = logger.OrNop(log)

	base := platform.NormalizePath(cfg.BasePath)
	if base == "" {
		base = platform.DefaultBasePath()
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	return &Manager{
		cfg:       cfg,
		basePath:  base,
		log:       log,
		progress:  reporter,
		validator: security.NewPathValidator(),
		detector: detector.New(detector.Markers{
			Files:       cfg.SoftwareProjectMarkers.Files,
			Directories: cfg.SoftwareProjectMarkers.Directories,
		}),
		copier: software.New(log),
		now:    time.Now,
	}, nil
}

// BasePath is the workspace root all status folders live in
func (m *Manager) BasePath() string {
	return m.basePath
}

// Config returns the configuration the manager was built with
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// InitWorkspace creates the base path and every configured master folder,
// followed by custom ones. Custom names are upper-cased. It returns the
// folder names in creation order.
func (m *Manager) InitWorkspace(custom []config.MasterFolder) ([]string, error) {
	if err := m.validator.ValidateTarget(m.basePath); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	var created []string
	seen := make(map[string]bool)

	add := func(name string) error {
		if err := ValidateName(name); err != nil {
			return err
		}
		if seen[name] {
			return nil
		}
		if err := os.MkdirAll(filepath.Join(m.basePath, name), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		seen[name] = true
		created = append(created, name)
		m.log.Debug("Created master folder %s", name)
		return nil
	}

	for _, f := range m.cfg.MasterFolders {
		if err := add(f.Name); err != nil {
			return created, err
		}
	}
	for _, f := range custom {
		name := strings.ToUpper(strings.TrimSpace(f.Name))
		if name == "" {
			continue
		}
		if err := add(name); err != nil {
			return created, err
		}
	}

	m.log.Info("Workspace ready at %s (%d folders)", m.basePath, len(created))
	return created, nil
}

// StatusGroup is one status folder and the projects in it
type StatusGroup struct {
	Status   string   `json:"status" yaml:"status"`
	Projects []string `json:"projects" yaml:"projects"`
}

// ListProjects returns every status folder under the base path with its
// projects. Hidden entries are skipped and both levels are sorted.
func (m *Manager) ListProjects() ([]StatusGroup, error) {
	statuses, err := visibleDirs(m.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	groups := make([]StatusGroup, 0, len(statuses))
	for _, status := range statuses {
		projects, err := visibleDirs(filepath.Join(m.basePath, status))
		if err != nil {
			m.log.Warn("Cannot read %s: %v", status, err)
			continue
		}
		groups = append(groups, StatusGroup{Status: status, Projects: projects})
	}

	return groups, nil
}

// DetectProjectType reports which software layout, if any, source holds
func (m *Manager) DetectProjectType(source string) (detector.Detection, error) {
	source, err := m.resolveSource(source)
	if err != nil {
		return detector.Detection{Type: detector.TypeNone}, err
	}
	return m.detector.Detect(source)
}

func (m *Manager) resolveSource(source string) (string, error) {
	source = platform.NormalizePath(source)
	if source == "" {
		return "", fmt.Errorf("source path is required")
	}
	return filepath.Abs(source)
}

func visibleDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ValidateName accepts a project or status name that is a single path component
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
