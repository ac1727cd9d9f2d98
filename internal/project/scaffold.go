package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fenilsonani/project-forge/internal/filelock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// MetadataFile is written at the root of every project
	MetadataFile = "project.yaml"
	// ReadmeFile is rendered from defaults.readme_template
	ReadmeFile = "README.md"
	// InitialVersion is the version of a fresh project
	InitialVersion = "0.1.0"

	dateLayout = "2006-01-02"
)

// Metadata is the content of project.yaml
type Metadata struct {
	Name         string       `yaml:"name"`
	ID           string       `yaml:"id"`
	Status       string       `yaml:"status"`
	CreatedDate  string       `yaml:"created_date"`
	Description  string       `yaml:"description"`
	Version      string       `yaml:"version"`
	Metadata     MetadataInfo `yaml:"metadata"`
	SoftwareType string       `yaml:"software_type,omitempty"`
}

// MetadataInfo is the free-form classification block of project.yaml
type MetadataInfo struct {
	Type     string   `yaml:"type"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

// CreateProject scaffolds <base>/<status>/<name> from project_structure.
// Existing folders are reused; an existing project.yaml or README.md is
// left untouched so re-running never loses edits.
func (m *Manager) CreateProject(name, status string) (string, error) {
	name = strings.TrimSpace(name)
	if status == "" {
		status = m.cfg.Defaults.Status
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := ValidateName(status); err != nil {
		return "", fmt.Errorf("status: %w", err)
	}

	projectPath := m.ProjectPath(name, status)
	if err := m.validator.ValidateTarget(projectPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := m.createStructure(projectPath); err != nil {
		return projectPath, err
	}

	metaPath := filepath.Join(projectPath, MetadataFile)
	if _, err := os.Stat(metaPath); errors.Is(err, fs.ErrNotExist) {
		meta := m.newMetadata(name, status)
		if err := WriteMetadata(projectPath, meta); err != nil {
			return projectPath, err
		}
		m.log.Debug("Created %s", MetadataFile)
	}

	if m.cfg.Defaults.ShouldCreateReadme() {
		readmePath := filepath.Join(projectPath, ReadmeFile)
		if _, err := os.Stat(readmePath); errors.Is(err, fs.ErrNotExist) {
			content := RenderReadme(m.cfg.Defaults.ReadmeTemplate, name, status, m.now().Format(dateLayout))
			if err := os.WriteFile(readmePath, []byte(content), 0644); err != nil {
				return projectPath, fmt.Errorf("failed to write README: %w", err)
			}
			m.log.Debug("Created %s", ReadmeFile)
		}
	}

	m.log.Info("Project '%s' ready at %s", name, projectPath)
	return projectPath, nil
}

// ProjectPath is where a project with this name and status lives
func (m *Manager) ProjectPath(name, status string) string {
	return filepath.Join(m.basePath, status, name)
}

// createStructure creates the project_structure folders in sorted order,
// with their subfolders and one further level of children
func (m *Manager) createStructure(projectPath string) error {
	folders := make([]string, 0, len(m.cfg.ProjectStructure))
	for name := range m.cfg.ProjectStructure {
		folders = append(folders, name)
	}
	sort.Strings(folders)

	for _, folder := range folders {
		dirs := []string{folder}
		for _, sub := range m.cfg.ProjectStructure[folder].Subfolders {
			dirs = append(dirs, filepath.Join(folder, sub.Name))
			for _, child := range sub.Children {
				dirs = append(dirs, filepath.Join(folder, sub.Name, child))
			}
		}

		for _, dir := range dirs {
			if err := os.MkdirAll(filepath.Join(projectPath, dir), 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			m.log.Debug("Created %s", filepath.ToSlash(dir))
		}
	}
	return nil
}

func (m *Manager) newMetadata(name, status string) *Metadata {
	return &Metadata{
		Name:        name,
		ID:          uuid.NewString(),
		Status:      status,
		CreatedDate: m.now().Format(dateLayout),
		Version:     InitialVersion,
		Metadata: MetadataInfo{
			Type: "project",
			Tags: []string{},
		},
	}
}

// RenderReadme fills {project_name}, {date} and {status} in template
func RenderReadme(template, name, status, date string) string {
	if template == "" {
		template = "# {project_name}\n"
	}
	return strings.NewReplacer(
		"{project_name}", name,
		"{date}", date,
		"{status}", status,
	).Replace(template)
}

// LoadMetadata reads project.yaml from projectPath
func LoadMetadata(projectPath string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read project metadata: %w", err)
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse project metadata: %w", err)
	}
	return &meta, nil
}

// WriteMetadata replaces project.yaml atomically
func WriteMetadata(projectPath string, meta *Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal project metadata: %w", err)
	}
	if err := filelock.AtomicWrite(filepath.Join(projectPath, MetadataFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write project metadata: %w", err)
	}
	return nil
}
