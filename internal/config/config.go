package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/project-forge/internal/classifier"
	"github.com/fenilsonani/project-forge/internal/platform"
	"github.com/fenilsonani/project-forge/internal/security"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	BasePath                   string                     `yaml:"base_path,omitempty"`
	LogLevel                   string                     `yaml:"log_level,omitempty"`
	MasterFolders              []MasterFolder             `yaml:"master_folders,omitempty"`
	ProjectStructure           map[string]StructureFolder `yaml:"project_structure,omitempty"`
	FileCategories             FileCategories             `yaml:"file_categories,omitempty"`
	CategoryTargets            []CategoryTarget           `yaml:"category_targets,omitempty"`
	NamingPatterns             map[string]NamingPattern   `yaml:"naming_patterns,omitempty"`
	Defaults                   Defaults                   `yaml:"defaults"`
	SoftwareProjectMarkers     Markers                    `yaml:"software_project_markers"`
	PreservedSoftwareStructure []string                   `yaml:"preserved_software_structure"`
	IgnorePatterns             []string                   `yaml:"ignore_patterns"`
}

// MasterFolder is a top-level status folder of the workspace (ONGOING, DONE, ...)
type MasterFolder struct {
	Name        string `yaml:"name"`
	Description string `yaml:"desc"`
}

// StructureFolder is one top-level folder of a scaffolded project
type StructureFolder struct {
	Description string     `yaml:"description"`
	Subfolders  Subfolders `yaml:"subfolders"`
}

// CategoryTarget maps a (category, subcategory) pair to a folder inside a
// project. Subcategory "*" matches all subcategories; flat categories leave
// it empty.
type CategoryTarget struct {
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory,omitempty"`
	Target      string `yaml:"target"`
}

// NamingPattern describes a file naming convention
type NamingPattern struct {
	Formatter   string `yaml:"formatter"`
	Description string `yaml:"description,omitempty"`
	Example     string `yaml:"example,omitempty"`
}

// Defaults holds project creation defaults
type Defaults struct {
	Status         string `yaml:"status,omitempty"`
	CreateReadme   *bool  `yaml:"create_readme,omitempty"`
	ReadmeTemplate string `yaml:"readme_template,omitempty"`
}

// ShouldCreateReadme reports whether new projects get a README (default true)
func (d Defaults) ShouldCreateReadme() bool {
	return d.CreateReadme == nil || *d.CreateReadme
}

// Markers are the file and directory names that identify a software project
type Markers struct {
	Files       []string `yaml:"files"`
	Directories []string `yaml:"directories"`
}

// Load loads configuration from a file and deep-merges it over the defaults
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := Merge(GetDefault(), &user)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks everything the core relies on at call time: patterns
// compile, no extension is claimed twice, formatters are known.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Defaults.Status) == "" {
		return fmt.Errorf("defaults.status must not be empty")
	}

	if _, err := classifier.NewIgnoreMatcher(c.IgnorePatterns); err != nil {
		return err
	}

	if _, err := c.ClassificationTable(); err != nil {
		return err
	}

	if _, err := c.Namer(); err != nil {
		return err
	}

	for _, t := range c.CategoryTargets {
		if t.Category == "" {
			return fmt.Errorf("category_targets entry with target %q has no category", t.Target)
		}
		if filepath.IsAbs(t.Target) || strings.Contains(t.Target, "..") {
			return fmt.Errorf("category target must be a relative path inside the project: %s", t.Target)
		}
	}

	for _, m := range c.SoftwareProjectMarkers.Files {
		if err := security.ValidateGlobPattern(m); err != nil {
			return fmt.Errorf("software_project_markers.files: %w", err)
		}
	}

	for _, f := range c.MasterFolders {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("master folder with empty name")
		}
	}

	return nil
}

// ClassificationRules flattens file_categories into classifier rules, with
// targets resolved through category_targets.
func (c *Config) ClassificationRules() []classifier.Rule {
	targets := make([]classifier.Target, 0, len(c.CategoryTargets))
	for _, t := range c.CategoryTargets {
		targets = append(targets, classifier.Target{
			Category:    t.Category,
			Subcategory: t.Subcategory,
			Path:        t.Target,
		})
	}
	tm := classifier.NewTargetMap(targets)

	var rules []classifier.Rule
	for _, cat := range c.FileCategories {
		if cat.IsFlat() {
			target, _ := tm.Lookup(cat.Name, "")
			rules = append(rules, classifier.Rule{
				Category:   cat.Name,
				Extensions: cat.Extensions,
				Target:     target,
			})
			continue
		}
		for _, sub := range cat.Subcategories {
			target, _ := tm.Lookup(cat.Name, sub.Name)
			rules = append(rules, classifier.Rule{
				Category:    cat.Name,
				Subcategory: sub.Name,
				Extensions:  sub.Extensions,
				Target:      target,
			})
		}
	}

	return rules
}

// ClassificationTable builds the immutable lookup table
func (c *Config) ClassificationTable() (*classifier.Table, error) {
	return classifier.NewTable(c.ClassificationRules())
}

// IgnoreMatcher compiles ignore_patterns
func (c *Config) IgnoreMatcher() (*classifier.IgnoreMatcher, error) {
	return classifier.NewIgnoreMatcher(c.IgnorePatterns)
}

// Namer resolves naming_patterns to formatter kinds. A pattern without an
// explicit formatter falls back to its own name ("snake_case", "PascalCase").
func (c *Config) Namer() (*classifier.Namer, error) {
	kinds := make(map[string]classifier.FormatterKind, len(c.NamingPatterns))
	for name, p := range c.NamingPatterns {
		spec := p.Formatter
		if spec == "" {
			spec = name
		}
		kind, err := classifier.ParseFormatterKind(spec)
		if err != nil {
			return nil, fmt.Errorf("naming pattern %q: %w", name, err)
		}
		kinds[name] = kind
	}
	return classifier.NewNamer(kinds), nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	userConfigDir, err := platform.GetUserConfigDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(userConfigDir, "project-forge")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists writes the commented example config to path unless a
// file is already there. It reports whether a file was written.
func EnsureConfigExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GetExampleConfig()), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
