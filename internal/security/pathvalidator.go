package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/fenilsonani/project-forge/internal/platform"
)

var (
	// ErrTargetInsideSource is returned when a project would be created inside
	// the tree it is ingested from
	ErrTargetInsideSource = errors.New("target project is inside the source tree")
	// ErrProtectedPath is returned for system locations forge never writes to
	ErrProtectedPath = errors.New("refusing to use protected path")
)

// PathValidator handles path validation before files are written
type PathValidator struct {
	protectedPaths []string
}

// NewPathValidator creates a new PathValidator with default protected paths
func NewPathValidator() *PathValidator {
	pv := &PathValidator{
		protectedPaths: []string{
			// Unix system directories
			"/",
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/root",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			// macOS system directories
			"/System",
			"/Applications",
			"/Library/System",
		},
	}

	if info, err := platform.GetInfo(); err == nil {
		for _, p := range info.ProtectedPaths {
			pv.AddProtectedPath(p)
		}
	}

	// the user's own home is where projects usually live, even for root
	if home, err := platform.HomeDir(); err == nil {
		pv.removeProtectedPath(filepath.Clean(home))
	}

	return pv
}

// ValidateTarget checks a path forge is about to create or write into.
// The path must be absolute and neither be a protected directory nor sit
// directly inside one.
func (pv *PathValidator) ValidateTarget(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if strings.ContainsAny(path, "\x00\n\r") {
		return fmt.Errorf("path contains control characters: %q", path)
	}

	// SECURITY: resolve symlinks so ~/link-to-etc/x is judged as /etc/x
	resolved, err := resolveExisting(path)
	if err != nil {
		return fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	return pv.checkProtectedPaths(resolved)
}

// ValidateSource checks a tree that is about to be read. Reading is
// harmless, but walking "/" or /usr is never what the user meant.
func (pv *PathValidator) ValidateSource(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("failed to resolve source: %w", err)
	}

	for _, protected := range pv.protectedPaths {
		if resolved == protected {
			return fmt.Errorf("%w: %s", ErrProtectedPath, resolved)
		}
	}
	return nil
}

// CheckNotNested fails when target equals source or lies inside it
func CheckNotNested(source, target string) error {
	src, err := resolveExisting(source)
	if err != nil {
		return err
	}
	dst, err := resolveExisting(target)
	if err != nil {
		return err
	}

	if src == dst || IsWithin(src, dst) {
		return fmt.Errorf("%w: %s is under %s", ErrTargetInsideSource, dst, src)
	}
	return nil
}

// IsWithin reports whether path lies strictly below dir
func IsWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// checkProtectedPaths validates that a path is not in a protected system directory
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, protected := range pv.protectedPaths {
		// Exact match
		if cleanPath == protected {
			return fmt.Errorf("%w: %s", ErrProtectedPath, cleanPath)
		}

		// Directly under a protected directory: /usr/foo but not /usr/local/src/foo
		if protected != "/" && strings.HasPrefix(cleanPath, protected+"/") {
			rel, _ := filepath.Rel(protected, cleanPath)
			if !strings.Contains(rel, "/") {
				return fmt.Errorf("%w: %s is a critical system path", ErrProtectedPath, cleanPath)
			}
		}
	}

	return nil
}

// IsProtectedPath checks if a path is a protected system path
func (pv *PathValidator) IsProtectedPath(path string) bool {
	cleanPath := filepath.Clean(path)
	for _, protected := range pv.protectedPaths {
		if cleanPath == protected || (protected != "/" && strings.HasPrefix(cleanPath, protected+"/")) {
			return true
		}
	}
	return false
}

// AddProtectedPath adds a custom protected path
func (pv *PathValidator) AddProtectedPath(path string) {
	cleanPath := filepath.Clean(path)
	for _, p := range pv.protectedPaths {
		if p == cleanPath {
			return
		}
	}
	pv.protectedPaths = append(pv.protectedPaths, cleanPath)
}

func (pv *PathValidator) removeProtectedPath(path string) {
	kept := pv.protectedPaths[:0]
	for _, p := range pv.protectedPaths {
		if p != path {
			kept = append(kept, p)
		}
	}
	pv.protectedPaths = kept
}

// ValidateGlobPattern validates a software marker pattern
func ValidateGlobPattern(pattern string) error {
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	if _, err := doublestar.Match(pattern, "test"); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	return nil
}

// resolveExisting cleans path and resolves symlinks in its longest existing
// prefix. The part that does not exist yet is appended unchanged.
func resolveExisting(path string) (string, error) {
	path = filepath.Clean(path)

	var missing []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return path, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
