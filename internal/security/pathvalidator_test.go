package security

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateTarget(t *testing.T) {
	pv := NewPathValidator()
	tmp := t.TempDir()

	tests := []struct {
		name        string
		path        string
		shouldError bool
		errorMsg    string
	}{
		{"new project under temp", filepath.Join(tmp, "ONGOING", "Robot"), false, ""},
		{"existing temp dir", tmp, false, ""},
		{"relative path", "relative/path", true, "path must be absolute"},
		{"empty path", "", true, "path must be absolute"},
		{"newline", filepath.Join(tmp, "a\nb"), true, "control characters"},
		{"root directory", "/", true, "protected path"},
		{"/etc directly", "/etc", true, "protected path"},
		{"/etc/direct-child", "/etc/forge", true, "critical system path"},
		{"/usr/newdir", "/usr/newdir", true, "critical system path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pv.ValidateTarget(tt.path)

			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error containing '%s', got nil", tt.errorMsg)
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateTargetResolvesSymlinks(t *testing.T) {
	pv := NewPathValidator()
	tmp := t.TempDir()

	link := filepath.Join(tmp, "etc-link")
	if err := os.Symlink("/etc", link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	err := pv.ValidateTarget(filepath.Join(link, "forge"))
	if !errors.Is(err, ErrProtectedPath) {
		t.Errorf("expected ErrProtectedPath through the link, got %v", err)
	}
}

func TestValidateSource(t *testing.T) {
	pv := NewPathValidator()
	tmp := t.TempDir()

	if err := pv.ValidateSource(tmp); err != nil {
		t.Errorf("temp dir should be a valid source: %v", err)
	}
	if err := pv.ValidateSource("/"); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("expected ErrProtectedPath for /, got %v", err)
	}
	if err := pv.ValidateSource("rel"); err == nil {
		t.Error("relative source should be rejected")
	}
	if err := pv.ValidateSource(filepath.Join(tmp, "missing")); err == nil {
		t.Error("missing source should be rejected")
	}
}

func TestCheckNotNested(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target string
		nested bool
	}{
		{"sibling", filepath.Join(tmp, "ONGOING", "Robot"), false},
		{"same dir", src, true},
		{"inside", filepath.Join(src, "out", "Robot"), true},
		{"prefix but not inside", filepath.Join(tmp, "src2"), false},
		{"parent", tmp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNotNested(src, tt.target)
			if got := errors.Is(err, ErrTargetInsideSource); got != tt.nested {
				t.Errorf("CheckNotNested(%s) = %v, want nested=%v", tt.target, err, tt.nested)
			}
		})
	}
}

func TestIsProtectedPath(t *testing.T) {
	pv := NewPathValidator()

	tests := []struct {
		name        string
		path        string
		isProtected bool
	}{
		{"root directory", "/", true},
		{"etc directory", "/etc", true},
		{"usr directory", "/usr", true},
		{"system directory (macOS)", "/System", true},
		{"file in etc", "/etc/hosts", true},
		{"file in usr", "/usr/bin/ls", true},
		{"temp file", "/tmp/test.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pv.IsProtectedPath(tt.path)
			if result != tt.isProtected {
				t.Errorf("IsProtectedPath(%s) = %v, want %v", tt.path, result, tt.isProtected)
			}
		})
	}
}

func TestAddProtectedPath(t *testing.T) {
	pv := NewPathValidator()
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	pv.AddProtectedPath(tmp)
	if err := pv.ValidateTarget(filepath.Join(tmp, "project")); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("expected direct child of a custom protected path to be rejected, got %v", err)
	}
}

func TestValidateGlobPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		shouldError bool
	}{
		{"literal", "platformio.ini", false},
		{"simple wildcard", "*.csproj", false},
		{"double wildcard", "**/CMakeLists.txt", false},
		{"alternatives", "*.{toml,cfg}", false},
		{"question mark", "setup.p?", false},
		{"pattern with traversal", "../Makefile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlobPattern(tt.pattern)

			if tt.shouldError && err == nil {
				t.Errorf("Expected error for pattern '%s', got nil", tt.pattern)
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Expected no error for pattern '%s', got: %v", tt.pattern, err)
			}
		})
	}
}
