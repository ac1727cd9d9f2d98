// Package testutil provides fixtures for project-forge tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// TestFixture is a scratch workspace with a source tree to ingest and a
// target directory to ingest into.
type TestFixture struct {
	T       *testing.T
	RootDir string // auto-cleaned

	SourceDir string
	TargetDir string
}

// NewFixture creates <tmp>/source and <tmp>/target
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()

	f := &TestFixture{
		T:         t,
		RootDir:   root,
		SourceDir: filepath.Join(root, "source"),
		TargetDir: filepath.Join(root, "target"),
	}

	for _, dir := range []string{f.SourceDir, f.TargetDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return f
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file relative to the fixture root and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// SourceFile creates a file under the source tree
func (f *TestFixture) SourceFile(relPath, content string) string {
	f.T.Helper()
	return f.CreateFile(filepath.Join("source", relPath), []byte(content))
}

// CreateFileWithMtime creates a file and sets its modification time
func (f *TestFixture) CreateFileWithMtime(relPath string, content []byte, mtime time.Time) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chtimes(fullPath, mtime, mtime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithMode creates a file with specific permissions
func (f *TestFixture) CreateFileWithMode(relPath string, content []byte, mode os.FileMode) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, mode); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateNoPermissionFile creates a file that cannot be opened (mode 000).
// Permissions are restored on cleanup.
func (f *TestFixture) CreateNoPermissionFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.CreateFileWithMode(relPath, content, 0000)
	f.T.Cleanup(func() {
		os.Chmod(fullPath, 0644)
	})
	return fullPath
}

// =============================================================================
// Directory Helpers
// =============================================================================

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateUnreadableDir creates a directory whose entries cannot be listed.
// Permissions are restored on cleanup so TempDir removal works.
func (f *TestFixture) CreateUnreadableDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	f.CreateFile(filepath.Join(relPath, "hidden.ino"), []byte("void setup() {}"))
	if err := os.Chmod(dirPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateReadOnlyDir creates a directory nothing can be created in.
// Permissions are restored on cleanup.
func (f *TestFixture) CreateReadOnlyDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	if err := os.Chmod(dirPath, 0555); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateSymlink creates a symbolic link at linkPath (relative to root)
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkPath)
	dir := filepath.Dir(fullLinkPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// =============================================================================
// Project Layout Helpers
// =============================================================================

// PopulatePlatformIO lays out a PlatformIO project in the source tree
func (f *TestFixture) PopulatePlatformIO() {
	f.T.Helper()

	f.SourceFile("platformio.ini", "[env:uno]\nplatform = atmelavr\n")
	f.SourceFile("src/main.cpp", "#include <Arduino.h>\n")
	f.SourceFile("include/config.h", "#define LED 13\n")
	f.SourceFile("lib/driver/driver.cpp", "// driver\n")
	f.SourceFile("test/test_main.cpp", "// tests\n")
	f.SourceFile("README.md", "# Blinky\n")
}

// PopulateArduinoSketch creates <root>/<parent>/<sketch>/<sketch>.ino and a
// sibling <root>/<parent>/libraries directory, and points SourceDir at the
// sketch folder.
func (f *TestFixture) PopulateArduinoSketch(parent, sketch string) {
	f.T.Helper()

	f.CreateFile(filepath.Join(parent, sketch, sketch+".ino"), []byte("void setup() {}\nvoid loop() {}\n"))
	f.CreateFile(filepath.Join(parent, sketch, "helpers.h"), []byte("#pragma once\n"))
	f.CreateFile(filepath.Join(parent, "libraries", "Servo", "Servo.h"), []byte("class Servo {};\n"))
	f.CreateFile(filepath.Join(parent, "libraries", "Servo", "src", "Servo.cpp"), []byte("// servo\n"))

	f.SourceDir = filepath.Join(f.RootDir, parent, sketch)
}

// PopulateGeneralProject lays out a Make-based C project in the source tree
func (f *TestFixture) PopulateGeneralProject() {
	f.T.Helper()

	f.SourceFile("Makefile", "all:\n\tcc -o app src/main.c\n")
	f.SourceFile("src/main.c", "int main(void) { return 0; }\n")
	f.SourceFile("docs/usage.md", "# Usage\n")
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// TargetPath returns the full path for a path relative to the target dir
func (f *TestFixture) TargetPath(relPath string) string {
	return filepath.Join(f.TargetDir, filepath.FromSlash(relPath))
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a path exists (links are not followed)
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// AssertFileContent fails if the file does not hold exactly want
func (f *TestFixture) AssertFileContent(path, want string) {
	f.T.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		f.T.Errorf("failed to read %s: %v", path, err)
		return
	}
	if string(data) != want {
		f.T.Errorf("file %s has content %q, want %q", path, data, want)
	}
}

// AssertIsSymlink fails if path is not a symlink
func (f *TestFixture) AssertIsSymlink(path string) {
	f.T.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		f.T.Errorf("expected %s to be a symlink", path)
	}
}

// AssertFileMode checks if file has expected permissions
func (f *TestFixture) AssertFileMode(path string, expectedMode os.FileMode) {
	f.T.Helper()
	info, err := os.Stat(path)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", path, err)
		return
	}
	if actual := info.Mode().Perm(); actual != expectedMode {
		f.T.Errorf("file %s has mode %o, want %o", path, actual, expectedMode)
	}
}

// AssertModTime checks the modification time to the second
func (f *TestFixture) AssertModTime(path string, want time.Time) {
	f.T.Helper()
	info, err := os.Stat(path)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", path, err)
		return
	}
	if !info.ModTime().Truncate(time.Second).Equal(want.Truncate(time.Second)) {
		f.T.Errorf("file %s has mtime %v, want %v", path, info.ModTime(), want)
	}
}

// =============================================================================
// Utility Functions
// =============================================================================

// ListFiles returns the slash-separated paths of all non-directory entries
// under root, sorted
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)
	return files, err
}

// CountFiles returns the number of non-directory entries under root
func CountFiles(root string) (int, error) {
	files, err := ListFiles(root)
	return len(files), err
}

// IsRoot returns true if running as root
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips tests that rely on permission denial
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}
