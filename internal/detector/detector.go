// Package detector decides whether a source tree is a software project that
// must be copied structurally instead of classified file by file.
package detector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// ProjectType tags the toolchain a source tree belongs to
type ProjectType string

const (
	TypeNone       ProjectType = "none"
	TypePlatformIO ProjectType = "platformio"
	TypeArduino    ProjectType = "arduino"
	TypeGeneral    ProjectType = "general"
)

// PlatformIOConfig is the file that marks a PlatformIO project root
const PlatformIOConfig = "platformio.ini"

// SketchExt is the Arduino sketch extension
const SketchExt = ".ino"

// ErrSourceInaccessible is returned when the source itself cannot be read
var ErrSourceInaccessible = errors.New("source directory is not accessible")

// Detection is the result of Detect
type Detection struct {
	Type ProjectType `json:"type" yaml:"type"`
	// SketchDir is set for Arduino: the directory holding the first .ino
	// file by full path order.
	SketchDir string `json:"sketch_dir,omitempty" yaml:"sketch_dir,omitempty"`
}

// IsSoftware reports whether a software type was detected
func (d Detection) IsSoftware() bool {
	return d.Type != "" && d.Type != TypeNone
}

func (d Detection) String() string {
	if d.Type == TypeArduino && d.SketchDir != "" {
		return fmt.Sprintf("%s (sketch: %s)", d.Type, d.SketchDir)
	}
	if d.Type == "" {
		return string(TypeNone)
	}
	return string(d.Type)
}

// Markers are the names whose presence marks a general software project.
// File markers may be globs ("*.csproj"); a marker with a slash is matched
// against the slash-separated path relative to the source.
type Markers struct {
	Files       []string
	Directories []string
}

// Detector inspects source trees. It holds no per-call state.
type Detector struct {
	markers Markers
}

// New creates a Detector for the given markers
func New(markers Markers) *Detector {
	return &Detector{
		markers: Markers{
			Files:       append([]string(nil), markers.Files...),
			Directories: append([]string(nil), markers.Directories...),
		},
	}
}

// scan is what one walk of the tree collects
type scan struct {
	sketches   []string
	markerFile bool
	markerDir  bool
}

// Detect classifies source. Priority: platformio.ini at the root, then any
// .ino file, then any marker file, then any marker directory. Unreadable
// subdirectories are treated as empty.
func (d *Detector) Detect(source string) (Detection, error) {
	info, err := os.Stat(source)
	if err != nil {
		return Detection{Type: TypeNone}, fmt.Errorf("%w: %s: %v", ErrSourceInaccessible, source, err)
	}
	if !info.IsDir() {
		return Detection{Type: TypeNone}, fmt.Errorf("%w: %s is not a directory", ErrSourceInaccessible, source)
	}
	if _, err := os.ReadDir(source); err != nil {
		return Detection{Type: TypeNone}, fmt.Errorf("%w: %s: %v", ErrSourceInaccessible, source, err)
	}

	if fi, err := os.Stat(filepath.Join(source, PlatformIOConfig)); err == nil && !fi.IsDir() {
		return Detection{Type: TypePlatformIO}, nil
	}

	s := d.walk(source)

	switch {
	case len(s.sketches) > 0:
		sort.Strings(s.sketches)
		return Detection{Type: TypeArduino, SketchDir: filepath.Dir(s.sketches[0])}, nil
	case s.markerFile, s.markerDir:
		return Detection{Type: TypeGeneral}, nil
	default:
		return Detection{Type: TypeNone}, nil
	}
}

func (d *Detector) walk(source string) scan {
	var s scan

	filepath.WalkDir(source, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == source {
			return nil
		}

		rel, relErr := filepath.Rel(source, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := entry.Name()

		if entry.IsDir() {
			if !s.markerDir && matchesAny(d.markers.Directories, name, rel) {
				s.markerDir = true
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(name), SketchExt) {
			s.sketches = append(s.sketches, p)
		}
		if !s.markerFile && matchesAny(d.markers.Files, name, rel) {
			s.markerFile = true
		}
		return nil
	})

	return s
}

// matchesAny tests name (and rel for markers containing a slash) against
// each marker. A malformed glob falls back to literal comparison.
func matchesAny(markers []string, name, rel string) bool {
	for _, m := range markers {
		if m == "" {
			continue
		}

		target := name
		pattern := m
		if strings.Contains(m, "/") {
			target = rel
			pattern = "**/" + strings.TrimPrefix(m, "/")
			if ok, err := doublestar.Match(strings.TrimPrefix(m, "/"), rel); err == nil && ok {
				return true
			}
		}

		ok, err := doublestar.Match(pattern, target)
		if err != nil {
			ok = m == name || m == rel
		}
		if ok {
			return true
		}
	}
	return false
}
