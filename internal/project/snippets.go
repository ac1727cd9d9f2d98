package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fenilsonani/project-forge/internal/classifier"
	"github.com/fenilsonani/project-forge/internal/fsutil"
	"github.com/fenilsonani/project-forge/internal/organizer"
	"github.com/fenilsonani/project-forge/pkg/utils"
)

// ArchiveFolder is where snippets are collected, under the base path
const ArchiveFolder = "Code_Archives"

// ReasonEmptyFile marks snippet files skipped for having no content
const ReasonEmptyFile organizer.SkipReason = "empty"

// SnippetExtensions are the files treated as code snippets
var SnippetExtensions = []string{".cpp", ".ino", ".py", ".js", ".html", ".css", ".ini"}

// SnippetReport is the outcome of OrganizeSnippets
type SnippetReport struct {
	Target    string                  `json:"target" yaml:"target"`
	Folders   []string                `json:"folders" yaml:"folders"`
	Organized []organizer.Placement   `json:"organized" yaml:"organized"`
	Skipped   []organizer.SkippedFile `json:"skipped" yaml:"skipped"`
}

// OrganizeSnippets collects loose code from source into Code_Archives.
//
// Each code file directly in source gets its own folder named after it.
// Each subdirectory holding code becomes one folder, and every code file
// found anywhere below it is copied in as <folder><ext>. Empty files are
// skipped, and a folder gets at most one .ini file.
func (m *Manager) OrganizeSnippets(ctx context.Context, source string) (*SnippetReport, error) {
	source, err := m.resolveSource(source)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	ignore, err := m.cfg.IgnoreMatcher()
	if err != nil {
		return nil, err
	}

	target := filepath.Join(m.basePath, ArchiveFolder)
	if err := m.validator.ValidateTarget(target); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", ArchiveFolder, err)
	}

	report := &SnippetReport{
		Target:    target,
		Folders:   []string{},
		Organized: []organizer.Placement{},
		Skipped:   []organizer.SkippedFile{},
	}

	// standalone files first, then directories
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if e.IsDir() || ignore.ShouldIgnore(e.Name()) || !isSnippet(e.Name()) {
			continue
		}
		base, ext := classifier.SplitExt(e.Name())
		m.archive(report, base, []string{filepath.Join(source, e.Name())}, ext)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !e.IsDir() || ignore.ShouldIgnore(e.Name()) {
			continue
		}

		files, err := collectSnippets(filepath.Join(source, e.Name()), ignore)
		if err != nil {
			m.log.Warn("Cannot read %s: %v", e.Name(), err)
		}
		if len(files) == 0 {
			continue
		}
		m.archive(report, e.Name(), files, "")
	}

	sort.Strings(report.Folders)
	m.log.Info("Archived %d snippet files into %d folders", len(report.Organized), len(report.Folders))
	return report, nil
}

// archive creates a unique folder for name and copies files into it. A
// non-empty ext forces the extension of the single standalone file.
func (m *Manager) archive(report *SnippetReport, name string, files []string, ext string) {
	clean := utils.CleanName(name)
	if clean == "" {
		clean = "snippet"
	}

	dir, err := utils.UniqueDirPath(filepath.Join(report.Target, clean))
	if err != nil {
		for _, f := range files {
			report.Skipped = append(report.Skipped, skipped(f, organizer.ReasonCollisionExhausted, err))
		}
		return
	}

	folder := filepath.Base(dir)
	created := false
	hasIni := false

	for _, src := range files {
		fileExt := ext
		if fileExt == "" {
			_, fileExt = classifier.SplitExt(filepath.Base(src))
		}
		fileExt = strings.ToLower(fileExt)

		info, err := os.Stat(src)
		if err != nil {
			report.Skipped = append(report.Skipped, skipped(src, organizer.ReasonUnreadable, err))
			continue
		}
		if info.Size() == 0 {
			report.Skipped = append(report.Skipped, skipped(src, ReasonEmptyFile, nil))
			continue
		}
		if fileExt == ".ini" {
			if hasIni {
				continue
			}
			hasIni = true
		}

		if !created {
			if err := os.MkdirAll(dir, 0755); err != nil {
				report.Skipped = append(report.Skipped, skipped(src, organizer.ReasonMkdirFailed, err))
				continue
			}
			created = true
			report.Folders = append(report.Folders, folder)
		}

		dest, err := utils.UniqueFilePath(filepath.Join(dir, clean+fileExt))
		if err == nil {
			err = fsutil.CopyFile(src, dest)
		}
		if err != nil {
			report.Skipped = append(report.Skipped, skipped(src, organizer.ReasonCopyFailed, err))
			m.log.Error("Error copying %s: %v", src, err)
			continue
		}

		report.Organized = append(report.Organized, organizer.Placement{Source: src, Target: dest, Size: info.Size()})
		m.log.Debug("Created %s/%s", folder, filepath.Base(dest))
	}
}

// collectSnippets lists code files below dir in walk order
func collectSnippets(dir string, ignore *classifier.IgnoreMatcher) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return err
		}
		if path != dir && ignore.ShouldIgnore(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && isSnippet(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func isSnippet(name string) bool {
	_, ext := classifier.SplitExt(name)
	ext = strings.ToLower(ext)
	for _, e := range SnippetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func skipped(path string, reason organizer.SkipReason, err error) organizer.SkippedFile {
	s := organizer.SkippedFile{Path: path, Reason: reason, Err: err}
	if err != nil {
		s.Message = err.Error()
	}
	return s
}
