// Package organizer walks a source tree and copies each classifiable file
// into its category folder of a target project.
package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/project-forge/internal/classifier"
	"github.com/fenilsonani/project-forge/internal/fsutil"
	"github.com/fenilsonani/project-forge/internal/logger"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/pkg/utils"
)

// Options configures an Organizer. Table is required; everything else may
// be left zero.
type Options struct {
	Table  *classifier.Table
	Ignore *classifier.IgnoreMatcher
	Namer  *classifier.Namer
	// Preserved names are never classified, wherever they appear in a
	// relative path. The software copier owns them.
	Preserved []string
	// Claimed directories were copied whole by the software copier and
	// are not walked. Claiming source itself leaves nothing to organize.
	Claimed []string
	// Verify re-reads every copy and compares SHA-256 sums
	Verify   bool
	Logger   logger.Logger
	Progress *progress.Reporter
}

// Organizer is stateless between calls. One Organize per target at a time.
type Organizer struct {
	table     *classifier.Table
	ignore    *classifier.IgnoreMatcher
	namer     *classifier.Namer
	preserved map[string]struct{}
	claimed   map[string]struct{}
	verify    bool
	log       logger.Logger
	progress  *progress.Reporter
}

// New creates an Organizer from opts
func New(opts Options) *Organizer {
	preserved := make(map[string]struct{}, len(opts.Preserved))
	for _, name := range opts.Preserved {
		if name = strings.TrimSpace(name); name != "" {
			preserved[name] = struct{}{}
		}
	}

	claimed := make(map[string]struct{}, len(opts.Claimed))
	for _, dir := range opts.Claimed {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			claimed[abs] = struct{}{}
		}
	}

	return &Organizer{
		table:     opts.Table,
		ignore:    opts.Ignore,
		namer:     opts.Namer,
		preserved: preserved,
		claimed:   claimed,
		verify:    opts.Verify,
		log:       logger.OrNop(opts.Logger),
		progress:  opts.Progress,
	}
}

// Organize copies every classifiable file under source into target.
//
// Ignored names prune whole directories, and so do preserved names and
// claimed directories. An unknown naming pattern is rejected before the
// walk. Per-file failures land in Report.Skipped and never stop the walk.
// Cancelling ctx stops at the next file and returns the partial report
// with ctx.Err().
func (o *Organizer) Organize(ctx context.Context, source, target, pattern string) (*Report, error) {
	report := newReport(source, target)

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		return report, fmt.Errorf("failed to access source: %w", err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrSourceNotDir, source)
	}

	if o.table == nil {
		return report, errors.New("organizer has no classification table")
	}

	kind, err := o.namer.Kind(pattern)
	if err != nil {
		return report, err
	}

	// a target nested in the source must not be walked into
	targetAbs, _ := filepath.Abs(target)

	state := progress.Update{Phase: progress.PhaseOrganizing, StartTime: time.Now()}
	o.progress.Publish(state)

	walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == source {
				return err
			}
			report.skip(path, ReasonUnreadable, err)
			o.log.Warn("Cannot read %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == source {
			if o.isClaimed(path) {
				o.log.Debug("Source %s is claimed by the software copy", path)
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if o.ignore.ShouldIgnore(name) || o.isPreserved(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			o.log.Debug("Skipping %s", path)
			return nil
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == targetAbs {
				return filepath.SkipDir
			}
			if o.isClaimed(path) {
				o.log.Debug("Skipping claimed %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !o.isFile(path, d) {
			return nil
		}

		o.placeFile(source, target, path, kind, report)

		state.CurrentFile = path
		state.Organized = len(report.Organized)
		state.Skipped = len(report.Skipped)
		if n := len(report.Organized); n > 0 && report.Organized[n-1].Source == path {
			state.CopiedBytes += report.Organized[n-1].Size
		}
		o.progress.Publish(state)
		return nil
	})

	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			o.log.Warn("Organize cancelled after %d files", len(report.Organized))
			return report, ctxErr
		}
		return report, fmt.Errorf("failed to walk source: %w", walkErr)
	}

	state.Phase = progress.PhaseComplete
	state.CurrentFile = ""
	o.progress.Publish(state)

	o.log.Info("Organized %d files from %s (%d skipped)", len(report.Organized), source, len(report.Skipped))
	return report, nil
}

// placeFile runs classification, naming, collision resolution and copy
// for one file, recording the outcome in report
func (o *Organizer) placeFile(source, target, path string, kind classifier.FormatterKind, report *Report) {
	name := filepath.Base(path)

	rel, ok := o.table.CategoryFor(name)
	if !ok {
		report.skip(path, ReasonUnclassified, nil)
		o.log.Debug("Unclassified: %s", path)
		return
	}

	destDir := filepath.Join(target, rel)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		report.skip(path, ReasonMkdirFailed, err)
		o.log.Error("Cannot create %s: %v", destDir, err)
		return
	}

	dest, err := utils.UniqueFilePath(filepath.Join(destDir, classifier.RenameFile(name, kind)))
	if err != nil {
		reason := ReasonCopyFailed
		if errors.Is(err, utils.ErrCollisionExhausted) {
			reason = ReasonCollisionExhausted
		}
		report.skip(path, reason, err)
		o.log.Error("No destination for %s: %v", path, err)
		return
	}

	if err := fsutil.CopyFile(path, dest); err != nil {
		report.skip(path, ReasonCopyFailed, err)
		o.log.Error("Error copying %s: %v", path, err)
		return
	}

	if o.verify {
		if err := utils.VerifyCopy(path, dest); err != nil {
			os.Remove(dest)
			report.skip(path, ReasonVerifyFailed, err)
			o.log.Error("Verification failed for %s: %v", path, err)
			return
		}
	}

	var size int64
	if info, err := os.Stat(dest); err == nil {
		size = info.Size()
	}
	report.place(path, dest, size)

	if relSrc, err := filepath.Rel(source, path); err == nil {
		o.log.Debug("Copied %s -> %s", relSrc, dest)
	}
}

func (o *Organizer) isPreserved(name string) bool {
	_, ok := o.preserved[name]
	return ok
}

func (o *Organizer) isClaimed(dir string) bool {
	if len(o.claimed) == 0 {
		return false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	_, ok := o.claimed[abs]
	return ok
}

// isFile reports whether path is a regular file, following symlinks.
// Links to directories and special files are left alone.
func (o *Organizer) isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		// dangling link: let the copy fail and be reported
		return true
	}
	return info.Mode().IsRegular()
}
