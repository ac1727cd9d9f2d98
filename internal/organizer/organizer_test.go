package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/fenilsonani/project-forge/internal/classifier"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/testutil"
	"github.com/fenilsonani/project-forge/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrganizer(t *testing.T, opts Options) *Organizer {
	t.Helper()

	if opts.Table == nil {
		table, err := classifier.NewTable([]classifier.Rule{
			{Category: "docs", Extensions: []string{".txt", ".md"}, Target: "docs"},
			{Category: "code", Subcategory: "programming", Extensions: []string{".py", ".cpp", ".h"}, Target: "software/src"},
			{Category: "images", Subcategory: "photos", Extensions: []string{".png", ".jpg"}, Target: "_docs/images"},
		})
		require.NoError(t, err)
		opts.Table = table
	}
	if opts.Ignore == nil {
		ignore, err := classifier.NewIgnoreMatcher([]string{`\.`})
		require.NoError(t, err)
		opts.Ignore = ignore
	}
	if opts.Namer == nil {
		opts.Namer = classifier.NewNamer(map[string]classifier.FormatterKind{
			"snake_case": classifier.FormatSnakeCase,
			"PascalCase": classifier.FormatPascalCase,
		})
	}

	return New(opts)
}

// =============================================================================
// Core scenarios
// =============================================================================

func TestOrganizeScenario(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")
	f.SourceFile("b.py", "print('b')")
	f.SourceFile(".git/config", "[core]")
	f.SourceFile("img/photo.png", "png")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	assert.Len(t, report.Organized, 3)
	assert.Empty(t, report.Skipped)

	f.AssertFileContent(f.TargetPath("docs/a.txt"), "alpha")
	f.AssertFileExists(f.TargetPath("software/src/b.py"))
	f.AssertFileExists(f.TargetPath("_docs/images/photo.png"))

	files, err := testutil.ListFiles(f.TargetDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"_docs/images/photo.png", "docs/a.txt", "software/src/b.py"}, files)

	// walk order is lexical
	assert.Equal(t, filepath.Join(f.SourceDir, "a.txt"), report.Organized[0].Source)
	assert.Equal(t, f.TargetPath("docs/a.txt"), report.Organized[0].Target)
	assert.Equal(t, int64(5), report.Organized[0].Size)
}

func TestOrganizeTwiceNeverOverwrites(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")
	f.SourceFile("notes/readme.md", "readme")
	f.SourceFile("b.py", "b")

	org := newTestOrganizer(t, Options{})

	first, err := org.Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)
	second, err := org.Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	require.Len(t, second.Organized, len(first.Organized))

	firstTargets := make(map[string]bool)
	for _, p := range first.Organized {
		firstTargets[p.Target] = true
	}
	for _, p := range second.Organized {
		assert.False(t, firstTargets[p.Target], "second run reused %s", p.Target)
	}

	f.AssertFileExists(f.TargetPath("docs/a_1.txt"))
	f.AssertFileExists(f.TargetPath("docs/readme_1.md"))
	f.AssertFileExists(f.TargetPath("software/src/b_1.py"))
	f.AssertFileContent(f.TargetPath("docs/a.txt"), "alpha")

	count, err := testutil.CountFiles(f.TargetDir)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestOrganizeExcludesPreservedStructure(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("src/main.cpp", "int main() {}")
	f.SourceFile("deep/lib/util.h", "#pragma once")
	f.SourceFile("driver.cpp", "// driver")

	org := newTestOrganizer(t, Options{Preserved: []string{"src", "lib"}})
	report, err := org.Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	require.Len(t, report.Organized, 1)
	assert.Equal(t, filepath.Join(f.SourceDir, "driver.cpp"), report.Organized[0].Source)
	f.AssertFileNotExists(f.TargetPath("software/src/main.cpp"))
	f.AssertFileNotExists(f.TargetPath("software/src/util.h"))
}

func TestOrganizeSkipsClaimedDirectories(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("notes.txt", "n")
	f.SourceFile("Blink/Blink.ino", "void setup() {}")
	f.SourceFile("Blink/helpers.h", "#pragma once")

	org := newTestOrganizer(t, Options{Claimed: []string{filepath.Join(f.SourceDir, "Blink")}})
	report, err := org.Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	require.Len(t, report.Organized, 1)
	assert.Empty(t, report.Skipped)
	f.AssertFileExists(f.TargetPath("docs/notes.txt"))
	f.AssertFileNotExists(f.TargetPath("software/src/helpers.h"))
}

func TestOrganizeClaimedSourceOrganizesNothing(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("Blink.ino", "void setup() {}")
	f.SourceFile("helpers.h", "#pragma once")

	org := newTestOrganizer(t, Options{Claimed: []string{f.SourceDir}})
	report, err := org.Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	assert.Empty(t, report.Organized)
	assert.Empty(t, report.Skipped)
	count, err := testutil.CountFiles(f.TargetDir)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOrganizeLongFileName(t *testing.T) {
	f := testutil.NewFixture(t)
	name := strings.Repeat("a", 240) + ".txt"
	f.SourceFile(name, "long")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	assert.Empty(t, report.Skipped)
	require.Len(t, report.Organized, 1)
	f.AssertFileContent(f.TargetPath("docs/"+name), "long")
}

func TestOrganizeUnclassified(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("mystery.xyz", "?")
	f.SourceFile("Makefile", "all:")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	assert.Empty(t, report.Organized)
	require.Len(t, report.Skipped, 2)
	for _, s := range report.Skipped {
		assert.Equal(t, ReasonUnclassified, s.Reason)
		assert.Nil(t, s.Err)
	}
	assert.Empty(t, report.Failures(), "unclassified files are not failures")

	files, err := testutil.ListFiles(f.TargetDir)
	require.NoError(t, err)
	assert.Empty(t, files, "unclassified files are never copied")
}

func TestOrganizeIgnoresFilesAndDirectories(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile(".hidden.txt", "h")
	f.SourceFile("__pycache__/mod.py", "cached")
	f.SourceFile("keep.py", "k")
	f.SourceFile("mod.pyc", "bytecode")

	ignore, err := classifier.NewIgnoreMatcher([]string{`\.`, `__pycache__$`, `.*\.pyc$`})
	require.NoError(t, err)

	report, err := newTestOrganizer(t, Options{Ignore: ignore}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	require.Len(t, report.Organized, 1)
	assert.Empty(t, report.Skipped)
	f.AssertFileExists(f.TargetPath("software/src/keep.py"))
}

// =============================================================================
// Naming
// =============================================================================

func TestOrganizeNamingPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "Motor-Mount file.TXT"},
		{"snake_case", "motor_mount_file.TXT"},
		{"PascalCase", "MotorMountFile.TXT"},
	}

	for _, tt := range tests {
		t.Run("pattern="+tt.pattern, func(t *testing.T) {
			f := testutil.NewFixture(t)
			f.SourceFile("Motor-Mount file.TXT", "x")

			report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, tt.pattern)
			require.NoError(t, err)
			require.Len(t, report.Organized, 1)

			assert.Equal(t, f.TargetPath("docs/"+tt.want), report.Organized[0].Target)
			f.AssertFileExists(f.TargetPath("docs/" + tt.want))
		})
	}
}

func TestOrganizeUnknownPatternFailsBeforeWalk(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "kebab-case")
	require.Error(t, err)
	assert.True(t, errors.Is(err, classifier.ErrUnknownPattern))
	assert.Empty(t, report.Organized)
	f.AssertFileNotExists(f.TargetPath("docs"))
}

// =============================================================================
// Errors
// =============================================================================

func TestOrganizeMissingSource(t *testing.T) {
	f := testutil.NewFixture(t)

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.Path("nope"), f.TargetDir, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
	require.NotNil(t, report)
	assert.Empty(t, report.Organized)
	assert.Empty(t, report.Skipped)
}

func TestOrganizeSourceIsFile(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.SourceFile("a.txt", "alpha")

	_, err := newTestOrganizer(t, Options{}).Organize(context.Background(), file, f.TargetDir, "")
	assert.True(t, errors.Is(err, ErrSourceNotDir))
}

func TestOrganizeCopyFailureContinues(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	f.CreateNoPermissionFile("source/a_locked.txt", []byte("secret"))
	f.SourceFile("b.txt", "fine")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	require.Len(t, report.Organized, 1)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, ReasonCopyFailed, report.Skipped[0].Reason)

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, ErrorPermissionDenied, failures[0].Reason)

	// no partial copy left behind
	f.AssertFileNotExists(f.TargetPath("docs/a_locked.txt"))
}

func TestOrganizeMkdirFailure(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")
	f.CreateReadOnlyDir("target")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, ReasonMkdirFailed, report.Skipped[0].Reason)
}

func TestOrganizeUnreadableDirectory(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	f.CreateUnreadableDir("source/locked")
	f.SourceFile("a.txt", "alpha")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	assert.Len(t, report.Organized, 1)
	require.Len(t, report.SkippedBy(ReasonUnreadable), 1)
}

func TestOrganizeCancelled(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")
	f.SourceFile("b.txt", "beta")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestOrganizer(t, Options{}).Organize(ctx, f.SourceDir, f.TargetDir, "")
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Organized)
}

func TestOrganizeSkipsNestedTarget(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")
	target := filepath.Join(f.SourceDir, "out")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, target, "")
	require.NoError(t, err)
	assert.Len(t, report.Organized, 1)

	report, err = newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, target, "")
	require.NoError(t, err)
	assert.Len(t, report.Organized, 1, "files copied into the nested target are not picked up again")
}

// =============================================================================
// Options
// =============================================================================

func TestOrganizeVerify(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")

	report, err := newTestOrganizer(t, Options{Verify: true}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)
	assert.Len(t, report.Organized, 1)
}

func TestOrganizeFollowsFileSymlinks(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("real/a.txt", "alpha")
	f.CreateSymlink(filepath.Join(f.SourceDir, "real", "a.txt"), "source/link.txt")
	f.CreateSymlink(filepath.Join(f.SourceDir, "real"), "source/dirlink")

	report, err := newTestOrganizer(t, Options{}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	assert.Len(t, report.Organized, 2)
	f.AssertFileContent(f.TargetPath("docs/link.txt"), "alpha")
}

func TestOrganizePublishesProgress(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "alpha")

	reporter := progress.NewReporter()
	ch := reporter.Subscribe()

	_, err := newTestOrganizer(t, Options{Progress: reporter}).Organize(context.Background(), f.SourceDir, f.TargetDir, "")
	require.NoError(t, err)

	last := reporter.Current()
	require.NotNil(t, last)
	assert.Equal(t, progress.PhaseComplete, last.Phase)
	assert.Equal(t, 1, last.Organized)
	assert.Equal(t, int64(5), last.CopiedBytes)

	select {
	case u := <-ch:
		assert.Equal(t, progress.PhaseOrganizing, u.Phase)
	case <-time.After(time.Second):
		t.Fatal("no progress delivered")
	}
}

// =============================================================================
// Error categorization
// =============================================================================

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason ErrorReason
	}{
		{"EACCES", syscall.EACCES, ErrorPermissionDenied},
		{"EPERM", syscall.EPERM, ErrorPermissionDenied},
		{"ENOENT", syscall.ENOENT, ErrorFileNotFound},
		{"ENOSPC", syscall.ENOSPC, ErrorNoSpace},
		{"EISDIR", syscall.EISDIR, ErrorIsDirectory},
		{"EROFS", syscall.EROFS, ErrorReadOnly},
		{"path error", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENOSPC}, ErrorNoSpace},
		{"not exist", os.ErrNotExist, ErrorFileNotFound},
		{"collision", utils.ErrCollisionExhausted, ErrorCollision},
		{"unknown", errors.New("weird"), ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeError("/p", tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.reason, got.Reason)
			assert.True(t, errors.Is(got, tt.err))
			assert.Contains(t, got.UserMessage(), "/p")
		})
	}

	assert.Nil(t, CategorizeError("/p", nil))
}

func TestFormatErrorSummary(t *testing.T) {
	assert.Empty(t, FormatErrorSummary(nil))

	summary := FormatErrorSummary([]*CopyError{
		CategorizeError("/a", syscall.EACCES),
		CategorizeError("/b", syscall.EACCES),
		CategorizeError("/c", syscall.ENOSPC),
	})

	assert.Contains(t, summary, "Permission denied: 2 files")
	assert.Contains(t, summary, "No space left on device: 1 files")
	assert.Contains(t, summary, "Tip:")
}

func TestReportSummary(t *testing.T) {
	r := newReport("/src", "/dst")
	r.place("/src/a", "/dst/a", 10)
	r.skip("/src/b", ReasonUnclassified, nil)
	r.skip("/src/c", ReasonCopyFailed, syscall.EACCES)

	assert.Equal(t, "1 organized, 2 skipped (1 unclassified)", r.Summary())
	assert.Equal(t, int64(10), r.TotalBytes())
	assert.Len(t, r.Failures(), 1)
}
