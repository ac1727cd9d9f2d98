package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fenilsonani/project-forge/internal/organizer"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/software"
	"github.com/fenilsonani/project-forge/pkg/utils"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// defaultWidth is used when the writer is not a terminal
const defaultWidth = 120

// ParseFormat validates a --output value
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSummary, nil
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use summary, table, json or yaml)", s)
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
	width  int
	now    func() time.Time
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
		width:  terminalWidth(writer),
		now:    time.Now,
	}
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 40 {
		return defaultWidth
	}
	return width
}

// document is the serialized form of an organize run
type document struct {
	Timestamp          string                  `json:"timestamp" yaml:"timestamp"`
	Project            string                  `json:"project" yaml:"project"`
	Source             string                  `json:"source" yaml:"source"`
	ProjectType        string                  `json:"project_type" yaml:"project_type"`
	SketchDir          string                  `json:"sketch_dir,omitempty" yaml:"sketch_dir,omitempty"`
	Software           *software.CopyReport    `json:"software,omitempty" yaml:"software,omitempty"`
	OrganizedFiles     int                     `json:"organized_files" yaml:"organized_files"`
	SkippedFiles       int                     `json:"skipped_files" yaml:"skipped_files"`
	TotalSize          int64                   `json:"total_size" yaml:"total_size"`
	TotalSizeFormatted string                  `json:"total_size_formatted" yaml:"total_size_formatted"`
	Duration           string                  `json:"duration" yaml:"duration"`
	Organized          []organizer.Placement   `json:"organized" yaml:"organized"`
	Skipped            []organizer.SkippedFile `json:"skipped" yaml:"skipped"`
}

// Report renders the outcome of an organize run
func (r *Reporter) Report(result *project.OrganizeResult) error {
	if result == nil {
		return fmt.Errorf("no result to report")
	}
	files := result.Files
	if files == nil {
		files = &organizer.Report{}
	}

	switch r.format {
	case FormatTable:
		return r.reportTable(result, files)
	case FormatJSON, FormatYAML:
		return r.encode(r.document(result, files))
	case FormatSummary:
		return r.reportSummary(result, files)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) document(result *project.OrganizeResult, files *organizer.Report) document {
	doc := document{
		Timestamp:          r.now().Format(time.RFC3339),
		Project:            result.ProjectPath,
		Source:             files.Source,
		ProjectType:        string(result.Detection.Type),
		SketchDir:          result.Detection.SketchDir,
		Software:           result.Software,
		OrganizedFiles:     len(files.Organized),
		SkippedFiles:       len(files.Skipped),
		TotalSize:          files.TotalBytes(),
		TotalSizeFormatted: utils.FormatBytes(files.TotalBytes()),
		Duration:           result.Duration.Round(time.Millisecond).String(),
		Organized:          files.Organized,
		Skipped:            files.Skipped,
	}
	if doc.Organized == nil {
		doc.Organized = []organizer.Placement{}
	}
	if doc.Skipped == nil {
		doc.Skipped = []organizer.SkippedFile{}
	}
	return doc
}

func (r *Reporter) encode(v interface{}) error {
	if r.format == FormatJSON {
		encoder := json.NewEncoder(r.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}

	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(v)
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(result *project.OrganizeResult, files *organizer.Report) error {
	fmt.Fprintf(r.writer, "=== Organize Summary ===\n")
	fmt.Fprintf(r.writer, "Project: %s\n", result.ProjectPath)
	fmt.Fprintf(r.writer, "Type: %s\n", result.Detection)

	if sw := result.Software; sw != nil {
		fmt.Fprintf(r.writer, "Software: %d entries preserved in %s\n", len(sw.Copied), sw.SoftwareDir)
		for _, f := range sw.Failed {
			fmt.Fprintf(r.writer, "  failed: %s (%s)\n", f.Path, f.Message)
		}
	}

	fmt.Fprintf(r.writer, "Files organized: %d (%s)\n", len(files.Organized), utils.FormatBytes(files.TotalBytes()))
	fmt.Fprintf(r.writer, "Files skipped: %d\n", len(files.Skipped))

	counts := make(map[organizer.SkipReason]int)
	for _, s := range files.Skipped {
		counts[s.Reason]++
	}
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(r.writer, "  %s: %d\n", reason, counts[organizer.SkipReason(reason)])
	}

	if summary := organizer.FormatErrorSummary(files.Failures()); summary != "" {
		fmt.Fprint(r.writer, summary)
	}

	if result.Duration > 0 {
		fmt.Fprintf(r.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(result *project.OrganizeResult, files *organizer.Report) error {
	// source | target | size, with the two path columns sharing the width
	pathCol := (r.width - 3*2 - 10) / 2
	if pathCol < 20 {
		pathCol = 20
	}
	rule := strings.Repeat("-", 2*pathCol+16)
	row := fmt.Sprintf("%%-%ds | %%-%ds | %%s\n", pathCol, pathCol)

	fmt.Fprintf(r.writer, row, "Source", "Target", "Size")
	fmt.Fprintf(r.writer, "%s\n", rule)

	for _, p := range files.Organized {
		fmt.Fprintf(r.writer, row,
			truncate(relTo(files.Source, p.Source), pathCol),
			truncate(relTo(result.ProjectPath, p.Target), pathCol),
			utils.FormatBytes(p.Size))
	}

	if len(files.Skipped) > 0 {
		fmt.Fprintf(r.writer, "\n%s\n", rule)
		fmt.Fprintf(r.writer, row, "Skipped", "Reason", "")
		for _, s := range files.Skipped {
			fmt.Fprintf(r.writer, row, truncate(relTo(files.Source, s.Path), pathCol), s.Reason, "")
		}
	}

	fmt.Fprintf(r.writer, "\n%s\n", rule)
	fmt.Fprintf(r.writer, "Total: %d files, %s, %d skipped\n",
		len(files.Organized), utils.FormatBytes(files.TotalBytes()), len(files.Skipped))

	return nil
}

// ReportSnippets renders the outcome of a snippet run
func (r *Reporter) ReportSnippets(result *project.SnippetReport) error {
	if result == nil {
		return fmt.Errorf("no result to report")
	}

	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(result)
	case FormatTable, FormatSummary:
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}

	fmt.Fprintf(r.writer, "=== Code Snippets Summary ===\n")
	byFolder := make(map[string][]string)
	for _, p := range result.Organized {
		folder := filepath.Base(filepath.Dir(p.Target))
		byFolder[folder] = append(byFolder[folder], filepath.Base(p.Target))
	}
	for _, folder := range result.Folders {
		fmt.Fprintf(r.writer, "\n%s:\n", folder)
		names := byFolder[folder]
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.writer, "  - %s\n", name)
		}
	}

	fmt.Fprintf(r.writer, "\nTotal folders created: %d\n", len(result.Folders))
	fmt.Fprintf(r.writer, "Total files organized: %d\n", len(result.Organized))
	fmt.Fprintf(r.writer, "Files skipped: %d\n", len(result.Skipped))
	return nil
}

// SaveToFile saves the report to a file
func SaveToFile(result *project.OrganizeResult, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(result)
}

func relTo(base, path string) string {
	if base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return "..." + s[len(s)-(n-3):]
}
