package reporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/fenilsonani/project-forge/internal/detector"
	"github.com/fenilsonani/project-forge/internal/organizer"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/software"
	"gopkg.in/yaml.v3"
)

func sampleResult() *project.OrganizeResult {
	return &project.OrganizeResult{
		ProjectPath: "/base/ONGOING/Blinky",
		Detection:   detector.Detection{Type: detector.TypePlatformIO},
		Software: &software.CopyReport{
			Type:        detector.TypePlatformIO,
			SoftwareDir: "/base/ONGOING/Blinky/software",
			Copied:      []string{"platformio.ini", "src"},
		},
		Files: &organizer.Report{
			Source: "/src/blinky",
			Target: "/base/ONGOING/Blinky",
			Organized: []organizer.Placement{
				{Source: "/src/blinky/notes.txt", Target: "/base/ONGOING/Blinky/_docs/notes/notes.txt", Size: 2048},
			},
			Skipped: []organizer.SkippedFile{
				{Path: "/src/blinky/blob.xyz", Reason: organizer.ReasonUnclassified},
				{Path: "/src/blinky/locked.txt", Reason: organizer.ReasonCopyFailed, Err: syscall.EACCES, Message: "permission denied"},
			},
		},
		Duration: 1500 * time.Millisecond,
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]OutputFormat{
		"":        FormatSummary,
		"json":    FormatJSON,
		" YAML ":  FormatYAML,
		"table":   FormatTable,
		"summary": FormatSummary,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected xml to be rejected")
	}
}

func TestReportSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatSummary).Report(sampleResult()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"=== Organize Summary ===",
		"Project: /base/ONGOING/Blinky",
		"Type: platformio",
		"Software: 2 entries preserved",
		"Files organized: 1 (2.00 KB)",
		"Files skipped: 2",
		"copy_failed: 1",
		"unclassified: 1",
		"Permission denied: 1 files",
		"Duration: 1.5s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestReportTable(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatTable).Report(sampleResult()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "notes.txt") || !strings.Contains(out, "_docs/notes/notes.txt") {
		t.Errorf("table should show relative source and target:\n%s", out)
	}
	if !strings.Contains(out, "blob.xyz") || !strings.Contains(out, "unclassified") {
		t.Errorf("table should list skipped files:\n%s", out)
	}
	if !strings.Contains(out, "Total: 1 files, 2.00 KB, 2 skipped") {
		t.Errorf("table missing totals:\n%s", out)
	}
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)
	r.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

	if err := r.Report(sampleResult()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc["timestamp"] != "2026-03-14T09:30:00Z" {
		t.Errorf("unexpected timestamp %v", doc["timestamp"])
	}
	if doc["project_type"] != "platformio" {
		t.Errorf("unexpected project_type %v", doc["project_type"])
	}
	if doc["organized_files"] != float64(1) || doc["skipped_files"] != float64(2) {
		t.Errorf("unexpected counts: %v / %v", doc["organized_files"], doc["skipped_files"])
	}

	skipped := doc["skipped"].([]interface{})
	locked := skipped[1].(map[string]interface{})
	if locked["error"] != "permission denied" {
		t.Errorf("skipped error message should be serialized, got %v", locked["error"])
	}
}

func TestReportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).Report(sampleResult()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	var doc struct {
		Project   string `yaml:"project"`
		Duration  string `yaml:"duration"`
		Organized []struct {
			Target string `yaml:"target"`
		} `yaml:"organized"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}

	if doc.Project != "/base/ONGOING/Blinky" || doc.Duration != "1.5s" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if len(doc.Organized) != 1 {
		t.Errorf("expected 1 organized entry, got %d", len(doc.Organized))
	}
}

func TestReportNilResult(t *testing.T) {
	if err := New(&bytes.Buffer{}, FormatSummary).Report(nil); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestReportSnippets(t *testing.T) {
	result := &project.SnippetReport{
		Target:  "/base/Code_Archives",
		Folders: []string{"blink"},
		Organized: []organizer.Placement{
			{Source: "/s/blink.ino", Target: "/base/Code_Archives/blink/blink.ino"},
		},
		Skipped: []organizer.SkippedFile{{Path: "/s/empty.py", Reason: project.ReasonEmptyFile}},
	}

	var buf bytes.Buffer
	if err := New(&buf, FormatSummary).ReportSnippets(result); err != nil {
		t.Fatalf("ReportSnippets failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"blink:", "  - blink.ino", "Total folders created: 1", "Files skipped: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("snippet summary missing %q:\n%s", want, out)
		}
	}
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := SaveToFile(sampleResult(), path, FormatJSON); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !json.Valid(data) {
		t.Error("saved report is not valid JSON")
	}

	err = SaveToFile(sampleResult(), filepath.Join(t.TempDir(), "missing", "r.json"), FormatJSON)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist for a missing directory, got %v", err)
	}
}
