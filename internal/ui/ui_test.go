package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/project-forge/internal/config"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/project"
)

func TestStatusOptions(t *testing.T) {
	cfg := config.GetDefault()

	options := StatusOptions(cfg, "ONGOING")
	require.Len(t, options, len(cfg.MasterFolders))
	assert.Equal(t, "ONGOING", options[0].Value)
	assert.Equal(t, "Active projects in development", options[0].Desc)

	options = StatusOptions(cfg, "ARCHIVE")
	assert.Equal(t, "ARCHIVE", options[len(options)-1].Value, "unknown current status is still offered")
}

func TestPatternOptions(t *testing.T) {
	cfg := config.GetDefault()
	cfg.NamingPatterns = map[string]config.NamingPattern{
		"snake":  {Formatter: "snake_case", Description: "Lower case with underscores.", Example: "motor_mount.txt"},
		"pascal": {Formatter: "pascal_case"},
	}

	options := PatternOptions(cfg)
	require.Len(t, options, 3)
	assert.Equal(t, keepNames, options[0].Label)
	assert.Empty(t, options[0].Value)
	assert.Equal(t, "pascal", options[1].Value)
	assert.Equal(t, "snake", options[2].Value)
	assert.Equal(t, "Lower case with underscores. e.g. motor_mount.txt", options[2].Desc)
}

func TestPrintWorkspace(t *testing.T) {
	var buf bytes.Buffer
	folders := []config.MasterFolder{
		{Name: "ONGOING", Description: "Active projects in development, plus everything that is being prototyped on the bench right now"},
	}

	PrintWorkspace(&buf, "/base", []string{"ONGOING", "CUSTOM"}, folders, 40)

	out := buf.String()
	assert.Contains(t, out, "/base")
	assert.Contains(t, out, "CUSTOM")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Active") || strings.Contains(line, "prototyped") {
			assert.True(t, strings.HasPrefix(line, "      "), "description lines are indented: %q", line)
			assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 40)
		}
	}
}

func TestPrintProjects(t *testing.T) {
	base := t.TempDir()
	cfg := config.GetDefault()
	cfg.BasePath = base

	mgr, err := project.NewManager(cfg, nil, nil)
	require.NoError(t, err)
	path, err := mgr.CreateProject("Blinky", "ONGOING")
	require.NoError(t, err)

	meta, err := project.LoadMetadata(path)
	require.NoError(t, err)
	meta.Description = "Blinks an LED."
	meta.SoftwareType = "platformio"
	require.NoError(t, project.WriteMetadata(path, meta))

	groups, err := mgr.ListProjects()
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintProjects(&buf, base, groups, 80)

	out := buf.String()
	assert.Contains(t, out, "ONGOING")
	assert.Contains(t, out, "Blinky")
	assert.Contains(t, out, "[platformio]")
	assert.Contains(t, out, "Blinks an LED.")
}

func TestPrintProjectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintProjects(&buf, "/base", nil, 80)
	assert.Contains(t, buf.String(), "forge init")
}

func TestLiveProgressDisabledOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	lp := NewLiveProgress(&buf, progress.NewReporter())

	assert.False(t, lp.Enabled())
	lp.Start()
	lp.Finish()
	assert.Empty(t, buf.String())
}

func TestLiveProgressUpdate(t *testing.T) {
	var buf bytes.Buffer
	lp := NewLiveProgress(&buf, nil)

	lp.Update(progress.Update{Phase: progress.PhaseDetecting})
	assert.Contains(t, buf.String(), "Detecting project type...")
	assert.True(t, strings.HasPrefix(buf.String(), "\r"))
}
