package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fenilsonani/project-forge/internal/config"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/ui/styles"
	"github.com/fenilsonani/project-forge/internal/ui/utils"
)

// descIndent is the indentation of wrapped descriptions
const descIndent = 6

// PrintWorkspace prints the status folders created by init with their
// descriptions wrapped to width
func PrintWorkspace(w io.Writer, base string, created []string, folders []config.MasterFolder, width int) {
	fmt.Fprintf(w, "%s %s\n", styles.SuccessStyle.Render("✓ Workspace ready at"), styles.FilePathStyle.Render(base))

	desc := make(map[string]string, len(folders))
	for _, f := range folders {
		desc[f.Name] = f.Description
	}

	for _, name := range created {
		fmt.Fprintf(w, "  %s\n", styles.BoldStyle.Render(name))
		if d := desc[name]; d != "" {
			fmt.Fprintln(w, styles.DimStyle.Render(utils.WrapIndented(d, width, descIndent)))
		}
	}
}

// PrintProjects prints projects grouped by status. The description stored
// in each project.yaml is shown wrapped under its name.
func PrintProjects(w io.Writer, base string, groups []project.StatusGroup, width int) {
	if len(groups) == 0 {
		fmt.Fprintf(w, "No status folders in %s. Run 'forge init' first.\n", base)
		return
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", styles.SubtitleStyle.Render(g.Status), styles.DimStyle.Render(fmt.Sprintf("(%d)", len(g.Projects))))

		for _, name := range g.Projects {
			line := "  " + name
			meta, err := project.LoadMetadata(filepath.Join(base, g.Status, name))
			if err == nil && meta.SoftwareType != "" {
				line += " " + styles.DimStyle.Render("["+meta.SoftwareType+"]")
			}
			fmt.Fprintln(w, line)

			if err == nil && meta.Description != "" {
				fmt.Fprintln(w, styles.DimStyle.Render(utils.WrapIndented(meta.Description, width, descIndent)))
			}
		}
	}
}
