package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/reporter"
	"github.com/fenilsonani/project-forge/internal/ui"
)

var (
	orgName        string
	orgStatus      string
	orgNaming      string
	orgOutput      string
	orgFile        string
	orgInteractive bool
	orgVerify      bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize SOURCE",
	Short: "Ingest an existing directory into a project",
	Long: `Creates (or reuses) a project and copies every file of SOURCE into it.

Software projects (PlatformIO, Arduino, C/Make/Node/Python) are copied
verbatim into software/. Every other file is sorted into the project folder
for its type and optionally renamed with a naming pattern. SOURCE is never
modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().StringVar(&orgName, "name", "", "project name (default: source directory name)")
	organizeCmd.Flags().StringVar(&orgStatus, "status", "", "status folder (default from config)")
	organizeCmd.Flags().StringVar(&orgNaming, "naming", "", "naming pattern from naming_patterns (default: keep names)")
	organizeCmd.Flags().StringVar(&orgOutput, "output", "summary", "output format (summary, table, json, yaml)")
	organizeCmd.Flags().StringVar(&orgFile, "file", "", "save report to file")
	organizeCmd.Flags().BoolVarP(&orgInteractive, "interactive", "i", false, "choose name, status and naming interactively")
	organizeCmd.Flags().BoolVar(&orgVerify, "verify", false, "verify every copy by SHA-256")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(orgOutput)
	if err != nil {
		return err
	}

	if orgInteractive && !isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("--interactive needs a terminal")
	}

	prog := progress.NewReporter()
	defer prog.Close()

	// the wizard owns the screen, so logs only go to --log-file
	mgr, closeLog, err := newManagerWithLogger(cfg, prog, orgInteractive)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signalContext()
	defer stop()

	req := project.OrganizeRequest{
		Source:  args[0],
		Name:    orgName,
		Status:  orgStatus,
		Pattern: orgNaming,
		Verify:  orgVerify,
	}

	var result *project.OrganizeResult
	if orgInteractive {
		result, err = ui.RunOrganizeWizard(ctx, mgr, prog, req)
		if errors.Is(err, ui.ErrCancelled) {
			fmt.Println("Organize cancelled")
			return nil
		}
	} else {
		live := ui.NewLiveProgress(os.Stderr, prog)
		live.Start()
		result, err = mgr.OrganizeExisting(ctx, req)
		live.Finish()
	}

	// a partial result is still reported
	if result != nil {
		if rerr := writeReport(result, format); rerr != nil {
			return rerr
		}
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("organize interrupted, the project holds the files copied so far")
	}
	return err
}

func writeReport(result *project.OrganizeResult, format reporter.OutputFormat) error {
	if orgFile != "" {
		if err := reporter.SaveToFile(result, orgFile, format); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Printf("Report saved to: %s\n", orgFile)
		return nil
	}

	if err := reporter.New(os.Stdout, format).Report(result); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return nil
}

// signalContext is cancelled on Ctrl-C or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
