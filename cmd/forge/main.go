package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/project-forge/internal/config"
	"github.com/fenilsonani/project-forge/internal/logger"
	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/project"
	"github.com/fenilsonani/project-forge/internal/reporter"
	"github.com/fenilsonani/project-forge/internal/ui"
	uiutils "github.com/fenilsonani/project-forge/internal/ui/utils"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	logLevel   string
	logFile    string

	basePath      string
	customFolders []string
	newStatus     string
	outputFmt     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Organize projects into a status-based workspace",
	Long: `project-forge keeps a workspace of status folders (ONGOING, IDEAS, HOLD, DONE, ...),
scaffolds new projects with a standard layout and ingests existing file trees,
sorting every file by type while keeping PlatformIO, Arduino and other
software project layouts intact.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the workspace and its status folders",
	Long: `Creates the base path and the configured status folders. Extra folders can be
added with --custom NAME=description; their names are upper-cased.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if basePath != "" {
			cfg.BasePath = basePath
		}

		custom, err := parseCustomFolders(customFolders)
		if err != nil {
			return err
		}

		mgr, closeLog, err := newManager(cfg, nil)
		if err != nil {
			return err
		}
		defer closeLog()

		created, err := mgr.InitWorkspace(custom)
		if err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}

		// custom folders are created upper-cased
		folders := append([]config.MasterFolder(nil), cfg.MasterFolders...)
		for _, f := range custom {
			f.Name = strings.ToUpper(f.Name)
			folders = append(folders, f)
		}
		ui.PrintWorkspace(os.Stdout, mgr.BasePath(), created, folders, uiutils.TerminalWidth(os.Stdout))
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Scaffold a new project",
	Long: `Creates NAME inside a status folder with the configured project structure,
a project.yaml and a README. Running it again on an existing project only
fills in what is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeLog, err := newManager(cfg, nil)
		if err != nil {
			return err
		}
		defer closeLog()

		path, err := mgr.CreateProject(args[0], newStatus)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("✓ Project created at %s\n", path)
		return nil
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect SOURCE",
	Short: "Show which software project type a directory holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeLog, err := newManager(cfg, nil)
		if err != nil {
			return err
		}
		defer closeLog()

		detection, err := mgr.DetectProjectType(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Type: %s\n", detection.Type)
		if detection.SketchDir != "" {
			fmt.Printf("Sketch: %s\n", detection.SketchDir)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects grouped by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mgr, closeLog, err := newManager(cfg, nil)
		if err != nil {
			return err
		}
		defer closeLog()

		groups, err := mgr.ListProjects()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				ui.PrintProjects(os.Stdout, mgr.BasePath(), nil, 0)
				return nil
			}
			return err
		}

		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}
		switch format {
		case reporter.FormatJSON, reporter.FormatYAML:
			return encode(format, groups)
		default:
			ui.PrintProjects(os.Stdout, mgr.BasePath(), groups, uiutils.TerminalWidth(os.Stdout))
			return nil
		}
	},
}

var snippetsCmd = &cobra.Command{
	Use:   "snippets SOURCE",
	Short: "Collect loose code files into Code_Archives",
	Long: `Copies code snippets (.cpp .ino .py .js .html .css .ini) from SOURCE into
<base>/Code_Archives. Files in SOURCE get a folder each; every subdirectory
becomes one folder holding the code found anywhere below it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		mgr, closeLog, err := newManager(cfg, nil)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signalContext()
		defer stop()

		result, err := mgr.OrganizeSnippets(ctx, args[0])
		if result != nil {
			if rerr := reporter.New(os.Stdout, format).ReportSnippets(result); rerr != nil {
				return fmt.Errorf("failed to generate report: %w", rerr)
			}
		}
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the config file in use and the effective configuration after defaults and environment overrides.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolveConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("# Config file: %s\n", cfgPath)

		if initConfig {
			written, err := config.EnsureConfigExists(cfgPath)
			if err != nil {
				return err
			}
			if written {
				fmt.Println("# Wrote an example configuration.")
			}
		} else if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("# Config file does not exist. Using default configuration.")
			fmt.Println("# Run 'forge config --init' to write an example.")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return encode(reporter.FormatYAML, cfg)
	},
}

var initConfig bool

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")

	initCmd.Flags().StringVar(&basePath, "base", "", "workspace root (default from config, then ~/Projects)")
	initCmd.Flags().StringArrayVar(&customFolders, "custom", nil, "extra status folder as NAME or NAME=description (repeatable)")

	newCmd.Flags().StringVar(&newStatus, "status", "", "status folder (default from config)")

	listCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, json, yaml)")
	snippetsCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, json, yaml)")

	configCmd.Flags().BoolVar(&initConfig, "init", false, "write an example config file if none exists")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(snippetsCmd)
	rootCmd.AddCommand(configCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// loadConfig reads .env, the config file and PROJECT_FORGE_* overrides
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfgPath, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// newLogger picks the log destination and level from the flags and config.
// The returned func closes a log file.
func newLogger(cfg *config.Config, quiet bool) (logger.Logger, func(), error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if logLevel != "" {
		level = logLevel
	}

	if logFile != "" {
		l, err := logger.NewFileLogger(logFile, level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { l.Close() }, nil
	}
	if quiet {
		return logger.NopLogger{}, func() {}, nil
	}
	return logger.NewConsoleLogger(os.Stderr, level), func() {}, nil
}

func newManager(cfg *config.Config, prog *progress.Reporter) (*project.Manager, func(), error) {
	return newManagerWithLogger(cfg, prog, false)
}

func newManagerWithLogger(cfg *config.Config, prog *progress.Reporter, quiet bool) (*project.Manager, func(), error) {
	log, closeLog, err := newLogger(cfg, quiet)
	if err != nil {
		return nil, nil, err
	}
	mgr, err := project.NewManager(cfg, log, prog)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return mgr, closeLog, nil
}

// parseCustomFolders reads NAME or NAME=description values
func parseCustomFolders(values []string) ([]config.MasterFolder, error) {
	folders := make([]config.MasterFolder, 0, len(values))
	for _, v := range values {
		name, desc, _ := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --custom value %q: missing name", v)
		}
		folders = append(folders, config.MasterFolder{Name: name, Description: strings.TrimSpace(desc)})
	}
	return folders, nil
}

func encode(format reporter.OutputFormat, v interface{}) error {
	if format == reporter.FormatJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(v)
}
