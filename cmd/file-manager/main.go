package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mainbong/file_manager/internal/config"
	"github.com/mainbong/file_manager/internal/filesystem"
	"github.com/mainbong/file_manager/internal/history"
	"github.com/mainbong/file_manager/internal/logger"
	"github.com/mainbong/file_manager/internal/terminal"
	"github.com/mainbong/file_manager/internal/workdir"
)

const version = "v0.1.0"

var (
	cfg        *config.Config
	startDir   string
	plainMode  bool
	memoryMode bool
	devMode    bool
	tuiEnabled bool
)

var rootCmd = &cobra.Command{
	Use:           "file-manager",
	Short:         "Interactive file and folder manager",
	Long:          "A menu-driven file manager that works relative to a current folder.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: runInteractive,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("file-manager %s\n", version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Run: func(cmd *cobra.Command, args []string) {
		r := terminal.NewRenderer(os.Stdout)
		r.Heading("Config file: %s", config.GetConfigFile())
		rows := [][]string{{"Key", "Value"}}
		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			rows = append(rows, []string{key, value})
		}
		r.Table(rows)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to change setting: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review saved operation journals",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved journals",
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := history.NewManager(cfg.JournalDir, "")
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		journals, err := journal.List()
		if err != nil {
			return fmt.Errorf("failed to list journals: %w", err)
		}

		r := terminal.NewRenderer(os.Stdout)
		if len(journals) == 0 {
			r.Line("No saved journals.")
			return nil
		}
		rows := [][]string{{"ID", "Start folder", "Actions", "Failures", "Updated"}}
		for _, j := range journals {
			rows = append(rows, []string{
				j.ID,
				j.StartDir,
				strconv.Itoa(len(j.Actions)),
				strconv.Itoa(j.Failures()),
				j.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		r.Table(rows)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the actions of a saved journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := history.NewManager(cfg.JournalDir, "")
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		journal, err := manager.Load(args[0])
		if err != nil {
			return err
		}

		r := terminal.NewRenderer(os.Stdout)
		r.Heading("Journal %s (started in %s)", journal.ID, journal.StartDir)
		if len(journal.Actions) == 0 {
			r.Line("No recorded actions.")
			return nil
		}
		for i, action := range journal.Actions {
			r.Line("%d. [%s] %s %s", i+1, action.Timestamp.Format("2006-01-02 15:04:05"), action.Op, strings.Join(quoteAll(action.Args), " "))
			r.SetLinePrefix("   ")
			kind, _ := workdir.ParseKind(action.Kind)
			r.Outcome(workdir.Outcome{Kind: kind, Message: action.Message})
			r.SetLinePrefix("")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)

	rootCmd.Flags().StringVar(&startDir, "dir", "", "start folder (overrides config and "+config.StartDirEnv+")")
	rootCmd.Flags().BoolVar(&plainMode, "plain", false, "use the numbered menu even on a terminal")
	rootCmd.Flags().BoolVar(&memoryMode, "memory", false, "work on an in-memory sandbox instead of the disk")
	rootCmd.Flags().BoolVar(&devMode, "dev", false, "write log files to the current directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	logLevel, ok := logger.ParseLevel(cfg.LogLevel)

	logDir := cfg.LogDir
	if devMode {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
		logDir = cwd
		fmt.Printf("[dev mode] log files are written to %s\n", logDir)
	}

	if err := logger.Init(logDir, logLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	if !ok {
		logger.Warn("Unknown log_level %q, using %s", cfg.LogLevel, logLevel)
	}

	tuiEnabled = terminal.HasTTY() && !plainMode
	if !terminal.HasTTY() || !cfg.Color {
		color.NoColor = true
	}

	runPreflightChecks()

	start := cfg.StartDir
	if startDir != "" {
		start = startDir
	}

	session, err := openSession(start)
	if err != nil {
		logger.Error("Failed to open start folder: %v", err)
		return err
	}
	logger.Info("File manager started in %s (memory=%t, tui=%t)", session.Dir(), memoryMode, tuiEnabled)

	a := &app{session: session, showHidden: cfg.ShowHidden}
	if cfg.JournalEnabled {
		journal, err := history.NewManager(cfg.JournalDir, session.Dir())
		if err != nil {
			logger.Warn("Journal disabled: %v", err)
		} else {
			a.journal = journal
			logger.Debug("Journal %s at %s", journal.Current().ID, cfg.JournalDir)
		}
	}

	// Outcomes are already shown to the user; keep the log echo off the screen.
	logger.SetConsole(nil)

	if tuiEnabled {
		if err := runTUI(a); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		logger.Info("File manager finished")
		return nil
	}

	handleInterrupt()

	color.Cyan("=== File Manager ===")
	if memoryMode {
		color.Yellow("Sandbox mode: changes are kept in memory only.")
	}
	if err := runMenu(os.Stdin, os.Stdout, a); err != nil {
		logger.Error("Menu stopped: %v", err)
		return err
	}
	logger.Info("File manager finished")
	return nil
}

// openSession positions a session at start on disk, or in a fresh in-memory
// sandbox when --memory is set.
func openSession(start string) (*workdir.Session, error) {
	if !memoryMode {
		return workdir.New(start)
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	sandbox := filesystem.NewMemoryFileSystem()
	if err := sandbox.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare sandbox: %w", err)
	}
	return workdir.NewWithFS(abs, sandbox)
}

func handleInterrupt() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warn("Interrupted by %s", sig)
		_ = logger.Close()
		color.Yellow("\nProgram finished.")
		os.Exit(0)
	}()
}

func runPreflightChecks() {
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		tuiEnabled = false
		color.NoColor = true
		logger.Warn("Limited terminal: TERM=%q (TUI and colors disabled)", term)
	}

	if os.Getenv("LC_ALL") == "" && os.Getenv("LANG") == "" {
		logger.Warn("Locale is not set. A UTF-8 locale is recommended (e.g. LANG=C.UTF-8)")
	}

	if cfg.JournalEnabled {
		checkWritableDir(cfg.JournalDir, "journal_dir")
	}
	checkWritableDir(cfg.LogDir, "log_dir")
}

func checkWritableDir(path, label string) {
	if strings.TrimSpace(path) == "" {
		logger.Warn("%s is empty.", label)
		return
	}
	fs := filesystem.NewOSFileSystem()
	testFile := filepath.Join(path, fmt.Sprintf(".writecheck-%d", time.Now().UnixNano()))
	if err := fs.WriteFile(testFile, []byte("ok"), 0644); err != nil {
		logger.Warn("%s is not writable: %s (%v)", label, path, err)
		return
	}
	_ = fs.Remove(testFile)
}

func quoteAll(args []string) []string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = strconv.Quote(a)
	}
	return quoted
}
