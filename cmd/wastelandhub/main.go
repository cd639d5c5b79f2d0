// Package main provides the CLI entrypoint for wastelandhub.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robco-termlink/wastelandhub/internal/catalog"
	"github.com/robco-termlink/wastelandhub/internal/config"
	"github.com/robco-termlink/wastelandhub/internal/logging"
	"github.com/robco-termlink/wastelandhub/internal/model"
	"github.com/robco-termlink/wastelandhub/internal/screen"
	"github.com/robco-termlink/wastelandhub/internal/store"
	"github.com/robco-termlink/wastelandhub/internal/theme"
	"github.com/robco-termlink/wastelandhub/internal/tui"
)

var (
	termCPS       int
	termTheme     string
	termUser      string
	termCatalog   string
	termNoHistory bool

	logLevel   string
	logVerbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultSettings()
	rootCmd := &cobra.Command{
		Use:           "wastelandhub",
		Short:         "RobCo Industries termlink terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTerminalCmd,
	}

	rootCmd.Flags().IntVar(&termCPS, "cps", defaults.TypewriterCPS, "typewriter speed in characters per second")
	rootCmd.Flags().StringVar(&termTheme, "theme", defaults.Theme, "color theme")
	rootCmd.Flags().StringVar(&termUser, "user", defaults.DefaultUser, "user shown in the header")
	rootCmd.Flags().StringVar(&termCatalog, "catalog", "", "TOML file with extra logs (default: config dir logs.toml)")
	rootCmd.Flags().BoolVar(&termNoHistory, "no-history", false, "do not record reads")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&logVerbose, "verbose", "v", false, "also log to stderr (not while the terminal UI runs)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runTerminalCmd(cmd *cobra.Command, _ []string) error {
	logger, closeLog := openLogger(nil)
	defer closeLogger(closeLog)

	settings := loadSettings(logger)
	applyIntConfig(cmd, "cps", &termCPS, settings.TypewriterCPS)
	applyStringConfig(cmd, "theme", &termTheme, settings.Theme)
	applyStringConfig(cmd, "user", &termUser, settings.DefaultUser)
	settings.TypewriterCPS = termCPS
	settings.Theme = termTheme
	settings.DefaultUser = termUser
	if err := validateSettings(settings); err != nil {
		return err
	}
	if !theme.Has(settings.Theme) {
		logger.Warn("unknown theme, using default", "theme", settings.Theme, "default", theme.DefaultName)
	}

	cat, err := loadCatalog(cmd, termCatalog)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	opts := []screen.Option{
		screen.WithLogger(logger.With("run_id", runID)),
		screen.WithRunID(runID),
	}
	if !termNoHistory && settings.AutoSaveLogs {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn("close db", "error", cerr)
				}
			}()
			opts = append(opts, screen.WithRecorder(st))
		}
	}

	stack := screen.New(cat, settings, opts...)
	m := tui.NewModel(stack, logger)
	defer m.Close()

	logger.Info("terminal started", "run_id", runID, "logs", cat.Len(), "cps", settings.TypewriterCPS)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "failed to run terminal UI")
	}
	logger.Info("terminal closed", "run_id", runID)
	return nil
}

// openLogger opens the file logger. console receives a text copy when
// --verbose is set. When the log file cannot be opened the problem is
// reported on stderr and logging is discarded.
func openLogger(console io.Writer) (*slog.Logger, func() error) {
	opts := logging.Options{Path: config.DefaultLogPath(), Level: logLevel}
	if logVerbose && console != nil {
		opts.Console = console
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return slog.New(slog.DiscardHandler), func() error { return nil }
	}
	return logger, closeLog
}

func closeLogger(closeLog func() error) {
	if err := closeLog(); err != nil {
		logErrf("failed to close log: %v\n", err)
	}
}

func loadSettings(logger *slog.Logger) model.Settings {
	path := config.DefaultConfigPath()
	settings, err := config.Load(path)
	if err != nil {
		logger.Warn("settings ignored, using defaults", "path", path, "error", err)
	}
	return settings
}

// loadCatalog returns the built-in logs merged with the TOML catalog. An
// explicit --catalog must exist; the default one is optional.
func loadCatalog(cmd *cobra.Command, path string) (*catalog.Catalog, error) {
	explicit := cmd.Flags().Lookup("catalog") != nil && cmd.Flags().Changed("catalog")
	if path == "" {
		path = config.DefaultCatalogPath()
	}
	if explicit {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "catalog %s", path)
		}
	}
	extra, err := catalog.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load catalog %s", path)
	}
	return catalog.Merge(catalog.Default(), extra), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntConfig(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func validateSettings(s model.Settings) error {
	if s.TypewriterCPS <= 0 {
		return errors.New("--cps must be > 0")
	}
	if s.DefaultUser == "" {
		return errors.New("--user must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
