package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robco-termlink/wastelandhub/internal/config"
	"github.com/robco-termlink/wastelandhub/internal/history"
	"github.com/robco-termlink/wastelandhub/internal/model"
	"github.com/robco-termlink/wastelandhub/internal/store"
)

var (
	logsCatalog string

	historyLast int
	historyKey  string
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open settings file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print effective settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting (" + strings.Join(config.Keys(), ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE:  runConfigSetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
			return err
		},
	})
	return cmd
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to stat settings")
		}
		if err := config.Save(path, model.DefaultSettings()); err != nil {
			return errors.Wrap(err, "failed to write settings")
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "failed to open editor")
	}
	return nil
}

func runConfigShowCmd(cmd *cobra.Command, _ []string) error {
	logger, closeLog := openLogger(cmd.ErrOrStderr())
	defer closeLogger(closeLog)

	b, err := json.MarshalIndent(loadSettings(logger), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode settings")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func runConfigSetCmd(cmd *cobra.Command, args []string) error {
	logger, closeLog := openLogger(cmd.ErrOrStderr())
	defer closeLogger(closeLog)

	path := config.DefaultConfigPath()
	settings, err := config.Load(path)
	if err != nil {
		// Saving now would replace the file with defaults.
		return errors.Wrapf(err, "refusing to overwrite %s", path)
	}
	key, value := args[0], args[1]
	if err := config.Set(&settings, key, value); err != nil {
		return err
	}
	if err := config.Save(path, settings); err != nil {
		return errors.Wrap(err, "failed to save settings")
	}
	logger.Info("setting saved", "key", key, "value", value)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return err
}

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse terminal logs without the UI",
	}
	cmd.PersistentFlags().StringVar(&logsCatalog, "catalog", "", "TOML file with extra logs (default: config dir logs.toml)")
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List log keys",
		Args:  cobra.NoArgs,
		RunE:  runLogsListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show KEY",
		Short: "Print one log",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogsShowCmd,
	})
	return cmd
}

func runLogsListCmd(cmd *cobra.Command, _ []string) error {
	logger, closeLog := openLogger(cmd.ErrOrStderr())
	defer closeLogger(closeLog)

	cat, err := loadCatalog(cmd, logsCatalog)
	if err != nil {
		return err
	}
	counts := map[string]int{}
	if _, err := os.Stat(config.DefaultDBPath()); err == nil {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logger.Warn("history unavailable", "error", err)
		} else {
			if counts, err = st.CountByKey(commandContext(cmd)); err != nil {
				logger.Warn("count reads", "error", err)
				counts = map[string]int{}
			}
			if cerr := st.Close(); cerr != nil {
				logger.Warn("close db", "error", cerr)
			}
		}
	}
	for _, key := range cat.Keys() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", key, history.Summary(counts, key)); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return nil
}

func runLogsShowCmd(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd, logsCatalog)
	if err != nil {
		return err
	}
	key := args[0]
	if !cat.Has(key) {
		return errors.Errorf("unknown log %q (see: wastelandhub logs list)", key)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cat.Get(key))
	return err
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded reads",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N reads")
	cmd.Flags().StringVar(&historyKey, "key", "", "log key filter")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return errors.New("--last must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return errors.Wrap(err, "failed to open db")
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := commandContext(cmd)
	reads, err := st.ListReads(ctx, model.HistoryFilter{LogKey: historyKey, Last: historyLast})
	if err != nil {
		return errors.Wrap(err, "failed to load history")
	}
	counts, err := st.CountByKey(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count reads")
	}
	if historyKey != "" {
		counts = map[string]int{historyKey: counts[historyKey]}
	}
	return history.Render(cmd.OutOrStdout(), reads, counts, history.Options{})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
