package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"twodo/app"
	"twodo/config"
	"twodo/store"
	"twodo/tui"
)

// App carries the resolved configuration through the command tree.
type App struct {
	ConfigPath string
	DB         string
	Format     string

	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:           "twodo",
		Short:         "Terminal task and project manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  twodo

  # Scriptable commands
  twodo task list
  twodo task add "Buy milk" -d "2 liters"
  twodo project add Work
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd.Context(), a)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(a.ConfigPath, cmd.Flags())
		if err != nil {
			return err
		}
		log, closeLog, err := config.NewLogger(cfg)
		if err != nil {
			return err
		}
		a.cfg, a.log, a.closeLog = cfg, log, closeLog
		a.log.Debug("config loaded", "db", cfg.DB, "command", cmd.CommandPath())
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.closeLog == nil {
			return nil
		}
		return a.closeLog()
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/twodo/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.DB, "db", "", "Path to the SQLite database")
	cmd.PersistentFlags().StringVar(&a.Format, "format", "text", "Output format (text|json)")

	cmd.AddCommand(newTaskCmd(a))
	cmd.AddCommand(newProjectCmd(a))

	return cmd
}

func runTUI(ctx context.Context, a *App) error {
	s, status, err := store.OpenWithRecovery(ctx, a.cfg.DB, store.Options{Backups: a.cfg.Backups, Logger: a.log})
	if err != nil {
		return err
	}
	defer s.Close()

	core := app.NewModel(s)
	if err := core.Load(ctx); err != nil {
		return err
	}
	a.log.Info("tui started", "db", s.Path(), "frame_rate", a.cfg.FrameRate)
	return tui.Run(ctx, core, tui.Options{
		FrameRate: a.cfg.FrameRate,
		Logger:    a.log,
		Status:    status,
	})
}

// openStore opens the database for a one-shot command. Backups are only
// taken when the TUI starts.
func openStore(ctx context.Context, a *App) (*store.Store, error) {
	s, status, err := store.OpenWithRecovery(ctx, a.cfg.DB, store.Options{Logger: a.log})
	if err != nil {
		return nil, err
	}
	if status != "" {
		a.log.Warn(status)
	}
	return s, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// writeOut prints v as JSON or text depending on the configured format.
func writeOut(cmd *cobra.Command, a *App, v any, text string) error {
	if a.cfg.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
