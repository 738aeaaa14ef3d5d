package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	core "userdir-cli/internal/app"
	"userdir-cli/internal/config"
	"userdir-cli/internal/format"
	"userdir-cli/internal/logging"
	"userdir-cli/internal/tui"
)

type App struct {
	Dir        string
	API        string
	Lang       string
	Format     string
	PrettyJSON bool
	Ephemeral  bool
	LogLevel   string
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	var start string

	cmd := &cobra.Command{
		Use:          "userdir",
		Short:        "User directory client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  userdir

  # Open the TUI on a given page
  userdir --path /users

  # Scriptable commands
  userdir login --email user1@mail.com --password P4ssword
  userdir users --all
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app, start)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("USERDIR_DIR", ""), "Path to the state dir (default ~/.userdir)")
	cmd.PersistentFlags().StringVar(&app.API, "api", "", "Backend base URL (overrides api.url)")
	cmd.PersistentFlags().StringVar(&app.Lang, "lang", "", "Switch the active language (en|hu) before running")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("USERDIR_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Ephemeral, "ephemeral", false, "Keep session and language in memory for this run only")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&start, "path", "/", "Initial path for the TUI")

	cmd.AddCommand(newSignUpCmd(app))
	cmd.AddCommand(newActivateCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newUserCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newLinksCmd(app))
	cmd.AddCommand(newLangCmd(app))
	cmd.AddCommand(newStorageCmd(app))
	cmd.AddCommand(newMockServerCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App, start string) error {
	rt, err := openRuntime(cmd, app, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	return tui.Run(cmd.Context(), rt, start)
}

// openRuntime loads config (flags win over env, file and defaults) and wires the client.
// The TUI logs to a file so log lines do not tear the screen.
func openRuntime(cmd *cobra.Command, app *App, toFile bool) (*core.App, error) {
	cfg, err := config.Load(app.Dir)
	if err != nil {
		return nil, err
	}
	if app.Dir != "" {
		cfg.Storage.Dir = app.Dir
	}
	if app.API != "" {
		cfg.API.URL = app.API
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	logFile := cfg.Log.File
	if toFile && logFile == "" {
		logFile = filepath.Join(cfg.Storage.Dir, "userdir.log")
	}
	log, err := logging.New(logging.Options{Level: cfg.Log.Level, File: logFile})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := core.New(ctx, core.Options{Config: cfg, Logger: log, Ephemeral: app.Ephemeral})
	if err != nil {
		return nil, err
	}
	if app.Lang != "" {
		if err := rt.Locale.Set(app.Lang); err != nil {
			_ = rt.Close()
			return nil, err
		}
	}
	return rt, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
