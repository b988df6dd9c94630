package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nero7007/Professional-To-Do-List/internal/buildinfo"
	"github.com/nero7007/Professional-To-Do-List/internal/config"
	"github.com/nero7007/Professional-To-Do-List/internal/logging"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

const annotationNoApp = "todo/no-app"

// rootState is shared by the command tree of one invocation.
type rootState struct {
	overrides config.Overrides
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	app       *App
}

// Execute runs the command line in os.Args and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, banner(bannerError, err.Error()))
		return 1
	}
	return 0
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	st := &rootState{in: in, out: out, errOut: errOut}
	defer st.close()

	cmd := st.rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

func (st *rootState) close() {
	if st.app != nil {
		_ = st.app.Close()
		st.app = nil
	}
}

func (st *rootState) open(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoApp] == "true" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.LoadConfig(st.overrides)
	if err != nil {
		return err
	}
	log, err := logging.New(st.errOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	app, err := NewApp(cmd.Context(), cfg, log, st.in, st.out)
	if err != nil {
		return err
	}
	st.app = app
	return nil
}

// do adapts an App method to a cobra RunE.
func (st *rootState) do(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return fn(cmd.Context(), st.app, args)
	}
}

func (st *rootState) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "todo",
		Short:             "Professional To-Do List: notes, reminders and accounts in your terminal",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: st.open,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.overrides.ConfigFile, "config", "", "config file (.json, .yaml or .yml)")
	pf.StringVar(&st.overrides.Driver, "storage", "", "storage driver: sqlite, postgres, mysql, badger or memory")
	pf.StringVar(&st.overrides.DSN, "dsn", "", "storage location: file, directory or connection string")
	pf.StringVar(&st.overrides.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		st.authCmds()...,
	)
	root.AddCommand(
		st.notesCmd(),
		st.alarmsCmd(),
		st.draftCmd(),
		st.prefsCmd(),
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.Shell(ctx)
			}),
		},
		&cobra.Command{
			Use:         "version",
			Short:       "Print build information",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{annotationNoApp: "true"},
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)
	return root
}

func (st *rootState) authCmds() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "register",
			Short: "Create an account",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.Register(ctx)
			}),
		},
		{
			Use:   "verify [email] [code]",
			Short: "Verify a new account with its 6-digit code",
			Args:  cobra.MaximumNArgs(2),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.Verify(ctx, args)
			}),
		},
		{
			Use:   "resend-code [email]",
			Short: "Issue a new verification code",
			Args:  cobra.MaximumNArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.ResendCode(ctx, args)
			}),
		},
		{
			Use:   "login [email]",
			Short: "Log in and remember the session",
			Args:  cobra.MaximumNArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.Login(ctx, args)
			}),
		},
		{
			Use:   "logout",
			Short: "End the current session",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.Logout(ctx)
			}),
		},
		{
			Use:   "whoami",
			Short: "Show the logged-in account",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.WhoAmI(ctx)
			}),
		},
		{
			Use:   "reset-request [email]",
			Short: "Start a password reset",
			Args:  cobra.MaximumNArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.ResetRequest(ctx, args)
			}),
		},
		{
			Use:   "reset-password",
			Short: "Choose a new password for the pending reset",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.ResetPassword(ctx)
			}),
		},
		{
			Use:   "delete-account",
			Short: "Delete the logged-in account and its data",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.DeleteAccount(ctx)
			}),
		},
	}
}

func (st *rootState) notesCmd() *cobra.Command {
	notes := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"n"},
		Short:   "Manage notes",
	}

	var add struct {
		title, content string
		done           bool
	}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note (interactive without flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			if !f.Changed("title") && !f.Changed("content") {
				return st.app.AddNote(cmd.Context(), nil)
			}
			return st.app.AddNote(cmd.Context(), &models.NoteInput{Title: add.title, Content: add.content, Completed: add.done})
		},
	}
	addCmd.Flags().StringVar(&add.title, "title", "", "note title")
	addCmd.Flags().StringVar(&add.content, "content", "", "note text")
	addCmd.Flags().BoolVar(&add.done, "done", false, "create the note as completed")

	var q listQuery
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes with search, filter, sort and paging",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.app.ListNotes(cmd.Context(), q)
		},
	}
	listCmd.Flags().StringVarP(&q.Search, "search", "s", "", "text to find in title or content")
	listCmd.Flags().StringVarP(&q.Filter, "filter", "f", "all", "all, completed, pending, today or week")
	listCmd.Flags().StringVar(&q.Sort, "sort", "newest", "newest, oldest, title or completed")
	listCmd.Flags().IntVarP(&q.Page, "page", "p", 1, "page number")
	listCmd.Flags().IntVar(&q.PageSize, "page-size", 0, "notes per page (default from config)")

	var edit struct {
		title, content string
		done           bool
	}
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note (interactive without flags)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("title") && !f.Changed("content") && !f.Changed("done") {
				return st.app.EditNote(cmd.Context(), args[0], nil)
			}
			var p notePatch
			if f.Changed("title") {
				p.Title = &edit.title
			}
			if f.Changed("content") {
				p.Content = &edit.content
			}
			if f.Changed("done") {
				p.Completed = &edit.done
			}
			return st.app.PatchNote(cmd.Context(), args[0], p)
		},
	}
	editCmd.Flags().StringVar(&edit.title, "title", "", "new title")
	editCmd.Flags().StringVar(&edit.content, "content", "", "new text")
	editCmd.Flags().BoolVar(&edit.done, "done", false, "completed state")

	notes.AddCommand(
		addCmd,
		listCmd,
		editCmd,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one note",
			Args:  cobra.ExactArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.ShowNote(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Flip a note between pending and completed",
			Args:  cobra.ExactArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.ToggleNote(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:     "delete <id>...",
			Aliases: []string{"rm"},
			Short:   "Delete notes",
			Args:    cobra.MinimumNArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.DeleteNotes(ctx, args)
			}),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show note counters",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.Stats(ctx)
			}),
		},
	)
	return notes
}

func (st *rootState) alarmsCmd() *cobra.Command {
	alarms := &cobra.Command{
		Use:   "alarms",
		Short: "Manage reminders",
	}

	var title, at string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Schedule a reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.app.SetAlarm(cmd.Context(), title, at)
		},
	}
	setCmd.Flags().StringVar(&title, "title", "", "reminder title")
	setCmd.Flags().StringVar(&at, "at", "", "time as YYYY-MM-DD HH:MM (local) or RFC 3339")

	alarms.AddCommand(
		setCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List reminders",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.ListAlarms(ctx)
			}),
		},
	)
	return alarms
}

func (st *rootState) draftCmd() *cobra.Command {
	draft := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the autosaved note draft",
	}
	draft.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the saved draft",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.ShowDraft(ctx)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Discard the saved draft",
			Args:  cobra.NoArgs,
			RunE: st.do(func(ctx context.Context, a *App, _ []string) error {
				return a.ClearDraft(ctx)
			}),
		},
	)
	return draft
}

func (st *rootState) prefsCmd() *cobra.Command {
	prefs := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}
	prefs.AddCommand(
		&cobra.Command{
			Use:   "theme [light|dark|toggle]",
			Short: "Show or set the theme",
			Args:  cobra.MaximumNArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.Theme(ctx, args)
			}),
		},
		&cobra.Command{
			Use:   "language [en|ar]",
			Short: "Show or set the interface language",
			Args:  cobra.MaximumNArgs(1),
			RunE: st.do(func(ctx context.Context, a *App, args []string) error {
				return a.Language(ctx, args)
			}),
		},
	)
	return prefs
}
