package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/config"
	"github.com/sandeepkv93/daypad/internal/storage"
	"github.com/sandeepkv93/daypad/internal/views"
)

// TUIRunner runs the interactive program for an open session.
type TUIRunner func(ctx context.Context, s *Session) error

type rootFlags struct {
	configPath string
	envFile    string
}

// NewRootCommand builds the daypad command tree. Without a subcommand the
// TUI is started; the subcommands mutate or print today's lists and exit.
func NewRootCommand(open Opener, runTUI TUIRunner) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "daypad",
		Short:         "Daily tasks, notes and a focus timer in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, open, flags, func(s *Session) error {
				if runTUI == nil {
					return fmt.Errorf("no terminal UI configured")
				}
				return runTUI(cmd.Context(), s)
			})
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file (default "+config.DefaultEnvFile+")")

	line := func(use, short string, args cobra.PositionalArgs, build func(args []string) string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, open, flags, func(s *Session) error {
					return runLine(cmd.Context(), cmd.OutOrStdout(), s, build(args))
				})
			},
		}
	}
	joined := func(verb string) func([]string) string {
		return func(args []string) string { return verb + " " + strings.Join(args, " ") }
	}

	root.AddCommand(
		line("add <text...>", "Add a task for today", cobra.MinimumNArgs(1), joined("add")),
		line("done <n>", "Toggle task n", cobra.ExactArgs(1), joined("done")),
		line("rm <n>", "Delete task n", cobra.ExactArgs(1), joined("rm")),
		line("note <text...>", "Save a note for today", cobra.MinimumNArgs(1), joined("note")),
		line("unnote <n>", "Delete note n", cobra.ExactArgs(1), joined("unnote")),
		line("theme", "Toggle light/dark theme", cobra.NoArgs, joined("theme")),
		line("exec <command>", "Run a command palette line", cobra.MinimumNArgs(1), func(args []string) string {
			return strings.Join(args, " ")
		}),
		&cobra.Command{
			Use:   "list",
			Short: "Print today's tasks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSession(cmd, open, flags, func(s *Session) error {
					return printTasks(cmd.OutOrStdout(), s)
				})
			},
		},
		newStoreCommand(open, flags),
		&cobra.Command{
			Use:   "notes",
			Short: "Print today's notes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSession(cmd, open, flags, func(s *Session) error {
					return printNotes(cmd.OutOrStdout(), s)
				})
			},
		},
	)
	return root
}

func withSession(cmd *cobra.Command, open Opener, flags *rootFlags, fn func(*Session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := open(ctx, config.Options{ConfigPath: flags.configPath, EnvFile: flags.envFile})
	if err != nil {
		return err
	}
	runErr := fn(s)
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// runLine parses one palette line, applies it and prints whatever it changed.
func runLine(ctx context.Context, out io.Writer, s *Session, input string) error {
	cmd, err := commands.Parse(input)
	if err != nil {
		return err
	}
	eff, err := s.App.Dispatch(ctx, cmd)
	if err != nil {
		return err
	}
	state := s.App.State()
	switch {
	case eff.RenderTasks:
		return printTasks(out, s)
	case eff.RenderNotes:
		return printNotes(out, s)
	case eff.RenderTheme:
		_, err = fmt.Fprintf(out, "theme: %s\n", state.Theme)
	case eff.RenderTimer:
		_, err = fmt.Fprintf(out, "timer: %s (%dm)\n", state.Timer.Display(), state.Timer.Duration)
	case eff.RenderView:
		_, err = fmt.Fprintf(out, "view: %s\n", state.View)
	default:
		_, err = fmt.Fprintln(out, "nothing changed")
	}
	return err
}

func printTasks(out io.Writer, s *Session) error {
	list := views.ProjectTasks(s.App.State().TodayTasks(), s.Clock.Now())
	_, err := fmt.Fprintln(out, views.RenderTaskListPlain(list))
	return err
}

func printNotes(out io.Writer, s *Session) error {
	list := views.ProjectNotes(s.App.State().TodayNotes(), s.Clock.Now())
	_, err := fmt.Fprintln(out, views.RenderNoteListPlain(list))
	return err
}

var storeKeys = map[string]string{
	"tasks": storage.KeyTasks,
	"notes": storage.KeyNotes,
	"theme": storage.KeyTheme,
}

// newStoreCommand exposes the raw documents: `store` lists them and
// `store rm <tasks|notes|theme>` deletes one.
func newStoreCommand(open Opener, flags *rootFlags) *cobra.Command {
	store := &cobra.Command{
		Use:   "store",
		Short: "List the persisted documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, open, flags, func(s *Session) error {
				if s.Store == nil {
					return errors.New("no store available")
				}
				entries, err := s.Store.List(cmd.Context(), storage.ListFilter{Prefix: storage.KeyPrefix})
				if err != nil {
					return fmt.Errorf("list store: %w", err)
				}
				return printEntries(cmd.OutOrStdout(), entries, s.Clock.Now())
			})
		},
	}
	store.AddCommand(&cobra.Command{
		Use:   "rm <tasks|notes|theme>",
		Short: "Delete one persisted document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := storeKeys[strings.ToLower(args[0])]
			if !ok {
				key = args[0]
			}
			if !strings.HasPrefix(key, storage.KeyPrefix) {
				return fmt.Errorf("unknown document %q", args[0])
			}
			return withSession(cmd, open, flags, func(s *Session) error {
				if s.Store == nil {
					return errors.New("no store available")
				}
				if err := s.Store.Delete(cmd.Context(), key); err != nil {
					return fmt.Errorf("delete %s: %w", key, err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", key)
				return err
			})
		},
	})
	return store
}

func printEntries(out io.Writer, entries []storage.Entry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "no documents stored")
		return err
	}
	for _, e := range entries {
		updated := e.UpdatedAt
		if t, err := time.Parse(time.RFC3339Nano, e.UpdatedAt); err == nil {
			updated = humanize.RelTime(t, now, "ago", "from now")
		}
		if _, err := fmt.Fprintf(out, "%-20s %8s  %s\n", e.Key, humanize.Bytes(uint64(len(e.Value))), updated); err != nil {
			return err
		}
	}
	return nil
}
