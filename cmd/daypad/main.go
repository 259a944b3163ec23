package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/cli"
	"github.com/sandeepkv93/daypad/internal/update"
)

func main() {
	root := cli.NewRootCommand(cli.OpenSession, runTUI)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "daypad failed: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(ctx context.Context, s *cli.Session) error {
	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if s.Config.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	model := update.NewModel(ctx, s.App, update.Options{
		Clock:                s.Clock,
		DesktopNotifications: s.Config.DesktopNotifications,
		Notifier:             notifier,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
