package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/procscope/internal/tui"
)

// runInteractive starts the menu: the Bubble Tea program on a TTY, a
// plain numbered prompt loop otherwise.
func runInteractive(cmd *cobra.Command, _ []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}

	// Operator interrupt must reach a running dispatch so the child
	// process group is reaped before the tool exits.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector := tui.NewDetector().NoColor(application.cfg.UI.NoColor)
	detector.ApplyColorProfile()

	if !detector.IsTTY() {
		menu := tui.NewFallbackMenu(application.source, application.dispatcher,
			application.registry, cmd.InOrStdin(), cmd.OutOrStdout())
		return menu.Run(ctx)
	}

	model := tui.NewModel(ctx, application.source, application.dispatcher, application.registry)

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	_, err = tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		// Interrupted by the operator; children were reaped via ctx.
		return nil
	}
	return err
}
