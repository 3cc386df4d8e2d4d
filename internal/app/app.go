package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdadf/internal/config"
	"github.com/kyaoi/mdadf/internal/ui"
)

// Options selects what Run does with the built tree.
type Options struct {
	Format string
	Tag    string
	Browse bool
	Watch  bool
	Output io.Writer
}

// Run builds the page tree once and prints or browses it, or keeps
// rebuilding it on changes when watching.
func Run(ctx context.Context, settings config.Settings, opts Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Watch {
		return Watch(ctx, settings, opts, logger)
	}

	root, err := LoadTree(settings, opts.Tag, logger)
	if err != nil {
		return err
	}
	if opts.Browse {
		return runProgram(ui.State{
			Root:        root,
			DisplayRoot: filepath.Base(root.Name),
		})
	}
	return Print(opts.Output, root, opts.Format)
}

func runProgram(state ui.State) error {
	program := tea.NewProgram(ui.NewModel(state), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
