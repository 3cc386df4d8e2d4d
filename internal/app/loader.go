package app

import (
	"fmt"
	"log/slog"

	"github.com/kyaoi/mdadf/internal/config"
	"github.com/kyaoi/mdadf/internal/markdown"
	"github.com/kyaoi/mdadf/internal/tree"
)

// LoadTree finds the Markdown files selected by settings, keeps those
// carrying tag (when set) and builds the page tree from them.
func LoadTree(settings config.Settings, tag string, logger *slog.Logger) (*tree.Node, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, err := markdown.NewFinder(settings, logger).Find()
	if err != nil {
		return nil, err
	}
	if tag != "" {
		files = FilterByTag(files, tag)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files to publish in %s: %w", settings.PublishRoot(), tree.ErrEmptyInput)
	}

	builder := tree.NewBuilder(markdown.Converter{}, tree.OSStater{}, settings)
	root, err := builder.Build(files)
	if err != nil {
		return nil, err
	}
	logger.Info("built page tree", "root", root.Name, "files", len(files), "pages", root.Count())
	return root, nil
}
