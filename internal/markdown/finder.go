package markdown

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gocodewalker "github.com/boyter/gocodewalker"

	"github.com/kyaoi/mdadf/internal/config"
)

var errNotDir = errors.New("path is not a directory")

// PublishKey overrides the folder-to-publish rule for a single file.
const PublishKey = "connie-publish"

var skipDirs = []string{".git", "node_modules", ".hg", ".svn", ".idea", ".vscode", ".obsidian", ".trash"}

// Finder discovers the Markdown files that should be published.
type Finder struct {
	settings config.Settings
	logger   *slog.Logger
}

// NewFinder creates a finder for the given settings.
func NewFinder(settings config.Settings, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{settings: settings, logger: logger}
}

// Find walks the content root and returns every file inside the publish
// folder, plus files elsewhere that opt in through frontmatter. Files that
// set connie-publish to false are always left out. Results are sorted by
// path.
func (f *Finder) Find() ([]File, error) {
	root := f.settings.ContentRoot
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, errNotDir)
	}

	queue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(root, queue)
	walker.AllowListExtensions = []string{"md", "mdx"}
	walker.ExcludeDirectory = skipDirs
	walker.SetErrorHandler(func(e error) bool {
		f.logger.Warn("error reported by file walker", "root", root, "error", e)
		return true
	})

	walkDone := make(chan error, 1)
	go func() {
		walkDone <- walker.Start()
	}()

	publishRoot := f.settings.PublishRoot()
	var files []File
	var loadErr error
	for entry := range queue {
		if loadErr != nil || !isMarkdown(entry.Filename) {
			continue
		}
		file, err := Load(entry.Location)
		if err != nil {
			loadErr = err
			continue
		}
		if !shouldPublish(file, publishRoot) {
			f.logger.Debug("skipping file outside publish folder", "path", file.AbsolutePath)
			continue
		}
		files = append(files, file)
	}

	if err := <-walkDone; err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if loadErr != nil {
		return nil, loadErr
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].AbsolutePath < files[j].AbsolutePath
	})
	f.logger.Debug("found markdown files", "root", root, "count", len(files))
	return files, nil
}

// ShouldSkipDir reports whether a directory is never searched for pages.
func ShouldSkipDir(name string) bool {
	if len(name) > 1 && strings.HasPrefix(name, ".") {
		return true
	}
	for _, skip := range skipDirs {
		if strings.EqualFold(name, skip) {
			return true
		}
	}
	return false
}

func shouldPublish(file File, publishRoot string) bool {
	flag, set := file.Frontmatter[PublishKey].(bool)
	if set {
		return flag
	}
	return within(publishRoot, file.AbsolutePath)
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".mdx")
}
