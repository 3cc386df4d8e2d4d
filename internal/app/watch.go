package app

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdadf/internal/config"
	"github.com/kyaoi/mdadf/internal/markdown"
)

const watchDebounce = 200 * time.Millisecond

// Watch prints the tree and rebuilds it whenever something below the
// content root changes. Build failures are logged and watching continues.
// It returns when ctx is done.
func Watch(ctx context.Context, settings config.Settings, opts Options, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, settings.ContentRoot); err != nil {
		return err
	}

	rebuild := func() {
		root, err := LoadTree(settings, opts.Tag, logger)
		if err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		if err := Print(opts.Output, root, opts.Format); err != nil {
			logger.Error("print failed", "error", err)
		}
	}
	rebuild()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(watcher, event.Name); err != nil {
						logger.Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-debounce.C:
			rebuild()
		}
	}
}

// addWatchDirs registers root and every directory below it; fsnotify does
// not watch recursively.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && markdown.ShouldSkipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
