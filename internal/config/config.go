package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up in the content root.
const FileName = ".mdadf.toml"

// Settings configures how Markdown files are discovered and converted. The
// tree builder passes it through to the converter untouched.
type Settings struct {
	ContentRoot           string   `toml:"content_root"`
	FolderToPublish       string   `toml:"folder_to_publish"`
	FirstHeadingPageTitle bool     `toml:"first_heading_page_title"`
	DefaultTags           []string `toml:"default_tags"`
	Extensions            []string `toml:"extensions"`
}

// Default returns the settings used when no configuration file exists.
func Default() Settings {
	return Settings{
		ContentRoot:     ".",
		FolderToPublish: ".",
	}
}

// Load reads settings from path. When path is empty the configuration file is
// looked up in contentRoot; a missing default file is not an error. A
// non-empty contentRoot overrides content_root from the file.
func Load(path, contentRoot string, logger *slog.Logger) (Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := Default()
	if contentRoot != "" {
		cfg.ContentRoot = contentRoot
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.ContentRoot, FileName)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logger.Debug("no config file found, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	meta, err := toml.Decode(string(content), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warn("unrecognized keys in config file", "path", path, "keys", undecoded)
	}

	// A root given on the command line wins over the file. A relative root in
	// the file is relative to the file itself.
	switch {
	case contentRoot != "":
		cfg.ContentRoot = contentRoot
	case meta.IsDefined("content_root") && !filepath.IsAbs(cfg.ContentRoot):
		cfg.ContentRoot = filepath.Join(filepath.Dir(path), cfg.ContentRoot)
	}

	logger.Info("loaded configuration", "path", path)
	return cfg, nil
}

// Validate checks the settings and normalises the content root to an
// absolute path.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.ContentRoot) == "" {
		return errors.New("config: content root is required")
	}
	abs, err := filepath.Abs(s.ContentRoot)
	if err != nil {
		return fmt.Errorf("config: resolve content root: %w", err)
	}
	s.ContentRoot = abs

	if s.FolderToPublish == "" {
		s.FolderToPublish = "."
	}
	if filepath.IsAbs(s.FolderToPublish) {
		return fmt.Errorf("config: folder to publish %q must be relative to the content root", s.FolderToPublish)
	}
	clean := filepath.Clean(s.FolderToPublish)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: folder to publish %q escapes the content root", s.FolderToPublish)
	}
	s.FolderToPublish = clean
	return nil
}

// PublishRoot is the absolute directory whose files are published.
func (s Settings) PublishRoot() string {
	return filepath.Join(s.ContentRoot, s.FolderToPublish)
}
