package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	pflag "github.com/spf13/pflag"

	"github.com/kyaoi/mdadf/internal/app"
	"github.com/kyaoi/mdadf/internal/config"
)

func main() {
	var (
		configPath   string
		folder       string
		format       string
		tag          string
		logLevelStr  string
		firstHeading bool
		browse       bool
		watch        bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "Path to a configuration file (default: <root>/"+config.FileName+").")
	pflag.StringVarP(&folder, "folder", "f", "", "Folder to publish, relative to the content root.")
	pflag.StringVarP(&format, "format", "o", app.FormatTree, "Output format: tree or json.")
	pflag.StringVarP(&tag, "tag", "t", "", "Only publish files carrying this tag.")
	pflag.StringVar(&logLevelStr, "loglevel", "info", "Logging verbosity (debug, info, warn, error).")
	pflag.BoolVar(&firstHeading, "first-heading-title", false, "Use a leading level one heading as the page title.")
	pflag.BoolVarP(&browse, "browse", "b", false, "Browse the page tree interactively.")
	pflag.BoolVarP(&watch, "watch", "w", false, "Rebuild the tree whenever files change.")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [content-root]\n\nBuild the publish tree for a directory of Markdown files.\n\nFlags:\n", filepath.Base(os.Args[0]))
		pflag.PrintDefaults()
	}
	pflag.Parse()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q, defaulting to 'info'.\n", logLevelStr)
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if pflag.NArg() > 1 {
		pflag.Usage()
		os.Exit(1)
	}
	contentRoot := ""
	if pflag.NArg() == 1 {
		contentRoot = filepath.Clean(pflag.Arg(0))
	}

	settings, err := config.Load(configPath, contentRoot, logger)
	if err != nil {
		log.Fatal(err)
	}
	if pflag.CommandLine.Changed("folder") {
		settings.FolderToPublish = folder
	}
	if pflag.CommandLine.Changed("first-heading-title") {
		settings.FirstHeadingPageTitle = firstHeading
	}
	if err := settings.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := app.Options{
		Format: format,
		Tag:    tag,
		Browse: browse,
		Watch:  watch,
		Output: os.Stdout,
	}
	if err := app.Run(ctx, settings, opts, logger); err != nil {
		stop()
		log.Fatal(err)
	}
}
