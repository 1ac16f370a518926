package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/sa6mwa/podarchiver/internal/app/archiver"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/asker"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/configurator"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/downloader"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/fetcher"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/indexer"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/ledger"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/parser"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/store"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/tagger"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/uploader"
	"github.com/urfave/cli/v2"
)

// Functions used by more than one command of podarchiver.go.

// setup returns a context carrying a logger tagged with a fresh run id
// and the configuration with command line overrides applied.
func setup(c *cli.Context) (context.Context, *model.Config, error) {
	l := logger.New(os.Stderr, c.Bool("verbose")).With("run", uuid.NewString())
	ctx := logger.WithLogger(c.Context, l)
	config, err := configurator.New(c.String("config")).Load(ctx)
	if err != nil {
		return ctx, nil, err
	}
	override(c, config)
	return ctx, config, nil
}

// override replaces configuration values with flags given on the
// command line.
func override(c *cli.Context, config *model.Config) {
	if c.IsSet("feeds") {
		config.FeedsFile = c.String("feeds")
	}
	if c.IsSet("ledger") {
		config.LedgerFile = c.String("ledger")
	}
	if c.IsSet("archive-dir") {
		config.ArchiveDir = c.String("archive-dir")
	}
	if c.IsSet("user-agent") {
		config.UserAgent = c.String("user-agent")
	}
	if c.IsSet("timeout") {
		config.Timeout = c.Duration("timeout")
	}
	if c.IsSet("tag") {
		config.Tag = c.Bool("tag")
	}
	if c.IsSet("index") {
		config.Index = c.Bool("index")
	}
	config.SetDefaults()
}

func archive(c *cli.Context) error {
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	l := logger.FromContext(ctx)
	dryRun := c.Bool("dry-run")

	feeds, err := archiver.ReadFeeds(config.FeedsFileExpanded())
	if err != nil {
		return err
	}
	if len(feeds) == 0 {
		l.Warn("No feeds to archive", "file", config.FeedsFile)
		return nil
	}

	g, err := ledger.Open(ctx, config.LedgerFileExpanded())
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			l.Error("Unable to close ledger", "error", err)
		}
	}()

	f := fetcher.New(config.UserAgent, config.Timeout)
	d, err := downloader.New(f)
	if err != nil {
		return err
	}
	s := store.New(config.ArchiveDirExpanded())
	options := archiver.Options{
		Fetcher:    f,
		Parser:     parser.New(),
		Ledger:     g,
		Store:      s,
		Downloader: d,
		Asker:      asker.New(dryRun, c.Bool("force")),
		Mirror:     config.Mirror,
		Output:     os.Stdout,
		DryRun:     dryRun,
	}
	if config.Tag {
		options.Tagger = tagger.New("")
	}
	if config.Index {
		options.Indexer = indexer.New(s)
	}
	if config.Mirror.Enabled() {
		options.Uploader = uploader.New(config.Mirror)
	}
	a, err := archiver.New(options)
	if err != nil {
		return err
	}
	l.Debug("Starting archive run", "feeds", len(feeds), "ledger", config.LedgerFile, "archiveDir", config.ArchiveDir, "known", g.Len())
	_, err = a.Run(ctx, feeds)
	return err
}

func shows(c *cli.Context) error {
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	summaries, err := store.New(config.ArchiveDirExpanded()).Shows(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		logger.FromContext(ctx).Info("Archive is empty", "archiveDir", config.ArchiveDir)
		return nil
	}
	fmt.Println(showsTable(summaries))
	return nil
}

func index(c *cli.Context) error {
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	return indexShows(ctx, store.New(config.ArchiveDirExpanded()))
}

// indexShows writes index.html for every show in s. One show failing
// does not stop the others, the errors are joined.
func indexShows(ctx context.Context, s ports.ForStoring) error {
	l := logger.FromContext(ctx)
	summaries, err := s.Shows(ctx)
	if err != nil {
		return err
	}
	x := indexer.New(s)
	var errs []error
	for _, show := range summaries {
		if err := x.WriteIndex(ctx, show.Title); err != nil {
			l.Error("Unable to write index", "show", show.Title, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", show.Title, err))
		}
	}
	return errors.Join(errs...)
}

func initConfig(c *cli.Context) error {
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	file := c.String("config")
	if _, err := os.Stat(file); err == nil {
		if !asker.New(c.Bool("dry-run"), c.Bool("force")).Ask(ctx, "%s exists, overwrite?", file) {
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if c.Bool("dry-run") {
		return nil
	}
	return configurator.New(file).Save(ctx, config)
}
