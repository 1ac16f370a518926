package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/configurator"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "podarchiver",
		Usage:     "Archive podcast episodes from a list of RSS feeds into a local directory tree, once per episode.",
		Copyright: "Copyright SA6MWA 2022-2025 sa6mwa@gmail.com, https://github.com/sa6mwa/podarchiver",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   configurator.DefaultConfigFile,
				Usage:   "Optional yaml configuration file, command line options override it",
			},
			&cli.StringFlag{
				Name:  "feeds",
				Value: model.DefaultFeedsFile,
				Usage: "File with one feed URL per line, blank lines and lines starting with # are ignored",
			},
			&cli.StringFlag{
				Name:  "ledger",
				Value: model.DefaultLedgerFile,
				Usage: "Append-only file of archived episode guids",
			},
			&cli.StringFlag{
				Name:    "archive-dir",
				Aliases: []string{"d"},
				Value:   model.DefaultArchiveDir,
				Usage:   "Directory to archive shows and episodes into",
			},
			&cli.StringFlag{
				Name:  "user-agent",
				Value: model.DefaultUserAgent,
				Usage: "User-Agent header sent when downloading media and cover art",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: model.DefaultTimeout,
				Usage: "Timeout for a single HTTP request",
			},
			&cli.BoolFlag{
				Name:  "tag",
				Usage: "Write ID3v2.4 tags into downloaded mp3 files",
			},
			&cli.BoolFlag{
				Name:  "index",
				Usage: "Regenerate an index.html for each show after archiving it",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Do not ask whether to continue after a failed feed, just do it",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Fetch and parse feeds, print what would be downloaded, write nothing",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug messages",
			},
		},
		Action: archive,
		Commands: []*cli.Command{
			{
				Name:    "archive",
				Aliases: []string{"a"},
				Usage:   "Download every episode not yet in the ledger (the default command)",
				Action:  archive,
			},
			{
				Name:    "shows",
				Aliases: []string{"s"},
				Usage:   "List archived shows with episode count, size and total duration",
				Action:  shows,
			},
			{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Regenerate index.html for every archived show",
				Action:  index,
			},
			{
				Name:   "init",
				Usage:  "Write a configuration file with the default settings",
				Action: initConfig,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.RunContext(ctx, os.Args)
	stop()
	if err != nil {
		logger.DefaultLogger().Error(fmt.Sprintf("%v", err))
		os.Exit(1)
	}
}
