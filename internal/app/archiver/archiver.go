// archiver drives one archive run: every feed in order, every episode
// of a feed in document order, one at a time. It only talks to ports,
// the adapters are injected through Options.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

var (
	ErrNilPointer error = errors.New("received nil pointer")
)

// Options wires an Archiver. Fetcher, Parser, Ledger, Store,
// Downloader and Asker are required. Tagger, Uploader and Indexer are
// optional and disabled when nil.
type Options struct {
	Fetcher    ports.ForFetching
	Parser     ports.ForParsing
	Ledger     ports.ForLedgering
	Store      ports.ForStoring
	Downloader ports.ForDownloading
	Asker      ports.ForAsking

	Tagger   ports.ForTagging
	Uploader ports.ForUploading
	Indexer  ports.ForIndexing
	Mirror   model.MirrorConfig

	// Output receives the progress lines, os.Stdout if nil.
	Output io.Writer
	// DryRun fetches and parses feeds but writes nothing.
	DryRun bool
}

type Archiver struct {
	Options
}

// Stats counts what a run did.
type Stats struct {
	Feeds      int
	Episodes   int
	Skipped    int
	Downloaded int
	Failed     int
}

func (s *Stats) add(o Stats) {
	s.Feeds += o.Feeds
	s.Episodes += o.Episodes
	s.Skipped += o.Skipped
	s.Downloaded += o.Downloaded
	s.Failed += o.Failed
}

func New(options Options) (*Archiver, error) {
	if options.Fetcher == nil || options.Parser == nil || options.Ledger == nil ||
		options.Store == nil || options.Downloader == nil || options.Asker == nil {
		return nil, fmt.Errorf("fetcher, parser, ledger, store, downloader and asker are required: %w", ErrNilPointer)
	}
	if options.Output == nil {
		options.Output = os.Stdout
	}
	return &Archiver{Options: options}, nil
}

// Run archives every feed in feedURLs. A feed that can not be fetched
// or parsed is reported and the asker decides whether to continue with
// the next feed or abort the run with the error. Filesystem and ledger
// errors always abort.
func (a *Archiver) Run(ctx context.Context, feedURLs []string) (Stats, error) {
	l := logger.FromContext(ctx)
	var total Stats
	for _, url := range feedURLs {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		stats, err := a.ArchiveFeed(ctx, url)
		total.add(stats)
		if err == nil {
			continue
		}
		var feedErr *FeedError
		if !errors.As(err, &feedErr) {
			return total, err
		}
		l.Error("Unable to archive feed", "url", url, "error", err)
		if !a.Asker.Ask(ctx, "Unable to archive %s, continue with next feed?", url) {
			return total, err
		}
	}
	switch total.Downloaded {
	case 0:
		l.Info("No episode was downloaded", "feeds", total.Feeds, "skipped", total.Skipped, "failed", total.Failed)
	default:
		plural := ""
		if total.Downloaded > 1 {
			plural = "s"
		}
		l.Info(fmt.Sprintf("Downloaded %d episode%s", total.Downloaded, plural), "feeds", total.Feeds, "skipped", total.Skipped, "failed", total.Failed)
	}
	return total, nil
}

// FeedError is a failure to fetch or parse a feed. It only affects
// that feed.
type FeedError struct {
	URL string
	Err error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("feed %s: %v", e.URL, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// ArchiveFeed fetches, parses and archives a single feed.
func (a *Archiver) ArchiveFeed(ctx context.Context, url string) (Stats, error) {
	l := logger.FromContext(ctx).With("feed", url)
	ctx = logger.WithLogger(ctx, l)
	var stats Stats

	raw, err := a.Fetcher.Fetch(ctx, url)
	if err != nil {
		return stats, &FeedError{URL: url, Err: err}
	}
	feed, err := a.Parser.Parse(ctx, raw)
	if err != nil {
		return stats, &FeedError{URL: url, Err: err}
	}
	stats.Feeds++
	channel := feed.Channel

	if !a.DryRun {
		if err := a.Store.EnsureShowDirectory(channel.Title); err != nil {
			return stats, err
		}
		written, err := a.Store.WriteChannelMetadata(ctx, channel)
		if err != nil {
			return stats, err
		}
		if written {
			a.mirror(ctx, a.Store.ChannelFile(channel.Title))
		}
	}

	total := feed.Len()
	fmt.Fprintf(a.Output, "%s: found %d episodes...\n", channel.Title, total)

	i := 0
	for episode, perr := range feed.Episodes() {
		i++
		stats.Episodes++
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		state, err := a.archiveEpisode(ctx, channel, episode, perr, i, total)
		switch state {
		case model.Skipped:
			stats.Skipped++
		case model.Recorded:
			stats.Downloaded++
		case model.Failed:
			stats.Failed++
		}
		if err != nil {
			return stats, err
		}
	}

	if a.Indexer != nil && !a.DryRun {
		if err := a.Indexer.WriteIndex(ctx, channel.Title); err != nil {
			l.Warn("Unable to write show index", "show", channel.Title, "error", err)
		}
	}
	return stats, nil
}

// archiveEpisode moves one episode from Pending to a terminal state.
// Parse and download failures end in Failed with a nil error; a
// non-nil error aborts the run.
func (a *Archiver) archiveEpisode(ctx context.Context, channel model.Channel, episode model.Episode, parseErr error, i, total int) (model.EpisodeState, error) {
	l := logger.FromContext(ctx)
	status := fmt.Sprintf("%s - %s [%d/%d]", channel.Title, episode.Title, i, total)
	if parseErr != nil {
		fmt.Fprintf(a.Output, "Failed: %s: %v\n", status, parseErr)
		l.Error("Unable to parse episode", "position", i, "error", parseErr)
		return model.Failed, nil
	}
	l = l.With("guid", episode.GUID)
	transition := func(state model.EpisodeState) model.EpisodeState {
		l.Debug("Episode state", "state", state.String(), "position", i)
		return state
	}
	transition(model.Pending)

	if a.Ledger.Contains(episode.GUID) {
		fmt.Fprintf(a.Output, "Skipping: %s\n", status)
		return transition(model.Skipped), nil
	}
	if a.DryRun {
		fmt.Fprintf(a.Output, "Would download: %s\n", status)
		return transition(model.Pending), nil
	}

	fmt.Fprintf(a.Output, "Downloading: %s\n", status)
	transition(model.Downloading)
	root := a.Store.RootName(channel.Title, episode)
	if err := a.Downloader.Download(ctx, episode, root); err != nil {
		fmt.Fprintf(a.Output, "Failed: %s: %v\n", status, err)
		l.Error("Unable to download episode", "error", err)
		return transition(model.Failed), nil
	}
	if a.Tagger != nil {
		if err := a.Tagger.Tag(ctx, channel, episode, root); err != nil {
			l.Warn("Unable to tag episode", "error", err)
		}
	}
	if _, err := a.Store.WriteEpisodeMetadata(ctx, episode, root); err != nil {
		return transition(model.Failed), err
	}
	transition(model.MetadataWritten)
	if err := a.Ledger.Record(episode.GUID); err != nil {
		return transition(model.Failed), err
	}
	state := transition(model.Recorded)
	for _, ext := range []string{ports.ImageExtension, ports.MediaExtension, ports.MetadataExtension} {
		a.mirror(ctx, root+ext)
	}
	return state, nil
}

// mirror uploads file when a mirror is configured. Failures are
// logged, the local archive is authoritative.
func (a *Archiver) mirror(ctx context.Context, file string) {
	if a.Uploader == nil || !a.Mirror.Enabled() {
		return
	}
	l := logger.FromContext(ctx)
	rel, err := filepath.Rel(a.Store.Root(), file)
	if err != nil {
		l.Warn("Unable to mirror file", "file", file, "error", err)
		return
	}
	key := path.Join(strings.Trim(a.Mirror.Prefix, "/"), filepath.ToSlash(rel))
	if err := a.Uploader.Upload(ctx, &ports.ForUploadingRequest{
		Store:        a.Mirror.Bucket,
		To:           key,
		From:         file,
		StorageClass: a.Mirror.StorageClass,
	}); err != nil {
		l.Warn("Unable to mirror file", "file", file, "error", err)
	}
}
