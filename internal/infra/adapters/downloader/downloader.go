// downloader fetches the cover art and media of an episode into the
// archive. Implements the ports.ForDownloading interface.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/mp3duration"
	"github.com/sa6mwa/podarchiver/internal/app/humanreadable"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

var (
	ErrNilFetcher error = errors.New("received nil fetcher")
)

type forDownloading struct {
	fetcher ports.ForFetching
}

func New(fetcher ports.ForFetching) (ports.ForDownloading, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	return &forDownloading{fetcher: fetcher}, nil
}

// Download fetches the cover art first, then the media. Nothing is
// removed on failure, a re-run overwrites the partial file.
func (d *forDownloading) Download(ctx context.Context, episode model.Episode, rootName string) error {
	l := logger.FromContext(ctx)

	image := rootName + ports.ImageExtension
	n, err := d.fetcher.DownloadFile(ctx, episode.ImageURL, image)
	if err != nil {
		return fmt.Errorf("cover art: %w", err)
	}
	if contentType := contentType(ctx, image); !strings.HasPrefix(contentType, "image/") {
		l.Warn("Cover art does not look like an image", "file", image, "contentType", contentType)
	}
	l.Debug("Downloaded cover art", "file", image, "size", n, "humanSize", humanreadable.IEC(n))

	media := rootName + ports.MediaExtension
	n, err = d.fetcher.DownloadFile(ctx, episode.MediaURL, media)
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}
	ct := contentType(ctx, media)
	switch {
	case ct == "audio/mpeg":
		di, err := mp3duration.ReadFile(media)
		if err != nil {
			l.Warn("Unable to read mp3 duration", "file", media, "error", err)
			break
		}
		l.Info("Downloaded", "file", media, "duration", model.FormatDuration(di.TimeDuration), "feedDuration", episode.Duration, "humanSize", humanreadable.IEC(n))
		return nil
	case !strings.HasPrefix(ct, "audio/") && !strings.HasPrefix(ct, "video/"):
		l.Warn("Media does not look like audio", "file", media, "contentType", ct)
	}
	l.Info("Downloaded", "file", media, "contentType", ct, "humanSize", humanreadable.IEC(n))
	return nil
}

func contentType(ctx context.Context, file string) string {
	mimetype.SetLimit(1024 * 1024)
	mt, err := mimetype.DetectFile(file)
	if err != nil {
		logger.FromContext(ctx).Debug("Unable to detect content type", "file", file, "error", err)
		return ""
	}
	return mt.String()
}
