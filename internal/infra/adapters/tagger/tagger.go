// tagger writes ID3v2.4 tags into archived mp3 files. Implements the
// ports.ForTagging interface.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/id3v24"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

var (
	ErrNotMP3 error = errors.New("not an mp3 file")
)

type forTagging struct {
	genre string
}

// New returns a tagger. genre defaults to Podcast.
func New(genre string) ports.ForTagging {
	if strings.TrimSpace(genre) == "" {
		genre = "Podcast"
	}
	return &forTagging{genre: genre}
}

func (t *forTagging) Tag(ctx context.Context, channel model.Channel, episode model.Episode, rootName string) error {
	l := logger.FromContext(ctx)
	media := rootName + ports.MediaExtension
	mimetype.SetLimit(1024 * 1024)
	mt, err := mimetype.DetectFile(media)
	if err != nil {
		return err
	}
	if !mt.Is("audio/mpeg") {
		return fmt.Errorf("%s is %s: %w", media, mt.String(), ErrNotMP3)
	}
	info := TrackInfo(channel, episode, t.genre)
	cover := rootName + ports.ImageExtension
	if ct, err := mimetype.DetectFile(cover); err == nil && ct.Is("image/jpeg") {
		info.CoverJPEG = cover
	} else {
		l.Debug("Cover art is not a jpeg, tagging without cover", "file", cover)
	}
	l.Info("Adding ID3v2.4 tag", "file", media)
	if err := id3v24.WriteID3v2Tag(media, info); err != nil {
		return fmt.Errorf("unable to tag %s: %w", media, err)
	}
	return nil
}

// TrackInfo maps a show and one of its episodes onto ID3 fields.
func TrackInfo(channel model.Channel, episode model.Episode, genre string) id3v24.TrackInfo {
	info := id3v24.TrackInfo{
		Title:       episode.Title,
		Album:       channel.Title,
		Artist:      channel.Title,
		Genre:       genre,
		Track:       episode.Number,
		Comment:     episode.Link,
		Description: strings.NewReplacer("\n", " ", "\r", "").Replace(episode.Summary),
	}
	if !episode.Published.IsZero() {
		info.Year = episode.Published.Format("2006")
		info.Date = episode.Published
	} else if len(episode.Date) >= 4 {
		info.Year = episode.Date[:4]
	}
	return info
}
