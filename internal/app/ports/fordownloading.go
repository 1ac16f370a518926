package ports

import (
	"context"

	"github.com/sa6mwa/podarchiver/internal/app/model"
)

const (
	ImageExtension    = ".jpg"
	MediaExtension    = ".mp3"
	MetadataExtension = ".data"
	ChannelExtension  = ".json"
)

type ForDownloading interface {
	// Download fetches the episode's cover art into rootName+".jpg"
	// and its media into rootName+".mp3".
	Download(ctx context.Context, episode model.Episode, rootName string) error
}
