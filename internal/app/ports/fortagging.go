package ports

import (
	"context"

	"github.com/sa6mwa/podarchiver/internal/app/model"
)

type ForTagging interface {
	// Tag writes metadata from channel and episode into the media file
	// rootName+".mp3", using rootName+".jpg" as cover when possible.
	Tag(ctx context.Context, channel model.Channel, episode model.Episode, rootName string) error
}
