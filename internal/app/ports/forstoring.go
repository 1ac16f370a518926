package ports

import (
	"context"

	"github.com/sa6mwa/podarchiver/internal/app/model"
)

// ForStoring maps shows and episodes onto the on-disk archive layout
// <root>/<show>/<show>_<YYYYMMDD>_<title>.{data,jpg,mp3}.
type ForStoring interface {
	Root() string
	ShowDir(showTitle string) string
	EnsureShowDirectory(showTitle string) error
	ChannelFile(showTitle string) string
	// WriteChannelMetadata writes <show>/<show>.json unless it already
	// exists. Returns true if the file was written.
	WriteChannelMetadata(ctx context.Context, channel model.Channel) (bool, error)
	// RootName returns the path stem (without extension) of every file
	// belonging to episode.
	RootName(showTitle string, episode model.Episode) string
	// WriteEpisodeMetadata writes <rootName>.data unless it already
	// exists. Returns true if the file was written.
	WriteEpisodeMetadata(ctx context.Context, episode model.Episode, rootName string) (bool, error)
	Shows(ctx context.Context) ([]model.ShowSummary, error)
}
