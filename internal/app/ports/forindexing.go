package ports

import "context"

type ForIndexing interface {
	// WriteIndex renders an index.html of every archived episode of
	// showTitle from the metadata files in the show directory.
	WriteIndex(ctx context.Context, showTitle string) error
}
