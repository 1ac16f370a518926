package ports

import (
	"context"

	"github.com/sa6mwa/podarchiver/internal/app/model"
)

// ForParsing turns a raw RSS document into a model.Feed. Errors
// returned by Parse are feed-level (malformed XML, no channel title);
// per-episode errors are yielded by model.Feed.Episodes.
type ForParsing interface {
	Parse(ctx context.Context, raw []byte) (*model.Feed, error)
}
