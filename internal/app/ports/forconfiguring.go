package ports

import (
	"context"

	"github.com/sa6mwa/podarchiver/internal/app/model"
)

type ForConfiguring interface {
	// Load returns the configuration with defaults applied. A missing
	// configuration file is not an error.
	Load(ctx context.Context) (*model.Config, error)
	Save(ctx context.Context, config *model.Config) error
}
