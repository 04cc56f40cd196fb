package driven

import (
	"context"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// LocationStore defines the driven port for the cached destination list.
type LocationStore interface {
	// ReplaceAll atomically swaps the stored locations for the given list.
	// List order is preserved.
	ReplaceAll(ctx context.Context, locations []model.Location) error

	// ListAll returns every stored location in stored order.
	ListAll(ctx context.Context) ([]model.Location, error)

	// GetByName returns the location whose name matches case-insensitively.
	// Returns (nil, nil) if none matches.
	GetByName(ctx context.Context, name string) (*model.Location, error)
}
