package saved

import (
	"context"

	"github.com/kailas-cloud/audex/internal/domain/snapshot"
)

// Repository persists saved states.
type Repository interface {
	Put(ctx context.Context, s snapshot.Snapshot) error
	Get(ctx context.Context, name string) (snapshot.Snapshot, error)
	List(ctx context.Context) ([]snapshot.Snapshot, error)
	Delete(ctx context.Context, name string) error
}

// StateHolder is the live filter state the service saves from and loads into.
type StateHolder interface {
	ExportState(ctx context.Context) (string, error)
	ImportState(ctx context.Context, text string) error
	ActiveFilters(ctx context.Context) int
}
