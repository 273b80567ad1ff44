package saved

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/audex/internal/domain/snapshot"
	"github.com/kailas-cloud/audex/internal/metrics"
)

// Service saves the live filter state under a name and restores it later.
// Blobs are stored as produced by ExportState and only decoded on load.
type Service struct {
	repo  Repository
	state StateHolder
}

// New creates a saved state service.
func New(repo Repository, state StateHolder) *Service {
	return &Service{repo: repo, state: state}
}

// Save exports the live state and stores it under name, replacing any
// previous state with that name.
func (s *Service) Save(ctx context.Context, name string) (snapshot.Snapshot, error) {
	if err := snapshot.ValidateName(name); err != nil {
		observe("save", err)
		return snapshot.Snapshot{}, err
	}
	blob, err := s.state.ExportState(ctx)
	if err != nil {
		observe("save", err)
		return snapshot.Snapshot{}, fmt.Errorf("export state: %w", err)
	}
	snap, err := snapshot.New(name, blob, s.state.ActiveFilters(ctx))
	if err != nil {
		observe("save", err)
		return snapshot.Snapshot{}, err
	}
	if err := s.repo.Put(ctx, snap); err != nil {
		observe("save", err)
		return snapshot.Snapshot{}, fmt.Errorf("save state: %w", err)
	}
	observe("save", nil)
	return snap, nil
}

// Load replaces the live state with the one saved under name.
func (s *Service) Load(ctx context.Context, name string) (snapshot.Snapshot, error) {
	snap, err := s.repo.Get(ctx, name)
	if err != nil {
		observe("load", err)
		return snapshot.Snapshot{}, fmt.Errorf("load state: %w", err)
	}
	if err := s.state.ImportState(ctx, snap.Blob()); err != nil {
		observe("load", err)
		return snapshot.Snapshot{}, err
	}
	observe("load", nil)
	return snap, nil
}

// List returns all saved states.
func (s *Service) List(ctx context.Context) ([]snapshot.Snapshot, error) {
	out, err := s.repo.List(ctx)
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	return out, nil
}

// Delete removes a saved state.
func (s *Service) Delete(ctx context.Context, name string) error {
	err := s.repo.Delete(ctx, name)
	observe("delete", err)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SavedStateOpsTotal.WithLabelValues(op, result).Inc()
}
