package audex

import (
	"context"
	"fmt"
	"time"
)

// SavedService stores and restores named filter states.
type SavedService struct {
	svc savedUseCase
	obs *observer
}

// Save stores the current filters under name, replacing any previous entry.
func (s *SavedService) Save(ctx context.Context, name string) (_ SavedState, err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved.save", start, err) }()

	snap, err := s.svc.Save(ctx, name)
	if err != nil {
		return SavedState{}, fmt.Errorf("save %q: %w", name, err)
	}
	return fromSnapshot(snap), nil
}

// Load replaces the current filters with the state saved under name.
func (s *SavedService) Load(ctx context.Context, name string) (_ SavedState, err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved.load", start, err) }()

	snap, err := s.svc.Load(ctx, name)
	if err != nil {
		return SavedState{}, fmt.Errorf("load %q: %w", name, err)
	}
	return fromSnapshot(snap), nil
}

// List returns every saved state ordered by name.
func (s *SavedService) List(ctx context.Context) (_ []SavedState, err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved.list", start, err) }()

	snaps, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved states: %w", err)
	}
	out := make([]SavedState, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, fromSnapshot(snap))
	}
	return out, nil
}

// Delete removes the state saved under name.
func (s *SavedService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved.delete", start, err) }()

	if err = s.svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}
