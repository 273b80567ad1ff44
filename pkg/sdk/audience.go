package audex

import (
	"context"
	"fmt"
	"time"
)

// AudienceService edits the filter state and reads the matching audience.
type AudienceService struct {
	svc audienceUseCase
	obs *observer
}

// Set overwrites one filter slot.
func (s *AudienceService) Set(ctx context.Context, key Key, v Value) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("filter.set", start, err) }()

	if err = s.svc.SetFilter(ctx, key, v); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Toggle adds member to a multi-select slot, or removes it when present.
func (s *AudienceService) Toggle(ctx context.Context, key Key, member string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("filter.toggle", start, err) }()

	if err = s.svc.ToggleFilterMember(ctx, key, member); err != nil {
		return fmt.Errorf("toggle %s: %w", key, err)
	}
	return nil
}

// Clear resets every filter.
func (s *AudienceService) Clear(ctx context.Context) {
	start := time.Now()
	s.svc.ClearFilters(ctx)
	s.obs.observe("filter.clear", start, nil)
}

// Filters returns a copy of the current state.
func (s *AudienceService) Filters(ctx context.Context) State {
	return s.svc.Filters(ctx)
}

// Summary describes the active filters in catalog order.
func (s *AudienceService) Summary(ctx context.Context) []SummaryLine {
	return s.svc.Summary(ctx)
}

// Users returns the matching users in population order.
func (s *AudienceService) Users(ctx context.Context) []User {
	start := time.Now()
	defer s.obs.observe("audience.compute", start, nil)
	return s.svc.Audience(ctx)
}

// User looks up one user by id. Unknown ids return ErrNotFound.
func (s *AudienceService) User(ctx context.Context, id string) (_ Member, err error) {
	start := time.Now()
	defer func() { s.obs.observe("audience.user", start, err) }()
	return s.svc.User(ctx, id)
}

// Stats returns the audience size relative to the population.
func (s *AudienceService) Stats(ctx context.Context) Stats {
	start := time.Now()
	defer s.obs.observe("audience.stats", start, nil)
	return s.svc.Stats(ctx)
}

// Interpret applies the filters described by text. Nothing changes when
// the text is not understood.
func (s *AudienceService) Interpret(ctx context.Context, text string) Interpretation {
	start := time.Now()
	defer s.obs.observe("intent.interpret", start, nil)
	return s.svc.Interpret(ctx, text)
}

// ExportState encodes the current filters as portable JSON text.
func (s *AudienceService) ExportState(ctx context.Context) (text string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("state.export", start, err) }()
	return s.svc.ExportState(ctx)
}

// ImportState replaces every filter with the decoded text. The state is
// unchanged when text is malformed; check with errors.Is(err, ErrDecode).
func (s *AudienceService) ImportState(ctx context.Context, text string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("state.import", start, err) }()
	return s.svc.ImportState(ctx, text)
}

// Report snapshots the current audience.
func (s *AudienceService) Report(ctx context.Context) Report {
	start := time.Now()
	defer s.obs.observe("audience.export", start, nil)
	return s.svc.ExportAudience(ctx)
}
