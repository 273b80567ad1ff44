package audience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/audex/internal/domain"
	domaud "github.com/kailas-cloud/audex/internal/domain/audience"
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/filter/codec"
	"github.com/kailas-cloud/audex/internal/domain/intent"
	"github.com/kailas-cloud/audex/internal/domain/population"
	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/user"
	logpkg "github.com/kailas-cloud/audex/internal/logger"
	"github.com/kailas-cloud/audex/internal/metrics"
)

// Stats summarizes the current audience against the population.
type Stats struct {
	Size       int     `json:"size"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// View is a consistent read of the current state.
type View struct {
	Filters filter.State
	Summary []filter.SummaryLine
	Stats   Stats
}

// InterpretResult is an interpretation plus the resulting filters and size.
type InterpretResult struct {
	intent.Result
	Summary      []filter.SummaryLine `json:"summary"`
	AudienceSize int                  `json:"audienceSize"`
}

// Report is a point-in-time audience export.
type Report struct {
	ID           string       `json:"id"`
	Timestamp    time.Time    `json:"timestamp"`
	AudienceSize int          `json:"audienceSize"`
	Filters      filter.State `json:"filters"`
	UserIDs      []string     `json:"userIds"`
}

// Member is one population user and whether the current filters select it.
type Member struct {
	User    user.User `json:"user"`
	Matches bool      `json:"matches"`
}

// Service owns the filter state for one operator session. Mutations are
// serialized; audience reads always observe a fully applied state.
type Service struct {
	mu     sync.RWMutex
	state  filter.State
	pop    population.Population
	interp Interpreter
	logger *zap.Logger
	now    func() time.Time
}

// New creates a service over pop with every filter inert.
func New(pop population.Population, interp Interpreter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		state:  filter.NewState(),
		pop:    pop,
		interp: interp,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the clock used for report timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Population returns the population the service filters.
func (s *Service) Population() population.Population { return s.pop }

// SetFilter overwrites one filter slot.
func (s *Service) SetFilter(ctx context.Context, key schema.Key, v filter.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Set(key, v); err != nil {
		return fmt.Errorf("set filter: %w", err)
	}
	metrics.FilterMutationsTotal.WithLabelValues(string(key), "set").Inc()
	s.log(ctx).Debug("filter set", zap.String("field", string(key)))
	return nil
}

// ToggleFilterMember adds or removes one member of a multi-select slot.
func (s *Service) ToggleFilterMember(ctx context.Context, key schema.Key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Toggle(key, member); err != nil {
		return fmt.Errorf("toggle filter: %w", err)
	}
	metrics.FilterMutationsTotal.WithLabelValues(string(key), "toggle").Inc()
	s.log(ctx).Debug("filter toggled", zap.String("field", string(key)), zap.String("member", member))
	return nil
}

// ClearFilters resets every slot to inert.
func (s *Service) ClearFilters(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Clear()
	metrics.FilterMutationsTotal.WithLabelValues("*", "clear").Inc()
	s.log(ctx).Debug("filters cleared")
}

// Filters returns a copy of the current state.
func (s *Service) Filters(_ context.Context) filter.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ActiveFilters counts the slots holding a non-inert value.
func (s *Service) ActiveFilters(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Active())
}

// Summary describes the active filters, one line per slot.
func (s *Service) Summary(_ context.Context) []filter.SummaryLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Describe()
}

// Audience recomputes the matching users in population order.
func (s *Service) Audience(_ context.Context) []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compute()
}

// AudienceSize recomputes the number of matching users.
func (s *Service) AudienceSize(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count()
}

// User looks up one population user by id and reports whether the current
// filters select it.
func (s *Service) User(_ context.Context, id string) (Member, error) {
	u, ok := s.pop.Get(id)
	if !ok {
		return Member{}, fmt.Errorf("user %q: %w", id, domain.ErrNotFound)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Member{User: u, Matches: domaud.Match(s.state, u)}, nil
}

// Stats returns the audience size relative to the population.
func (s *Service) Stats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats(s.count())
}

// View returns the filters, their summary and the audience stats, all
// taken from the same state.
func (s *Service) View(_ context.Context) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Filters: s.state.Clone(),
		Summary: s.state.Describe(),
		Stats:   s.stats(s.count()),
	}
}

// Interpret applies the rules matched by text. The whole interpretation is
// committed at once, or not at all when nothing is understood.
func (s *Service) Interpret(ctx context.Context, text string) InterpretResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.interp.Interpret(text, &s.state)
	out := InterpretResult{Result: res, Summary: s.state.Describe(), AudienceSize: s.count()}

	if !res.Understood {
		metrics.InterpretationsTotal.WithLabelValues("not_understood").Inc()
		s.log(ctx).Info("query not understood", zap.String("text", text))
		return out
	}
	metrics.InterpretationsTotal.WithLabelValues("understood").Inc()
	metrics.FilterMutationsTotal.WithLabelValues("*", "interpret").Inc()
	for _, label := range res.MatchedRules {
		metrics.IntentRuleFiresTotal.WithLabelValues(label).Inc()
	}
	s.log(ctx).Info("query interpreted",
		zap.String("text", text),
		zap.Strings("rules", res.MatchedRules),
		zap.Int("mutations", res.AppliedMutations),
		zap.Int("audience_size", out.AudienceSize),
	)
	return out
}

// ExportState encodes the current state.
func (s *Service) ExportState(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, err := codec.Export(s.state)
	if err != nil {
		return "", fmt.Errorf("export state: %w", err)
	}
	return text, nil
}

// ImportState replaces the whole state with the decoded text. On a decode
// error the current state is kept.
func (s *Service) ImportState(ctx context.Context, text string) error {
	next, err := codec.Import(text)
	if err != nil {
		metrics.StateImportsTotal.WithLabelValues("decode_error").Inc()
		s.log(ctx).Warn("state import rejected", zap.Error(err))
		return fmt.Errorf("import state: %w", err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	metrics.StateImportsTotal.WithLabelValues("ok").Inc()
	metrics.FilterMutationsTotal.WithLabelValues("*", "import").Inc()
	s.log(ctx).Info("state imported", zap.Int("active_filters", len(next.Active())))
	return nil
}

// ExportAudience builds a point-in-time report of the current audience.
func (s *Service) ExportAudience(_ context.Context) Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.compute()
	return Report{
		ID:           uuid.NewString(),
		Timestamp:    s.now().UTC(),
		AudienceSize: len(matched),
		Filters:      s.state.Clone(),
		UserIDs:      domaud.IDs(matched),
	}
}

// IsDecodeError reports whether err came from a malformed state import.
func IsDecodeError(err error) bool { return errors.Is(err, domain.ErrDecode) }

// compute and count must be called with mu held.
func (s *Service) compute() []user.User {
	start := time.Now()
	out := domaud.Compute(s.state, s.pop.Users())
	metrics.AudienceComputeDuration.Observe(time.Since(start).Seconds())
	metrics.AudienceSize.Set(float64(len(out)))
	return out
}

func (s *Service) count() int {
	start := time.Now()
	n := domaud.Count(s.state, s.pop.Users())
	metrics.AudienceComputeDuration.Observe(time.Since(start).Seconds())
	metrics.AudienceSize.Set(float64(n))
	return n
}

func (s *Service) stats(size int) Stats {
	total := s.pop.Len()
	var pct float64
	if total > 0 {
		pct = float64(size) * 100 / float64(total)
	}
	return Stats{Size: size, Total: total, Percentage: pct}
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logpkg.FromContext(ctx, s.logger)
}
