package audex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/audex/internal/db"
	"github.com/kailas-cloud/audex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/audex/internal/db/redis"
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/intent"
	"github.com/kailas-cloud/audex/internal/domain/population"
	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/snapshot"
	"github.com/kailas-cloud/audex/internal/domain/user"
	savedrepo "github.com/kailas-cloud/audex/internal/repository/savedstate"
	audienceuc "github.com/kailas-cloud/audex/internal/usecase/audience"
	healthuc "github.com/kailas-cloud/audex/internal/usecase/health"
	saveduc "github.com/kailas-cloud/audex/internal/usecase/saved"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultSeed             = 42
	defaultKeyPrefix        = "audex:"
)

// Internal interfaces, replaced by mocks in tests.
type audienceUseCase interface {
	SetFilter(ctx context.Context, key schema.Key, v filter.Value) error
	ToggleFilterMember(ctx context.Context, key schema.Key, member string) error
	ClearFilters(ctx context.Context)
	Filters(ctx context.Context) filter.State
	Summary(ctx context.Context) []filter.SummaryLine
	Audience(ctx context.Context) []user.User
	User(ctx context.Context, id string) (audienceuc.Member, error)
	Stats(ctx context.Context) audienceuc.Stats
	Interpret(ctx context.Context, text string) audienceuc.InterpretResult
	ExportState(ctx context.Context) (string, error)
	ImportState(ctx context.Context, text string) error
	ExportAudience(ctx context.Context) audienceuc.Report
}

type savedUseCase interface {
	Save(ctx context.Context, name string) (snapshot.Snapshot, error)
	Load(ctx context.Context, name string) (snapshot.Snapshot, error)
	List(ctx context.Context) ([]snapshot.Snapshot, error)
	Delete(ctx context.Context, name string) error
}

// Client is the audex SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	audSvc    audienceUseCase
	savedSvc  savedUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New generates the population and connects the saved state store.
// Without WithValkey or WithRedis saved states live in process memory.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		seed:      defaultSeed,
		size:      population.DefaultSize,
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.size <= 0 {
		return nil, fmt.Errorf("audex: population size must be positive, got %d", cfg.size)
	}
	if cfg.ttl < 0 {
		return nil, fmt.Errorf("audex: saved state ttl must not be negative, got %s", cfg.ttl)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("audex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "":
		s, err := memory.NewStore()
		if err != nil {
			return nil, fmt.Errorf("audex: create memory store: %w", err)
		}
		return s, nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("audex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("audex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	pop := population.Generate(cfg.seed, cfg.size)
	audSvc := audienceuc.New(pop, intent.Default(), zap.NewNop())

	repo := savedrepo.New(store, cfg.keyPrefix)
	if cfg.ttl > 0 {
		repo = repo.WithTTL(cfg.ttl)
	}

	return &Client{
		store:     store,
		audSvc:    audSvc,
		savedSvc:  saveduc.New(repo, audSvc),
		healthSvc: healthuc.New(store, pop),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks saved state store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Audience returns the filter and audience service.
func (c *Client) Audience() *AudienceService {
	return &AudienceService{svc: c.audSvc, obs: c.obs}
}

// Saved returns the named filter state service.
func (c *Client) Saved() *SavedService {
	return &SavedService{svc: c.savedSvc, obs: c.obs}
}
