package savedstate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kailas-cloud/audex/internal/db"
	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/snapshot"
)

// store is the consumer interface for saved states (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/saved.Repository.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a saved state repository. Keys are {prefix}state:{name}.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// WithTTL expires saved states after ttl. Zero keeps them forever.
func (r *Repo) WithTTL(ttl time.Duration) *Repo {
	r.ttl = ttl
	return r
}

// Put stores s, replacing any state saved under the same name.
func (r *Repo) Put(ctx context.Context, s snapshot.Snapshot) error {
	data, err := snapshotToJSON(s)
	if err != nil {
		return err
	}
	key := r.key(s.Name())
	if r.ttl > 0 {
		err = r.store.SetWithTTL(ctx, key, data, r.ttl)
	} else {
		err = r.store.Set(ctx, key, data)
	}
	if err != nil {
		return fmt.Errorf("set saved state %s: %w", s.Name(), err)
	}
	return nil
}

// Get retrieves a saved state by name.
func (r *Repo) Get(ctx context.Context, name string) (snapshot.Snapshot, error) {
	data, err := r.store.Get(ctx, r.key(name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return snapshot.Snapshot{}, domain.ErrNotFound
		}
		return snapshot.Snapshot{}, fmt.Errorf("get saved state %s: %w", name, err)
	}
	return snapshotFromJSON(data)
}

// List returns all saved states sorted by name. Keys that vanish between
// SCAN and GET are skipped.
func (r *Repo) List(ctx context.Context) ([]snapshot.Snapshot, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan saved states: %w", err)
	}

	out := make([]snapshot.Snapshot, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, db.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get saved state %s: %w", key, err)
		}
		s, err := snapshotFromJSON(data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Delete removes a saved state.
func (r *Repo) Delete(ctx context.Context, name string) error {
	key := r.key(name)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del saved state %s: %w", name, err)
	}
	return nil
}

func (r *Repo) key(name string) string {
	return r.prefix + "state:" + name
}
