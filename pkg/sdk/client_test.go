package audex

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), append([]Option{WithPopulationSize(100)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_InvalidSize(t *testing.T) {
	_, err := New(context.Background(), WithPopulationSize(0))
	if err == nil {
		t.Fatal("expected error for zero population size")
	}
}

func TestNew_NegativeTTL(t *testing.T) {
	_, err := New(context.Background(), WithSavedStateTTL(-time.Second))
	if err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_MemoryStoreByDefault(t *testing.T) {
	c := newTestClient(t)

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if h.Checks["population"] != "ok" || h.Checks["database"] != "ok" {
		t.Errorf("checks = %v", h.Checks)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}
	WithSeed(7).apply(cfg)
	WithPopulationSize(10).apply(cfg)
	WithKeyPrefix("t:").apply(cfg)
	WithSavedStateTTL(time.Hour).apply(cfg)

	if cfg.seed != 7 || cfg.size != 10 {
		t.Errorf("seed/size = %d/%d", cfg.seed, cfg.size)
	}
	if cfg.keyPrefix != "t:" {
		t.Errorf("keyPrefix = %q", cfg.keyPrefix)
	}
	if cfg.ttl != time.Hour {
		t.Errorf("ttl = %s", cfg.ttl)
	}

	WithValkey("localhost:6379", "pw").apply(cfg)
	if cfg.driver != "valkey" || cfg.addrs[0] != "localhost:6379" || cfg.password != "pw" {
		t.Errorf("valkey option not applied: %+v", cfg)
	}
	WithRedis("localhost:6380", "").apply(cfg)
	if cfg.driver != "redis" || cfg.addrs[0] != "localhost:6380" {
		t.Errorf("redis option not applied: %+v", cfg)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("logger option not applied")
	}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("prometheus option not applied")
	}
}

func TestNew_SameSeedSamePopulation(t *testing.T) {
	a := newTestClient(t, WithSeed(9))
	b := newTestClient(t, WithSeed(9))
	ctx := context.Background()

	ua, ub := a.Audience().Users(ctx), b.Audience().Users(ctx)
	if len(ua) != 100 || len(ub) != 100 {
		t.Fatalf("sizes = %d, %d", len(ua), len(ub))
	}
	for i := range ua {
		if ua[i].MembershipTier != ub[i].MembershipTier || ua[i].AOV != ub[i].AOV {
			t.Fatalf("user %d differs between clients", i)
		}
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestFields(t *testing.T) {
	fields := Fields()
	if len(fields) != 17 {
		t.Fatalf("len = %d, want 17", len(fields))
	}
	for _, f := range fields {
		if f.Kind == NumericRange && len(f.Options) != 0 {
			t.Errorf("%s: numeric field has options", f.Key)
		}
		if f.Kind != NumericRange && len(f.Options) == 0 {
			t.Errorf("%s: no options", f.Key)
		}
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("filter.set", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("filter.set", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "audex_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("audex_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}
