package audience

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/intent"
	"github.com/kailas-cloud/audex/internal/domain/population"
	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/user"
)

// --- Mocks ---

type mockInterpreter struct {
	calls  int
	result intent.Result
	apply  func(s *filter.State)
}

func (m *mockInterpreter) Interpret(_ string, s *filter.State) intent.Result {
	m.calls++
	if m.result.Understood && m.apply != nil {
		m.apply(s)
	}
	return m.result
}

func fixture() population.Population {
	return population.FromUsers([]user.User{
		{ID: "u1", MembershipTier: "VIP", Recency: 10, AOV: 30, DeviceType: "iOS",
			SearchKeywords: user.Keywords{Regions: []string{"제주", "부산"}}},
		{ID: "u2", MembershipTier: "골드", Recency: 100, AOV: 10, DeviceType: "Android",
			SearchKeywords: user.Keywords{Regions: []string{"강릉"}}},
		{ID: "u3", MembershipTier: "VIP", Recency: 200, AOV: 50, DeviceType: "iOS",
			SearchKeywords: user.Keywords{Regions: []string{"제주"}}},
		{ID: "u4", MembershipTier: "실버", Recency: 5, AOV: 25, DeviceType: "Web",
			HasInternationalIntent: true},
	})
}

func newService(interp Interpreter) *Service {
	if interp == nil {
		interp = intent.Default()
	}
	return New(fixture(), interp, nil)
}

func ids(users []user.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// --- Tests ---

func TestAudience_EmptyStateReturnsEveryone(t *testing.T) {
	svc := newService(nil)
	got := ids(svc.Audience(context.Background()))
	want := []string{"u1", "u2", "u3", "u4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("audience = %v, want %v", got, want)
	}
}

func TestSetFilter_NarrowsAudience(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	if err := svc.SetFilter(ctx, schema.MembershipTier, filter.Text("VIP")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(svc.Audience(ctx)); !reflect.DeepEqual(got, []string{"u1", "u3"}) {
		t.Errorf("audience = %v", got)
	}
	if err := svc.SetFilter(ctx, schema.Recency, filter.Number(30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := svc.AudienceSize(ctx); n != 1 {
		t.Errorf("size = %d, want 1", n)
	}
}

func TestSetFilter_Errors(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	err := svc.SetFilter(ctx, schema.Key("nope"), filter.Text("x"))
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	err = svc.SetFilter(ctx, schema.AOV, filter.Text("x"))
	if !errors.Is(err, domain.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
	if n := svc.AudienceSize(ctx); n != 4 {
		t.Errorf("failed set changed audience: %d", n)
	}
}

func TestToggleFilterMember(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	if err := svc.ToggleFilterMember(ctx, schema.KeywordRegions, "제주"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(svc.Audience(ctx)); !reflect.DeepEqual(got, []string{"u1", "u3"}) {
		t.Errorf("audience = %v", got)
	}
	if err := svc.ToggleFilterMember(ctx, schema.KeywordRegions, "강릉"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(svc.Audience(ctx)); !reflect.DeepEqual(got, []string{"u1", "u2", "u3"}) {
		t.Errorf("audience = %v", got)
	}
	_ = svc.ToggleFilterMember(ctx, schema.KeywordRegions, "제주")
	_ = svc.ToggleFilterMember(ctx, schema.KeywordRegions, "강릉")
	if n := svc.AudienceSize(ctx); n != 4 {
		t.Errorf("size after toggling off = %d, want 4", n)
	}

	err := svc.ToggleFilterMember(ctx, schema.DeviceType, "iOS")
	if !errors.Is(err, domain.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestClearFilters(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	_ = svc.SetFilter(ctx, schema.DeviceType, filter.Text("Web"))
	svc.ClearFilters(ctx)

	if active := svc.Filters(ctx); len(active.Active()) != 0 {
		t.Errorf("active after clear: %v", active.Active())
	}
	if n := svc.AudienceSize(ctx); n != 4 {
		t.Errorf("size = %d, want 4", n)
	}
}

func TestFilters_ReturnsCopy(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	_ = svc.SetFilter(ctx, schema.KeywordRegions, filter.Members("제주"))

	st := svc.Filters(ctx)
	st.SearchKeywords.Regions[0] = "부산"

	again := svc.Filters(ctx)
	if again.SearchKeywords.Regions[0] != "제주" {
		t.Error("caller mutation leaked into service state")
	}
}

func TestUser(t *testing.T) {
	s := newService(nil)
	ctx := context.Background()

	m, err := s.User(ctx, "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.User.ID != "u2" || !m.Matches {
		t.Errorf("empty state: %+v, want u2 matching", m)
	}

	if err := s.SetFilter(ctx, schema.MembershipTier, filter.Text("VIP")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if m, _ = s.User(ctx, "u2"); m.Matches {
		t.Error("u2 should not match a VIP filter")
	}
	if m, _ = s.User(ctx, "u3"); !m.Matches {
		t.Error("u3 should match a VIP filter")
	}

	if _, err := s.User(ctx, "u99"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	_ = svc.SetFilter(ctx, schema.DeviceType, filter.Text("iOS"))

	st := svc.Stats(ctx)
	if st.Size != 2 || st.Total != 4 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", st.Percentage)
	}
}

func TestStats_EmptyPopulation(t *testing.T) {
	svc := New(population.FromUsers(nil), intent.Default(), nil)
	st := svc.Stats(context.Background())
	if st.Size != 0 || st.Total != 0 || st.Percentage != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestInterpret_CommitsMutations(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	res := svc.Interpret(ctx, "제주도 VIP 고객")
	if !res.Understood {
		t.Fatal("expected understood")
	}
	if !reflect.DeepEqual(res.MatchedRules, []string{"제주", "VIP"}) {
		t.Errorf("matched = %v", res.MatchedRules)
	}
	if res.AudienceSize != 2 {
		t.Errorf("audienceSize = %d, want 2", res.AudienceSize)
	}
	if len(res.Summary) != 2 {
		t.Errorf("summary = %v", res.Summary)
	}
	if n := svc.AudienceSize(ctx); n != 2 {
		t.Errorf("committed audience = %d, want 2", n)
	}
}

func TestInterpret_NotUnderstoodKeepsState(t *testing.T) {
	mock := &mockInterpreter{result: intent.Result{MatchedRules: []string{}}}
	svc := newService(mock)
	ctx := context.Background()
	_ = svc.SetFilter(ctx, schema.DeviceType, filter.Text("iOS"))
	before, _ := svc.ExportState(ctx)

	res := svc.Interpret(ctx, "아무 의미 없음")
	if res.Understood {
		t.Error("expected not understood")
	}
	if mock.calls != 1 {
		t.Errorf("interpreter calls = %d", mock.calls)
	}
	after, _ := svc.ExportState(ctx)
	if before != after {
		t.Error("state changed on unrecognized text")
	}
	if res.AudienceSize != 2 {
		t.Errorf("audienceSize = %d, want 2", res.AudienceSize)
	}
}

func TestInterpret_UsesInjectedInterpreter(t *testing.T) {
	mock := &mockInterpreter{
		result: intent.Result{Understood: true, MatchedRules: []string{"custom"}, AppliedMutations: 1},
		apply: func(s *filter.State) {
			_ = s.Set(schema.HasInternationalIntent, filter.Flag(true))
		},
	}
	svc := newService(mock)

	res := svc.Interpret(context.Background(), "anything")
	if res.AudienceSize != 1 {
		t.Errorf("audienceSize = %d, want 1", res.AudienceSize)
	}
}

func TestExportImportState_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newService(nil)
	_ = src.SetFilter(ctx, schema.KeywordRegions, filter.Members("제주"))
	_ = src.SetFilter(ctx, schema.AOV, filter.Number(20))
	_ = src.SetFilter(ctx, schema.HasCartWishlist, filter.Flag(false))

	text, err := src.ExportState(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newService(nil)
	if err := dst.ImportState(ctx, text); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(src.Filters(ctx), dst.Filters(ctx)) {
		t.Errorf("state differs after round trip:\n%+v\n%+v", src.Filters(ctx), dst.Filters(ctx))
	}
	if !reflect.DeepEqual(ids(src.Audience(ctx)), ids(dst.Audience(ctx))) {
		t.Error("audience differs after round trip")
	}
}

func TestImportState_DecodeErrorKeepsState(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	_ = svc.SetFilter(ctx, schema.MembershipTier, filter.Text("골드"))

	for _, text := range []string{"", "not json", "[1,2]", `{"aov":"high"}`} {
		err := svc.ImportState(ctx, text)
		if !IsDecodeError(err) {
			t.Errorf("%q: expected decode error, got %v", text, err)
		}
	}
	if got := svc.Filters(ctx); got.MembershipTier != "골드" {
		t.Errorf("membershipTier = %q after failed import", got.MembershipTier)
	}
}

func TestExportAudience(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("KST", 9*3600))
	svc := newService(nil).WithClock(func() time.Time { return at })
	ctx := context.Background()
	_ = svc.SetFilter(ctx, schema.DeviceType, filter.Text("iOS"))

	rep := svc.ExportAudience(ctx)
	if rep.ID == "" {
		t.Error("report ID is empty")
	}
	if !rep.Timestamp.Equal(at) || rep.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp = %v", rep.Timestamp)
	}
	if rep.AudienceSize != 2 || !reflect.DeepEqual(rep.UserIDs, []string{"u1", "u3"}) {
		t.Errorf("report = %+v", rep)
	}
	if rep.Filters.DeviceType != "iOS" {
		t.Errorf("filters = %+v", rep.Filters)
	}

	other := svc.ExportAudience(ctx)
	if other.ID == rep.ID {
		t.Error("report IDs should differ")
	}
}

func TestService_ConcurrentMutationsAndReads(t *testing.T) {
	svc := New(population.Generate(7, 300), intent.Default(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = svc.ToggleFilterMember(ctx, schema.KeywordRegions, "제주")
			svc.Interpret(ctx, "VIP 고객")
		}()
		go func() {
			defer wg.Done()
			_ = svc.Audience(ctx)
			_ = svc.Stats(ctx)
		}()
	}
	wg.Wait()

	if n := svc.AudienceSize(ctx); n > svc.Population().Len() {
		t.Errorf("size %d exceeds population", n)
	}
}
