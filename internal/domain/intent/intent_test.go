package intent

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/filter/codec"
	"github.com/kailas-cloud/audex/internal/domain/schema"
)

func TestInterpret_LastRuleWins(t *testing.T) {
	texts := []string{
		"골드 등급 중 VIP 고객",
		"VIP 고객 중 골드 등급",
	}
	m := Default()
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			s := filter.NewState()
			res := m.Interpret(text, &s)
			if !res.Understood {
				t.Fatal("expected understood")
			}
			if s.MembershipTier != "VIP" {
				t.Errorf("membershipTier = %q, want VIP", s.MembershipTier)
			}
			if !reflect.DeepEqual(res.MatchedRules, []string{"골드", "VIP"}) {
				t.Errorf("matched = %v", res.MatchedRules)
			}
		})
	}
}

func TestInterpret_MultipleRulesFire(t *testing.T) {
	s := filter.NewState()
	res := Default().Interpret("제주도 프리미엄 숙박을 찾는 고객", &s)
	if !reflect.DeepEqual(res.MatchedRules, []string{"제주", "프리미엄"}) {
		t.Fatalf("matched = %v", res.MatchedRules)
	}
	if res.AppliedMutations != 2 {
		t.Errorf("applied = %d, want 2", res.AppliedMutations)
	}
	if !reflect.DeepEqual(s.SearchKeywords.Regions, []string{"제주"}) {
		t.Errorf("regions = %v", s.SearchKeywords.Regions)
	}
	if s.ViewedProducts != "프리미엄 라인 (블랙)" {
		t.Errorf("viewedProducts = %q", s.ViewedProducts)
	}
}

func TestInterpret_SharedTriggerFiresBothRules(t *testing.T) {
	s := filter.NewState()
	res := Default().Interpret("블랙 회원", &s)
	if !reflect.DeepEqual(res.MatchedRules, []string{"프리미엄", "VIP"}) {
		t.Fatalf("matched = %v", res.MatchedRules)
	}
	if s.ViewedProducts != "프리미엄 라인 (블랙)" || s.MembershipTier != "VIP" {
		t.Errorf("state = %+v", s)
	}
}

func TestInterpret_RuleWithTwoMutations(t *testing.T) {
	s := filter.NewState()
	res := Default().Interpret("커플 여행", &s)
	if res.AppliedMutations != 2 {
		t.Errorf("applied = %d, want 2", res.AppliedMutations)
	}
	if !reflect.DeepEqual(s.SearchKeywords.Themes, []string{"커플"}) ||
		!reflect.DeepEqual(s.LifeStage, []string{"커플"}) {
		t.Errorf("themes = %v, lifeStage = %v", s.SearchKeywords.Themes, s.LifeStage)
	}
}

func TestInterpret_CaseInsensitive(t *testing.T) {
	tests := []struct {
		text   string
		device string
	}{
		{"ios 사용자", "iOS"},
		{"IOS 사용자", "iOS"},
		{"ANDROID 사용자", "Android"},
	}
	for _, tt := range tests {
		s := filter.NewState()
		if res := Default().Interpret(tt.text, &s); !res.Understood {
			t.Fatalf("%q not understood", tt.text)
		}
		if s.DeviceType != tt.device {
			t.Errorf("%q: deviceType = %q, want %q", tt.text, s.DeviceType, tt.device)
		}
	}

	s := filter.NewState()
	Default().Interpret("Pool Villa 찾는 고객", &s)
	if !reflect.DeepEqual(s.SearchKeywords.AccommodationTypes, []string{"풀빌라"}) {
		t.Errorf("accommodationTypes = %v", s.SearchKeywords.AccommodationTypes)
	}
}

func TestInterpret_LaterRuleOverridesSameSlot(t *testing.T) {
	s := filter.NewState()
	Default().Interpret("일주일 또는 한달", &s)
	if s.Recency != 7 {
		t.Errorf("recency = %d, want 7 (later rule)", s.Recency)
	}
}

func TestInterpret_KeepsUntouchedSlots(t *testing.T) {
	s := filter.NewState()
	_ = s.Set(schema.LeadTime, filter.Text("당일"))
	_ = s.Set(schema.MembershipTier, filter.Text("실버"))
	Default().Interpret("VIP 고객", &s)
	if s.LeadTime != "당일" {
		t.Errorf("leadTime = %q", s.LeadTime)
	}
	if s.MembershipTier != "VIP" {
		t.Errorf("membershipTier = %q", s.MembershipTier)
	}
}

func TestInterpret_UnrecognizedLeavesStateUntouched(t *testing.T) {
	s := filter.NewState()
	_ = s.Set(schema.AOV, filter.Number(40))
	before, err := codec.Export(s)
	if err != nil {
		t.Fatal(err)
	}

	res := Default().Interpret("완전히 무관한 텍스트", &s)
	if res.Understood {
		t.Fatalf("unexpectedly understood: %v", res.MatchedRules)
	}
	if res.AppliedMutations != 0 || len(res.MatchedRules) != 0 {
		t.Errorf("result = %+v", res)
	}
	after, _ := codec.Export(s)
	if before != after {
		t.Errorf("state changed:\n%s\n%s", before, after)
	}
}

func TestSuggestedQueries_AllUnderstood(t *testing.T) {
	m := Default()
	for _, q := range SuggestedQueries() {
		if fired := m.Match(q); len(fired) == 0 {
			t.Errorf("suggested query %q is not understood", q)
		}
	}
}

func TestNewMatcher_RejectsBadRules(t *testing.T) {
	_, err := NewMatcher([]Rule{{Triggers: []string{"x"}, Mutations: []Mutation{set(schema.Recency, filter.Text("x"))}}})
	if !errors.Is(err, domain.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
	_, err = NewMatcher([]Rule{{Triggers: []string{"x"}, Mutations: []Mutation{set(schema.Key("nope"), filter.Text("x"))}}})
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, err = NewMatcher([]Rule{{}}); err == nil {
		t.Error("expected error for rule without triggers")
	}
	for _, blank := range []string{"", "  "} {
		_, err = NewMatcher([]Rule{{
			Triggers:  []string{"x", blank},
			Mutations: []Mutation{set(schema.MembershipTier, filter.Text("VIP"))},
		}})
		if err == nil {
			t.Errorf("expected error for blank trigger %q", blank)
		}
	}
}

func TestDefaultRules_Count(t *testing.T) {
	if n := len(Default().Rules()); n != 26 {
		t.Errorf("rule table has %d rules, want 26", n)
	}
}
