package intent

import (
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/schema"
)

// Mutation is one fixed filter assignment performed by a rule.
type Mutation struct {
	Key   schema.Key
	Value filter.Value
}

// Rule fires when the text contains any of its triggers.
type Rule struct {
	Triggers  []string
	Mutations []Mutation
}

// Label identifies the rule in results: its first trigger.
func (r Rule) Label() string {
	if len(r.Triggers) == 0 {
		return ""
	}
	return r.Triggers[0]
}

func set(k schema.Key, v filter.Value) Mutation { return Mutation{Key: k, Value: v} }

// DefaultRules is the built-in table. Order matters: when two firing rules
// assign the same slot, the later one wins.
func DefaultRules() []Rule {
	return []Rule{
		{Triggers: []string{"제주", "제주도"}, Mutations: []Mutation{set(schema.KeywordRegions, filter.Members("제주"))}},
		{Triggers: []string{"경주"}, Mutations: []Mutation{set(schema.KeywordRegions, filter.Members("경주"))}},
		{Triggers: []string{"부산"}, Mutations: []Mutation{set(schema.KeywordRegions, filter.Members("부산"))}},
		{Triggers: []string{"강릉"}, Mutations: []Mutation{set(schema.KeywordRegions, filter.Members("강릉"))}},
		{Triggers: []string{"프리미엄", "블랙", "고급"},
			Mutations: []Mutation{set(schema.ViewedProducts, filter.Text("프리미엄 라인 (블랙)"))}},
		{Triggers: []string{"풀빌라", "pool villa"},
			Mutations: []Mutation{set(schema.KeywordAccommodationTypes, filter.Members("풀빌라"))}},
		{Triggers: []string{"호캉스", "호텔"},
			Mutations: []Mutation{set(schema.KeywordAccommodationTypes, filter.Members("호캉스"))}},
		{Triggers: []string{"펜션"}, Mutations: []Mutation{set(schema.KeywordAccommodationTypes, filter.Members("펜션"))}},
		{Triggers: []string{"애견", "반려동물", "강아지"},
			Mutations: []Mutation{set(schema.KeywordThemes, filter.Members("애견 동반"))}},
		{Triggers: []string{"키즈", "어린이", "아이"}, Mutations: []Mutation{set(schema.KeywordThemes, filter.Members("키즈"))}},
		{Triggers: []string{"커플"}, Mutations: []Mutation{
			set(schema.KeywordThemes, filter.Members("커플")),
			set(schema.LifeStage, filter.Members("커플")),
		}},
		{Triggers: []string{"골드"}, Mutations: []Mutation{set(schema.MembershipTier, filter.Text("골드"))}},
		{Triggers: []string{"VIP", "vip", "블랙"}, Mutations: []Mutation{set(schema.MembershipTier, filter.Text("VIP"))}},
		{Triggers: []string{"30일", "한달"}, Mutations: []Mutation{set(schema.Recency, filter.Number(30))}},
		{Triggers: []string{"7일", "일주일"}, Mutations: []Mutation{set(schema.Recency, filter.Number(7))}},
		{Triggers: []string{"14일", "2주"}, Mutations: []Mutation{set(schema.Recency, filter.Number(14))}},
		{Triggers: []string{"주말"}, Mutations: []Mutation{set(schema.PreferredDays, filter.Members("토", "일"))}},
		{Triggers: []string{"평일"},
			Mutations: []Mutation{set(schema.PreferredDays, filter.Members("월", "화", "수", "목", "금"))}},
		{Triggers: []string{"20만원", "20만"}, Mutations: []Mutation{set(schema.AOV, filter.Number(20))}},
		{Triggers: []string{"30만원", "30만"}, Mutations: []Mutation{set(schema.AOV, filter.Number(30))}},
		{Triggers: []string{"50만원", "50만"}, Mutations: []Mutation{set(schema.AOV, filter.Number(50))}},
		{Triggers: []string{"iOS", "아이폰", "아이패드"}, Mutations: []Mutation{set(schema.DeviceType, filter.Text("iOS"))}},
		{Triggers: []string{"Android", "안드로이드"}, Mutations: []Mutation{set(schema.DeviceType, filter.Text("Android"))}},
		{Triggers: []string{"해외", "국외", "외국"},
			Mutations: []Mutation{set(schema.HasInternationalIntent, filter.Flag(true))}},
		{Triggers: []string{"렌터카", "렌트카"}, Mutations: []Mutation{set(schema.Transportation, filter.Members("렌터카"))}},
		{Triggers: []string{"자주", "반복", "단골"}, Mutations: []Mutation{set(schema.PaymentFrequency, filter.Number(5))}},
	}
}

// SuggestedQueries are example inputs the default table understands.
func SuggestedQueries() []string {
	return []string{
		"제주도 프리미엄 숙박을 찾는 고객",
		"최근 30일 내 구매이력이 있는 VIP 고객",
		"애견 동반 가능한 숙소를 자주 찾는 사용자",
		"주말 호캉스 선호하며 평균 20만원 이상 지불",
		"iOS 사용자 중 해외 여행 의도가 있는 고객",
		"경주에서 커플 숙소를 찾는 골드 회원",
		"풀빌라를 반복 구매하는 단골 고객",
		"키즈 펜션을 평일에 예약하는 가족 고객",
	}
}
