package schema

// Option lists shared with the population generator.
var (
	Regions            = []string{"제주", "경주", "부산", "강릉", "여수", "속초", "전주", "대구"}
	AccommodationTypes = []string{"풀빌라", "호캉스", "모텔", "비즈니스 호텔", "펜션", "리조트", "게스트하우스", "한옥"}
	Themes             = []string{"애견 동반", "키즈", "커플", "워케이션", "파티", "오션뷰", "마운틴뷰", "스파"}
	Products           = []string{"프리미엄 라인 (블랙)", "가성비 모텔", "비즈니스 호텔", "펜션", "리조트", "게스트하우스", "전체"}
	Weekdays           = []string{"월", "화", "수", "목", "금", "토", "일"}
	LeadTimes          = []string{"당일", "1-3일", "4-7일", "1-2주", "2주-1개월", "1개월 이상"}
	Provinces          = []string{
		"서울", "경기", "인천", "부산", "대구", "대전", "광주", "울산",
		"강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
	}
	Tiers        = []string{"일반", "실버", "골드", "VIP", "블랙"}
	Devices      = []string{"iOS", "Android", "Web (Desktop)", "Web (Mobile)", "전체"}
	LifeStages   = []string{"솔로", "커플", "신혼", "자녀 동반 가족", "반려동물 가족", "시니어"}
	Transports   = []string{"렌터카", "기차", "항공", "버스", "없음"}
	BooleanLabel = map[bool]string{true: "있음", false: "없음"}
)

// catalog is ordered: summaries, exports and the engine walk it in this order.
var catalog = []Field{
	{key: KeywordRegions, category: Behavioral, label: "검색 키워드 / 지역", summaryLabel: "검색 지역",
		kind: MultiSelect, options: Regions},
	{key: KeywordAccommodationTypes, category: Behavioral, label: "검색 키워드 / 숙박 유형", summaryLabel: "숙박 유형",
		kind: MultiSelect, options: AccommodationTypes},
	{key: KeywordThemes, category: Behavioral, label: "검색 키워드 / 테마", summaryLabel: "테마",
		kind: MultiSelect, options: Themes},
	{key: ViewedProducts, category: Behavioral, label: "조회 상품군", summaryLabel: "조회 상품",
		kind: SingleSelect, options: Products},
	{key: HasCartWishlist, category: Behavioral, label: "장바구니/찜 목록", summaryLabel: "장바구니/찜",
		kind: Boolean, options: []string{"있음", "없음"}},
	{key: Recency, category: Behavioral, label: "최근 접속일", summaryLabel: "최근 접속",
		kind: NumericRange, min: 0, max: 365, unit: "일", suffix: "일", direction: AtMost},

	{key: PaymentFrequency, category: Transactional, label: "결제 주기", summaryLabel: "연간 결제",
		kind: NumericRange, min: 0, max: 50, unit: "회/년", suffix: "회", direction: AtLeast},
	{key: AOV, category: Transactional, label: "객단가 (AOV)", summaryLabel: "객단가",
		kind: NumericRange, min: 0, max: 200, unit: "만원", suffix: "만원", direction: AtLeast},
	{key: PreferredDays, category: Transactional, label: "선호 숙박 요일", summaryLabel: "선호 요일",
		kind: MultiSelect, options: Weekdays},
	{key: LeadTime, category: Transactional, label: "리드 타임", summaryLabel: "리드 타임",
		kind: SingleSelect, options: LeadTimes},

	{key: ActiveRegion, category: Profile, label: "주 활동 지역", summaryLabel: "활동 지역",
		kind: MultiSelect, options: Provinces},
	{key: MembershipTier, category: Profile, label: "멤버십 등급", summaryLabel: "멤버십",
		kind: SingleSelect, options: Tiers},
	{key: DeviceType, category: Profile, label: "접속 기기", summaryLabel: "기기",
		kind: SingleSelect, options: Devices},
	{key: LifeStage, category: Profile, label: "라이프스테이지", summaryLabel: "라이프스테이지",
		kind: MultiSelect, options: LifeStages},

	{key: HasSpaceRental, category: CrossSell, label: "공간대여/레저 이용", summaryLabel: "공간대여/레저",
		kind: Boolean, options: []string{"있음", "없음"}},
	{key: HasInternationalIntent, category: CrossSell, label: "해외 여행 의도", summaryLabel: "해외 여행 의도",
		kind: Boolean, options: []string{"있음", "없음"}},
	{key: Transportation, category: CrossSell, label: "렌터카/교통 예약", summaryLabel: "교통 수단",
		kind: MultiSelect, options: Transports},
}

var byKey = func() map[Key]int {
	m := make(map[Key]int, len(catalog))
	for i, f := range catalog {
		m[f.key] = i
	}
	return m
}()

// All returns every field in catalog order.
func All() []Field {
	out := make([]Field, len(catalog))
	copy(out, catalog)
	return out
}

// Categories returns the categories in console order.
func Categories() []Category {
	return []Category{Behavioral, Transactional, Profile, CrossSell}
}

// FieldsOf returns the fields of a category in catalog order.
// An unknown category yields no fields.
func FieldsOf(c Category) []Field {
	var out []Field
	for _, f := range catalog {
		if f.category == c {
			out = append(out, f)
		}
	}
	return out
}

// Group returns the sub-fields of a composite group.
func Group(name string) []Field {
	var out []Field
	for _, f := range catalog {
		if f.Group() == name {
			out = append(out, f)
		}
	}
	return out
}

// Lookup returns the field for key.
func Lookup(k Key) (Field, bool) {
	i, ok := byKey[k]
	if !ok {
		return Field{}, false
	}
	return catalog[i], true
}

// ParseKey resolves a raw key string to a known Key.
func ParseKey(s string) (Key, bool) {
	k := Key(s)
	_, ok := byKey[k]
	return k, ok
}

// DomainOf returns the legal values of key. Numeric-range fields and
// unknown keys return nil; use Lookup for their bounds.
func DomainOf(k Key) []string {
	f, ok := Lookup(k)
	if !ok || f.kind == NumericRange {
		return nil
	}
	return f.Options()
}

// ParseCategory resolves a raw category name.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
