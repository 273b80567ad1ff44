// Package filter holds the typed filter state: one constraint slot per
// schema field, each with an inert value meaning "no constraint".
package filter

import (
	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/schema"
)

// Keywords holds the composite search keyword constraints.
type Keywords struct {
	Regions            []string `json:"regions"`
	AccommodationTypes []string `json:"accommodationTypes"`
	Themes             []string `json:"themes"`
}

// State is the full set of current constraints. Every slot is always
// present; a slot holding its inert value contributes no predicate.
type State struct {
	SearchKeywords  Keywords `json:"searchKeywords"`
	ViewedProducts  string   `json:"viewedProducts"`
	HasCartWishlist *bool    `json:"hasCartWishlist"`
	Recency         int      `json:"recency"`

	PaymentFrequency int      `json:"paymentFrequency"`
	AOV              int      `json:"aov"`
	PreferredDays    []string `json:"preferredDays"`
	LeadTime         string   `json:"leadTime"`

	ActiveRegion   []string `json:"activeRegion"`
	MembershipTier string   `json:"membershipTier"`
	DeviceType     string   `json:"deviceType"`
	LifeStage      []string `json:"lifeStage"`

	HasSpaceRental         *bool    `json:"hasSpaceRental"`
	HasInternationalIntent *bool    `json:"hasInternationalIntent"`
	Transportation         []string `json:"transportation"`
}

// NewState returns a state with every slot inert.
func NewState() State {
	var s State
	s.Clear()
	return s
}

// Clear resets every slot to its inert value.
func (s *State) Clear() {
	*s = State{}
	for _, f := range schema.All() {
		// Known keys with matching kinds cannot fail.
		_ = s.Set(f.Key(), Inert(f))
	}
}

// Set overwrites the slot at k. Values are not checked against the field's
// domain: an out-of-domain value is stored and simply matches nothing.
func (s *State) Set(k schema.Key, v Value) error {
	f, ok := schema.Lookup(k)
	if !ok {
		return domain.NewUnknownField(string(k))
	}
	if v.Kind() != f.Kind() {
		return domain.NewKindMismatch(string(k))
	}

	switch f.Kind() {
	case schema.SingleSelect:
		*s.text(k) = v.Str()
	case schema.MultiSelect:
		*s.members(k) = v.Set()
	case schema.Boolean:
		slot := s.flag(k)
		if b, set := v.Bool(); set {
			*slot = &b
		} else {
			*slot = nil
		}
	case schema.NumericRange:
		*s.number(k) = v.Int()
	}
	return nil
}

// Toggle adds member to a multi-select slot if absent and removes it if
// present.
func (s *State) Toggle(k schema.Key, member string) error {
	f, ok := schema.Lookup(k)
	if !ok {
		return domain.NewUnknownField(string(k))
	}
	if f.Kind() != schema.MultiSelect {
		return domain.NewKindMismatch(string(k))
	}

	slot := s.members(k)
	next := make([]string, 0, len(*slot)+1)
	found := false
	for _, m := range *slot {
		if m == member {
			found = true
			continue
		}
		next = append(next, m)
	}
	if !found {
		next = append(next, member)
	}
	*slot = next
	return nil
}

// Value returns the constraint stored at k.
func (s *State) Value(k schema.Key) (Value, bool) {
	f, ok := schema.Lookup(k)
	if !ok {
		return Value{}, false
	}
	switch f.Kind() {
	case schema.SingleSelect:
		return Text(*s.text(k)), true
	case schema.MultiSelect:
		return Value{kind: schema.MultiSelect, members: *s.members(k)}, true
	case schema.Boolean:
		if p := *s.flag(k); p != nil {
			return Flag(*p), true
		}
		return Unset(), true
	default:
		return Number(*s.number(k)), true
	}
}

// IsInert reports whether the slot at k places no constraint.
// Unknown keys are inert.
func (s *State) IsInert(k schema.Key) bool {
	f, ok := schema.Lookup(k)
	if !ok {
		return true
	}
	v, _ := s.Value(k)
	return v.IsInertFor(f)
}

// Active returns the keys of every non-inert slot in catalog order.
func (s *State) Active() []schema.Key {
	var out []schema.Key
	for _, f := range schema.All() {
		if !s.IsInert(f.Key()) {
			out = append(out, f.Key())
		}
	}
	return out
}

// Clone returns a deep copy that shares no slices or pointers with s.
func (s *State) Clone() State {
	c := *s
	c.SearchKeywords.Regions = cloneStrings(s.SearchKeywords.Regions)
	c.SearchKeywords.AccommodationTypes = cloneStrings(s.SearchKeywords.AccommodationTypes)
	c.SearchKeywords.Themes = cloneStrings(s.SearchKeywords.Themes)
	c.PreferredDays = cloneStrings(s.PreferredDays)
	c.ActiveRegion = cloneStrings(s.ActiveRegion)
	c.LifeStage = cloneStrings(s.LifeStage)
	c.Transportation = cloneStrings(s.Transportation)
	c.HasCartWishlist = cloneBool(s.HasCartWishlist)
	c.HasSpaceRental = cloneBool(s.HasSpaceRental)
	c.HasInternationalIntent = cloneBool(s.HasInternationalIntent)
	return c
}

// Normalize replaces nil multi-select slots with empty ones so that every
// slot is present after decoding.
func (s *State) Normalize() {
	for _, f := range schema.All() {
		if f.Kind() != schema.MultiSelect {
			continue
		}
		if slot := s.members(f.Key()); *slot == nil {
			*slot = []string{}
		}
	}
}

func (s *State) text(k schema.Key) *string {
	switch k {
	case schema.ViewedProducts:
		return &s.ViewedProducts
	case schema.LeadTime:
		return &s.LeadTime
	case schema.MembershipTier:
		return &s.MembershipTier
	case schema.DeviceType:
		return &s.DeviceType
	}
	panic("filter: no single-select slot for " + string(k))
}

func (s *State) members(k schema.Key) *[]string {
	switch k {
	case schema.KeywordRegions:
		return &s.SearchKeywords.Regions
	case schema.KeywordAccommodationTypes:
		return &s.SearchKeywords.AccommodationTypes
	case schema.KeywordThemes:
		return &s.SearchKeywords.Themes
	case schema.PreferredDays:
		return &s.PreferredDays
	case schema.ActiveRegion:
		return &s.ActiveRegion
	case schema.LifeStage:
		return &s.LifeStage
	case schema.Transportation:
		return &s.Transportation
	}
	panic("filter: no multi-select slot for " + string(k))
}

func (s *State) flag(k schema.Key) **bool {
	switch k {
	case schema.HasCartWishlist:
		return &s.HasCartWishlist
	case schema.HasSpaceRental:
		return &s.HasSpaceRental
	case schema.HasInternationalIntent:
		return &s.HasInternationalIntent
	}
	panic("filter: no boolean slot for " + string(k))
}

func (s *State) number(k schema.Key) *int {
	switch k {
	case schema.Recency:
		return &s.Recency
	case schema.PaymentFrequency:
		return &s.PaymentFrequency
	case schema.AOV:
		return &s.AOV
	}
	panic("filter: no numeric slot for " + string(k))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	b := *p
	return &b
}
