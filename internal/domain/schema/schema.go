// Package schema is the static catalog of filterable user attributes.
package schema

import (
	"fmt"
	"strings"
)

// Kind is the constraint kind of a field.
type Kind string

// Field kind constants.
const (
	SingleSelect Kind = "single-select"
	MultiSelect  Kind = "multi-select"
	Boolean      Kind = "boolean"
	NumericRange Kind = "numeric-range"
)

// Direction is the comparison a numeric-range constraint applies.
type Direction string

const (
	// AtMost matches records whose value is <= the constraint. Inert is Max.
	AtMost Direction = "at-most"
	// AtLeast matches records whose value is >= the constraint. Inert is Min.
	AtLeast Direction = "at-least"
)

// Category groups fields the way the operator console presents them.
type Category string

// Category constants.
const (
	Behavioral    Category = "behavioral"
	Transactional Category = "transactional"
	Profile       Category = "profile"
	CrossSell     Category = "crossSell"
)

// Key identifies a filter slot. Sub-fields of a composite group are
// dot-qualified: "searchKeywords.regions".
type Key string

// Known filter keys.
const (
	KeywordRegions            Key = "searchKeywords.regions"
	KeywordAccommodationTypes Key = "searchKeywords.accommodationTypes"
	KeywordThemes             Key = "searchKeywords.themes"
	ViewedProducts            Key = "viewedProducts"
	HasCartWishlist           Key = "hasCartWishlist"
	Recency                   Key = "recency"
	PaymentFrequency          Key = "paymentFrequency"
	AOV                       Key = "aov"
	PreferredDays             Key = "preferredDays"
	LeadTime                  Key = "leadTime"
	ActiveRegion              Key = "activeRegion"
	MembershipTier            Key = "membershipTier"
	DeviceType                Key = "deviceType"
	LifeStage                 Key = "lifeStage"
	HasSpaceRental            Key = "hasSpaceRental"
	HasInternationalIntent    Key = "hasInternationalIntent"
	Transportation            Key = "transportation"
)

// SearchKeywordsGroup is the composite group holding the keyword sub-fields.
const SearchKeywordsGroup = "searchKeywords"

// Split returns the group and sub-field of a dot-qualified key.
// For a plain key group is empty and name is the key itself.
func (k Key) Split() (group, name string) {
	if g, n, ok := strings.Cut(string(k), "."); ok {
		return g, n
	}
	return "", string(k)
}

// Field is an immutable description of one filter slot.
type Field struct {
	key          Key
	category     Category
	label        string
	summaryLabel string
	kind         Kind
	options      []string
	min, max     int
	unit         string
	suffix       string
	direction    Direction
}

// Key returns the field key.
func (f Field) Key() Key { return f.key }

// Group returns the composite group name, or "" for plain fields.
func (f Field) Group() string {
	g, _ := f.key.Split()
	return g
}

// Category returns the console category.
func (f Field) Category() Category { return f.category }

// Label returns the control label.
func (f Field) Label() string { return f.label }

// SummaryLabel returns the label used in active filter summaries.
func (f Field) SummaryLabel() string { return f.summaryLabel }

// Kind returns the constraint kind.
func (f Field) Kind() Kind { return f.kind }

// Options returns a copy of the legal literal values.
// Empty for numeric-range fields.
func (f Field) Options() []string {
	out := make([]string, len(f.options))
	copy(out, f.options)
	return out
}

// Min returns the lower bound of a numeric-range field.
func (f Field) Min() int { return f.min }

// Max returns the upper bound of a numeric-range field.
func (f Field) Max() int { return f.max }

// Unit returns the display unit of a numeric-range field.
func (f Field) Unit() string { return f.unit }

// Direction returns the comparison of a numeric-range field.
func (f Field) Direction() Direction { return f.direction }

// InertNumber returns the numeric value meaning "no constraint".
func (f Field) InertNumber() int {
	if f.direction == AtMost {
		return f.max
	}
	return f.min
}

// FormatThreshold renders a numeric constraint for summaries, e.g. "30일 이내".
func (f Field) FormatThreshold(n int) string {
	if f.direction == AtMost {
		return fmt.Sprintf("%d%s 이내", n, f.suffix)
	}
	return fmt.Sprintf("%d%s 이상", n, f.suffix)
}

// Contains reports whether v is one of the field's legal options.
func (f Field) Contains(v string) bool {
	for _, o := range f.options {
		if o == v {
			return true
		}
	}
	return false
}
