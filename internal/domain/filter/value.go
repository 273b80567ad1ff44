package filter

import "github.com/kailas-cloud/audex/internal/domain/schema"

// Value is a typed constraint for one filter slot. Its kind must match the
// kind of the field it is assigned to.
type Value struct {
	kind    schema.Kind
	text    string
	members []string
	flag    *bool
	number  int
}

// Text creates a single-select constraint. "" is inert.
func Text(s string) Value { return Value{kind: schema.SingleSelect, text: s} }

// Members creates a multi-select constraint. No members is inert.
func Members(vs ...string) Value {
	return Value{kind: schema.MultiSelect, members: dedupe(vs)}
}

// Flag creates a boolean constraint.
func Flag(b bool) Value { return Value{kind: schema.Boolean, flag: &b} }

// Unset creates the inert boolean constraint.
func Unset() Value { return Value{kind: schema.Boolean} }

// Number creates a numeric-range threshold.
func Number(n int) Value { return Value{kind: schema.NumericRange, number: n} }

// Inert returns the value meaning "no constraint" for f.
func Inert(f schema.Field) Value {
	switch f.Kind() {
	case schema.SingleSelect:
		return Text("")
	case schema.MultiSelect:
		return Members()
	case schema.Boolean:
		return Unset()
	default:
		return Number(f.InertNumber())
	}
}

// Kind returns the value kind.
func (v Value) Kind() schema.Kind { return v.kind }

// Str returns the single-select value.
func (v Value) Str() string { return v.text }

// Set returns a copy of the multi-select members.
func (v Value) Set() []string {
	out := make([]string, len(v.members))
	copy(out, v.members)
	return out
}

// Bool returns the boolean value and whether it is set.
func (v Value) Bool() (value, ok bool) {
	if v.flag == nil {
		return false, false
	}
	return *v.flag, true
}

// Int returns the numeric threshold.
func (v Value) Int() int { return v.number }

// IsInertFor reports whether v places no constraint on f.
func (v Value) IsInertFor(f schema.Field) bool {
	switch f.Kind() {
	case schema.SingleSelect:
		return v.text == ""
	case schema.MultiSelect:
		return len(v.members) == 0
	case schema.Boolean:
		return v.flag == nil
	case schema.NumericRange:
		if f.Direction() == schema.AtMost {
			return v.number >= f.Max()
		}
		return v.number <= f.Min()
	}
	return true
}

// dedupe keeps the first occurrence of every member, in order.
func dedupe(vs []string) []string {
	out := make([]string, 0, len(vs))
	seen := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
