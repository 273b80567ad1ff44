package audex

import (
	"time"

	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/snapshot"
	"github.com/kailas-cloud/audex/internal/domain/user"
	audienceuc "github.com/kailas-cloud/audex/internal/usecase/audience"
)

type (
	// Key identifies a filter slot, e.g. "membershipTier" or
	// "searchKeywords.regions".
	Key = schema.Key
	// Kind is the constraint kind of a field.
	Kind = schema.Kind
	// Category groups fields: behavioral, transactional, profile, crossSell.
	Category = schema.Category
	// Value is a filter value of one kind.
	Value = filter.Value
	// State holds every filter slot.
	State = filter.State
	// SummaryLine describes one active filter.
	SummaryLine = filter.SummaryLine
	// User is one population row.
	User = user.User
	// Member is one user and whether the current filters select it.
	Member = audienceuc.Member
	// Stats is the audience size relative to the population.
	Stats = audienceuc.Stats
	// Interpretation is the outcome of a free-text query.
	Interpretation = audienceuc.InterpretResult
	// Report is a point-in-time audience export.
	Report = audienceuc.Report
)

// Field kinds.
const (
	SingleSelect = schema.SingleSelect
	MultiSelect  = schema.MultiSelect
	Boolean      = schema.Boolean
	NumericRange = schema.NumericRange
)

// Text is a single-select value. An empty string leaves the slot inert.
func Text(s string) Value { return filter.Text(s) }

// Members is a multi-select value. No members leaves the slot inert.
func Members(vs ...string) Value { return filter.Members(vs...) }

// Flag is a set boolean value.
func Flag(b bool) Value { return filter.Flag(b) }

// Unset is the inert boolean value.
func Unset() Value { return filter.Unset() }

// Number is a numeric-range threshold.
func Number(n int) Value { return filter.Number(n) }

// Field describes one filterable attribute.
type Field struct {
	Key      Key
	Category Category
	Label    string
	Kind     Kind
	Options  []string // empty for numeric-range fields
	Min, Max int      // numeric-range bounds
	Unit     string
}

// Fields lists every filterable attribute in catalog order.
func Fields() []Field {
	all := schema.All()
	out := make([]Field, 0, len(all))
	for _, f := range all {
		out = append(out, Field{
			Key:      f.Key(),
			Category: f.Category(),
			Label:    f.Label(),
			Kind:     f.Kind(),
			Options:  f.Options(),
			Min:      f.Min(),
			Max:      f.Max(),
			Unit:     f.Unit(),
		})
	}
	return out
}

// SavedState is the metadata of a named filter state.
type SavedState struct {
	Name          string
	ActiveFilters int
	SavedAt       time.Time
}

func fromSnapshot(s snapshot.Snapshot) SavedState {
	return SavedState{
		Name:          s.Name(),
		ActiveFilters: s.ActiveFilters(),
		SavedAt:       time.UnixMilli(s.SavedAt()).UTC(),
	}
}
