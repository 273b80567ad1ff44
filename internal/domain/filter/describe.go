package filter

import (
	"strings"

	"github.com/kailas-cloud/audex/internal/domain/schema"
)

// ValueSeparator joins multi-select members in summaries.
const ValueSeparator = ", "

// SummaryLine is the human-readable description of one active slot.
type SummaryLine struct {
	Key   schema.Key `json:"key"`
	Label string     `json:"label"`
	Value string     `json:"value"`
}

// String renders the line as "label: value".
func (l SummaryLine) String() string {
	return l.Label + ": " + l.Value
}

// Describe returns one line per active slot in catalog order.
func (s *State) Describe() []SummaryLine {
	var out []SummaryLine
	for _, f := range schema.All() {
		v, _ := s.Value(f.Key())
		if v.IsInertFor(f) {
			continue
		}
		out = append(out, SummaryLine{
			Key:   f.Key(),
			Label: f.SummaryLabel(),
			Value: describeValue(f, v),
		})
	}
	return out
}

func describeValue(f schema.Field, v Value) string {
	switch f.Kind() {
	case schema.SingleSelect:
		return v.Str()
	case schema.MultiSelect:
		return strings.Join(v.Set(), ValueSeparator)
	case schema.Boolean:
		b, _ := v.Bool()
		return schema.BooleanLabel[b]
	default:
		return f.FormatThreshold(v.Int())
	}
}
