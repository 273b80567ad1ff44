package chi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/snapshot"
	"github.com/kailas-cloud/audex/internal/domain/user"
	audienceuc "github.com/kailas-cloud/audex/internal/usecase/audience"
	healthuc "github.com/kailas-cloud/audex/internal/usecase/health"
)

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

type fieldResponse struct {
	Key       string   `json:"key"`
	Group     string   `json:"group,omitempty"`
	Category  string   `json:"category"`
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Options   []string `json:"options,omitempty"`
	Min       *int     `json:"min,omitempty"`
	Max       *int     `json:"max,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Direction string   `json:"direction,omitempty"`
}

type categoryResponse struct {
	Category string          `json:"category"`
	Fields   []fieldResponse `json:"fields"`
}

type valueRequest struct {
	Value json.RawMessage `json:"value"`
}

type interpretRequest struct {
	Text string `json:"text"`
}

type filtersResponse struct {
	Filters filter.State         `json:"filters"`
	Summary []filter.SummaryLine `json:"summary"`
	Stats   audienceuc.Stats     `json:"stats"`
}

type audienceResponse struct {
	audienceuc.Stats
	Users     []user.User `json:"users"`
	Truncated bool        `json:"truncated"`
}

type suggestionsResponse struct {
	Queries []string `json:"queries"`
}

type snapshotResponse struct {
	Name          string    `json:"name"`
	ActiveFilters int       `json:"activeFilters"`
	SavedAt       time.Time `json:"savedAt"`
}

func fieldToResponse(f schema.Field) fieldResponse {
	resp := fieldResponse{
		Key:      string(f.Key()),
		Group:    f.Group(),
		Category: string(f.Category()),
		Label:    f.Label(),
		Kind:     string(f.Kind()),
		Options:  f.Options(),
	}
	if f.Kind() == schema.NumericRange {
		minV, maxV := f.Min(), f.Max()
		resp.Min, resp.Max = &minV, &maxV
		resp.Unit = f.Unit()
		resp.Direction = string(f.Direction())
	}
	return resp
}

func categoryToResponse(c schema.Category) categoryResponse {
	fields := schema.FieldsOf(c)
	out := categoryResponse{Category: string(c), Fields: make([]fieldResponse, len(fields))}
	for i, f := range fields {
		out.Fields[i] = fieldToResponse(f)
	}
	return out
}

func snapshotToResponse(s snapshot.Snapshot) snapshotResponse {
	return snapshotResponse{
		Name:          s.Name(),
		ActiveFilters: s.ActiveFilters(),
		SavedAt:       time.UnixMilli(s.SavedAt()).UTC(),
	}
}

// valueFromJSON decodes raw into a Value of f's kind: a string for
// single-select, a string array for multi-select, true/false/null for
// boolean and an integer for numeric-range.
func valueFromJSON(f schema.Field, raw json.RawMessage) (filter.Value, error) {
	mismatch := domain.NewKindMismatch(string(f.Key()))
	raw = bytes.TrimSpace(raw)

	switch f.Kind() {
	case schema.SingleSelect:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return filter.Value{}, mismatch
		}
		return filter.Text(s), nil
	case schema.MultiSelect:
		var vs []string
		if err := json.Unmarshal(raw, &vs); err != nil {
			return filter.Value{}, mismatch
		}
		return filter.Members(vs...), nil
	case schema.Boolean:
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return filter.Unset(), nil
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return filter.Value{}, mismatch
		}
		return filter.Flag(b), nil
	default:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return filter.Value{}, mismatch
		}
		return filter.Number(n), nil
	}
}
