package savedstate

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/audex/internal/domain/snapshot"
)

// row is the JSON value stored per saved state.
type row struct {
	Name          string `json:"name"`
	Blob          string `json:"blob"`
	ActiveFilters int    `json:"active_filters"`
	SavedAt       int64  `json:"saved_at"`
}

func snapshotToJSON(s snapshot.Snapshot) ([]byte, error) {
	data, err := json.Marshal(row{
		Name:          s.Name(),
		Blob:          s.Blob(),
		ActiveFilters: s.ActiveFilters(),
		SavedAt:       s.SavedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func snapshotFromJSON(data []byte) (snapshot.Snapshot, error) {
	var r row
	if err := json.Unmarshal(data, &r); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot.Reconstruct(r.Name, r.Blob, r.ActiveFilters, r.SavedAt), nil
}
