// Package snapshot holds a named, exported filter state kept in storage.
package snapshot

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/audex/internal/domain"
)

const maxNameLen = 64

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Snapshot is an opaque filter state blob saved under a name.
type Snapshot struct {
	name          string
	blob          string
	activeFilters int
	savedAt       int64
}

// New validates and creates a Snapshot.
// Name: ^[a-zA-Z0-9_-]+$, 1-64 chars.
func New(name, blob string, activeFilters int) (Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		name:          name,
		blob:          blob,
		activeFilters: activeFilters,
		savedAt:       time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Snapshot without validation (storage hydration).
func Reconstruct(name, blob string, activeFilters int, savedAt int64) Snapshot {
	return Snapshot{name: name, blob: blob, activeFilters: activeFilters, savedAt: savedAt}
}

// ValidateName checks a snapshot name.
func ValidateName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("%w: must be 1-%d characters", domain.ErrInvalidName, maxNameLen)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q must match %s", domain.ErrInvalidName, name, nameRegex.String())
	}
	return nil
}

func (s Snapshot) Name() string       { return s.name }
func (s Snapshot) Blob() string       { return s.blob }
func (s Snapshot) ActiveFilters() int { return s.activeFilters }

// SavedAt is the save time in Unix milliseconds.
func (s Snapshot) SavedAt() int64 { return s.savedAt }
