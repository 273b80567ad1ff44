// Package codec encodes filter state as portable JSON text for save, load
// and export.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/audex/internal/domain"
	"github.com/kailas-cloud/audex/internal/domain/filter"
)

// DecodeError reports text that is not a structurally valid filter state.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", domain.ErrDecode.Error(), e.Err)
}

// Unwrap exposes both the sentinel and the underlying parse error.
func (e *DecodeError) Unwrap() []error { return []error{domain.ErrDecode, e.Err} }

// Export encodes s as indented JSON.
func Export(s filter.State) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode filter state: %w", err)
	}
	return string(data), nil
}

// Import decodes text into a complete state. Slots missing from the text are
// inert, unknown keys are ignored, and values are not checked against the
// schema domains.
func Import(text string) (filter.State, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 {
		return filter.State{}, &DecodeError{Err: errors.New("empty input")}
	}
	if trimmed[0] != '{' {
		return filter.State{}, &DecodeError{Err: errors.New("filter state must be a JSON object")}
	}

	s := filter.NewState()
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return filter.State{}, &DecodeError{Err: err}
	}
	s.Normalize()
	return s, nil
}
