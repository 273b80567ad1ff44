package snapshot

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/audex/internal/domain"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "weekend", false},
		{"dash and underscore", "jeju_vip-2026", false},
		{"max length", strings.Repeat("a", 64), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "jeju vip", true},
		{"slash", "a/b", true},
		{"glob", "state*", true},
		{"hangul", "제주", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidName) {
					t.Errorf("expected ErrInvalidName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New("weekend", `{"aov":20}`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "weekend" || s.Blob() != `{"aov":20}` || s.ActiveFilters() != 1 {
		t.Errorf("unexpected snapshot: %+v", s)
	}
	if s.SavedAt() <= 0 {
		t.Errorf("savedAt = %d", s.SavedAt())
	}

	if _, err := New("bad name", "{}", 0); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestReconstruct(t *testing.T) {
	s := Reconstruct("x", "{}", 3, 1700000000000)
	if s.Name() != "x" || s.ActiveFilters() != 3 || s.SavedAt() != 1700000000000 {
		t.Errorf("unexpected snapshot: %+v", s)
	}
}
