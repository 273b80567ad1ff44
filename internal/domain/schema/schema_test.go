package schema

import (
	"strings"
	"testing"
)

func TestCatalog_KeysUnique(t *testing.T) {
	seen := make(map[Key]bool)
	for _, f := range All() {
		if seen[f.Key()] {
			t.Fatalf("duplicate key %q", f.Key())
		}
		seen[f.Key()] = true
	}
	if len(seen) != 17 {
		t.Errorf("expected 17 fields, got %d", len(seen))
	}
}

func TestFieldsOf(t *testing.T) {
	tests := []struct {
		category Category
		want     int
	}{
		{Behavioral, 6},
		{Transactional, 4},
		{Profile, 4},
		{CrossSell, 3},
		{Category("unknown"), 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := FieldsOf(tt.category)
			if len(got) != tt.want {
				t.Fatalf("FieldsOf(%q) = %d fields, want %d", tt.category, len(got), tt.want)
			}
			for _, f := range got {
				if f.Category() != tt.category {
					t.Errorf("field %q has category %q", f.Key(), f.Category())
				}
			}
		})
	}
}

func TestGroup_SearchKeywords(t *testing.T) {
	fields := Group(SearchKeywordsGroup)
	if len(fields) != 3 {
		t.Fatalf("expected 3 keyword sub-fields, got %d", len(fields))
	}
	for _, f := range fields {
		if !strings.HasPrefix(string(f.Key()), SearchKeywordsGroup+".") {
			t.Errorf("key %q lacks group prefix", f.Key())
		}
		if f.Kind() != MultiSelect {
			t.Errorf("key %q kind = %q", f.Key(), f.Kind())
		}
	}
}

func TestKeySplit(t *testing.T) {
	g, n := KeywordThemes.Split()
	if g != "searchKeywords" || n != "themes" {
		t.Errorf("Split() = %q, %q", g, n)
	}
	g, n = Recency.Split()
	if g != "" || n != "recency" {
		t.Errorf("Split() = %q, %q", g, n)
	}
}

func TestParseKey(t *testing.T) {
	if _, ok := ParseKey("membershipTier"); !ok {
		t.Error("membershipTier should parse")
	}
	if _, ok := ParseKey("searchKeywords"); ok {
		t.Error("bare group name is not a filter slot")
	}
	if _, ok := ParseKey("searchKeywords.colors"); ok {
		t.Error("unknown sub-field should not parse")
	}
}

func TestDomainOf(t *testing.T) {
	d := DomainOf(MembershipTier)
	if len(d) != 5 || d[3] != "VIP" {
		t.Errorf("DomainOf(membershipTier) = %v", d)
	}
	d[0] = "mutated"
	if DomainOf(MembershipTier)[0] != "일반" {
		t.Error("DomainOf must return a copy")
	}
	if DomainOf(Recency) != nil {
		t.Error("numeric-range fields have no literal domain")
	}
	if DomainOf(Key("nope")) != nil {
		t.Error("unknown key should have no domain")
	}
}

func TestNumericDirections(t *testing.T) {
	tests := []struct {
		key   Key
		dir   Direction
		inert int
		text  string
	}{
		{Recency, AtMost, 365, "30일 이내"},
		{PaymentFrequency, AtLeast, 0, "30회 이상"},
		{AOV, AtLeast, 0, "30만원 이상"},
	}
	for _, tt := range tests {
		f, ok := Lookup(tt.key)
		if !ok {
			t.Fatalf("Lookup(%q) failed", tt.key)
		}
		if f.Direction() != tt.dir {
			t.Errorf("%s direction = %q, want %q", tt.key, f.Direction(), tt.dir)
		}
		if f.InertNumber() != tt.inert {
			t.Errorf("%s inert = %d, want %d", tt.key, f.InertNumber(), tt.inert)
		}
		if got := f.FormatThreshold(30); got != tt.text {
			t.Errorf("%s FormatThreshold(30) = %q, want %q", tt.key, got, tt.text)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory("crossSell"); !ok || c != CrossSell {
		t.Errorf("ParseCategory(crossSell) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("Profile"); ok {
		t.Error("category names are case-sensitive")
	}
}
