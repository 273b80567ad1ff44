package population

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/user"
)

func TestGenerate_DeterministicForSeed(t *testing.T) {
	a := Generate(42, 200)
	b := Generate(42, 200)
	if !reflect.DeepEqual(a.Users(), b.Users()) {
		t.Fatal("same seed produced different populations")
	}
	c := Generate(43, 200)
	if reflect.DeepEqual(a.Users(), c.Users()) {
		t.Fatal("different seeds produced identical populations")
	}
}

func TestGenerate_DefaultSize(t *testing.T) {
	p := Generate(1, 0)
	if p.Len() != DefaultSize {
		t.Errorf("Len() = %d, want %d", p.Len(), DefaultSize)
	}
}

func TestGenerate_ValuesWithinDomain(t *testing.T) {
	p := Generate(7, 2000)
	for _, u := range p.Users() {
		for _, f := range schema.All() {
			switch f.Kind() {
			case schema.SingleSelect:
				if v := u.Text(f.Key()); !f.Contains(v) {
					t.Fatalf("%s: %q not in domain of %s", u.ID, v, f.Key())
				}
			case schema.MultiSelect:
				checkSubset(t, u, f)
			case schema.NumericRange:
				n := u.Number(f.Key())
				if n < f.Min() || n > f.Max() {
					t.Fatalf("%s: %s = %d outside [%d,%d]", u.ID, f.Key(), n, f.Min(), f.Max())
				}
			}
		}
	}
}

func checkSubset(t *testing.T, u user.User, f schema.Field) {
	t.Helper()
	members := u.Members(f.Key())
	minN, maxN, ok := bounds(f.Key())
	if !ok {
		t.Fatalf("no bounds for %s", f.Key())
	}
	if len(members) < minN || len(members) > maxN {
		t.Fatalf("%s: %s has %d members, want [%d,%d]", u.ID, f.Key(), len(members), minN, maxN)
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m] {
			t.Fatalf("%s: duplicate %q in %s", u.ID, m, f.Key())
		}
		seen[m] = true
		if !f.Contains(m) {
			t.Fatalf("%s: %q not in domain of %s", u.ID, m, f.Key())
		}
	}
}

func TestGenerate_StableIDs(t *testing.T) {
	p := Generate(3, 10)
	for i, u := range p.Users() {
		got, ok := p.Get(u.ID)
		if !ok || got.ID != u.ID {
			t.Fatalf("Get(%q) failed", u.ID)
		}
		if want := "user_" + strconv.Itoa(i); u.ID != want {
			t.Errorf("ID = %q, want %q", u.ID, want)
		}
	}
	if _, ok := p.Get("user_999"); ok {
		t.Error("Get on unknown id should fail")
	}
}

func TestGenerate_WeightedTierDistribution(t *testing.T) {
	p := Generate(11, 20000)
	counts := make(map[string]int)
	for _, u := range p.Users() {
		counts[u.MembershipTier]++
	}
	share := func(tier string) float64 { return float64(counts[tier]) / float64(p.Len()) }
	if s := share("일반"); s < 0.45 || s > 0.55 {
		t.Errorf("일반 share = %.3f, want ~0.50", s)
	}
	if s := share("블랙"); s < 0.01 || s > 0.05 {
		t.Errorf("블랙 share = %.3f, want ~0.03", s)
	}
}

func TestFromUsers_CopiesInput(t *testing.T) {
	in := []user.User{{ID: "a"}, {ID: "b"}}
	p := FromUsers(in)
	in[0].ID = "changed"
	if p.Users()[0].ID != "a" {
		t.Error("FromUsers must copy its input")
	}
	if _, ok := p.Get("b"); !ok {
		t.Error("Get(b) failed")
	}
}
