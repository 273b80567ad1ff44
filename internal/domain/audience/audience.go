// Package audience computes the subset of a population matching a filter
// state. It is pure: no caching, no side effects, never fails.
package audience

import (
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/user"
)

// Predicate reports whether a user satisfies one constraint.
type Predicate func(u *user.User) bool

// Predicates builds one predicate per non-inert slot of s, in catalog order.
// Inert slots contribute nothing.
func Predicates(s filter.State) []Predicate {
	var out []Predicate
	for _, f := range schema.All() {
		v, _ := s.Value(f.Key())
		if v.IsInertFor(f) {
			continue
		}
		out = append(out, predicateFor(f, v))
	}
	return out
}

func predicateFor(f schema.Field, v filter.Value) Predicate {
	k := f.Key()
	switch f.Kind() {
	case schema.SingleSelect:
		want := v.Str()
		return func(u *user.User) bool { return u.Text(k) == want }
	case schema.MultiSelect:
		want := make(map[string]struct{}, len(v.Set()))
		for _, m := range v.Set() {
			want[m] = struct{}{}
		}
		return func(u *user.User) bool { return intersects(u.Members(k), want) }
	case schema.Boolean:
		want, _ := v.Bool()
		return func(u *user.User) bool { return u.Flag(k) == want }
	default:
		limit := v.Int()
		if f.Direction() == schema.AtMost {
			return func(u *user.User) bool { return u.Number(k) <= limit }
		}
		return func(u *user.User) bool { return u.Number(k) >= limit }
	}
}

func intersects(have []string, want map[string]struct{}) bool {
	for _, h := range have {
		if _, ok := want[h]; ok {
			return true
		}
	}
	return false
}

// Compute returns the users matching every active constraint of s, in
// population order. An all-inert state returns every user.
func Compute(s filter.State, users []user.User) []user.User {
	preds := Predicates(s)
	out := make([]user.User, 0, len(users))
	for i := range users {
		if matchAll(preds, &users[i]) {
			out = append(out, users[i])
		}
	}
	return out
}

// Count returns len(Compute(s, users)) without building the subset.
func Count(s filter.State, users []user.User) int {
	preds := Predicates(s)
	n := 0
	for i := range users {
		if matchAll(preds, &users[i]) {
			n++
		}
	}
	return n
}

// Match reports whether u satisfies every active constraint of s.
func Match(s filter.State, u user.User) bool {
	return matchAll(Predicates(s), &u)
}

func matchAll(preds []Predicate, u *user.User) bool {
	for _, p := range preds {
		if !p(u) {
			return false
		}
	}
	return true
}

// IDs returns the identifiers of users in order.
func IDs(users []user.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}
