// Package intent translates free text into filter mutations through an
// ordered table of substring rules. Matching classifies the text; rule
// values are fixed and never extracted from it.
package intent

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/audex/internal/domain/filter"
)

// Result describes one interpretation.
type Result struct {
	Understood       bool     `json:"understood"`
	MatchedRules     []string `json:"matchedRules"`
	AppliedMutations int      `json:"appliedMutations"`
}

// Matcher evaluates a rule table.
type Matcher struct {
	rules    []Rule
	triggers [][]string
}

// NewMatcher validates the table: every trigger must be non-blank and every
// mutation assignable. A blank trigger would fire on any text.
func NewMatcher(rules []Rule) (*Matcher, error) {
	scratch := filter.NewState()
	triggers := make([][]string, len(rules))
	for i, r := range rules {
		if len(r.Triggers) == 0 {
			return nil, fmt.Errorf("rule %d has no triggers", i)
		}
		for _, m := range r.Mutations {
			if err := scratch.Set(m.Key, m.Value); err != nil {
				return nil, fmt.Errorf("rule %q: %w", r.Label(), err)
			}
		}
		lowered := make([]string, len(r.Triggers))
		for j, t := range r.Triggers {
			if strings.TrimSpace(t) == "" {
				return nil, fmt.Errorf("rule %d: trigger %d is blank", i, j)
			}
			lowered[j] = strings.ToLower(t)
		}
		triggers[i] = lowered
	}
	return &Matcher{rules: rules, triggers: triggers}, nil
}

// Default returns a matcher over DefaultRules.
func Default() *Matcher {
	m, err := NewMatcher(DefaultRules())
	if err != nil {
		panic(err)
	}
	return m
}

// Rules returns the table in evaluation order.
func (m *Matcher) Rules() []Rule { return m.rules }

// Match returns the indexes of the rules whose triggers occur in text,
// compared case-insensitively.
func (m *Matcher) Match(text string) []int {
	lower := strings.ToLower(text)
	var fired []int
	for i, ts := range m.triggers {
		for _, t := range ts {
			if strings.Contains(lower, t) {
				fired = append(fired, i)
				break
			}
		}
	}
	return fired
}

// Interpret applies every firing rule to s in table order. When nothing
// fires s is left untouched and Understood is false.
func (m *Matcher) Interpret(text string, s *filter.State) Result {
	fired := m.Match(text)
	res := Result{Understood: len(fired) > 0, MatchedRules: []string{}}
	if !res.Understood {
		return res
	}

	next := s.Clone()
	for _, i := range fired {
		r := m.rules[i]
		for _, mut := range r.Mutations {
			// Assignability is checked in NewMatcher.
			_ = next.Set(mut.Key, mut.Value)
			res.AppliedMutations++
		}
		res.MatchedRules = append(res.MatchedRules, r.Label())
	}
	*s = next
	return res
}
