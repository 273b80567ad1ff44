// Package population generates the fixed, read-only set of users the
// audience engine scans.
package population

import (
	"fmt"
	"math/rand/v2"

	"github.com/kailas-cloud/audex/internal/domain/schema"
	"github.com/kailas-cloud/audex/internal/domain/user"
)

// DefaultSize is the population size used when none is configured.
const DefaultSize = 1000

// Draw weights for the tiered fields.
var (
	tierWeights   = []float64{0.5, 0.25, 0.15, 0.07, 0.03}
	devices       = []string{"iOS", "Android", "Web (Desktop)", "Web (Mobile)"}
	deviceWeights = []float64{0.35, 0.4, 0.15, 0.1}
)

// subsetBounds is the [min, max] element count of each set-valued field.
var subsetBounds = map[schema.Key][2]int{
	schema.KeywordRegions:            {0, 3},
	schema.KeywordAccommodationTypes: {0, 2},
	schema.KeywordThemes:             {0, 3},
	schema.PreferredDays:             {1, 4},
	schema.ActiveRegion:              {1, 2},
	schema.LifeStage:                 {1, 2},
	schema.Transportation:            {0, 2},
}

// bounds returns the element count range of a set-valued field.
func bounds(k schema.Key) (minN, maxN int, ok bool) {
	b, ok := subsetBounds[k]
	return b[0], b[1], ok
}

// Population is an ordered, immutable sequence of users.
type Population struct {
	users []user.User
	index map[string]int
	seed  uint64
}

// Generate builds a population of size users. The same seed always yields
// the same population. size <= 0 falls back to DefaultSize.
func Generate(seed uint64, size int) Population {
	if size <= 0 {
		size = DefaultSize
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // synthetic data

	users := make([]user.User, size)
	index := make(map[string]int, size)
	for i := range users {
		users[i] = newUser(r, i)
		index[users[i].ID] = i
	}
	return Population{users: users, index: index, seed: seed}
}

// FromUsers wraps an existing set of users, keeping their order.
func FromUsers(users []user.User) Population {
	index := make(map[string]int, len(users))
	cp := make([]user.User, len(users))
	copy(cp, users)
	for i, u := range cp {
		index[u.ID] = i
	}
	return Population{users: cp, index: index}
}

// Users returns the population in its original order. Callers must not
// mutate the returned records.
func (p Population) Users() []user.User { return p.users }

// Len returns the population size.
func (p Population) Len() int { return len(p.users) }

// Seed returns the seed the population was generated from.
func (p Population) Seed() uint64 { return p.seed }

// Get returns the user with the given id.
func (p Population) Get(id string) (user.User, bool) {
	i, ok := p.index[id]
	if !ok {
		return user.User{}, false
	}
	return p.users[i], true
}

func newUser(r *rand.Rand, i int) user.User {
	return user.User{
		ID: fmt.Sprintf("user_%d", i),
		SearchKeywords: user.Keywords{
			Regions:            subset(r, schema.Regions, schema.KeywordRegions),
			AccommodationTypes: subset(r, schema.AccommodationTypes, schema.KeywordAccommodationTypes),
			Themes:             subset(r, schema.Themes, schema.KeywordThemes),
		},
		ViewedProducts:  pick(r, schema.Products),
		HasCartWishlist: r.Float64() > 0.7,
		Recency:         r.IntN(365),

		PaymentFrequency: r.IntN(25),
		AOV:              r.IntN(150) + 10,
		PreferredDays:    subset(r, schema.Weekdays, schema.PreferredDays),
		LeadTime:         pick(r, schema.LeadTimes),

		ActiveRegion:   subset(r, schema.Provinces, schema.ActiveRegion),
		MembershipTier: weighted(r, schema.Tiers, tierWeights),
		DeviceType:     weighted(r, devices, deviceWeights),
		LifeStage:      subset(r, schema.LifeStages, schema.LifeStage),

		HasSpaceRental:         r.Float64() > 0.85,
		HasInternationalIntent: r.Float64() > 0.7,
		Transportation:         subset(r, schema.Transports, schema.Transportation),
	}
}

func pick(r *rand.Rand, items []string) string {
	return items[r.IntN(len(items))]
}

// subset draws a duplicate-free random subset sized within the key's bounds.
func subset(r *rand.Rand, items []string, k schema.Key) []string {
	b := subsetBounds[k]
	n := b[0] + r.IntN(b[1]-b[0]+1)
	shuffled := make([]string, len(items))
	copy(shuffled, items)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n:n]
}

func weighted(r *rand.Rand, items []string, weights []float64) string {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	for i, w := range weights {
		if x < w {
			return items[i]
		}
		x -= w
	}
	return items[len(items)-1]
}
