// Package user defines the population row the audience engine filters over.
package user

import "github.com/kailas-cloud/audex/internal/domain/schema"

// Keywords holds the composite search keyword attributes.
type Keywords struct {
	Regions            []string `json:"regions"`
	AccommodationTypes []string `json:"accommodationTypes"`
	Themes             []string `json:"themes"`
}

// User is one immutable population row. Attributes mirror the schema by key.
type User struct {
	ID string `json:"id"`

	SearchKeywords  Keywords `json:"searchKeywords"`
	ViewedProducts  string   `json:"viewedProducts"`
	HasCartWishlist bool     `json:"hasCartWishlist"`
	Recency         int      `json:"recency"`

	PaymentFrequency int      `json:"paymentFrequency"`
	AOV              int      `json:"aov"`
	PreferredDays    []string `json:"preferredDays"`
	LeadTime         string   `json:"leadTime"`

	ActiveRegion   []string `json:"activeRegion"`
	MembershipTier string   `json:"membershipTier"`
	DeviceType     string   `json:"deviceType"`
	LifeStage      []string `json:"lifeStage"`

	HasSpaceRental         bool     `json:"hasSpaceRental"`
	HasInternationalIntent bool     `json:"hasInternationalIntent"`
	Transportation         []string `json:"transportation"`
}

// Text returns the single-select attribute for key.
func (u *User) Text(k schema.Key) string {
	switch k {
	case schema.ViewedProducts:
		return u.ViewedProducts
	case schema.LeadTime:
		return u.LeadTime
	case schema.MembershipTier:
		return u.MembershipTier
	case schema.DeviceType:
		return u.DeviceType
	}
	return ""
}

// Members returns the multi-select attribute for key.
func (u *User) Members(k schema.Key) []string {
	switch k {
	case schema.KeywordRegions:
		return u.SearchKeywords.Regions
	case schema.KeywordAccommodationTypes:
		return u.SearchKeywords.AccommodationTypes
	case schema.KeywordThemes:
		return u.SearchKeywords.Themes
	case schema.PreferredDays:
		return u.PreferredDays
	case schema.ActiveRegion:
		return u.ActiveRegion
	case schema.LifeStage:
		return u.LifeStage
	case schema.Transportation:
		return u.Transportation
	}
	return nil
}

// Flag returns the boolean attribute for key.
func (u *User) Flag(k schema.Key) bool {
	switch k {
	case schema.HasCartWishlist:
		return u.HasCartWishlist
	case schema.HasSpaceRental:
		return u.HasSpaceRental
	case schema.HasInternationalIntent:
		return u.HasInternationalIntent
	}
	return false
}

// Number returns the numeric attribute for key.
func (u *User) Number(k schema.Key) int {
	switch k {
	case schema.Recency:
		return u.Recency
	case schema.PaymentFrequency:
		return u.PaymentFrequency
	case schema.AOV:
		return u.AOV
	}
	return 0
}
