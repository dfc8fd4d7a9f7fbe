package models

import (
	"time"
)

// Gender selects the body-water distribution constant used by the BAC engine
type Gender string

const (
	// GenderMale uses the male distribution ratio
	GenderMale Gender = "male"

	// GenderFemale uses the female distribution ratio
	GenderFemale Gender = "female"
)

// IsValid reports whether g is one of the known genders
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Status is a descriptive relationship status shown next to a participant
type Status string

const (
	// StatusSingle marks a participant as single
	StatusSingle Status = "single"

	// StatusTaken marks a participant as in a relationship
	StatusTaken Status = "taken"

	// StatusComplicated marks a participant whose status is complicated
	StatusComplicated Status = "complicated"
)

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusSingle, StatusTaken, StatusComplicated:
		return true
	}
	return false
}

// Participant is a guest at the party
type Participant struct {
	// Name identifies the participant within the party (case-sensitive)
	Name string `json:"name"`

	// WeightKg is the body weight in kilograms
	WeightKg float64 `json:"weight_kg"`

	// Gender selects the distribution constant
	Gender Gender `json:"gender"`

	// Status is purely descriptive
	Status Status `json:"status"`

	// SocialLink is an optional profile link
	SocialLink string `json:"social_link,omitempty"`

	// JoinedAt is when the participant joined
	JoinedAt time.Time `json:"joined_at"`

	// Drinks holds drink events in the order they were entered
	Drinks []*DrinkEvent `json:"drinks"`
}

// DrinkCount returns the number of drinks the participant has logged
func (p *Participant) DrinkCount() int {
	return len(p.Drinks)
}

// Clone returns a deep copy of the participant
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	c.Drinks = make([]*DrinkEvent, len(p.Drinks))
	for i, d := range p.Drinks {
		dc := *d
		c.Drinks[i] = &dc
	}
	return &c
}
