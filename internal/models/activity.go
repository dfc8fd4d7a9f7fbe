package models

import (
	"time"
)

// ActivityKind is the type of an activity entry
type ActivityKind string

const (
	// ActivityJoin is recorded when a participant joins
	ActivityJoin ActivityKind = "join"

	// ActivityDrink is recorded when a drink is logged
	ActivityDrink ActivityKind = "drink"

	// ActivityMilestone is recorded when a milestone is reached
	ActivityMilestone ActivityKind = "milestone"
)

// JoinPayload is the detail of a join entry
type JoinPayload struct {
	Participant string `json:"participant"`
}

// DrinkPayload is the detail of a drink entry
type DrinkPayload struct {
	Participant string `json:"participant"`
	Drink       string `json:"drink"`

	// BAC is the concentration computed when the drink was logged
	BAC float64 `json:"bac"`
}

// MilestonePayload is the detail of a milestone entry
type MilestonePayload struct {
	Message string `json:"message"`
}

// ActivityEntry is a single item in the activity feed. Exactly one payload
// is set, matching Kind.
type ActivityEntry struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Timestamp time.Time    `json:"timestamp"`

	Join      *JoinPayload      `json:"join,omitempty"`
	Drink     *DrinkPayload     `json:"drink,omitempty"`
	Milestone *MilestonePayload `json:"milestone,omitempty"`
}
