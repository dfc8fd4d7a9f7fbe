package models

import (
	"time"
)

// LeaderboardEntry is one ranked participant
type LeaderboardEntry struct {
	// Position is the 1-based rank
	Position int `json:"position"`

	// Symbol is the medal for the top three, empty otherwise
	Symbol string `json:"symbol,omitempty"`

	// Name of the participant
	Name string `json:"name"`

	// BAC is the estimated concentration in permille
	BAC float64 `json:"bac"`

	// DrinkCount is the number of drinks logged
	DrinkCount int `json:"drink_count"`

	Gender     Gender `json:"gender"`
	Status     Status `json:"status"`
	SocialLink string `json:"social_link,omitempty"`
}

// Leaderboard is the current standings of the party
type Leaderboard struct {
	// Entries sorted by BAC, highest first
	Entries []*LeaderboardEntry `json:"entries"`

	// AverageBAC is the mean concentration across participants
	AverageBAC float64 `json:"average_bac"`

	// TotalDrinks across all participants
	TotalDrinks int `json:"total_drinks"`

	// ParticipantCount is the number of participants
	ParticipantCount int `json:"participant_count"`

	// GeneratedAt is the instant the concentrations were computed for
	GeneratedAt time.Time `json:"generated_at"`
}
