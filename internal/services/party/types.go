package party

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/partybac/internal/activity"
	"github.com/KirkDiggler/partybac/internal/common/clock"
	"github.com/KirkDiggler/partybac/internal/common/password"
	"github.com/KirkDiggler/partybac/internal/common/uuid"
	"github.com/KirkDiggler/partybac/internal/lookup"
	"github.com/KirkDiggler/partybac/internal/models"
	partyRepo "github.com/KirkDiggler/partybac/internal/repositories/party"
	"github.com/KirkDiggler/partybac/internal/services/messaging"
)

const (
	// DefaultScannedVolumeML is used when a scanned product has no quantity
	DefaultScannedVolumeML = 500.0

	// DefaultScannedAlcoholFraction is used when a scanned product has no strength
	DefaultScannedAlcoholFraction = 0.05
)

// Config holds configuration for the party service
type Config struct {
	// PartyID is the key of the snapshot this service owns
	PartyID string

	// Repository dependencies
	Repository partyRepo.Repository

	// Service dependencies
	Lookup        lookup.Lookup
	Messaging     messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// ResetVerifier checks the reset credential. Nil rejects every reset.
	ResetVerifier password.Verifier

	// ActivityLog receives join, drink and milestone events. Nil creates a
	// log with the default capacity.
	ActivityLog *activity.Log

	Logger *slog.Logger
}

// RestoreInput contains parameters for restoring the party
type RestoreInput struct{}

// RestoreOutput contains the result of restoring the party
type RestoreOutput struct {
	// Found is false when no snapshot was stored and the party starts empty
	Found bool

	ParticipantCount int
	TotalDrinks      int
}

// JoinInput contains parameters for joining the party
type JoinInput struct {
	// Name identifies the participant (case-sensitive, trimmed)
	Name string

	// WeightKg is the body weight in kilograms
	WeightKg float64

	Gender     models.Gender
	Status     models.Status
	SocialLink string
}

// JoinOutput contains the result of joining the party
type JoinOutput struct {
	Participant *models.Participant

	// Message is the welcome line
	Message string
}

// AddDrinkInput contains parameters for logging a drink
type AddDrinkInput struct {
	Name  string
	Drink models.DrinkSpec
}

// AddDrinkOutput contains the result of logging a drink
type AddDrinkOutput struct {
	Drink *models.DrinkEvent

	// BAC is the participant's concentration right after the drink
	BAC float64

	// Milestones reached by this drink, party milestone first
	Milestones []models.Milestone

	Title   string
	Message string
}

// AddScannedDrinkInput contains parameters for logging a scanned product
type AddScannedDrinkInput struct {
	Name string
	Code string

	Category    string
	Subcategory string

	// VolumeML and AlcoholFraction override the product data when set
	VolumeML        *float64
	AlcoholFraction *float64
}

// AddScannedDrinkOutput contains the result of logging a scanned product
type AddScannedDrinkOutput struct {
	AddDrinkOutput

	Product *models.Product
}

// LookupProductInput contains the product code to resolve
type LookupProductInput struct {
	Code string
}

// LookupProductOutput contains the resolved product
type LookupProductOutput struct {
	Found   bool
	Product *models.Product
}

// RemoveDrinkInput contains parameters for removing a drink
type RemoveDrinkInput struct {
	Name string

	// Index is the zero-based position in the participant's drink list.
	// Later drinks shift down after a removal.
	Index int
}

// RemoveDrinkOutput contains the result of removing a drink
type RemoveDrinkOutput struct {
	Removed *models.DrinkEvent

	// BAC is the participant's concentration after the removal, or 0 when the
	// stored weight does not allow an estimate
	BAC float64
}

// LeaveInput contains parameters for leaving the party
type LeaveInput struct {
	Name string
}

// LeaveOutput contains the result of leaving the party
type LeaveOutput struct {
	// Participant is the removed participant
	Participant *models.Participant
}

// GetParticipantInput contains parameters for getting a participant
type GetParticipantInput struct {
	Name string

	// At is the time to estimate at. Zero means now.
	At time.Time
}

// GetParticipantOutput contains a copy of the participant
type GetParticipantOutput struct {
	Participant *models.Participant
	BAC         float64
}

// EstimateBACInput contains parameters for estimating a concentration
type EstimateBACInput struct {
	Name string

	// At is the time to estimate at. Zero means now.
	At time.Time
}

// EstimateBACOutput contains the estimated concentration
type EstimateBACOutput struct {
	BAC float64
	At  time.Time
}

// GetLeaderboardInput contains parameters for building the leaderboard
type GetLeaderboardInput struct {
	// At is the time to rank at. Zero means now.
	At time.Time
}

// GetLeaderboardOutput contains the leaderboard
type GetLeaderboardOutput struct {
	Leaderboard *models.Leaderboard
}

// GetActivityLogInput contains parameters for reading the activity log
type GetActivityLogInput struct {
	// Limit caps the number of entries returned. Zero returns all.
	Limit int
}

// GetActivityLogOutput contains activity entries, newest first
type GetActivityLogOutput struct {
	Entries []*models.ActivityEntry
}

// ResetInput contains parameters for resetting the party
type ResetInput struct {
	Credential string
}

// ResetOutput contains the result of resetting the party
type ResetOutput struct {
	RemovedParticipants int
	RemovedDrinks       int
}
