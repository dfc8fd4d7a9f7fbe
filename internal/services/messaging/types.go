package messaging

import (
	"github.com/KirkDiggler/partybac/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// GetJoinMessageInput contains parameters for getting a join message
type GetJoinMessageInput struct {
	// ParticipantName is the name of the participant joining
	ParticipantName string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetJoinMessageOutput contains the result of getting a join message
type GetJoinMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetDrinkConfirmationMessageInput is the input for GetDrinkConfirmationMessage
type GetDrinkConfirmationMessageInput struct {
	ParticipantName string

	// DrinkLabel is the display label of the recorded drink
	DrinkLabel string

	// BAC is the concentration right after the drink, in per mille
	BAC float64

	IsCustom bool
}

// GetDrinkConfirmationMessageOutput is the output for GetDrinkConfirmationMessage
type GetDrinkConfirmationMessageOutput struct {
	Title   string
	Message string
}

// GetMilestoneMessageInput is the input for GetMilestoneMessage
type GetMilestoneMessageInput struct {
	Milestone models.Milestone
}

// GetMilestoneMessageOutput is the output for GetMilestoneMessage
type GetMilestoneMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorKind is the category of the error, e.g. "validation" or "not_found"
	ErrorKind string

	// Detail is appended to the message when set
	Detail string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Seed makes message selection reproducible. Zero seeds from the current time.
	Seed int64
}
