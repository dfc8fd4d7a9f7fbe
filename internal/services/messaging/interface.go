package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns a welcome line for a new participant
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetDrinkConfirmationMessage returns the confirmation shown after a drink is recorded
	GetDrinkConfirmationMessage(ctx context.Context, input *GetDrinkConfirmationMessageInput) (*GetDrinkConfirmationMessageOutput, error)

	// GetMilestoneMessage returns the announcement for a reached milestone
	GetMilestoneMessage(ctx context.Context, input *GetMilestoneMessageInput) (*GetMilestoneMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
