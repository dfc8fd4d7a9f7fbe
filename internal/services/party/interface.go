package party

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/partybac/internal/services/party Service

// Service defines the interface for party operations
type Service interface {
	// Restore loads the stored snapshot, starting empty when there is none
	Restore(ctx context.Context, input *RestoreInput) (*RestoreOutput, error)

	// Join adds a participant to the party
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// AddDrink logs a drink for a participant
	AddDrink(ctx context.Context, input *AddDrinkInput) (*AddDrinkOutput, error)

	// AddScannedDrink looks a product code up and logs it as a custom drink
	AddScannedDrink(ctx context.Context, input *AddScannedDrinkInput) (*AddScannedDrinkOutput, error)

	// LookupProduct resolves a product code without logging anything
	LookupProduct(ctx context.Context, input *LookupProductInput) (*LookupProductOutput, error)

	// RemoveDrink deletes a drink by its position in the participant's list
	RemoveDrink(ctx context.Context, input *RemoveDrinkInput) (*RemoveDrinkOutput, error)

	// Leave removes a participant and all of their drinks
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// GetParticipant returns a participant with their drinks and current concentration
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*GetParticipantOutput, error)

	// EstimateBAC returns a participant's concentration at a given time
	EstimateBAC(ctx context.Context, input *EstimateBACInput) (*EstimateBACOutput, error)

	// GetLeaderboard returns the ranking and party statistics
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetActivityLog returns recent activity, newest first
	GetActivityLog(ctx context.Context, input *GetActivityLogInput) (*GetActivityLogOutput, error)

	// Reset clears the party after checking the reset credential
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)
}
