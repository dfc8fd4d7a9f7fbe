package party

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/partybac/internal/repositories/party Repository

import (
	"context"
)

// Repository persists the full party snapshot
type Repository interface {
	// LoadSnapshot retrieves the stored snapshot for a party
	LoadSnapshot(ctx context.Context, input *LoadSnapshotInput) (*LoadSnapshotOutput, error)

	// SaveSnapshot replaces the stored snapshot for a party
	SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error

	// DeleteSnapshot removes the stored snapshot for a party
	DeleteSnapshot(ctx context.Context, input *DeleteSnapshotInput) error

	// ListParties returns the IDs of all parties with a stored snapshot
	ListParties(ctx context.Context) ([]string, error)
}
