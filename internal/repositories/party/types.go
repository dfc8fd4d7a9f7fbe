package party

import (
	"errors"

	"github.com/KirkDiggler/partybac/internal/models"
)

// ErrSnapshotNotFound is returned when no snapshot is stored for a party
var ErrSnapshotNotFound = errors.New("party snapshot not found")

// LoadSnapshotInput contains parameters for loading a snapshot
type LoadSnapshotInput struct {
	PartyID string
}

// LoadSnapshotOutput contains the loaded snapshot
type LoadSnapshotOutput struct {
	Party *models.Party
}

// SaveSnapshotInput contains the snapshot to store
type SaveSnapshotInput struct {
	Party *models.Party
}

// DeleteSnapshotInput contains parameters for deleting a snapshot
type DeleteSnapshotInput struct {
	PartyID string
}
