package party

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/partybac/internal/models"
	_ "modernc.org/sqlite"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS party_snapshots (
	party_id   TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteConfig holds configuration for the SQLite party repository
type SQLiteConfig struct {
	// Path is the database file, or ":memory:"
	Path string
}

// sqliteRepository implements the Repository interface using SQLite
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite opens the database and creates the snapshot table
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createSnapshotsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return &sqliteRepository{db: db}, nil
}

// Close closes the underlying database
func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

// LoadSnapshot retrieves a party snapshot from SQLite
func (r *sqliteRepository) LoadSnapshot(ctx context.Context, input *LoadSnapshotInput) (*LoadSnapshotOutput, error) {
	if input == nil || input.PartyID == "" {
		return nil, errors.New("input and party ID cannot be empty")
	}

	var body string
	err := r.db.QueryRowContext(ctx,
		"SELECT body FROM party_snapshots WHERE party_id = ?", input.PartyID,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get party snapshot: %w", err)
	}

	var party models.Party
	if err := json.Unmarshal([]byte(body), &party); err != nil {
		return nil, fmt.Errorf("failed to unmarshal party snapshot: %w", err)
	}

	return &LoadSnapshotOutput{Party: &party}, nil
}

// SaveSnapshot persists a party snapshot to SQLite
func (r *sqliteRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	if input == nil || input.Party == nil {
		return errors.New("input and party cannot be nil")
	}

	if input.Party.ID == "" {
		return errors.New("party ID cannot be empty")
	}

	body, err := json.Marshal(input.Party)
	if err != nil {
		return fmt.Errorf("failed to marshal party snapshot: %w", err)
	}

	updatedAt := input.Party.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO party_snapshots (party_id, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(party_id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		input.Party.ID, string(body), updatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save party snapshot: %w", err)
	}

	return nil
}

// DeleteSnapshot removes a party snapshot from SQLite
func (r *sqliteRepository) DeleteSnapshot(ctx context.Context, input *DeleteSnapshotInput) error {
	if input == nil || input.PartyID == "" {
		return errors.New("input and party ID cannot be empty")
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM party_snapshots WHERE party_id = ?", input.PartyID); err != nil {
		return fmt.Errorf("failed to delete party snapshot: %w", err)
	}

	return nil
}

// ListParties returns party IDs, most recently updated first
func (r *sqliteRepository) ListParties(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT party_id FROM party_snapshots ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan party id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}

	return ids, nil
}
