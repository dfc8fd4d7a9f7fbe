package party

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/partybac/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	snapshotKeyPrefix = "party:"
	partiesKey        = "parties"
)

// Config holds configuration for the Redis party repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed party repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func snapshotKey(partyID string) string {
	return fmt.Sprintf("%s%s:snapshot", snapshotKeyPrefix, partyID)
}

// LoadSnapshot retrieves a party snapshot from Redis
func (r *redisRepository) LoadSnapshot(ctx context.Context, input *LoadSnapshotInput) (*LoadSnapshotOutput, error) {
	if input == nil || input.PartyID == "" {
		return nil, errors.New("input and party ID cannot be empty")
	}

	partyJSON, err := r.client.Get(ctx, snapshotKey(input.PartyID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get party snapshot: %w", err)
	}

	var party models.Party
	if err := json.Unmarshal([]byte(partyJSON), &party); err != nil {
		return nil, fmt.Errorf("failed to unmarshal party snapshot: %w", err)
	}

	return &LoadSnapshotOutput{
		Party: &party,
	}, nil
}

// SaveSnapshot persists a party snapshot to Redis
func (r *redisRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	if input == nil || input.Party == nil {
		return errors.New("input and party cannot be nil")
	}

	if input.Party.ID == "" {
		return errors.New("party ID cannot be empty")
	}

	partyJSON, err := json.Marshal(input.Party)
	if err != nil {
		return fmt.Errorf("failed to marshal party snapshot: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(input.Party.ID), partyJSON, 0) // No expiration
	pipe.ZAdd(ctx, partiesKey, redis.Z{
		Score:  float64(input.Party.UpdatedAt.Unix()),
		Member: input.Party.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save party snapshot: %w", err)
	}

	return nil
}

// DeleteSnapshot removes a party snapshot from Redis
func (r *redisRepository) DeleteSnapshot(ctx context.Context, input *DeleteSnapshotInput) error {
	if input == nil || input.PartyID == "" {
		return errors.New("input and party ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, snapshotKey(input.PartyID))
	pipe.ZRem(ctx, partiesKey, input.PartyID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete party snapshot: %w", err)
	}

	return nil
}

// ListParties returns party IDs, most recently updated first
func (r *redisRepository) ListParties(ctx context.Context) ([]string, error) {
	ids, err := r.client.ZRevRange(ctx, partiesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return ids, nil
}
