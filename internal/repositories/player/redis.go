package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix = "puppybowl:player:"
	playersKey      = "puppybowl:players"
	nextIDKey       = "puppybowl:next_player_id"
)

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

func playerKey(id int) string {
	return playerKeyPrefix + strconv.Itoa(id)
}

// CreatePlayer allocates an id from a counter and stores the record
func (r *redisRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate player id: %w", err)
	}

	record := newRecord(int(id), input)
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, playerKey(record.ID), recordJSON, 0)
	pipe.ZAdd(ctx, playersKey, redis.Z{Score: float64(record.ID), Member: record.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	return &CreatePlayerOutput{Player: record}, nil
}

// ListPlayers fetches every player in id order
func (r *redisRepository) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	ids, err := r.client.ZRange(ctx, playersKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player ids: %w", err)
	}

	if len(ids) == 0 {
		return &ListPlayersOutput{
			Players: []*Record{},
		}, nil
	}

	// Get all player records in one round trip
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.Get(ctx, playerKeyPrefix+id))
	}

	// redis.Nil from a single GET is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*Record, 0, len(ids))
	for idx, cmd := range cmds {
		recordJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Player was deleted between getting the ids and fetching the player
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", ids[idx], err)
		}

		var record Record
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", ids[idx], err)
		}
		players = append(players, &record)
	}

	return &ListPlayersOutput{
		Players: players,
	}, nil
}

// UpdatePosition rewrites the stored record with a new position
func (r *redisRepository) UpdatePosition(ctx context.Context, input *UpdatePositionInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	key := playerKey(input.ID)
	recordJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to get player: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return fmt.Errorf("failed to unmarshal player: %w", err)
	}

	record.Position = input.Position
	record.UpdatedAt = input.At

	updated, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err := r.client.Set(ctx, key, updated, 0).Err(); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}
