package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	matchKeyPrefix   = "teampicker:match:"
	channelKeyPrefix = "teampicker:channel:matches:"
	heldMatchesKey   = "teampicker:held_matches"
)

// ErrMatchNotFound is returned when a match is not in the ledger
var ErrMatchNotFound = errors.New("match not found")

// Config holds configuration for the Redis match repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed match repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func matchKey(matchID string) string {
	return matchKeyPrefix + matchID
}

func channelKey(channelID string) string {
	return channelKeyPrefix + channelID
}

// SaveMatch persists a match to Redis
func (r *redisRepository) SaveMatch(ctx context.Context, input *SaveMatchInput) error {
	if input == nil || input.Match == nil || input.Match.ID == "" {
		return errors.New("input, match and match ID cannot be empty")
	}

	matchJSON, err := json.Marshal(input.Match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	score := float64(input.Match.CreatedAt.UnixNano())

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, matchKey(input.Match.ID), matchJSON, 0)
	pipe.ZAdd(ctx, heldMatchesKey, redis.Z{Score: score, Member: input.Match.ID})
	if input.Match.ChannelID != "" {
		pipe.ZAdd(ctx, channelKey(input.Match.ChannelID), redis.Z{Score: score, Member: input.Match.ID})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

// GetMatch retrieves a match by ID from Redis
func (r *redisRepository) GetMatch(ctx context.Context, input *GetMatchInput) (*models.Match, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	matchJSON, err := r.client.Get(ctx, matchKey(input.MatchID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	var match models.Match
	if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// ListMatches retrieves held matches from Redis, oldest first
func (r *redisRepository) ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error) {
	indexKey := heldMatchesKey
	if input != nil && input.ChannelID != "" {
		indexKey = channelKey(input.ChannelID)
	}

	matchIDs, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list match IDs: %w", err)
	}

	if len(matchIDs) == 0 {
		return &ListMatchesOutput{Matches: []*models.Match{}}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(matchIDs))
	for i, matchID := range matchIDs {
		commands[i] = pipe.Get(ctx, matchKey(matchID))
	}

	// redis.Nil for a single key surfaces as the pipeline error; each
	// command is inspected below instead
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	matches := make([]*models.Match, 0, len(matchIDs))
	for i, cmd := range commands {
		matchJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Match was deleted between reading the index and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get match %s: %w", matchIDs[i], err)
		}

		var match models.Match
		if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match %s: %w", matchIDs[i], err)
		}
		matches = append(matches, &match)
	}

	return &ListMatchesOutput{Matches: matches}, nil
}

// DeleteMatch removes a match from Redis
func (r *redisRepository) DeleteMatch(ctx context.Context, input *DeleteMatchInput) error {
	if input == nil || input.MatchID == "" {
		return errors.New("input and match ID cannot be empty")
	}

	match, err := r.GetMatch(ctx, &GetMatchInput{MatchID: input.MatchID})
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, matchKey(input.MatchID))
	pipe.ZRem(ctx, heldMatchesKey, input.MatchID)
	if match.ChannelID != "" {
		pipe.ZRem(ctx, channelKey(match.ChannelID), input.MatchID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return nil
}
