package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

// Result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	gameIndex := gameResultsIndexKey(result.GameID)
	recentIndex := recentResultsIndexKey()

	// Use pipeline for atomic save + index updates
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, resultKey(result.ID), data, s.cfg.ResultTTL)
	pipe.LPush(ctx, gameIndex, result.ID)
	pipe.Expire(ctx, gameIndex, s.cfg.ResultTTL)
	pipe.LPush(ctx, recentIndex, result.ID)
	if s.cfg.MaxResults > 0 {
		pipe.LTrim(ctx, recentIndex, 0, int64(s.cfg.MaxResults-1))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetResult(ctx context.Context, id string) (*model.GameResult, error) {
	data, err := s.client.Get(ctx, resultKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}

	var result model.GameResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", id, err)
	}
	return &result, nil
}

func (s *Storage) GetLatestResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error) {
	id, err := s.client.LIndex(ctx, gameResultsIndexKey(gameID), 0).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}
	return s.GetResult(ctx, id)
}

func (s *Storage) ListResults(ctx context.Context, limit int) ([]*model.GameResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.LRange(ctx, recentResultsIndexKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.GameResult, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = resultKey(id)
	}

	// Fetch all results in one round trip using MGET
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Result may have expired
		}
		var result model.GameResult
		if err := json.Unmarshal([]byte(str), &result); err != nil {
			continue // Skip invalid data
		}
		results = append(results, &result)
	}

	return results, nil
}
