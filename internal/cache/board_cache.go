// Package cache keeps rendered board details in Redis so that repeated board
// reads skip the column and card queries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"baudboard/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// BoardCache stores board details keyed by board id.
type BoardCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewBoardCache creates a cache using the provided Redis client and TTL. A
// zero TTL disables writes; reads and evictions still go to Redis.
func NewBoardCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *BoardCache {
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardCache{redis: client, ttl: ttl, logger: logger}
}

// Load returns the cached detail of a board, if any, together with the
// board's current generation. Pass the generation to Store after reading the
// board from the database.
func (c *BoardCache) Load(ctx context.Context, boardID uuid.UUID) (*model.Board, int64, bool) {
	if c == nil || c.redis == nil {
		return nil, 0, false
	}
	values, err := c.redis.MGet(ctx, boardKey(boardID), generationKey(boardID)).Result()
	if err != nil {
		c.logger.WithError(err).WithField("board_id", boardID).Warn("board cache read failed")
		return nil, 0, false
	}

	generation, err := parseGeneration(values[1])
	if err != nil {
		// An unreadable counter can't guard a write; report a generation
		// no Store will match.
		return nil, -1, false
	}
	data, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}
	var board model.Board
	if err := json.Unmarshal([]byte(data), &board); err != nil {
		_ = c.redis.Del(ctx, boardKey(boardID)).Err()
		return nil, generation, false
	}
	return &board, generation, true
}

// Store caches the detail of a board read at generation. The write is
// dropped when the board was evicted since.
func (c *BoardCache) Store(ctx context.Context, board *model.Board, generation int64) {
	if c == nil || c.redis == nil || c.ttl == 0 || board == nil || generation < 0 {
		return
	}
	data, err := json.Marshal(board)
	if err != nil {
		return
	}

	genKey := generationKey(board.ID)
	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, genKey).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		current, err := parseGeneration(raw)
		if err != nil {
			return err
		}
		if current != generation {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, boardKey(board.ID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		c.logger.WithField("board_id", board.ID).Debug("board changed while reading, not cached")
	default:
		c.logger.WithError(err).WithField("board_id", board.ID).Warn("board cache write failed")
	}
}

// Evict drops the cached detail of the given boards and bumps their
// generation so reads still in flight are not cached.
func (c *BoardCache) Evict(ctx context.Context, boardIDs ...uuid.UUID) {
	if c == nil || c.redis == nil || len(boardIDs) == 0 {
		return
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range boardIDs {
			pipe.Incr(ctx, generationKey(id))
			pipe.Expire(ctx, generationKey(id), generationTTL)
			pipe.Del(ctx, boardKey(id))
		}
		return nil
	})
	if err != nil {
		c.logger.WithError(err).Warn("board cache eviction failed")
	}
}

var errStale = errors.New("stale board detail")

// generationTTL bounds how long counters of idle boards are kept. It only
// has to outlast a single board read.
const generationTTL = 24 * time.Hour

func parseGeneration(v any) (int64, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case string:
		if v == "" {
			return 0, nil
		}
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected generation value %T", v)
	}
}

func boardKey(id uuid.UUID) string {
	return "board:" + id.String()
}

func generationKey(id uuid.UUID) string {
	return "board:" + id.String() + ":gen"
}
