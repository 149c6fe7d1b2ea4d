// Package conversation persists live conversations between turns.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"academy-assistant/internal/common/config"
	"academy-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("SESSION_NOT_FOUND")

// Store keeps the current state of each conversation. Only the live conversation is
// kept; nothing is archived when it ends or expires.
type Store interface {
	Load(ctx context.Context, id string) (*models.Conversation, error)
	Save(ctx context.Context, conv *models.Conversation) error
	Delete(ctx context.Context, id string) error
}

// NewStore builds the store selected by cfg.Store. rdb is required for "redis".
func NewStore(cfg config.SessionConfig, rdb *redis.Client) (Store, error) {
	ttl := config.GetSeconds(cfg.TTL)
	switch cfg.Store {
	case "", "memory":
		return NewMemoryStore(ttl), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis session store requires a redis client")
		}
		return NewRedisStore(rdb, ttl), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

func clone(conv *models.Conversation) (*models.Conversation, error) {
	data, err := json.Marshal(conv)
	if err != nil {
		return nil, err
	}
	var out models.Conversation
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// touch marks the conversation as active at now. Idle expiry counts from here.
func touch(conv *models.Conversation, now time.Time) {
	conv.UpdatedAt = now.UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = conv.UpdatedAt
	}
}
