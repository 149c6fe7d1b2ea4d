package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy-assistant/internal/common/database"
	"academy-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each conversation as one JSON value whose TTL is refreshed on save.
type RedisStore struct {
	client *redis.Client
	keys   database.Namespace
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, keys: database.ConversationKeys.WithTTL(ttl)}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.keys.GetJSON(ctx, s.client, id, &conv)
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", id, err)
	}
	return &conv, nil
}

func (s *RedisStore) Save(ctx context.Context, conv *models.Conversation) error {
	if conv == nil || conv.ID == "" {
		return fmt.Errorf("conversation id is required")
	}
	touch(conv, time.Now())
	if err := s.keys.SetJSON(ctx, s.client, conv.ID, conv); err != nil {
		return fmt.Errorf("save conversation %s: %w", conv.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.keys.Delete(ctx, s.client, id); err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}
	return nil
}
