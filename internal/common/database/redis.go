package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"academy-assistant/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client shared by the member cache and the conversation store.
type RedisClient struct {
	Client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Namespace is one kind of JSON record kept in Redis under a shared key prefix.
// A zero TTL stores records without expiry.
type Namespace struct {
	Prefix string
	TTL    time.Duration
}

var (
	ConversationKeys = Namespace{Prefix: "conversations:"}
	MemberKeys       = Namespace{Prefix: "members:"}
)

// WithTTL returns a copy of n whose records expire after ttl.
func (n Namespace) WithTTL(ttl time.Duration) Namespace {
	n.TTL = ttl
	return n
}

func (n Namespace) Key(id string) string {
	return n.Prefix + id
}

// GetJSON decodes the record stored for id into dst. A missing key returns redis.Nil.
func (n Namespace) GetJSON(ctx context.Context, rdb redis.Cmdable, id string, dst interface{}) error {
	data, err := rdb.Get(ctx, n.Key(id)).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", n.Key(id), err)
	}
	return nil
}

// SetJSON encodes v and stores it for id, refreshing the namespace TTL.
func (n Namespace) SetJSON(ctx context.Context, rdb redis.Cmdable, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", n.Key(id), err)
	}
	return rdb.Set(ctx, n.Key(id), data, n.TTL).Err()
}

func (n Namespace) Delete(ctx context.Context, rdb redis.Cmdable, id string) error {
	return rdb.Del(ctx, n.Key(id)).Err()
}
