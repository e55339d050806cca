package datalayer

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"go.uber.org/zap"
)

// RedisKeyPrefix is prepended to the namespace to build the hash key
// which holds every value of the namespace.
const RedisKeyPrefix = "datalayer:"

// RedisOpener opens clients which store each namespace in a redis hash.
type RedisOpener struct {
	client *redis.Client
}

// NewRedisOpener returns a new redis backed opener.
func NewRedisOpener(client *redis.Client) *RedisOpener {
	return &RedisOpener{client: client}
}

// Open returns a client bound to the given namespace.
func (o *RedisOpener) Open(ctx context.Context, namespace string) (Client, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	c := &RedisClient{
		id:        uuid.NewString(),
		namespace: namespace,
		hash:      RedisKeyPrefix + namespace,
		client:    o.client,
	}

	slog.Debug(slog.LogOpts{
		Msg:   "data layer client acquired",
		Level: slog.DL2,
		Payload: []zap.Field{
			zap.String("client_id", c.id),
			zap.String("namespace", namespace),
			zap.String("backend", "redis"),
		},
	})

	return c, nil
}

// RedisClient is a Client backed by a redis hash.
type RedisClient struct {
	id        string
	namespace string
	hash      string
	client    *redis.Client
	closed    atomic.Bool
}

// Get returns the value stored under key.
func (c *RedisClient) Get(ctx context.Context, key string) (string, bool, error) {
	if c.closed.Load() {
		return "", false, errors.ErrClientClosed
	}

	val, err := c.client.HGet(ctx, c.hash, key).Result()

	if err == redis.Nil {
		return "", false, nil
	}

	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrorTypeDataLayer, "get %s", key)
	}

	return val, true, nil
}

// Set stores the value under key.
func (c *RedisClient) Set(ctx context.Context, key, value string) error {
	if c.closed.Load() {
		return errors.ErrClientClosed
	}

	if err := c.client.HSet(ctx, c.hash, key, value).Err(); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeDataLayer, "set %s", key)
	}

	return nil
}

// Shutdown releases the client. The underlying redis connection pool is
// shared and stays open.
func (c *RedisClient) Shutdown() error {
	if !c.closed.CompareAndSwap(false, true) {
		return errors.ErrClientClosed
	}

	slog.Debug(slog.LogOpts{
		Msg:   "data layer client released",
		Level: slog.DL2,
		Payload: []zap.Field{
			zap.String("client_id", c.id),
			zap.String("namespace", c.namespace),
		},
	})

	return nil
}
