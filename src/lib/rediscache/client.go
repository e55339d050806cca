package rediscache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/shutdown"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"go.uber.org/zap"
)

var _client *redis.Client
var _cmux sync.Mutex

// Client returns the shared redis client. The client is created from the
// current configuration the first time it is requested.
func Client() *redis.Client {
	_cmux.Lock()
	defer _cmux.Unlock()

	if _client == nil {
		_client = NewClient(config.Get().Redis)

		shutdown.Subscribe(func() error {
			return CloseClient()
		})
	}

	return _client
}

// NewClient returns a new redis client for the given configuration.
func NewClient(cnf *config.RedisConfig) *redis.Client {
	slog.Debug(slog.LogOpts{
		Msg:   "creating redis client",
		Level: slog.DL1,
		Payload: []zap.Field{
			zap.String("addr", cnf.Addr),
			zap.Int("db", cnf.DB),
		},
	})

	return redis.NewClient(&redis.Options{
		Addr:         cnf.Addr,
		Password:     cnf.Password,
		DB:           cnf.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// SetClient replaces the shared client. It is useful for tests so that
// they can point the client to an in-memory redis.
func SetClient(client *redis.Client) {
	_cmux.Lock()
	defer _cmux.Unlock()

	_client = client
}

// CloseClient closes the shared client, if any.
func CloseClient() error {
	_cmux.Lock()
	defer _cmux.Unlock()

	if _client == nil {
		return nil
	}

	err := _client.Close()
	_client = nil
	return err
}

// Ping checks whether redis is reachable.
func Ping(ctx context.Context) error {
	return Client().Ping(ctx).Err()
}
