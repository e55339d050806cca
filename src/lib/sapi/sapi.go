// Package sapi is the collaborator context handed to management handlers.
// It gives access to the function registry and to the privileged data layer.
package sapi

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/datalayer"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/rediscache"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"go.uber.org/zap"
)

// Registry key namespaces.
const (
	PrivilegedKeyPrefix = "privileged:"
	UserKeyPrefix       = "user:"
)

// API is the set of operations handlers may call on the platform.
type API interface {
	// Log emits a diagnostic message.
	Log(msg string, fields ...zap.Field)

	// Get reads a registry value. The boolean is false when the key does not exist.
	Get(ctx context.Context, key string, privileged bool) (string, bool, error)

	// PrivilegedDataLayerClient acquires a data layer client scoped to the
	// given storage namespace. The caller owns the client and must shut it down.
	PrivilegedDataLayerClient(ctx context.Context, storageUserID string) (datalayer.Client, error)
}

// Service implements API on top of redis and a data layer opener.
type Service struct {
	redis  *redis.Client
	opener datalayer.Opener
	logger *zap.Logger
}

// New returns a new Service.
func New(client *redis.Client, opener datalayer.Opener) *Service {
	return &Service{
		redis:  client,
		opener: opener,
		logger: slog.With(zap.String("component", "sapi")),
	}
}

// FromConfig returns a Service wired to the configured redis instance
// and data layer backend.
func FromConfig(cnf *config.Config) (*Service, error) {
	opener, err := datalayer.NewOpener(cnf.DataLayer)

	if err != nil {
		return nil, err
	}

	return New(rediscache.Client(), opener), nil
}

// Key returns the redis key for a registry key.
func Key(key string, privileged bool) string {
	if privileged {
		return PrivilegedKeyPrefix + key
	}

	return UserKeyPrefix + key
}

// Log emits a diagnostic message through the structured logger.
func (s *Service) Log(msg string, fields ...zap.Field) {
	s.logger.Info(msg, fields...)
}

// Get reads a registry value.
func (s *Service) Get(ctx context.Context, key string, privileged bool) (string, bool, error) {
	val, err := s.redis.Get(ctx, Key(key, privileged)).Result()

	if err == redis.Nil {
		return "", false, nil
	}

	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrorTypeRegistry, "get %s", key)
	}

	return val, true, nil
}

// Set writes a registry value.
func (s *Service) Set(ctx context.Context, key, value string, privileged bool) error {
	if err := s.redis.Set(ctx, Key(key, privileged), value, 0).Err(); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeRegistry, "set %s", key)
	}

	return nil
}

// PrivilegedDataLayerClient acquires a fresh data layer client for the namespace.
func (s *Service) PrivilegedDataLayerClient(ctx context.Context, storageUserID string) (datalayer.Client, error) {
	dlc, err := s.opener.Open(ctx, storageUserID)

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeDataLayer, "cannot acquire privileged data layer client")
	}

	return dlc, nil
}
