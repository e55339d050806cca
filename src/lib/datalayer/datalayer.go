// Package datalayer provides privileged, namespace scoped key-value access
// used to persist arbitrary per-function attributes.
package datalayer

import (
	"context"
	"fmt"

	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/database"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/rediscache"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
)

// Client is a key-value accessor bound to a single storage namespace.
// A client must be released with Shutdown once the caller is done with it.
type Client interface {
	// Get returns the value stored under key. The boolean is false
	// when nothing is stored under the key.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the value under key.
	Set(ctx context.Context, key, value string) error

	// Shutdown releases the client. Using the client afterwards
	// returns errors.ErrClientClosed.
	Shutdown() error
}

// Opener acquires clients bound to a storage namespace.
type Opener interface {
	Open(ctx context.Context, namespace string) (Client, error)
}

// OpenerFunc is an adapter to allow the use of ordinary functions as Openers.
type OpenerFunc func(ctx context.Context, namespace string) (Client, error)

// Open calls f(ctx, namespace).
func (f OpenerFunc) Open(ctx context.Context, namespace string) (Client, error) {
	return f(ctx, namespace)
}

// NewOpener returns the opener for the configured backend.
func NewOpener(cnf *config.DataLayerConfig) (Opener, error) {
	switch cnf.Backend {
	case config.DataLayerRedis, "":
		return NewRedisOpener(rediscache.Client()), nil
	case config.DataLayerPostgres:
		conn, err := database.Connection()

		if err != nil {
			return nil, err
		}

		return NewPostgresOpener(conn), nil
	default:
		return nil, errors.New(errors.ErrorTypeConfiguration, fmt.Sprintf("unknown data layer backend: %s", cnf.Backend))
	}
}

func validateNamespace(namespace string) error {
	if utils.IsBlank(namespace) {
		return errors.New(errors.ErrorTypeValidation, "storage namespace is required")
	}

	return nil
}
