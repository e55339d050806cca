package datalayer

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/stormkit-io/fnmanagement/src/lib/database"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"go.uber.org/zap"
)

const stmtSelectValue = `
	SELECT value FROM data_layer
	WHERE namespace = $1 AND key = $2;
`

const stmtUpsertValue = `
	INSERT INTO data_layer (namespace, key, value)
	VALUES ($1, $2, $3)
	ON CONFLICT (namespace, key)
	DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
`

// PostgresOpener opens clients which store values in the data_layer table.
type PostgresOpener struct {
	store *database.Store
}

// NewPostgresOpener returns a new postgres backed opener.
func NewPostgresOpener(conn *sql.DB) *PostgresOpener {
	return &PostgresOpener{store: database.NewStore(conn)}
}

// Open returns a client bound to the given namespace.
func (o *PostgresOpener) Open(ctx context.Context, namespace string) (Client, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}

	c := &PostgresClient{
		id:        uuid.NewString(),
		namespace: namespace,
		store:     o.store,
	}

	slog.Debug(slog.LogOpts{
		Msg:   "data layer client acquired",
		Level: slog.DL2,
		Payload: []zap.Field{
			zap.String("client_id", c.id),
			zap.String("namespace", namespace),
			zap.String("backend", "postgres"),
		},
	})

	return c, nil
}

// PostgresClient is a Client backed by the data_layer table.
type PostgresClient struct {
	id        string
	namespace string
	store     *database.Store
	closed    atomic.Bool
}

// Get returns the value stored under key.
func (c *PostgresClient) Get(ctx context.Context, key string) (string, bool, error) {
	if c.closed.Load() {
		return "", false, errors.ErrClientClosed
	}

	row, err := c.store.QueryRow(ctx, stmtSelectValue, c.namespace, key)

	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrorTypeDatabase, "get %s", key)
	}

	var value string

	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, errors.ErrorTypeDatabase, "get %s", key)
	}

	return value, true, nil
}

// Set stores the value under key.
func (c *PostgresClient) Set(ctx context.Context, key, value string) error {
	if c.closed.Load() {
		return errors.ErrClientClosed
	}

	if _, err := c.store.Exec(ctx, stmtUpsertValue, c.namespace, key, value); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeDatabase, "set %s", key)
	}

	return nil
}

// Shutdown releases the client. The connection pool is shared and stays open.
func (c *PostgresClient) Shutdown() error {
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
