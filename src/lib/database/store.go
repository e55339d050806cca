package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stormkit-io/fnmanagement/src/lib/slog"
)

// Store represents a generic store
type Store struct {
	Conn *sql.DB
}

// NewStore returns a new store instance backed by the given connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{Conn: conn}
}

// QueryRow is a wrapper around the sql.Stmt.QueryRowContext method.
// It prepares and executes the query
func (s *Store) QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	stmt, err := s.Prepare(ctx, query)

	if err != nil {
		return nil, err
	}

	defer stmt.Close()

	return stmt.QueryRowContext(ctx, args...), nil
}

// Exec is a wrapper around the sql.Stmt.ExecContext method.
// It prepares and executes the query
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	stmt, err := s.Prepare(ctx, query)

	if err != nil {
		return nil, err
	}

	defer stmt.Close()

	return stmt.ExecContext(ctx, args...)
}

// Prepare prepares a new statement with context and returns it.
func (s *Store) Prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := s.Conn.PrepareContext(ctx, query)

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Errorf("error while preparing query=%s, err=%v", query, err)
		}

		return nil, err
	}

	return stmt, nil
}
