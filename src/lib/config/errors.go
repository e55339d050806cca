package config

import "errors"

// ErrMissingDatabase is returned when the postgres data layer is selected
// but no database is configured.
var ErrMissingDatabase = errors.New("postgres data layer selected but POSTGRES_HOST is not set")
