package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/shutdown"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
)

var _db *sql.DB
var dbmux sync.Mutex

// URL returns the database url.
func URL(c *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s&search_path=%s", c.SSLMode, url.QueryEscape(c.Schema)),
	}

	return u.String()
}

// ConnectionString returns the key/value connection string used by lib/pq.
// Values are single-quoted so they may contain spaces and quotes.
func ConnectionString(c *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		quoteValue(c.Host), quoteValue(c.Port), quoteValue(c.User), quoteValue(c.Password),
		quoteValue(c.DBName), quoteValue(c.SSLMode), quoteValue(c.Schema),
	)
}

func quoteValue(v string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}

// Connection will return the currently open connection. If there is none found,
// it will create a new instance.
func Connection() (*sql.DB, error) {
	dbmux.Lock()
	defer dbmux.Unlock()

	if _db != nil {
		return _db, nil
	}

	cnf := config.Get().Database

	if cnf == nil {
		return nil, errors.Wrap(config.ErrMissingDatabase, errors.ErrorTypeConfiguration, "cannot open database connection")
	}

	db, err := NewConnection(cnf)

	if err != nil {
		return nil, err
	}

	_db = db

	shutdown.Subscribe(func() error {
		return db.Close()
	})

	return _db, nil
}

// NewConnection opens a new connection and retries a few times before giving up.
func NewConnection(cnf *config.DatabaseConfig) (*sql.DB, error) {
	const maxRetry = 5

	slog.Info("connecting to database")

	var dbconnerr error

	for retry := 0; retry < maxRetry; retry++ {
		db, err := newConnectionWithConfig(cnf)

		if err == nil {
			return db, nil
		}

		dbconnerr = err
		slog.Infof("retrying in 2 seconds: attempt=%d", retry+1)
		time.Sleep(2 * time.Second)
	}

	return nil, errors.Wrap(dbconnerr, errors.ErrorTypeDatabase, "database connection failed")
}

func newConnectionWithConfig(cnf *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnectionString(cnf))

	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(cnf.MaxLifetime)
	db.SetMaxOpenConns(cnf.MaxOpenConns)
	db.SetMaxIdleConns(cnf.MaxIdleConns)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	slog.Infof("pinged successfully %s", cnf.Schema)
	return db, nil
}

// SetConnection replaces the cached sql connection with the given argument value.
// It is useful for tests so that they can mock the sql connection.
func SetConnection(db *sql.DB) {
	dbmux.Lock()
	defer dbmux.Unlock()

	_db = db
}

// IsDuplicate checks whether an error is a duplicate error or not.
func IsDuplicate(dberr error) bool {
	err, ok := dberr.(*pq.Error)
	return ok && err.Code == pq.ErrorCode("23505")
}
