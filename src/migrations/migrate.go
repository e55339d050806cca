package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/database"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
)

//go:embed *.sql
var files embed.FS

// MigrationsTable is the table golang-migrate uses to keep track of the schema version.
const MigrationsTable = "fnm_migrations"

// Up creates the configured schema, when missing, and migrates it to the
// latest version found in the embedded *.sql files.
func Up(db *sql.DB, cnf *config.DatabaseConfig) error {
	if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pq.QuoteIdentifier(cnf.Schema))); err != nil {
		return err
	}

	src, err := iofs.New(files, ".")

	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, database.URL(cnf)+"&x-migrations-table="+MigrationsTable)

	if err != nil {
		return err
	}

	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Infof("nothing to migrate")
			return nil
		}

		return err
	}

	version, dirty, _ := m.Version()
	slog.Infof("migrated to version=%d, dirty=%t", version, dirty)
	return nil
}
