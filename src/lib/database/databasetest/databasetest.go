package databasetest

import (
	"database/sql"
	"sync"

	"github.com/DATA-DOG/go-txdb"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/database"
	"github.com/stormkit-io/fnmanagement/src/migrations"
)

// TestDB represents a test database. Every TestDB runs inside its own
// transaction which is rolled back on CloseTx.
type TestDB struct {
	*sql.DB
	Cfg *config.DatabaseConfig
}

var registerOnce sync.Once

// Available returns true when a postgres instance is configured for tests.
func Available() bool {
	return config.Get().Database != nil
}

func register() {
	cnf := config.Get().Database
	conn, err := database.NewConnection(cnf)

	if err != nil {
		panic(err)
	}

	if err := migrations.Up(conn, cnf); err != nil {
		panic(err)
	}

	conn.Close()

	txdb.Register("txdb", "postgres", database.ConnectionString(cnf))
}

// InitTx opens a new transactional connection. It panics when the
// database is not reachable, call Available first to skip the tests.
func InitTx(suiteName string) TestDB {
	registerOnce.Do(register)

	conn, err := sql.Open("txdb", suiteName)

	if err != nil {
		panic(err)
	}

	return TestDB{
		DB:  conn,
		Cfg: config.Get().Database,
	}
}

// CloseTx rolls back the transaction.
func (db *TestDB) CloseTx() {
	if err := db.DB.Close(); err != nil {
		panic(err)
	}
}
