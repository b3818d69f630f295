package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/pokedex/internal/repository/sqlite/migrations"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps the SQLite connection and vends the repositories built on it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository bound to this database.
func (db *DB) Users() *UserRepository {
	return NewUserRepository(db)
}

// Collection returns the collection repository bound to this database.
func (db *DB) Collection() *CollectionRepository {
	return NewCollectionRepository(db)
}

// uniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint
// failure and, if so, which column ("table.column") caused it.
func uniqueViolation(err error) (string, bool) {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return "", false
	}

	msg := sqliteErr.Error()
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
	default:
		if sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT || !strings.Contains(msg, "UNIQUE constraint failed") {
			return "", false
		}
	}

	// e.g. "constraint failed: UNIQUE constraint failed: users.email (2067)"
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return "", true
	}
	column, _, _ := strings.Cut(msg[i+len(marker):], " ")
	return column, true
}
