package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sajidddd11/telegramtodo/internal/todo/repository"
	"github.com/Sajidddd11/telegramtodo/pkg/log"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new SQLite-backed Repository for the todo domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("todo/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// Open opens path (":memory:" works) and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Ping checks the database connection.
func (r *implRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("todo/repository/sqlite.%s", method)
}
