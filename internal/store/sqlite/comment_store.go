// Package sqlite implements the comment store on an embedded single-file
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tablon-app/tablon-backend/internal/store"
	"github.com/tablon-app/tablon-backend/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS comments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL,
	date       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments (created_at DESC);
`

// CommentStore is a SQLite-backed implementation of store.CommentStore.
type CommentStore struct {
	db    *sql.DB
	ready atomic.Bool
}

var _ store.CommentStore = (*CommentStore)(nil)

// Open creates or opens the SQLite database at the given path, creating the
// containing directory if needed, and applies pragmas and schema. Every step
// is idempotent, so Open is safe to run on each process start.
func Open(path string) (*CommentStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors under concurrent requests.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &CommentStore{db: db}
	s.ready.Store(true)
	return s, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// CreateComment appends one comment row and returns the assigned id.
func (s *CommentStore) CreateComment(ctx context.Context, comment *types.Comment) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO comments (name, email, message, date) VALUES (?, ?, ?, ?)",
		comment.Name, comment.Email, comment.Message, comment.Date,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert id: %w", err)
	}

	return id, nil
}

// ListComments returns comments newest-first, created_at tie-broken by id.
func (s *CommentStore) ListComments(ctx context.Context, limit, offset int) ([]*types.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, date, created_at
		 FROM comments
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*types.Comment
	for rows.Next() {
		var c types.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Date, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Ping verifies the database connection.
func (s *CommentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Ready reports whether the store finished initialization and has not been closed.
func (s *CommentStore) Ready() bool {
	return s.ready.Load()
}

// Close releases the database handle. Safe to call during shutdown; the
// store reports not ready afterwards.
func (s *CommentStore) Close() error {
	s.ready.Store(false)
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
