package prefs

import (
	"context"
	"io"
)

// ClosableStore is a Store holding a connection.
type ClosableStore interface {
	Store
	io.Closer
}

// Open picks the backend from path: PostgreSQL URLs connect to a server,
// anything else is a SQLite file (or ":memory:").
func Open(ctx context.Context, path string) (ClosableStore, error) {
	if IsPostgresDSN(path) {
		return OpenPostgres(ctx, path)
	}
	s := NewSQLiteStore()
	if err := s.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}
