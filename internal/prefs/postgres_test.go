package prefs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgresDSN(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "postgres://dream@localhost/prefs", want: true},
		{path: "postgresql://dream@db:5432/prefs?sslmode=disable", want: true},
		{path: ".dreamtool/prefs.db", want: false},
		{path: ":memory:", want: false},
		{path: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPostgresDSN(tt.path))
		})
	}
}

func TestPostgresStore_Queries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences WHERE key = $1`)).
		WithArgs(KeyTheme).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("slate"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO preferences (key, value, updated_at) VALUES ($1, $2, $3)`)).
		WithArgs(KeyToolPath, "/usr/bin/dream", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences WHERE key = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := NewPostgresStoreWithDB(db)
	ctx := context.Background()

	v, ok, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "slate", v)

	require.NoError(t, store.Set(ctx, KeyToolPath, "/usr/bin/dream"))

	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Set(context.Background(), KeyTheme, "yeti"))
	v, ok, err := store.Get(context.Background(), KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "yeti", v)
}

// Runs against a real server when DREAMTOOL_TEST_POSTGRES_DSN is set.
func TestOpen_Postgres(t *testing.T) {
	dsn := os.Getenv("DREAMTOOL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DREAMTOOL_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	p := New(store)
	require.NoError(t, p.SetTheme(ctx, "lumen"))
	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "lumen", theme)
}
