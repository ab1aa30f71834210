package prefs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_Defaults(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryStore())

	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, theme)
	assert.Equal(t, "simplex", theme)

	path, err := p.ToolPath(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultToolPath, path)

	p = New(NewMemoryStore(), WithDefaultToolPath("/opt/dream/bin/dream"))
	path, err = p.ToolPath(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/opt/dream/bin/dream", path)
}

func TestPreferences_SetAndGet(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryStore())

	require.NoError(t, p.SetTheme(ctx, " darkly "))
	require.NoError(t, p.SetToolPath(ctx, "/usr/local/bin/dream"))

	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "darkly", theme)

	path, err := p.Get(ctx, KeyToolPath)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/dream", path)

	other, err := p.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestPreferences_EmptyValueFallsBack(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryStore())
	require.NoError(t, p.SetTheme(ctx, ""))

	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, theme)
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error        { return f.err }

func TestPreferences_BackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	p := New(failingStore{boom})

	theme, err := p.Theme(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, DefaultTheme, theme, "default still returned on error")

	assert.ErrorIs(t, p.SetToolPath(ctx, "x"), boom)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })

	_, ok, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyTheme, "flatly"))
	require.NoError(t, store.Set(ctx, KeyTheme, "cosmo"))

	v, ok, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cosmo", v)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	first := NewSQLiteStore()
	require.NoError(t, first.Open(path))
	require.NoError(t, New(first).SetToolPath(ctx, "/bin/dream"))
	require.NoError(t, first.Close())

	second := NewSQLiteStore()
	require.NoError(t, second.Open(path))
	t.Cleanup(func() { _ = second.Close() })

	got, err := New(second).ToolPath(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/bin/dream", got)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()
	_, _, err := store.Get(context.Background(), KeyTheme)
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), KeyTheme, "x"))
	assert.Error(t, store.Migrate())
}

func TestSQLiteStore_QueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("database is locked")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences WHERE key = ?`)).
		WithArgs(KeyTheme).
		WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO preferences`)).
		WithArgs(KeyTheme, "cosmo", sqlmock.AnyArg()).
		WillReturnError(boom)

	store := NewSQLiteStoreWithDB(db)
	_, _, err = store.Get(context.Background(), KeyTheme)
	assert.ErrorIs(t, err, boom)

	err = store.Set(context.Background(), KeyTheme, "cosmo")
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences WHERE key = ?`)).
		WithArgs(KeyToolPath).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	got, err := New(NewSQLiteStoreWithDB(db), WithDefaultToolPath("/x/dream")).ToolPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/x/dream", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	cookies := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))

	// First request writes the theme into the cookie.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, New(FromRequest(cookies, w, r)).SetTheme(ctx, "darkly"))

	setCookie := w.Result().Cookies()
	require.NotEmpty(t, setCookie)

	// Second request reads it back.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range setCookie {
		r2.AddCookie(c)
	}
	theme, err := New(FromRequest(cookies, httptest.NewRecorder(), r2)).Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "darkly", theme)

	// A browser without the cookie gets the default.
	theme, err = New(FromRequest(cookies, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))).Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, theme)
}

func TestLayered(t *testing.T) {
	ctx := context.Background()
	session := NewMemoryStore()
	shared := NewMemoryStore()
	require.NoError(t, shared.Set(ctx, KeyTheme, "cosmo"))

	p := New(Layered{session, shared})
	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cosmo", theme, "falls through to shared store")

	require.NoError(t, p.SetTheme(ctx, "lux"))
	v, _, _ := session.Get(ctx, KeyTheme)
	assert.Equal(t, "lux", v)
	v, _, _ = shared.Get(ctx, KeyTheme)
	assert.Equal(t, "lux", v)

	_, err = New(Layered{failingStore{errors.New("x")}}).Theme(ctx)
	assert.Error(t, err)
}

func TestValidTheme(t *testing.T) {
	assert.True(t, ValidTheme(DefaultTheme))
	assert.True(t, ValidTheme("darkly"))
	assert.False(t, ValidTheme("Darkly"))
	assert.False(t, ValidTheme(""))
}
