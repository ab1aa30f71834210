package prefs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session that carries per-browser preferences.
const SessionName = "dreamtool-prefs"

// SessionStore exposes one request's cookie session as a Store.
// Values written through Set are saved to the response immediately.
type SessionStore struct {
	session *sessions.Session
	w       http.ResponseWriter
	r       *http.Request
}

// FromRequest loads the preference session for r. A session that fails to
// decode (for example after a secret rotation) is replaced by a new one.
func FromRequest(store sessions.Store, w http.ResponseWriter, r *http.Request) *SessionStore {
	sess, err := store.Get(r, SessionName)
	if err != nil {
		sess, _ = store.New(r, SessionName)
	}
	return &SessionStore{session: sess, w: w, r: r}
}

// Get implements Store.
func (s *SessionStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.session == nil {
		return "", false, nil
	}
	v, ok := s.session.Values[key].(string)
	return v, ok, nil
}

// Set implements Store.
func (s *SessionStore) Set(_ context.Context, key, value string) error {
	if s.session == nil {
		return fmt.Errorf("no session")
	}
	s.session.Values[key] = value
	return s.session.Save(s.r, s.w)
}

// Layered reads from the first store that has a value and writes to all.
// The web UI layers the browser session over the shared database.
type Layered []Store

// Get implements Store.
func (l Layered) Get(ctx context.Context, key string) (string, bool, error) {
	for _, s := range l {
		v, ok, err := s.Get(ctx, key)
		if err != nil {
			return "", false, err
		}
		if ok && v != "" {
			return v, true, nil
		}
	}
	return "", false, nil
}

// Set implements Store.
func (l Layered) Set(ctx context.Context, key, value string) error {
	for _, s := range l {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
