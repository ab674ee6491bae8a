package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// UserKey is the session value holding the logged-in user's id.
const UserKey = "curr_user"

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// NewCookieStore returns a signed cookie store. The cookie is marked Secure
// when secure is true.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Manager reads and writes the warbler session cookie.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

func (m *Manager) Name() string {
	return m.name
}

// get never fails on a tampered or stale cookie: gorilla still returns a
// fresh session, which is what a logged-out visitor should get.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, m.name)
	return s
}

// UserID returns the logged-in user id, if any.
func (m *Manager) UserID(r *http.Request) (uint, bool) {
	id, ok := m.get(r).Values[UserKey].(uint)
	return id, ok && id != 0
}

func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	s := m.get(r)
	s.Values[UserKey] = userID
	return m.save(w, r, s)
}

// Logout forgets the user but keeps the cookie so a goodbye flash survives.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, UserKey)
	return m.save(w, r, s)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	s := m.get(r)
	s.AddFlash(Flash{Category: category, Message: message})
	return m.save(w, r, s)
}

// Flashes pops every pending flash. It must run before the response body is
// written since it rewrites the cookie.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes, m.save(w, r, s)
}

func (m *Manager) save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session failed: %w", err)
	}
	return nil
}
