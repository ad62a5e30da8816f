package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/cirogiorgini/turnero-client/internal/auth"
	"github.com/cirogiorgini/turnero-client/internal/booking"
)

const (
	cookieName = "turnero_session"
	cookieAge  = 12 * time.Hour
)

// session is the cookie payload: who the user is and which in-memory wizard
// belongs to them.
type session struct {
	ID       string        `json:"id"`
	Identity auth.Identity `json:"identity"`
}

// Sessions encodes the session cookie and owns the per-session wizard state.
// Wizard state is memory-only: a restart simply starts the booking over,
// the draft was never meant to survive the session.
type Sessions struct {
	sc *securecookie.SecureCookie

	mu      sync.Mutex
	wizards map[string]*wizardState
}

type wizardState struct {
	wizard   *booking.Wizard
	debounce *booking.FieldDebouncer
}

func NewSessions(hashKey, blockKey []byte) *Sessions {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(cookieAge.Seconds()))
	return &Sessions{sc: sc, wizards: make(map[string]*wizardState)}
}

func (s *Sessions) Set(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	sess := session{ID: newSessionID(), Identity: id}
	encoded, err := s.sc.Encode(cookieName, sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(cookieAge.Seconds()),
	})
	return nil
}

func (s *Sessions) Get(r *http.Request) (session, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return session{}, false
	}
	var sess session
	if err := s.sc.Decode(cookieName, c.Value, &sess); err != nil {
		return session{}, false
	}
	if sess.ID == "" || !sess.Identity.LoggedIn() {
		return session{}, false
	}
	return sess, true
}

func (s *Sessions) Clear(w http.ResponseWriter, sid string) {
	s.mu.Lock()
	delete(s.wizards, sid)
	s.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Wizard returns the session's wizard, creating it on first use.
func (s *Sessions) Wizard(sid string, newDebouncer func(*booking.Wizard) *booking.FieldDebouncer) (*booking.Wizard, *booking.FieldDebouncer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.wizards[sid]
	if !ok {
		wiz := booking.NewWizard(booking.NewStore())
		st = &wizardState{wizard: wiz, debounce: newDebouncer(wiz)}
		s.wizards[sid] = st
	}
	return st.wizard, st.debounce
}

// ResetWizard discards the session's wizard so a finished user can book
// again.
func (s *Sessions) ResetWizard(sid string) {
	s.mu.Lock()
	delete(s.wizards, sid)
	s.mu.Unlock()
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
