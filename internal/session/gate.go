// Package session holds the externally issued identity and gates access to
// user-scoped operations. Sign-in and sign-out notify registered listeners,
// which is how the store learns it must rebuild or clear its cache.
package session

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoSession marks operations that require a signed-in user.
	ErrNoSession = errors.New("no active session")
)

// Session is the identity issued by the auth collaborator.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Listener observes session changes. active is false on sign-out, in which
// case the session is the zero value.
type Listener func(s Session, active bool)

// Gate holds the current session and fans out change notifications.
type Gate struct {
	mu        sync.Mutex
	current   Session
	active    bool
	listeners []Listener
}

func NewGate() *Gate {
	return &Gate{}
}

// OnChange registers a listener for future sign-in/sign-out transitions.
func (g *Gate) OnChange(fn Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// SignIn installs the session and notifies listeners.
func (g *Gate) SignIn(s Session) error {
	if s.UserID == "" {
		return ErrNoSession
	}
	g.mu.Lock()
	g.current = s
	g.active = true
	listeners := append([]Listener(nil), g.listeners...)
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(s, true)
	}
	return nil
}

// SignOut clears the session and notifies listeners.
func (g *Gate) SignOut() {
	g.mu.Lock()
	wasActive := g.active
	g.current = Session{}
	g.active = false
	listeners := append([]Listener(nil), g.listeners...)
	g.mu.Unlock()

	if !wasActive {
		return
	}
	for _, fn := range listeners {
		fn(Session{}, false)
	}
}

// UserID returns the signed-in user's id, or ErrNoSession.
func (g *Gate) UserID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.active {
		return "", ErrNoSession
	}
	return g.current.UserID, nil
}

// Current returns the session and whether one is active.
func (g *Gate) Current() (Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current, g.active
}

// Require fails fast when no session is held.
func (g *Gate) Require() error {
	_, err := g.UserID()
	return err
}
