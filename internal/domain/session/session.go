// Package session models the admin session as an explicit state machine
// whose token lives in a pluggable store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// TokenKey is the store key of the bearer token
const TokenKey = "adminToken"

// State of an admin session
type State int

// Session states
const (
	Unknown State = iota
	Checking
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrInvalidTransition is returned for transitions the machine does not allow
	ErrInvalidTransition = errors.New("session: invalid state transition")
	// ErrNoValue is returned by stores for missing keys
	ErrNoValue = errors.New("session: no value")
	// ErrEmptyToken is returned when a login yields no token
	ErrEmptyToken = errors.New("session: backend returned an empty token")
	// ErrInvalidID is returned when rotating to an empty or unchanged ID
	ErrInvalidID = errors.New("session: invalid session id")
)

// TokenStore persists per-session values. Implementations must be safe for
// concurrent use.
type TokenStore interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}

// Backend checks tokens and exchanges credentials for tokens
type Backend interface {
	Validate(ctx context.Context, token string) (bool, error)
	Login(ctx context.Context, username, password string) (string, error)
}

var transitions = map[State][]State{
	Unknown:         {Checking, Unauthenticated},
	Checking:        {Authenticated, Unauthenticated},
	Authenticated:   {Authenticated, Unauthenticated},
	Unauthenticated: {Authenticated, Unauthenticated},
}

// Session is one browser's admin session
type Session struct {
	id    string
	store TokenStore

	mu    sync.Mutex
	state State
	token string
}

// New creates a session in the Unknown state
func New(id string, store TokenStore) *Session {
	return &Session{id: id, store: store}
}

// ID returns the session identifier
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether admin routes may render
func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Token returns the bearer token of an authenticated session
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return ""
	}
	return s.token
}

func (s *Session) transition(to State) error {
	for _, allowed := range transitions[s.state] {
		if allowed == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
}

// Boot resolves an Unknown session. Without a stored token it becomes
// Unauthenticated without calling the backend. Otherwise the token is
// validated; anything but a positive answer clears it.
func (s *Session) Boot(ctx context.Context, backend Backend) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Unknown {
		return s.state, fmt.Errorf("%w: boot from %s", ErrInvalidTransition, s.state)
	}

	token, err := s.store.Get(ctx, s.id, TokenKey)
	if err != nil && !errors.Is(err, ErrNoValue) {
		_ = s.transition(Unauthenticated)
		return s.state, fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return s.state, s.transition(Unauthenticated)
	}

	if err := s.transition(Checking); err != nil {
		return s.state, err
	}

	valid, verr := backend.Validate(ctx, token)
	if verr == nil && valid {
		s.token = token
		return s.state, s.transition(Authenticated)
	}

	s.token = ""
	_ = s.transition(Unauthenticated)
	if err := s.store.Delete(ctx, s.id, TokenKey); err != nil {
		return s.state, fmt.Errorf("clear token: %w", err)
	}
	return s.state, verr
}

// Resume marks a session Authenticated from a token that was validated
// recently, skipping the backend round trip.
func (s *Session) Resume(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Unknown || token == "" {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, s.state)
	}
	s.state = Checking
	s.token = token
	return s.transition(Authenticated)
}

// Login exchanges credentials for a token, persists it and authenticates
// the session. On failure the state is left unchanged.
func (s *Session) Login(ctx context.Context, backend Backend, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unknown || s.state == Checking {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, s.state)
	}

	token, err := backend.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.store.Set(ctx, s.id, TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.token = token
	return s.transition(Authenticated)
}

// Logout clears the token and ends in Unauthenticated
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unknown || s.state == Checking {
		return fmt.Errorf("%w: logout from %s", ErrInvalidTransition, s.state)
	}

	s.token = ""
	if err := s.transition(Unauthenticated); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.id, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Rotate moves the session to newID. The token of an authenticated session
// is stored under newID and removed from the old ID, so the old ID no
// longer resolves to anything.
func (s *Session) Rotate(ctx context.Context, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newID == "" || newID == s.id {
		return fmt.Errorf("%w: %q", ErrInvalidID, newID)
	}
	if s.state == Authenticated {
		if err := s.store.Set(ctx, newID, TokenKey, s.token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}
	if err := s.store.Delete(ctx, s.id, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.id = newID
	return nil
}
