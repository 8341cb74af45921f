// Package auth owns the session of the signed-in user.
//
// A Store is created once at startup and handed to the router guard and
// the views; nothing else mutates the session. The credential token lives
// in durable storage, so the HTTP client sees a login or logout on its
// next request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/internal/storage"
	"github.com/qkit-edu/qkit/pkg/domain"
)

// State is the hydration state of the session.
type State int

const (
	Unauthenticated State = iota
	Hydrating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Hydrating:
		return "hydrating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrEmptyToken is returned by SignIn when no token is given.
var ErrEmptyToken = errors.New("auth: empty token")

// API is the part of the QKIT API the session needs.
type API interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
}

// Store is the session state machine. It is safe for concurrent use;
// overlapping hydrations are not fenced and the last response wins.
type Store struct {
	api     API
	storage storage.Store
	log     zerolog.Logger

	mu       sync.RWMutex
	session  domain.Session
	state    State
	loggedIn bool
}

// NewStore returns an unauthenticated store.
func NewStore(api API, st storage.Store, logger zerolog.Logger) *Store {
	return &Store{
		api:     api,
		storage: st,
		log:     logger.With().Str("component", "auth").Logger(),
		session: domain.EmptySession(),
	}
}

// FetchUserProfile hydrates the session from the stored token.
//
// Without a token the store becomes unauthenticated and no request is
// made. On success the session is replaced and the display name and avatar
// are cached in storage. On any failure the store becomes unauthenticated
// but the other session fields keep their previous values. The returned
// error is informational; the state has been updated either way.
func (s *Store) FetchUserProfile(ctx context.Context) error {
	if storage.Token(s.storage) == "" {
		s.mu.Lock()
		s.loggedIn = false
		s.state = Unauthenticated
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.state = Hydrating
	s.mu.Unlock()

	u, err := s.api.GetProfile(ctx)
	if err != nil {
		s.mu.Lock()
		s.loggedIn = false
		s.state = Unauthenticated
		s.mu.Unlock()
		s.log.Debug().Err(err).Msg("profile hydration failed")
		return fmt.Errorf("auth.FetchUserProfile: %w", err)
	}

	sess := domain.SessionFromProfile(u)
	s.mu.Lock()
	s.session = sess
	s.loggedIn = true
	s.state = Authenticated
	s.mu.Unlock()

	if err := s.storage.Set(storage.KeyUserAvatar, sess.Avatar); err != nil {
		s.log.Warn().Err(err).Msg("cache avatar")
	}
	if err := s.storage.Set(storage.KeyUserName, sess.UserName); err != nil {
		s.log.Warn().Err(err).Msg("cache user name")
	}
	s.log.Debug().Str("user", sess.UserName).Str("role", sess.Role.Name).Msg("session hydrated")
	return nil
}

// SignIn stores token as the credential and hydrates the session with it.
// The token is kept even when hydration fails.
func (s *Store) SignIn(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.storage.Set(storage.KeyAuthToken, token); err != nil {
		return fmt.Errorf("auth.SignIn: %w", err)
	}
	return s.FetchUserProfile(ctx)
}

// Logout signs out on the server, then clears the local session
// regardless of the remote outcome. A remote failure is returned only
// after the local teardown is done.
func (s *Store) Logout(ctx context.Context) error {
	var remoteErr error
	if storage.Token(s.storage) != "" {
		if remoteErr = s.api.Logout(ctx); remoteErr != nil {
			s.log.Warn().Err(remoteErr).Msg("remote logout failed, clearing local session anyway")
			remoteErr = fmt.Errorf("auth.Logout: %w", remoteErr)
		}
	}

	s.mu.Lock()
	s.session = domain.EmptySession()
	s.loggedIn = false
	s.state = Unauthenticated
	s.mu.Unlock()

	var storeErr error
	if err := s.storage.Remove(storage.KeyAuthToken, storage.KeyUserName, storage.KeyUserAvatar); err != nil {
		storeErr = fmt.Errorf("auth.Logout: clear storage: %w", err)
	}
	return errors.Join(remoteErr, storeErr)
}

// Session returns a copy of the current session.
func (s *Store) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// State returns the hydration state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoggedIn reports whether the last hydration succeeded.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// IsAdmin reports whether the session role is admin.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAdmin()
}

// IsTeacher reports whether the session role is teacher.
func (s *Store) IsTeacher() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsTeacher()
}

// CachedIdentity returns the display name and avatar cached by the last
// successful hydration, for painting before the profile request returns.
func (s *Store) CachedIdentity() (name, avatar string) {
	name, _ = s.storage.Get(storage.KeyUserName)
	avatar, ok := s.storage.Get(storage.KeyUserAvatar)
	if !ok || avatar == "" {
		avatar = domain.DefaultAvatar
	}
	return name, avatar
}
