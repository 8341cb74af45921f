package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// UserAPI is the part of the client UserStore uses.
type UserAPI interface {
	ListUsers(ctx context.Context, page, limit int) (*domain.Page[domain.User], error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// UserStore holds the user directory of the admin screens.
type UserStore struct {
	api UserAPI
	log zerolog.Logger

	users    Slice[domain.User]
	selected Value[domain.User]
}

// NewUserStore returns an empty user store backed by api.
func NewUserStore(api UserAPI, logger zerolog.Logger) *UserStore {
	return &UserStore{api: api, log: logger.With().Str("store", "user").Logger()}
}

// FetchUsers loads one page of users.
func (s *UserStore) FetchUsers(ctx context.Context, page, limit int) error {
	return s.users.load(s.log, "FetchUsers", msgUsersFailed, func() ([]domain.User, domain.Meta, error) {
		p, err := s.api.ListUsers(ctx, page, limit)
		if err != nil {
			return nil, domain.Meta{}, err
		}
		return p.Items, p.Meta, nil
	})
}

// FetchAllUsers loads the first AllPageSize users.
func (s *UserStore) FetchAllUsers(ctx context.Context) error {
	return s.FetchUsers(ctx, 1, AllPageSize)
}

// FetchUser loads one user into the selected slot.
func (s *UserStore) FetchUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.selected.load(s.log, "FetchUser", msgUsersFailed, func() (*domain.User, error) {
		return s.api.GetUser(ctx, id)
	})
}

// Users returns the user page state.
func (s *UserStore) Users() State[domain.User] { return s.users.Snapshot() }

// Selected returns the user loaded by FetchUser.
func (s *UserStore) Selected() ValueState[domain.User] { return s.selected.Snapshot() }

// Count is the number of users reported by the last successful fetch.
func (s *UserStore) Count() int {
	return s.users.Snapshot().Meta.TotalItems
}

// CountRole counts the loaded users with the given role name.
func (s *UserStore) CountRole(role string) int {
	n := 0
	for _, u := range s.users.Snapshot().Items {
		if u.Role != nil && u.Role.Name == role {
			n++
		}
	}
	return n
}
