package router

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// SessionSource is what AuthGuard needs from the auth store.
type SessionSource interface {
	FetchUserProfile(ctx context.Context) error
	IsLoggedIn() bool
	IsAdmin() bool
}

// AuthGuard re-hydrates the session before every transition and applies
// the route flags of the whole matched chain, first match wins:
//
//   - requiresAuth while signed out: to "login" with redirect=<full path>
//   - guestOnly while signed in: to "home"
//   - requiresAdmin without an admin session: to "home"
//
// Hydration errors are logged and otherwise ignored; the session flags
// already reflect the failure.
func AuthGuard(s SessionSource, logger zerolog.Logger) Guard {
	return func(ctx context.Context, to, _ Location) Decision {
		if err := s.FetchUserProfile(ctx); err != nil {
			logger.Warn().Err(err).Str("to", to.FullPath).Msg("failed to fetch user profile")
		}

		meta := to.Meta()
		loggedIn := s.IsLoggedIn()
		switch {
		case meta.RequiresAuth && !loggedIn:
			return RedirectTo(Target{Name: RouteLogin, Query: url.Values{QueryRedirect: {to.FullPath}}})
		case meta.GuestOnly && loggedIn:
			return RedirectTo(Target{Name: RouteHome})
		case meta.RequiresAdmin && (!loggedIn || !s.IsAdmin()):
			return RedirectTo(Target{Name: RouteHome})
		}
		return Proceed()
	}
}
