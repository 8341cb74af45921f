package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultMaxRedirects bounds how many guard redirects one navigation may
// follow.
const DefaultMaxRedirects = 8

var (
	// ErrRedirectLoop is returned when guards keep redirecting.
	ErrRedirectLoop = errors.New("router: too many redirects")
	// ErrNoHistory is returned by Back and Forward at either end of the
	// history.
	ErrNoHistory = errors.New("router: no history entry")
)

// UnknownRouteError is returned when a named route does not exist.
type UnknownRouteError struct {
	Name string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("router: unknown route %q", e.Name)
}

// MissingParamError is returned when a named route is built without one
// of its path params.
type MissingParamError struct {
	Route string
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("router: route %q: missing param %q", e.Route, e.Param)
}

// Target is where a guard sends a navigation instead. Name takes
// precedence over Path.
type Target struct {
	Name   string
	Path   string
	Params map[string]string
	Query  url.Values
}

// Decision is the outcome of a guard: proceed, or redirect to a target.
type Decision struct {
	Redirect *Target
}

// Proceed lets the navigation continue.
func Proceed() Decision { return Decision{} }

// RedirectTo restarts the navigation with t as the target.
func RedirectTo(t Target) Decision { return Decision{Redirect: &t} }

// Guard runs before every transition.
type Guard func(ctx context.Context, to, from Location) Decision

// Navigation describes a completed transition.
type Navigation struct {
	To         Location
	From       Location
	Redirected bool
	Title      string
	// Scroll is the position the view should restore: 0, or the saved
	// position when going back or forward.
	Scroll int
}

type entry struct {
	loc    Location
	scroll int
}

// Router resolves paths and keeps the history. It is safe for concurrent
// use; guards run outside the lock.
type Router struct {
	records      []*record
	byName       map[string]*record
	log          zerolog.Logger
	maxRedirects int

	mu      sync.Mutex
	guards  []Guard
	entries []entry
	index   int
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the navigation logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// WithMaxRedirects overrides DefaultMaxRedirects.
func WithMaxRedirects(n int) Option {
	return func(r *Router) { r.maxRedirects = n }
}

// New builds a router over routes. The table is static afterwards.
func New(routes []Route, opts ...Option) *Router {
	r := &Router{
		byName:       map[string]*record{},
		log:          zerolog.Nop(),
		maxRedirects: DefaultMaxRedirects,
		index:        -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.records = flatten(routes, "", nil, nil)
	for _, rec := range r.records {
		if rec.name != "" {
			r.byName[rec.name] = rec
		}
	}
	rank(r.records)
	return r
}

// BeforeEach registers a guard. Guards run in registration order and the
// first redirect wins.
func (r *Router) BeforeEach(g Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

// Resolve matches fullPath ("/courses/3?tab=info") against the table.
// An unmatched path yields a location with no name and no matched chain.
func (r *Router) Resolve(fullPath string) Location {
	raw := fullPath
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	p, rawQuery, _ := strings.Cut(raw, "?")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		r.log.Debug().Err(err).Str("path", fullPath).Msg("bad query string")
	}
	loc := Location{Path: p, FullPath: p, Query: query, Params: map[string]string{}}
	if rawQuery != "" {
		loc.FullPath = p + "?" + rawQuery
	}

	parts := splitPath(p)
	for _, rec := range r.records {
		params, ok := rec.match(parts)
		if !ok {
			continue
		}
		loc.Name = rec.name
		loc.View = rec.view
		loc.Params = params
		loc.Matched = rec.chain
		return loc
	}
	return loc
}

// ResolveNamed builds the location of a named route.
func (r *Router) ResolveNamed(name string, params map[string]string, query url.Values) (Location, error) {
	rec, ok := r.byName[name]
	if !ok {
		return Location{}, &UnknownRouteError{Name: name}
	}
	p, err := rec.build(params)
	if err != nil {
		return Location{}, err
	}
	if len(query) > 0 {
		p += "?" + query.Encode()
	}
	return r.Resolve(p), nil
}

// Current returns the active location, or Start before the first
// navigation.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index < 0 {
		return Start
	}
	return r.entries[r.index].loc
}

// CanBack reports whether Back has an entry to go to.
func (r *Router) CanBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index > 0
}

// CanForward reports whether Forward has an entry to go to.
func (r *Router) CanForward() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index >= 0 && r.index < len(r.entries)-1
}

// SaveScroll records the scroll position of the active entry so Back and
// Forward can restore it.
func (r *Router) SaveScroll(pos int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index >= 0 {
		r.entries[r.index].scroll = pos
	}
}

// Push navigates to fullPath and adds a history entry.
func (r *Router) Push(ctx context.Context, fullPath string) (Navigation, error) {
	nav, err := r.transition(ctx, r.Resolve(fullPath))
	if err != nil {
		return Navigation{}, err
	}
	r.mu.Lock()
	r.entries = append(r.entries[:r.index+1], entry{loc: nav.To})
	r.index = len(r.entries) - 1
	r.mu.Unlock()
	r.logNav("push", nav)
	return nav, nil
}

// PushNamed navigates to a named route.
func (r *Router) PushNamed(ctx context.Context, name string, params map[string]string, query url.Values) (Navigation, error) {
	loc, err := r.ResolveNamed(name, params, query)
	if err != nil {
		return Navigation{}, err
	}
	return r.Push(ctx, loc.FullPath)
}

// Replace navigates to fullPath, replacing the active history entry.
func (r *Router) Replace(ctx context.Context, fullPath string) (Navigation, error) {
	nav, err := r.transition(ctx, r.Resolve(fullPath))
	if err != nil {
		return Navigation{}, err
	}
	r.mu.Lock()
	if r.index < 0 {
		r.entries = []entry{{loc: nav.To}}
		r.index = 0
	} else {
		r.entries[r.index] = entry{loc: nav.To}
	}
	r.mu.Unlock()
	r.logNav("replace", nav)
	return nav, nil
}

// Back goes to the previous history entry and restores its scroll
// position. Guards run again for the entry; if they redirect, the entry
// is replaced by the redirect target.
func (r *Router) Back(ctx context.Context) (Navigation, error) {
	return r.step(ctx, -1)
}

// Forward is the inverse of Back.
func (r *Router) Forward(ctx context.Context) (Navigation, error) {
	return r.step(ctx, 1)
}

func (r *Router) step(ctx context.Context, delta int) (Navigation, error) {
	r.mu.Lock()
	next := r.index + delta
	if r.index < 0 || next < 0 || next >= len(r.entries) {
		r.mu.Unlock()
		return Navigation{}, ErrNoHistory
	}
	target := r.entries[next]
	r.mu.Unlock()

	nav, err := r.transition(ctx, r.Resolve(target.loc.FullPath))
	if err != nil {
		return Navigation{}, err
	}

	r.mu.Lock()
	r.index = next
	if nav.Redirected {
		r.entries[next] = entry{loc: nav.To}
	} else {
		nav.Scroll = r.entries[next].scroll
	}
	r.mu.Unlock()

	if delta < 0 {
		r.logNav("back", nav)
	} else {
		r.logNav("forward", nav)
	}
	return nav, nil
}

// transition runs the guards against to, following redirects, without
// touching the history.
func (r *Router) transition(ctx context.Context, to Location) (Navigation, error) {
	from := r.Current()
	r.mu.Lock()
	guards := append([]Guard(nil), r.guards...)
	r.mu.Unlock()

	redirected := false
	for hops := 0; ; hops++ {
		if err := ctx.Err(); err != nil {
			return Navigation{}, fmt.Errorf("router: navigate %s: %w", to.FullPath, err)
		}
		t := runGuards(ctx, guards, to, from)
		if t == nil {
			break
		}
		if hops >= r.maxRedirects {
			return Navigation{}, fmt.Errorf("router: navigate %s: %w", to.FullPath, ErrRedirectLoop)
		}
		next, err := r.resolveTarget(*t)
		if err != nil {
			return Navigation{}, fmt.Errorf("router: redirect from %s: %w", to.FullPath, err)
		}
		r.log.Debug().Str("from", to.FullPath).Str("to", next.FullPath).Msg("guard redirect")
		to = next
		redirected = true
	}
	return Navigation{To: to, From: from, Redirected: redirected, Title: Title(to)}, nil
}

func runGuards(ctx context.Context, guards []Guard, to, from Location) *Target {
	for _, g := range guards {
		if d := g(ctx, to, from); d.Redirect != nil {
			return d.Redirect
		}
	}
	return nil
}

func (r *Router) resolveTarget(t Target) (Location, error) {
	if t.Name != "" {
		return r.ResolveNamed(t.Name, t.Params, t.Query)
	}
	p := t.Path
	if len(t.Query) > 0 {
		p += "?" + t.Query.Encode()
	}
	return r.Resolve(p), nil
}

func (r *Router) logNav(kind string, nav Navigation) {
	r.log.Debug().
		Str("kind", kind).
		Str("from", nav.From.FullPath).
		Str("to", nav.To.FullPath).
		Str("route", nav.To.Name).
		Bool("redirected", nav.Redirected).
		Msg("navigated")
}
