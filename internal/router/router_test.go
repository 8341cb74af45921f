package router

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
)

// fakeSession is a scripted SessionSource.
type fakeSession struct {
	loggedIn bool
	admin    bool
	err      error
	fetches  int
}

func (f *fakeSession) FetchUserProfile(context.Context) error {
	f.fetches++
	return f.err
}

func (f *fakeSession) IsLoggedIn() bool { return f.loggedIn }
func (f *fakeSession) IsAdmin() bool { return f.admin }

func newAppRouter(s *fakeSession) *Router {
	r := New(Routes())
	r.BeforeEach(AuthGuard(s, zerolog.Nop()))
	return r
}

func TestResolve(t *testing.T) {
	r := New(Routes())
	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{"/", RouteHome, nil},
		{"", RouteHome, nil},
		{"/courses", RouteCourses, nil},
		{"/courses/", RouteCourses, nil},
		{"/courses/42", RouteCourseDetails, map[string]string{"id": "42"}},
		{"/courses/learn/42", RouteCourseLearn, map[string]string{"id": "42"}},
		{"/courses/quiz/9", RouteQuiz, map[string]string{"lessonId": "9"}},
		{"/course-teacher/courses/1/2/lessons", RouteCreateLesson, map[string]string{"courseId": "1", "chapterId": "2"}},
		{"/course-teacher/courses/1/2/3", RouteEditLesson, map[string]string{"courseId": "1", "chapterId": "2", "lessonId": "3"}},
		{"/course-teacher/courses/1/create-chapter", RouteCreateChapter, map[string]string{"courseId": "1"}},
		{"/verify-email", RouteVerifyEmail, nil},
		{"/admin", RouteAdmin, nil},
		{"/no/such/page", RouteNotFound, map[string]string{"pathMatch": "no/such/page"}},
		{"/courses/1/extra", RouteNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			loc := r.Resolve(tt.path)
			if loc.Name != tt.name {
				t.Fatalf("Resolve(%q).Name = %q, want %q", tt.path, loc.Name, tt.name)
			}
			for k, v := range tt.params {
				if got := loc.Param(k); got != v {
					t.Errorf("param %s = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestResolve_KeepsQuery(t *testing.T) {
	r := New(Routes())
	loc := r.Resolve("/courses?page=2&limit=10")
	if loc.FullPath != "/courses?page=2&limit=10" {
		t.Errorf("FullPath = %q", loc.FullPath)
	}
	if loc.Path != "/courses" {
		t.Errorf("Path = %q", loc.Path)
	}
	if loc.Query.Get("page") != "2" {
		t.Errorf("page = %q, want 2", loc.Query.Get("page"))
	}
}

func TestResolve_InheritsMeta(t *testing.T) {
	r := New([]Route{
		{Path: "/admin", Meta: Meta{RequiresAuth: true, RequiresAdmin: true, Title: "Admin"}, Children: []Route{
			{Path: "reports", Name: "reports"},
			{Path: "users", Name: "users", Meta: Meta{Title: "Users"}},
		}},
	})

	reports := r.Resolve("/admin/reports")
	m := reports.Meta()
	if !m.RequiresAuth || !m.RequiresAdmin {
		t.Errorf("Meta() = %+v, want inherited flags", m)
	}
	if Title(reports) != "Admin | "+AppTitle {
		t.Errorf("Title = %q", Title(reports))
	}
	if got := Title(r.Resolve("/admin/users")); got != "Users | "+AppTitle {
		t.Errorf("Title = %q, want the deepest title", got)
	}
	if len(reports.Matched) != 2 {
		t.Errorf("len(Matched) = %d, want 2", len(reports.Matched))
	}
}

func TestResolveNamed(t *testing.T) {
	r := New(Routes())
	loc, err := r.ResolveNamed(RouteLogin, nil, url.Values{"redirect": {"/cart?x=1"}})
	if err != nil {
		t.Fatalf("ResolveNamed() error: %v", err)
	}
	if loc.Path != "/login" || loc.Query.Get("redirect") != "/cart?x=1" {
		t.Errorf("loc = %+v", loc)
	}

	loc, err = r.ResolveNamed(RouteCourseDetails, map[string]string{"id": "a b"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != "/courses/a%20b" || loc.Param("id") != "a b" {
		t.Errorf("Path = %q, id = %q", loc.Path, loc.Param("id"))
	}

	if _, err := r.ResolveNamed("nope", nil, nil); err == nil {
		t.Error("expected UnknownRouteError")
	}
	var mp *MissingParamError
	if _, err := r.ResolveNamed(RouteQuiz, nil, nil); !errors.As(err, &mp) {
		t.Errorf("error = %v, want MissingParamError", err)
	} else if mp.Param != "lessonId" {
		t.Errorf("Param = %q", mp.Param)
	}
}

func TestTitle(t *testing.T) {
	r := New(Routes())
	if got := Title(r.Resolve("/courses")); got != "Courses | QKIT E-Learning" {
		t.Errorf("Title = %q", got)
	}
	if got := Title(Start); got != "QKIT E-Learning" {
		t.Errorf("Title(Start) = %q", got)
	}
}

func TestAuthGuard_RequiresAuthRedirectsToLogin(t *testing.T) {
	s := &fakeSession{}
	r := newAppRouter(s)

	nav, err := r.Push(context.Background(), "/cart?coupon=X1")
	if err != nil {
		t.Fatalf("Push() error: %v", err)
	}
	if nav.To.Name != RouteLogin {
		t.Fatalf("To = %q, want login", nav.To.Name)
	}
	if got := nav.To.Query.Get(QueryRedirect); got != "/cart?coupon=X1" {
		t.Errorf("redirect = %q, want the original full path", got)
	}
	if !nav.Redirected {
		t.Error("Redirected = false")
	}
	if nav.Title != "Login | QKIT E-Learning" {
		t.Errorf("Title = %q", nav.Title)
	}
}

func TestAuthGuard_HydratesEveryNavigation(t *testing.T) {
	s := &fakeSession{loggedIn: true}
	r := newAppRouter(s)
	r.Push(context.Background(), "/courses") //nolint:errcheck
	r.Push(context.Background(), "/roadmap") //nolint:errcheck
	if s.fetches != 2 {
		t.Errorf("fetches = %d, want 2", s.fetches)
	}
}

func TestAuthGuard_HydrationErrorIsSwallowed(t *testing.T) {
	s := &fakeSession{err: errors.New("network down")}
	r := newAppRouter(s)
	nav, err := r.Push(context.Background(), "/courses")
	if err != nil {
		t.Fatalf("Push() error: %v", err)
	}
	if nav.To.Name != RouteCourses {
		t.Errorf("To = %q, want courses", nav.To.Name)
	}
}

func TestAuthGuard_GuestOnly(t *testing.T) {
	s := &fakeSession{loggedIn: true}
	r := newAppRouter(s)
	for _, p := range []string{"/login", "/signup", "/verify-email"} {
		nav, err := r.Push(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		if nav.To.Name != RouteHome {
			t.Errorf("%s: To = %q, want home", p, nav.To.Name)
		}
	}
}

func TestAuthGuard_RequiresAdmin(t *testing.T) {
	tests := []struct {
		name     string
		session  fakeSession
		wantName string
	}{
		{"anonymous", fakeSession{}, RouteLogin},
		{"student", fakeSession{loggedIn: true}, RouteHome},
		{"admin", fakeSession{loggedIn: true, admin: true}, RouteAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session
			r := newAppRouter(&s)
			nav, err := r.Push(context.Background(), "/admin")
			if err != nil {
				t.Fatal(err)
			}
			if nav.To.Name != tt.wantName {
				t.Errorf("To = %q, want %q", nav.To.Name, tt.wantName)
			}
		})
	}
}

func TestAuthGuard_PublicRouteProceeds(t *testing.T) {
	r := newAppRouter(&fakeSession{})
	nav, err := r.Push(context.Background(), "/courses/7")
	if err != nil {
		t.Fatal(err)
	}
	if nav.Redirected || nav.To.Param("id") != "7" {
		t.Errorf("nav = %+v", nav)
	}
}

func TestRedirectLoop(t *testing.T) {
	r := New(Routes())
	r.BeforeEach(func(_ context.Context, to, _ Location) Decision {
		if to.Name == RouteHome {
			return RedirectTo(Target{Name: RouteCourses})
		}
		return RedirectTo(Target{Name: RouteHome})
	})
	_, err := r.Push(context.Background(), "/")
	if !errors.Is(err, ErrRedirectLoop) {
		t.Fatalf("error = %v, want ErrRedirectLoop", err)
	}
	if r.Current().FullPath != Start.FullPath || r.CanBack() {
		t.Error("failed navigation must not touch the history")
	}
}

func TestGuardsRunInOrder(t *testing.T) {
	r := New(Routes())
	var order []int
	r.BeforeEach(func(context.Context, Location, Location) Decision {
		order = append(order, 1)
		return Proceed()
	})
	r.BeforeEach(func(_ context.Context, to, _ Location) Decision {
		order = append(order, 2)
		if to.Name == RouteRoadmap {
			return RedirectTo(Target{Path: "/courses", Query: url.Values{"from": {"roadmap"}}})
		}
		return Proceed()
	})
	nav, err := r.Push(context.Background(), "/roadmap")
	if err != nil {
		t.Fatal(err)
	}
	if nav.To.FullPath != "/courses?from=roadmap" {
		t.Errorf("To = %q", nav.To.FullPath)
	}
	want := []int{1, 2, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestHistory_ScrollRestoredOnBackOnly(t *testing.T) {
	r := newAppRouter(&fakeSession{})
	ctx := context.Background()

	if _, err := r.Push(ctx, "/courses"); err != nil {
		t.Fatal(err)
	}
	r.SaveScroll(12)
	nav, err := r.Push(ctx, "/courses/3")
	if err != nil {
		t.Fatal(err)
	}
	if nav.Scroll != 0 {
		t.Errorf("push Scroll = %d, want 0", nav.Scroll)
	}
	if nav.From.Name != RouteCourses {
		t.Errorf("From = %q", nav.From.Name)
	}
	r.SaveScroll(4)

	nav, err = r.Back(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if nav.To.Name != RouteCourses || nav.Scroll != 12 {
		t.Errorf("back: To = %q Scroll = %d, want courses 12", nav.To.Name, nav.Scroll)
	}
	if !r.CanForward() {
		t.Fatal("CanForward() = false after Back")
	}

	nav, err = r.Forward(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if nav.To.Param("id") != "3" || nav.Scroll != 4 {
		t.Errorf("forward: To = %q Scroll = %d", nav.To.FullPath, nav.Scroll)
	}

	nav, err = r.Replace(ctx, "/roadmap")
	if err != nil {
		t.Fatal(err)
	}
	if nav.Scroll != 0 {
		t.Errorf("replace Scroll = %d, want 0", nav.Scroll)
	}
	r.Back(ctx) //nolint:errcheck
	if _, err := r.Back(ctx); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Back at start = %v, want ErrNoHistory", err)
	}
}

func TestHistory_PushTruncatesForward(t *testing.T) {
	r := New(Routes())
	ctx := context.Background()
	r.Push(ctx, "/courses") //nolint:errcheck
	r.Push(ctx, "/roadmap") //nolint:errcheck
	r.Back(ctx)             //nolint:errcheck
	r.Push(ctx, "/cart")    //nolint:errcheck
	if r.CanForward() {
		t.Error("CanForward() = true after push")
	}
	if r.Current().Name != RouteCart {
		t.Errorf("Current = %q", r.Current().Name)
	}
}

func TestBack_GuardRedirectReplacesEntry(t *testing.T) {
	s := &fakeSession{loggedIn: true}
	r := newAppRouter(s)
	ctx := context.Background()
	r.Push(ctx, "/cart")    //nolint:errcheck
	r.Push(ctx, "/courses") //nolint:errcheck

	s.loggedIn = false
	nav, err := r.Back(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if nav.To.Name != RouteLogin {
		t.Errorf("To = %q, want login", nav.To.Name)
	}
	if r.Current().Name != RouteLogin {
		t.Errorf("Current = %q", r.Current().Name)
	}
}

func TestPush_CancelledContext(t *testing.T) {
	r := New(Routes())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Push(ctx, "/courses"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
