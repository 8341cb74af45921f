package tui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/qkit-edu/qkit/internal/auth"
	"github.com/qkit-edu/qkit/internal/router"
	"github.com/qkit-edu/qkit/internal/storage"
	"github.com/qkit-edu/qkit/pkg/client"
	"github.com/qkit-edu/qkit/pkg/domain"
)

type guardSession struct {
	loggedIn bool
	admin    bool
}

func (g *guardSession) FetchUserProfile(context.Context) error { return nil }
func (g *guardSession) IsLoggedIn() bool { return g.loggedIn }
func (g *guardSession) IsAdmin() bool { return g.admin }

func newTestApp(s *guardSession) App {
	r := router.New(router.Routes())
	if s != nil {
		r.BeforeEach(router.AuthGuard(s, zerolog.Nop()))
	}
	a := NewApp(Deps{Router: r, WebURL: "https://qkit.edu.vn", PageSize: 10})
	a.width = 100
	a.height = 40
	return a
}

// drive runs cmd and feeds navigation messages back into the app until the
// chain settles. View load commands are nil without stores.
func drive(a App, cmd tea.Cmd) App {
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		switch msg.(type) {
		case navigateMsg, historyMsg, navigatedMsg, logoutDoneMsg:
		default:
			return a
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a
}

func press(a App, k string) App {
	m, cmd := a.Update(key(k))
	return drive(m.(App), cmd)
}

func TestAppStartsAtStartPath(t *testing.T) {
	a := newTestApp(nil)
	a = drive(a, a.navigate("/courses?page=2", false))
	if a.loc.View != router.ViewCourses {
		t.Fatalf("view = %q", a.loc.View)
	}
	if a.courses.page() != 2 {
		t.Errorf("page = %d, want 2 from the query", a.courses.page())
	}
	if a.title != "Courses | QKIT E-Learning" {
		t.Errorf("title = %q", a.title)
	}
}

func TestAppScreenKeys(t *testing.T) {
	tests := []struct {
		key  string
		view string
		path string
	}{
		{"1", router.ViewHome, "/"},
		{"2", router.ViewCourses, "/courses"},
		{"3", router.ViewMyCourses, "/course-student"},
		{"4", router.ViewAdmin, "/admin"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a := newTestApp(nil)
			a = drive(a, a.navigate("/roadmap", false))
			a = press(a, tc.key)
			if a.loc.View != tc.view || a.loc.Path != tc.path {
				t.Errorf("got view %q path %q", a.loc.View, a.loc.Path)
			}
		})
	}
}

func TestAppGuardRedirectsToLogin(t *testing.T) {
	a := newTestApp(&guardSession{})
	a = drive(a, a.navigate("/admin", false))
	if a.loc.View != router.ViewLogin {
		t.Fatalf("view = %q, want login", a.loc.View)
	}
	if a.login.redirect != "/admin" {
		t.Errorf("redirect = %q", a.login.redirect)
	}
}

func TestAppNonAdminSentHome(t *testing.T) {
	a := newTestApp(&guardSession{loggedIn: true})
	a = drive(a, a.navigate("/usersmanager", false))
	if a.loc.Name != router.RouteHome {
		t.Errorf("route = %q, want home", a.loc.Name)
	}
}

func TestAppRouteViews(t *testing.T) {
	tests := []struct {
		path  string
		check func(App) bool
	}{
		{"/courses/7", func(a App) bool { return a.course.id == 7 && !a.course.learn }},
		{"/courses/learn/7", func(a App) bool { return a.course.learn }},
		{"/courses/quiz/11", func(a App) bool { return a.quiz.lessonID == 11 }},
		{"/coursesmanager", func(a App) bool { return a.courses.manage }},
		{"/teachersmanager", func(a App) bool { return a.users.role == domain.RoleTeacher }},
		{"/usersmanager", func(a App) bool { return a.users.role == "" }},
		{"/course-teacher", func(a App) bool { return a.myCourses.teacher }},
		{"/course-student", func(a App) bool { return !a.myCourses.teacher }},
		{"/payment", func(a App) bool { return a.page.loc.Name == router.RoutePayment && !a.page.notFound }},
		{"/no/such/page", func(a App) bool { return a.page.notFound }},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			a := newTestApp(nil)
			a = drive(a, a.navigate(tc.path, false))
			if !tc.check(a) {
				t.Errorf("unexpected state for %s: view %q", tc.path, a.loc.View)
			}
		})
	}
}

func TestAppBackRestoresScroll(t *testing.T) {
	a := newTestApp(nil)
	a = drive(a, a.navigate("/", false))
	m, _ := a.Update(homeLoadedMsg{})
	a = m.(App)
	a.home.courses = sampleCourses()
	a.home.cursor = 1

	a = press(a, "2")
	if a.loc.View != router.ViewCourses {
		t.Fatalf("view = %q", a.loc.View)
	}
	a = press(a, "esc")
	if a.loc.View != router.ViewHome {
		t.Fatalf("view = %q after back", a.loc.View)
	}
	if a.home.cursor != 1 {
		t.Errorf("cursor = %d, want restored 1", a.home.cursor)
	}

	a = press(a, "]")
	if a.loc.View != router.ViewCourses {
		t.Errorf("view = %q after forward", a.loc.View)
	}
}

func TestAppBackWithoutHistoryIsQuiet(t *testing.T) {
	a := newTestApp(nil)
	a = drive(a, a.navigate("/", false))
	a = press(a, "esc")
	if a.navErr != "" || a.loc.View != router.ViewHome {
		t.Errorf("navErr = %q view = %q", a.navErr, a.loc.View)
	}
}

func TestAppGotoPrompt(t *testing.T) {
	a := newTestApp(nil)
	a = drive(a, a.navigate("/", false))
	// Typing goes through Update directly: the prompt's cursor blink
	// commands would otherwise sleep.
	m, _ := a.Update(key("g"))
	a = m.(App)
	if !a.gotoOpen || !a.isEditing() {
		t.Fatal("expected the goto prompt")
	}
	for _, r := range "courses/9" {
		m, _ = a.Update(key(string(r)))
		a = m.(App)
	}
	// Screen keys are typed into the prompt, not handled.
	if a.loc.View != router.ViewHome {
		t.Fatalf("view changed while typing: %q", a.loc.View)
	}
	m, cmd := a.Update(key("enter"))
	a = drive(m.(App), cmd)
	if a.gotoOpen {
		t.Error("prompt should close")
	}
	if a.loc.Path != "/courses/9" || a.course.id != 9 {
		t.Errorf("path = %q id = %d", a.loc.Path, a.course.id)
	}
}

func TestAppSignInKeyCarriesRedirect(t *testing.T) {
	a := newTestApp(&guardSession{})
	a = drive(a, a.navigate("/courses?page=3", false))
	a = press(a, "L")
	if a.loc.View != router.ViewLogin {
		t.Fatalf("view = %q", a.loc.View)
	}
	if a.login.redirect != "/courses?page=3" {
		t.Errorf("redirect = %q", a.login.redirect)
	}
	// Esc leaves the login form even though it captures typing.
	a = press(a, "esc")
	if a.loc.View != router.ViewCourses {
		t.Errorf("view = %q after esc", a.loc.View)
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(nil)
	a = drive(a, a.navigate("/", false))
	_, cmd := a.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q'")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(nil)
	a = drive(a, a.navigate("/", false))
	a = press(a, "?")
	if !a.helpOpen || !strings.Contains(a.View(), "Course catalog") {
		t.Fatalf("expected help overlay, got:\n%s", a.View())
	}
	a = press(a, "?")
	if a.helpOpen {
		t.Error("help should toggle off")
	}
}

func TestAppNavigationErrorShown(t *testing.T) {
	a := newTestApp(nil)
	m, _ := a.Update(navigatedMsg{err: router.ErrRedirectLoop})
	a = m.(App)
	if !strings.Contains(a.View(), router.ErrRedirectLoop.Error()) {
		t.Errorf("got:\n%s", a.View())
	}
}

func TestAppSignedInSessionFromAuthStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile":
			fmt.Fprint(w, `{"id":1,"userName":"root","email":"root@qkit.vn","role":{"id":1,"name":"admin"}}`)
		case "/auth/logout":
			fmt.Fprint(w, `{}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	st, err := storage.Open(afero.NewMemMapFs(), "/data/storage.json")
	if err != nil {
		t.Fatal(err)
	}
	st.Set(storage.KeyAuthToken, "tok") //nolint:errcheck
	as := auth.NewStore(client.New(srv.URL, storage.TokenSource(st)), st, zerolog.Nop())

	r := router.New(router.Routes())
	r.BeforeEach(router.AuthGuard(as, zerolog.Nop()))
	a := NewApp(Deps{Auth: as, Router: r})
	a.width = 100

	a = drive(a, a.navigate("/admin", false))
	if a.loc.View != router.ViewAdmin {
		t.Fatalf("view = %q, want admin", a.loc.View)
	}
	if !a.loggedIn || a.session.UserName != "root" {
		t.Errorf("session = %+v loggedIn = %v", a.session, a.loggedIn)
	}
	if !strings.Contains(a.View(), "root") {
		t.Errorf("header should show the user, got:\n%s", a.View())
	}

	// L signs out and lands on home.
	a = press(a, "L")
	if a.loggedIn || a.loc.Name != router.RouteHome {
		t.Errorf("loggedIn = %v route = %q", a.loggedIn, a.loc.Name)
	}
	if storage.Token(st) != "" {
		t.Error("token should be removed")
	}
}
