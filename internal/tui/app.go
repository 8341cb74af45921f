package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/internal/auth"
	"github.com/qkit-edu/qkit/internal/router"
	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

// Deps wires the terminal UI to the rest of the client.
type Deps struct {
	Auth      *auth.Store
	Stores    *store.Stores
	Router    *router.Router
	WebURL    string
	PageSize  int
	StartPath string
	Log       zerolog.Logger
}

// navigateMsg asks the app to push (or replace) a path.
type navigateMsg struct {
	path    string
	replace bool
}

// historyMsg asks the app to go back or forward.
type historyMsg struct {
	forward bool
}

// navigatedMsg carries a finished transition and the session as the
// guards left it.
type navigatedMsg struct {
	nav      router.Navigation
	session  domain.Session
	loggedIn bool
	err      error
}

type logoutDoneMsg struct {
	err error
}

func navigateTo(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

func replaceTo(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path, replace: true} }
}

// App is the root Bubbletea model.
type App struct {
	auth   *auth.Store
	stores *store.Stores
	router *router.Router
	log    zerolog.Logger
	start  string

	loc      router.Location
	title    string
	session  domain.Session
	loggedIn bool
	navErr   string
	routing  bool

	home      homeModel
	courses   coursesModel
	course    courseModel
	quiz      quizModel
	login     loginModel
	myCourses myCoursesModel
	admin     adminModel
	users     usersModel
	page      pageModel

	spin     spinner.Model
	gotoOpen bool
	gotoIn   textinput.Model
	helpOpen bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates the TUI application.
func NewApp(d Deps) App {
	start := d.StartPath
	if start == "" {
		start = "/"
	}
	gi := textinput.New()
	gi.Prompt = "go to "
	gi.Placeholder = "/courses/12"
	gi.CharLimit = 256

	var authn Authenticator
	if d.Auth != nil {
		authn = d.Auth
	}
	return App{
		auth:      d.Auth,
		stores:    d.Stores,
		router:    d.Router,
		log:       d.Log,
		start:     start,
		session:   domain.EmptySession(),
		home:      newHomeModel(d.Stores),
		courses:   newCoursesModel(d.Stores, d.PageSize),
		course:    newCourseModel(d.Stores, d.WebURL),
		quiz:      newQuizModel(d.Stores),
		login:     newLoginModel(authn, d.WebURL),
		myCourses: newMyCoursesModel(d.Stores),
		admin:     newAdminModel(d.Stores),
		users:     newUsersModel(d.Stores, d.PageSize),
		page:      newPageModel(d.WebURL),
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		gotoIn:    gi,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.spin.Tick, a.navigate(a.start, false))
}

// navigate runs the transition off the event loop; the auth guard may
// hydrate the session over the network.
func (a App) navigate(path string, replace bool) tea.Cmd {
	r, as := a.router, a.auth
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var (
			nav router.Navigation
			err error
		)
		if replace {
			nav, err = r.Replace(ctx, path)
		} else {
			nav, err = r.Push(ctx, path)
		}
		return finished(nav, err, as)
	}
}

func (a App) step(forward bool) tea.Cmd {
	r, as := a.router, a.auth
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var (
			nav router.Navigation
			err error
		)
		if forward {
			nav, err = r.Forward(ctx)
		} else {
			nav, err = r.Back(ctx)
		}
		return finished(nav, err, as)
	}
}

func finished(nav router.Navigation, err error, as *auth.Store) navigatedMsg {
	msg := navigatedMsg{nav: nav, err: err, session: domain.EmptySession()}
	if as != nil {
		msg.session = as.Session()
		msg.loggedIn = as.IsLoggedIn()
	}
	return msg
}

func (a App) logout() tea.Cmd {
	as := a.auth
	if as == nil {
		return nil
	}
	return func() tea.Msg {
		return logoutDoneMsg{err: as.Logout(context.Background())}
	}
}

// scroll is the list position of the active view, saved in the history
// entry before leaving it.
func (a App) scroll() int {
	switch a.loc.View {
	case router.ViewHome:
		return a.home.cursor
	case router.ViewCourses, router.ViewCoursesAdmin:
		return a.courses.cursor
	case router.ViewMyCourses:
		return a.myCourses.cursor
	case router.ViewUsers:
		return a.users.cursor
	case router.ViewQuiz:
		return a.quiz.cursor
	}
	return 0
}

func (a App) saveScroll() {
	if a.router != nil {
		a.router.SaveScroll(a.scroll())
	}
}

// show enters the view of the current location.
func (a App) show(scroll int) (App, tea.Cmd) {
	loc := a.loc
	var cmd tea.Cmd
	switch loc.View {
	case router.ViewHome:
		a.home.session = a.session
		a.home.loggedIn = a.loggedIn
		a.home, cmd = a.home.enter(scroll)
	case router.ViewCourses:
		page, _ := strconv.Atoi(loc.Query.Get("page"))
		a.courses, cmd = a.courses.enter(false, page, scroll)
	case router.ViewCoursesAdmin:
		a.courses, cmd = a.courses.enter(true, 1, scroll)
	case router.ViewCourseDetails:
		a.course, cmd = a.course.enter(loc.Param("id"), loc.Name == router.RouteCourseLearn)
	case router.ViewQuiz:
		a.quiz, cmd = a.quiz.enter(loc.Param("lessonId"))
	case router.ViewLogin:
		a.login, cmd = a.login.enter(loc.Query.Get(router.QueryRedirect))
	case router.ViewMyCourses:
		teacher := loc.Name == router.RouteCourseTeacher || a.session.IsTeacher()
		a.myCourses, cmd = a.myCourses.enter(teacher, scroll)
	case router.ViewAdmin:
		a.admin, cmd = a.admin.enter()
	case router.ViewUsers:
		role := ""
		if loc.Name == router.RouteTeachersMgr {
			role = domain.RoleTeacher
		}
		a.users, cmd = a.users.enter(role, scroll)
	default:
		a.page = a.page.enter(loc)
	}
	return a, cmd
}

// myCoursesPath picks the own-courses screen for the signed-in role.
func (a App) myCoursesPath() string {
	if a.session.IsTeacher() {
		return "/course-teacher"
	}
	return "/course-student"
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + status(1) + help(1) = 4 lines
		body := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.home, _ = a.home.Update(body)
		a.courses, _ = a.courses.Update(body)
		a.course, _ = a.course.Update(body)
		a.quiz, _ = a.quiz.Update(body)
		a.myCourses, _ = a.myCourses.Update(body)
		a.admin, _ = a.admin.Update(body)
		a.users, _ = a.users.Update(body)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case navigateMsg:
		a.saveScroll()
		a.routing = true
		return a, a.navigate(msg.path, msg.replace)

	case historyMsg:
		a.saveScroll()
		a.routing = true
		return a, a.step(msg.forward)

	case navigatedMsg:
		a.routing = false
		a.session = msg.session
		a.loggedIn = msg.loggedIn
		if msg.err != nil {
			if !errors.Is(msg.err, router.ErrNoHistory) {
				a.navErr = msg.err.Error()
				a.log.Warn().Err(msg.err).Msg("navigation failed")
			}
			return a, nil
		}
		a.navErr = ""
		a.loc = msg.nav.To
		a.title = msg.nav.Title
		a.helpOpen = false
		var cmd tea.Cmd
		a, cmd = a.show(msg.nav.Scroll)
		return a, tea.Batch(cmd, tea.SetWindowTitle(msg.nav.Title))

	case logoutDoneMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("logout")
		}
		a.session = domain.EmptySession()
		a.loggedIn = false
		a.saveScroll()
		a.routing = true
		return a, a.navigate("/", false)

	case homeLoadedMsg:
		a.home, _ = a.home.Update(msg)
		return a, nil
	case coursesLoadedMsg:
		a.courses, _ = a.courses.Update(msg)
		return a, nil
	case courseLoadedMsg:
		a.course, _ = a.course.Update(msg)
		return a, nil
	case quizLoadedMsg:
		a.quiz, _ = a.quiz.Update(msg)
		return a, nil
	case myCoursesLoadedMsg:
		a.myCourses, _ = a.myCourses.Update(msg)
		return a, nil
	case dashboardLoadedMsg:
		a.admin, _ = a.admin.Update(msg)
		return a, nil
	case usersLoadedMsg, userLoadedMsg:
		a.users, _ = a.users.Update(msg)
		return a, nil
	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.gotoOpen {
			return a.updateGoto(msg)
		}
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}
		if a.isEditing() {
			if msg.String() == "esc" {
				return a, func() tea.Msg { return historyMsg{} }
			}
			break
		}
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "?":
			a.helpOpen = true
			return a, nil
		case "1":
			return a, navigateTo("/")
		case "2":
			return a, navigateTo("/courses")
		case "3":
			return a, navigateTo(a.myCoursesPath())
		case "4":
			return a, navigateTo("/admin")
		case "g":
			a.gotoOpen = true
			a.gotoIn.Reset()
			return a, a.gotoIn.Focus()
		case "L":
			if a.loggedIn {
				return a, a.logout()
			}
			return a, navigateTo("/login?" + url.Values{router.QueryRedirect: {a.loc.FullPath}}.Encode())
		case "esc":
			if a.users.detail != nil && a.loc.View == router.ViewUsers {
				break
			}
			return a, func() tea.Msg { return historyMsg{} }
		case "]":
			return a, func() tea.Msg { return historyMsg{forward: true} }
		case "r":
			return a.show(a.scroll())
		}
	}

	var cmd tea.Cmd
	switch a.loc.View {
	case router.ViewHome:
		a.home, cmd = a.home.Update(msg)
	case router.ViewCourses, router.ViewCoursesAdmin:
		a.courses, cmd = a.courses.Update(msg)
	case router.ViewCourseDetails:
		a.course, cmd = a.course.Update(msg)
	case router.ViewQuiz:
		a.quiz, cmd = a.quiz.Update(msg)
	case router.ViewLogin:
		a.login, cmd = a.login.Update(msg)
	case router.ViewMyCourses:
		a.myCourses, cmd = a.myCourses.Update(msg)
	case router.ViewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	case router.ViewUsers:
		a.users, cmd = a.users.Update(msg)
	default:
		a.page, cmd = a.page.Update(msg)
	}
	return a, cmd
}

func (a App) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.gotoOpen = false
		a.gotoIn.Blur()
		return a, nil
	case "enter":
		path := strings.TrimSpace(a.gotoIn.Value())
		a.gotoOpen = false
		a.gotoIn.Blur()
		if path == "" {
			return a, nil
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return a, navigateTo(path)
	}
	var cmd tea.Cmd
	a.gotoIn, cmd = a.gotoIn.Update(msg)
	return a, cmd
}

func (a App) isEditing() bool {
	return a.gotoOpen || a.loc.View == router.ViewLogin
}

func (a App) loading() bool {
	if a.routing {
		return true
	}
	switch a.loc.View {
	case router.ViewHome:
		return a.home.loading
	case router.ViewCourses, router.ViewCoursesAdmin:
		return a.courses.loading
	case router.ViewCourseDetails:
		return a.course.loading
	case router.ViewQuiz:
		return a.quiz.loading
	case router.ViewLogin:
		return a.login.busy
	case router.ViewMyCourses:
		return a.myCourses.loading
	case router.ViewAdmin:
		return a.admin.loading
	case router.ViewUsers:
		return a.users.loading
	}
	return false
}

// identity is the header's user line. Before the first hydration it
// falls back to the cached display name.
func (a App) identity() string {
	if a.loggedIn {
		name := a.session.UserName
		if name == "" {
			name = a.session.Email
		}
		out := normalStyle.Render(name)
		if a.session.Role.Name != "" {
			out += " " + roleStyle(a.session.Role.Name).Render(a.session.Role.Name)
		}
		return out
	}
	if a.auth != nil && a.loc.FullPath == "" {
		if name, _ := a.auth.CachedIdentity(); name != "" {
			return dimStyle.Render(name)
		}
	}
	return dimStyle.Render("guest")
}

func (a App) helpLine() string {
	if a.helpOpen {
		return helpBar("?", "close", "q", "quit")
	}
	if a.gotoOpen {
		return helpBar("enter", "go", "esc", "cancel")
	}
	nav := []string{"1-4", "screens", "g", "go to", "esc", "back", "?", "help", "q", "quit"}
	switch a.loc.View {
	case router.ViewHome:
		return helpBar(append([]string{"j/k", "nav", "enter", "open", "a", "all"}, nav...)...)
	case router.ViewCourses, router.ViewCoursesAdmin:
		return helpBar(append([]string{"j/k", "nav", "h/l", "page", "enter", "open"}, nav...)...)
	case router.ViewCourseDetails:
		return helpBar(append([]string{"c", "copy link", "o", "open web", "l", "learn"}, nav...)...)
	case router.ViewQuiz:
		return helpBar(append([]string{"j/k", "question", "1-9", "answer", "s", "submit", "x", "retry"}, nav...)...)
	case router.ViewLogin:
		return helpBar("enter", "sign in", "ctrl+o", "browser", "esc", "back")
	case router.ViewMyCourses:
		return helpBar(append([]string{"j/k", "nav", "enter", "open", "n", "new"}, nav...)...)
	case router.ViewAdmin:
		return helpBar(append([]string{"u", "users", "t", "teachers", "c", "courses"}, nav...)...)
	case router.ViewUsers:
		return helpBar(append([]string{"j/k", "nav", "h/l", "page", "enter", "details"}, nav...)...)
	}
	return helpBar(append([]string{"o", "open web", "c", "copy link"}, nav...)...)
}

func (a App) View() string {
	// Header: logo left, session right
	logo := renderShimmerLogo(a.frame)
	who := a.identity()
	gap := a.width - lipgloss.Width(logo) - lipgloss.Width(who) - 2
	if gap < 2 {
		gap = 2
	}
	header := " " + logo + strings.Repeat(" ", gap) + who

	status := " " + titleStyle.Render(a.title)
	if a.loc.FullPath != "" {
		status += "  " + metaStyle.Render(a.loc.FullPath)
	}
	if a.loading() {
		status += "  " + a.spin.View()
	}
	if a.navErr != "" {
		status += "  " + errorStyle.Render(a.navErr)
	}

	var body string
	switch a.loc.View {
	case "":
		body = " " + dimStyle.Render(fmt.Sprintf("opening %s...", a.start))
	case router.ViewHome:
		body = a.home.View()
	case router.ViewCourses, router.ViewCoursesAdmin:
		body = a.courses.View()
	case router.ViewCourseDetails:
		body = a.course.View()
	case router.ViewQuiz:
		body = a.quiz.View()
	case router.ViewLogin:
		body = a.login.View()
	case router.ViewMyCourses:
		body = a.myCourses.View()
	case router.ViewAdmin:
		body = a.admin.View()
	case router.ViewUsers:
		body = a.users.View()
	default:
		body = a.page.View()
	}
	if a.helpOpen {
		body = helpView()
	}
	if a.gotoOpen {
		body = " " + a.gotoIn.View() + "\n\n" + body
	}

	// Chrome budget: header(2) + status(1) + help(1)
	chrome := 4
	if a.height > 0 {
		body = truncateToHeight(body, a.height-chrome)
	}
	body = strings.TrimRight(body, "\n")

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", header, status, body, a.helpLine())
}
