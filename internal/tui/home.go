package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

// featuredCount is how many catalog entries the home screen shows.
const featuredCount = 6

type homeLoadedMsg struct {
	state store.State[domain.Course]
}

type homeModel struct {
	stores   *store.Stores
	courses  []domain.Course
	total    int
	cursor   int
	loading  bool
	err      string
	session  domain.Session
	loggedIn bool
	width    int
	height   int
}

func newHomeModel(s *store.Stores) homeModel {
	return homeModel{stores: s}
}

func (m homeModel) enter(scroll int) (homeModel, tea.Cmd) {
	m.loading = true
	m.err = ""
	m.cursor = scroll
	return m, m.load()
}

func (m homeModel) load() tea.Cmd {
	s := m.stores
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		s.Courses.FetchCourses(context.Background(), 1, featuredCount) //nolint:errcheck // recorded in the snapshot
		return homeLoadedMsg{state: s.Courses.Courses()}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		m.loading = false
		m.err = msg.state.Err
		m.courses = msg.state.Items
		m.total = msg.state.Meta.TotalItems
		m.cursor = clampCursor(m.cursor, len(m.courses))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.courses)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.courses) {
				return m, navigateTo("/courses/" + strconv.FormatInt(m.courses[m.cursor].ID, 10))
			}
		case "a":
			return m, navigateTo("/courses")
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder

	greeting := "Welcome to QKIT E-Learning"
	if m.loggedIn && m.session.UserName != "" {
		greeting = "Welcome back, " + m.session.UserName
	}
	b.WriteString(" " + titleStyle.Render(greeting) + "\n")
	b.WriteString(" " + dimStyle.Render("Learn to code from roadmap to real projects.") + "\n\n")

	var shortcuts []string
	shortcuts = append(shortcuts, helpEntry("2", "catalog"))
	switch {
	case !m.loggedIn:
		shortcuts = append(shortcuts, helpEntry("L", "sign in"))
	case m.session.IsAdmin():
		shortcuts = append(shortcuts, helpEntry("3", "my courses"), helpEntry("4", "admin"))
	default:
		shortcuts = append(shortcuts, helpEntry("3", "my courses"))
	}
	b.WriteString(" " + strings.Join(shortcuts, "   ") + "\n\n")

	b.WriteString(" " + selectedStyle.Render("Featured courses"))
	if m.total > 0 {
		b.WriteString(metaStyle.Render(fmt.Sprintf("  %d in catalog", m.total)))
	}
	b.WriteString("\n")

	switch {
	case m.loading && len(m.courses) == 0:
		b.WriteString(" " + dimStyle.Render("loading courses...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	}
	if len(m.courses) == 0 && m.err == "" {
		b.WriteString(" " + dimStyle.Render("no courses yet") + "\n")
		return b.String()
	}

	nameW := m.width - 30
	if nameW < 20 {
		nameW = 20
	}
	for i, c := range m.courses {
		prefix := "   "
		name := normalStyle.Render(truncStr(c.Name, nameW))
		if i == m.cursor {
			prefix = " " + accentStyle.Render(">") + " "
			name = selectedStyle.Render(truncStr(c.Name, nameW))
		}
		b.WriteString(prefix + name + "  " + priceStyle.Render(domain.FormatVND(c.EffectivePrice())) + "\n")
	}
	return b.String()
}
