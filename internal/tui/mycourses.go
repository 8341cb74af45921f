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

type myCoursesLoadedMsg struct {
	state store.State[domain.TeachingCourse]
}

// myCoursesModel lists the signed-in user's own courses.
type myCoursesModel struct {
	stores  *store.Stores
	items   []domain.TeachingCourse
	meta    domain.Meta
	cursor  int
	teacher bool
	loading bool
	err     string
	width   int
	height  int
}

func newMyCoursesModel(s *store.Stores) myCoursesModel {
	return myCoursesModel{stores: s}
}

func (m myCoursesModel) enter(teacher bool, scroll int) (myCoursesModel, tea.Cmd) {
	m.teacher = teacher
	m.loading = true
	m.err = ""
	m.cursor = scroll
	return m, m.load()
}

func (m myCoursesModel) load() tea.Cmd {
	s := m.stores
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		s.Courses.FetchTeacherCourses(context.Background()) //nolint:errcheck // recorded in the snapshot
		return myCoursesLoadedMsg{state: s.Courses.Teaching()}
	}
}

func (m myCoursesModel) Update(msg tea.Msg) (myCoursesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case myCoursesLoadedMsg:
		m.loading = false
		m.err = msg.state.Err
		m.items = msg.state.Items
		m.meta = msg.state.Meta
		m.cursor = clampCursor(m.cursor, len(m.items))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.items) {
				id := strconv.FormatInt(m.items[m.cursor].ID, 10)
				if m.teacher {
					return m, navigateTo("/course-teacher/edit-course/" + id)
				}
				return m, navigateTo("/courses/learn/" + id)
			}
		case "n":
			if m.teacher {
				return m, navigateTo("/course-teacher/create-course")
			}
		}
	}
	return m, nil
}

func (m myCoursesModel) View() string {
	if m.loading && len(m.items) == 0 {
		return " " + dimStyle.Render("loading your courses...")
	}
	var b strings.Builder
	heading := "Enrolled courses"
	if m.teacher {
		heading = "Courses you teach"
	}
	b.WriteString(" " + selectedStyle.Render(heading) + metaStyle.Render(fmt.Sprintf("  %d", m.meta.TotalItems)) + "\n\n")
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	}
	if len(m.items) == 0 {
		if m.err == "" {
			b.WriteString(" " + dimStyle.Render("nothing here yet") + "\n")
		}
		return b.String()
	}

	nameW := m.width - 40
	if nameW < 20 {
		nameW = 20
	}
	for i, c := range m.items {
		prefix := "   "
		name := normalStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Name, nameW)))
		if i == m.cursor {
			prefix = " " + accentStyle.Render(">") + " "
			name = selectedStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Name, nameW)))
		}
		stats := metaStyle.Render(fmt.Sprintf("%3d lessons %4d students", c.TotalLessons, c.TotalStudents))
		b.WriteString(prefix + name + "  " + stats + "  " + priceStyle.Render(domain.FormatVND(domain.ParsePrice(c.Price))) + "\n")
	}
	return b.String()
}
