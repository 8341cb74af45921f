package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

type coursesLoadedMsg struct {
	state store.State[domain.Course]
}

// coursesModel is the paginated catalog. In manage mode (admin course
// manager) it loads the first AllPageSize courses in one page.
type coursesModel struct {
	stores  *store.Stores
	limit   int
	manage  bool
	pager   paginator.Model
	items   []domain.Course
	meta    domain.Meta
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newCoursesModel(s *store.Stores, limit int) coursesModel {
	if limit <= 0 {
		limit = 10
	}
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = limit
	return coursesModel{stores: s, limit: limit, pager: p}
}

func (m coursesModel) enter(manage bool, page, scroll int) (coursesModel, tea.Cmd) {
	m.manage = manage
	m.loading = true
	m.err = ""
	m.cursor = scroll
	if page < 1 {
		page = 1
	}
	m.pager.Page = page - 1
	return m, m.load(page)
}

func (m coursesModel) load(page int) tea.Cmd {
	s := m.stores
	if s == nil {
		return nil
	}
	limit, manage := m.limit, m.manage
	return func() tea.Msg {
		ctx := context.Background()
		if manage {
			s.Courses.FetchAllCourses(ctx) //nolint:errcheck // recorded in the snapshot
		} else {
			s.Courses.FetchCourses(ctx, page, limit) //nolint:errcheck // recorded in the snapshot
		}
		return coursesLoadedMsg{state: s.Courses.Courses()}
	}
}

func (m coursesModel) page() int {
	return m.pager.Page + 1
}

func (m coursesModel) Update(msg tea.Msg) (coursesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		m.loading = false
		m.err = msg.state.Err
		m.items = msg.state.Items
		m.meta = msg.state.Meta
		if m.manage {
			m.pager.PerPage = max(len(m.items), 1)
		} else {
			m.pager.PerPage = m.limit
		}
		m.pager.SetTotalPages(m.meta.TotalItems)
		if m.meta.CurrentPage > 0 {
			m.pager.Page = m.meta.CurrentPage - 1
		}
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
		case "l", "right":
			if !m.manage && !m.loading && !m.pager.OnLastPage() {
				m.pager.NextPage()
				m.loading = true
				m.cursor = 0
				return m, m.load(m.page())
			}
		case "h", "left":
			if !m.manage && !m.loading && !m.pager.OnFirstPage() {
				m.pager.PrevPage()
				m.loading = true
				m.cursor = 0
				return m, m.load(m.page())
			}
		case "enter":
			if m.cursor < len(m.items) {
				return m, navigateTo("/courses/" + strconv.FormatInt(m.items[m.cursor].ID, 10))
			}
		}
	}
	return m, nil
}

func (m coursesModel) View() string {
	if m.loading && len(m.items) == 0 {
		return " " + dimStyle.Render("loading courses...")
	}
	var b strings.Builder
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	}
	if len(m.items) == 0 {
		if m.err == "" {
			b.WriteString(" " + dimStyle.Render("no courses found") + "\n")
		}
		return b.String()
	}

	nameW := m.width - 44
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
		level := levelStyle(string(c.CourseLevel)).Render(fmt.Sprintf("%-12s", strings.ToLower(string(c.CourseLevel))))
		b.WriteString(prefix + name + "  " + level + " " + priceStyle.Render(domain.FormatVND(c.EffectivePrice())))
		if m.manage {
			b.WriteString(metaStyle.Render(fmt.Sprintf("  %d students", c.TotalStudents)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n " + metaStyle.Render(pageLine(m.page(), m.pager.TotalPages, m.meta.TotalItems)))
	if !m.manage && m.pager.TotalPages > 1 {
		b.WriteString("  " + dimStyle.Render(m.pager.View()))
	}
	if m.loading {
		b.WriteString("  " + dimStyle.Render("loading..."))
	}
	b.WriteString("\n")
	return b.String()
}
