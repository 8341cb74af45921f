package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

type usersLoadedMsg struct {
	state store.State[domain.User]
}

type userLoadedMsg struct {
	user *domain.User
	err  string
}

// usersModel is the user manager. With a role filter it shows only the
// matching users of the loaded page (the teacher manager).
type usersModel struct {
	stores  *store.Stores
	limit   int
	role    string
	page    int
	items   []domain.User
	meta    domain.Meta
	cursor  int
	detail  *domain.User
	loading bool
	err     string
	width   int
	height  int
}

func newUsersModel(s *store.Stores, limit int) usersModel {
	if limit <= 0 {
		limit = 10
	}
	return usersModel{stores: s, limit: limit, page: 1}
}

func (m usersModel) enter(role string, scroll int) (usersModel, tea.Cmd) {
	m.role = role
	m.page = 1
	m.detail = nil
	m.loading = true
	m.err = ""
	m.cursor = scroll
	return m, m.load()
}

func (m usersModel) load() tea.Cmd {
	s, page, limit := m.stores, m.page, m.limit
	if s == nil {
		return nil
	}
	if m.role != "" {
		page, limit = 1, store.AllPageSize
	}
	return func() tea.Msg {
		s.Users.FetchUsers(context.Background(), page, limit) //nolint:errcheck // recorded in the snapshot
		return usersLoadedMsg{state: s.Users.Users()}
	}
}

func (m usersModel) loadUser(id int64) tea.Cmd {
	s := m.stores
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		u, err := s.Users.FetchUser(context.Background(), id)
		if err != nil {
			return userLoadedMsg{err: s.Users.Selected().Err}
		}
		return userLoadedMsg{user: u}
	}
}

// visible applies the role filter.
func (m usersModel) visible() []domain.User {
	if m.role == "" {
		return m.items
	}
	var out []domain.User
	for _, u := range m.items {
		if u.Role != nil && u.Role.Name == m.role {
			out = append(out, u)
		}
	}
	return out
}

func (m usersModel) Update(msg tea.Msg) (usersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		m.err = msg.state.Err
		m.items = msg.state.Items
		m.meta = msg.state.Meta
		if msg.state.Meta.CurrentPage > 0 {
			m.page = msg.state.Meta.CurrentPage
		}
		m.cursor = clampCursor(m.cursor, len(m.visible()))

	case userLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.detail = msg.user

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.detail != nil {
			switch msg.String() {
			case "backspace", "enter", "esc":
				m.detail = nil
			}
			return m, nil
		}
		users := m.visible()
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(users)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "l", "right":
			if m.role == "" && !m.loading && m.page < m.meta.TotalPages {
				m.page++
				m.cursor = 0
				m.loading = true
				return m, m.load()
			}
		case "h", "left":
			if m.role == "" && !m.loading && m.page > 1 {
				m.page--
				m.cursor = 0
				m.loading = true
				return m, m.load()
			}
		case "enter":
			if m.cursor < len(users) {
				m.loading = true
				return m, m.loadUser(users[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func roleName(u domain.User) string {
	if u.Role == nil || u.Role.Name == "" {
		return "-"
	}
	return u.Role.Name
}

func (m usersModel) View() string {
	if m.detail != nil {
		return m.detailView()
	}
	if m.loading && len(m.items) == 0 {
		return " " + dimStyle.Render("loading users...")
	}
	var b strings.Builder
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	}
	users := m.visible()
	if len(users) == 0 {
		if m.err == "" {
			b.WriteString(" " + dimStyle.Render("no users") + "\n")
		}
		return b.String()
	}
	for i, u := range users {
		prefix := "   "
		name := normalStyle.Render(fmt.Sprintf("%-20s", truncStr(u.UserName, 20)))
		if i == m.cursor {
			prefix = " " + accentStyle.Render(">") + " "
			name = selectedStyle.Render(fmt.Sprintf("%-20s", truncStr(u.UserName, 20)))
		}
		flags := ""
		if u.IsBlocked {
			flags += errorStyle.Render(" blocked")
		}
		if !u.IsVerified {
			flags += metaStyle.Render(" unverified")
		}
		b.WriteString(prefix + name + "  " + dimStyle.Render(fmt.Sprintf("%-28s", truncStr(u.Email, 28))) +
			" " + roleStyle(roleName(u)).Render(fmt.Sprintf("%-8s", roleName(u))) + flags + "\n")
	}
	if m.role == "" {
		b.WriteString("\n " + metaStyle.Render(pageLine(m.page, m.meta.TotalPages, m.meta.TotalItems)) + "\n")
	}
	return b.String()
}

func (m usersModel) detailView() string {
	u := m.detail
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(u.UserName) + "  " + roleStyle(roleName(*u)).Render(roleName(*u)) + "\n\n")
	rows := []struct{ k, v string }{
		{"id", fmt.Sprint(u.ID)},
		{"email", u.Email},
		{"avatar", u.Avatar},
		{"verified", fmt.Sprint(u.IsVerified)},
		{"blocked", fmt.Sprint(u.IsBlocked)},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "   %s %s\n", metaStyle.Render(fmt.Sprintf("%-9s", r.k)), normalStyle.Render(r.v))
	}
	return b.String()
}
