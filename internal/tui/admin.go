package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

// recentOrders is how many orders the dashboard lists.
const recentOrders = 8

type dashboardLoadedMsg struct {
	users    store.State[domain.User]
	orders   store.State[domain.Order]
	courses  store.State[domain.Course]
	teachers int
	revenue  float64
}

// adminModel is the admin dashboard: headline numbers and recent orders.
type adminModel struct {
	stores  *store.Stores
	data    dashboardLoadedMsg
	loaded  bool
	loading bool
	width   int
	height  int
}

func newAdminModel(s *store.Stores) adminModel {
	return adminModel{stores: s}
}

func (m adminModel) enter() (adminModel, tea.Cmd) {
	m.loading = true
	return m, m.load()
}

func (m adminModel) load() tea.Cmd {
	s := m.stores
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		s.Dashboard(context.Background()) //nolint:errcheck // every store records its own error
		return dashboardLoadedMsg{
			users:    s.Users.Users(),
			orders:   s.Orders.Orders(),
			courses:  s.Courses.Courses(),
			teachers: s.Users.CountRole(domain.RoleTeacher),
			revenue:  s.Orders.Revenue(),
		}
	}
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.loaded = true
		m.data = msg

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "u":
			return m, navigateTo("/usersmanager")
		case "t":
			return m, navigateTo("/teachersmanager")
		case "c":
			return m, navigateTo("/coursesmanager")
		}
	}
	return m, nil
}

func statCard(label, value string) string {
	return cardStyle.Width(18).Render(dimStyle.Render(label) + "\n" + titleStyle.Render(value))
}

func (m adminModel) View() string {
	if !m.loaded {
		return " " + dimStyle.Render("loading dashboard...")
	}
	d := m.data

	var b strings.Builder
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Users", fmt.Sprint(d.users.Meta.TotalItems)),
		statCard("Teachers", fmt.Sprint(d.teachers)),
		statCard("Courses", fmt.Sprint(d.courses.Meta.TotalItems)),
		statCard("Orders", fmt.Sprint(d.orders.Meta.TotalItems)),
		statCard("Revenue", domain.FormatVND(d.revenue)),
	)
	b.WriteString(cards + "\n")

	for _, e := range []struct{ what, err string }{
		{"users", d.users.Err},
		{"orders", d.orders.Err},
		{"courses", d.courses.Err},
	} {
		if e.err != "" {
			b.WriteString(" " + errorStyle.Render(e.what+": "+e.err) + "\n")
		}
	}

	b.WriteString("\n " + selectedStyle.Render("Recent orders") + "\n")
	if len(d.orders.Items) == 0 {
		b.WriteString(" " + dimStyle.Render("no orders") + "\n")
		return b.String()
	}
	for i, o := range d.orders.Items {
		if i >= recentOrders {
			break
		}
		status := dimStyle
		switch o.Status {
		case domain.OrderCompleted:
			status = successStyle
		case domain.OrderCancelled:
			status = errorStyle
		}
		buyer := o.User.UserName
		if buyer == "" {
			buyer = o.User.Email
		}
		fmt.Fprintf(&b, "   %s  %s  %s  %s  %s\n",
			metaStyle.Render(fmt.Sprintf("#%-5d", o.ID)),
			dimStyle.Render(fmt.Sprintf("%-10s", formatDate(o.CreatedAt))),
			normalStyle.Render(fmt.Sprintf("%-20s", truncStr(buyer, 20))),
			status.Render(fmt.Sprintf("%-9s", strings.ToLower(o.Status))),
			priceStyle.Render(domain.FormatVND(o.TotalPrice)),
		)
	}
	return b.String()
}
