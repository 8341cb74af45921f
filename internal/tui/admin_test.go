package tui

import (
	"strings"
	"testing"

	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

func TestAdminDashboardLoaded(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.enter()
	if !strings.Contains(m.View(), "loading dashboard") {
		t.Errorf("got:\n%s", m.View())
	}

	m, _ = m.Update(dashboardLoadedMsg{
		users:   store.State[domain.User]{Meta: domain.Meta{TotalItems: 42}},
		courses: store.State[domain.Course]{Meta: domain.Meta{TotalItems: 12}},
		orders: store.State[domain.Order]{
			Items: []domain.Order{
				{ID: 901, Status: domain.OrderCompleted, TotalPrice: 350000, User: domain.OrderUser{UserName: "lan"}},
				{ID: 902, Status: domain.OrderPending, TotalPrice: 120000, User: domain.OrderUser{Email: "an@qkit.vn"}},
			},
			Meta: domain.Meta{TotalItems: 2},
		},
		teachers: 3,
		revenue:  350000,
	})
	if m.loading {
		t.Error("loading should clear")
	}
	view := m.View()
	for _, want := range []string{"42", "12", "350.000đ", "#901", "lan", "an@qkit.vn", "pending"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q, got:\n%s", want, view)
		}
	}
}

func TestAdminDashboardPartialFailure(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(dashboardLoadedMsg{
		users:  store.State[domain.User]{Meta: domain.Meta{TotalItems: 5}},
		orders: store.State[domain.Order]{Err: "Forbidden resource"},
	})
	view := m.View()
	if !strings.Contains(view, "orders: Forbidden resource") {
		t.Errorf("got:\n%s", view)
	}
	if !strings.Contains(view, "no orders") {
		t.Errorf("got:\n%s", view)
	}
}

func TestAdminShortcuts(t *testing.T) {
	m := newAdminModel(nil)
	for k, want := range map[string]string{"u": "/usersmanager", "t": "/teachersmanager", "c": "/coursesmanager"} {
		_, cmd := m.Update(key(k))
		if cmd == nil || cmd().(navigateMsg).path != want {
			t.Errorf("key %q: expected navigation to %s", k, want)
		}
	}
}
