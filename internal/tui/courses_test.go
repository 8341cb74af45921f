package tui

import (
	"strings"
	"testing"

	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

func loadedCourses(m coursesModel, page, totalItems int) coursesModel {
	m, _ = m.Update(coursesLoadedMsg{state: store.State[domain.Course]{
		Items: sampleCourses(),
		Meta:  domain.Meta{TotalItems: totalItems, CurrentPage: page, TotalPages: (totalItems + 1) / 2},
	}})
	return m
}

func TestCoursesLoadedShowsPage(t *testing.T) {
	m := newCoursesModel(nil, 2)
	m, _ = m.enter(false, 1, 0)
	m = loadedCourses(m, 1, 6)

	view := m.View()
	for _, want := range []string{"Vue 3 from zero", "page 1/3 . 6 total", "intermediate"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
	if m.loading {
		t.Error("loading should be cleared")
	}
}

func TestCoursesPaging(t *testing.T) {
	m := newCoursesModel(nil, 2)
	m = loadedCourses(m, 1, 6)

	m, _ = m.Update(key("l"))
	if m.page() != 2 || !m.loading {
		t.Fatalf("page = %d loading = %v, want 2 true", m.page(), m.loading)
	}
	// Keys are ignored while a page is in flight.
	m, _ = m.Update(key("l"))
	if m.page() != 2 {
		t.Errorf("page = %d after key during load", m.page())
	}

	m = loadedCourses(m, 2, 6)
	m, _ = m.Update(key("h"))
	if m.page() != 1 {
		t.Errorf("page = %d, want 1", m.page())
	}
}

func TestCoursesNoPrevOnFirstPage(t *testing.T) {
	m := newCoursesModel(nil, 2)
	m = loadedCourses(m, 1, 6)
	m, _ = m.Update(key("h"))
	if m.page() != 1 || m.loading {
		t.Errorf("page = %d loading = %v", m.page(), m.loading)
	}
}

func TestCoursesLoadErrorKeepsItems(t *testing.T) {
	m := newCoursesModel(nil, 2)
	m = loadedCourses(m, 1, 6)
	m, _ = m.Update(coursesLoadedMsg{state: store.State[domain.Course]{
		Items: sampleCourses(),
		Meta:  domain.Meta{TotalItems: 6, CurrentPage: 1},
		Err:   "Failed to fetch courses",
	}})
	view := m.View()
	if !strings.Contains(view, "Failed to fetch courses") || !strings.Contains(view, "Go for backend developers") {
		t.Errorf("expected error and items, got:\n%s", view)
	}
}

func TestCoursesManageModeShowsStudents(t *testing.T) {
	m := newCoursesModel(nil, 2)
	m, _ = m.enter(true, 1, 0)
	courses := sampleCourses()
	courses[0].TotalStudents = 31
	m, _ = m.Update(coursesLoadedMsg{state: store.State[domain.Course]{Items: courses, Meta: domain.Meta{TotalItems: 2}}})
	if !strings.Contains(m.View(), "31 students") {
		t.Errorf("expected student counts, got:\n%s", m.View())
	}
	m, _ = m.Update(key("l"))
	if m.loading {
		t.Error("manage mode should not page")
	}
}

func TestCoursesEnterOpensDetail(t *testing.T) {
	m := newCoursesModel(nil, 2)
	m = loadedCourses(m, 1, 2)
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if got := cmd().(navigateMsg).path; got != "/courses/7" {
		t.Errorf("path = %q", got)
	}
}
