package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkit-edu/qkit/internal/browser"
	"github.com/qkit-edu/qkit/internal/store"
	"github.com/qkit-edu/qkit/pkg/domain"
)

type courseLoadedMsg struct {
	course *domain.Course
	rating *domain.AverageRating
	err    string
}

// courseModel shows one course. In learn mode (signed-in route) it offers
// the lesson quiz prompt.
type courseModel struct {
	stores  *store.Stores
	webURL  string
	id      int64
	learn   bool
	course  *domain.Course
	rating  *domain.AverageRating
	loading bool
	err     string
	flash   string
	width   int
	height  int
}

func newCourseModel(s *store.Stores, webURL string) courseModel {
	return courseModel{stores: s, webURL: strings.TrimRight(webURL, "/")}
}

func (m courseModel) enter(rawID string, learn bool) (courseModel, tea.Cmd) {
	m.learn = learn
	m.course = nil
	m.rating = nil
	m.flash = ""
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		m.loading = false
		m.err = fmt.Sprintf("invalid course id %q", rawID)
		return m, nil
	}
	m.id = id
	m.loading = true
	m.err = ""
	return m, m.load()
}

func (m courseModel) load() tea.Cmd {
	s, id := m.stores, m.id
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		course, err := s.Courses.FetchCourse(ctx, id)
		if err != nil {
			return courseLoadedMsg{err: s.Courses.Selected().Err}
		}
		rating, _ := s.Courses.FetchRating(ctx, id) //nolint:errcheck // a course without ratings still renders
		return courseLoadedMsg{course: course, rating: rating}
	}
}

// link is the web URL of the course page.
func (m courseModel) link() string {
	return m.webURL + "/courses/" + strconv.FormatInt(m.id, 10)
}

func (m courseModel) Update(msg tea.Msg) (courseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.course != nil {
			m.course = msg.course
			m.rating = msg.rating
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.course == nil {
			return m, nil
		}
		switch msg.String() {
		case "c":
			if err := clipboard.WriteAll(m.link()); err != nil {
				m.flash = "copy failed: " + err.Error()
			} else {
				m.flash = "link copied"
			}
		case "o":
			if err := browser.Open(m.link()); err != nil {
				m.flash = "open failed: " + err.Error()
			}
		case "l":
			if !m.learn {
				return m, navigateTo("/courses/learn/" + strconv.FormatInt(m.id, 10))
			}
		}
	}
	return m, nil
}

func (m courseModel) View() string {
	if m.loading && m.course == nil {
		return " " + dimStyle.Render("loading course...")
	}
	if m.course == nil {
		return " " + errorStyle.Render("error: "+m.err)
	}
	c := m.course

	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(c.Name) + "\n")
	meta := []string{levelStyle(string(c.CourseLevel)).Render(strings.ToLower(string(c.CourseLevel)))}
	if c.Category.Name != "" {
		meta = append(meta, dimStyle.Render(c.Category.Name))
	}
	meta = append(meta,
		dimStyle.Render(fmt.Sprintf("%d chapters", c.TotalChapters)),
		dimStyle.Render(fmt.Sprintf("%d lessons", c.TotalLessons)),
		dimStyle.Render(fmt.Sprintf("%d students", c.TotalStudents)),
	)
	if c.TotalDuration > 0 {
		meta = append(meta, dimStyle.Render(domain.FormatDuration(c.TotalDuration)))
	}
	b.WriteString(" " + strings.Join(meta, metaStyle.Render(" . ")) + "\n")

	if m.rating != nil && m.rating.Count > 0 {
		b.WriteString(" " + ratingStyle.Render(stars(m.rating.Average)) +
			dimStyle.Render(fmt.Sprintf(" %.1f (%d reviews)", m.rating.Average, m.rating.Count)) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("no reviews yet") + "\n")
	}

	price := priceStyle.Render(domain.FormatVND(c.EffectivePrice()))
	if c.EffectivePrice() < c.Price {
		price += " " + strikeStyle.Render(domain.FormatVND(c.Price))
		if c.DiscountPercentage > 0 {
			price += " " + successStyle.Render(fmt.Sprintf("-%.0f%%", c.DiscountPercentage))
		}
	}
	b.WriteString(" " + price + "\n\n")

	width := m.width - 4
	if width < 30 {
		width = 76
	}
	if c.Description != "" {
		b.WriteString(cardStyle.Width(width).Render(normalStyle.Render(c.Description)) + "\n")
	}

	if len(c.Teachings) > 0 {
		var names []string
		for _, t := range c.Teachings {
			names = append(names, t.UserName)
		}
		b.WriteString(" " + dimStyle.Render("taught by ") + normalStyle.Render(strings.Join(names, ", ")) + "\n")
	}
	if len(c.Features) > 0 {
		b.WriteString("\n " + selectedStyle.Render("What you get") + "\n")
		for _, f := range c.Features {
			b.WriteString("   " + accentStyle.Render("+") + " " + normalStyle.Render(f.Name) + "\n")
		}
	}

	if m.learn {
		b.WriteString("\n " + successStyle.Render("Learning mode") + dimStyle.Render(" . open a lesson quiz with g /courses/quiz/<lessonId>") + "\n")
	}
	if m.err != "" {
		b.WriteString("\n " + errorStyle.Render("error: "+m.err) + "\n")
	}
	if m.flash != "" {
		b.WriteString("\n " + accentStyle.Render(m.flash) + "\n")
	}
	return b.String()
}
