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

type quizLoadedMsg struct {
	quiz *domain.Quiz
	err  string
}

// quizModel takes the quiz of a lesson: pick an option per question,
// submit, see the grade and the explanations of what was missed.
type quizModel struct {
	stores   *store.Stores
	lessonID int64
	quiz     *domain.Quiz
	cursor   int
	answers  map[int]int
	result   *domain.QuizResult
	loading  bool
	err      string
	width    int
	height   int
}

func newQuizModel(s *store.Stores) quizModel {
	return quizModel{stores: s, answers: map[int]int{}}
}

func (m quizModel) enter(rawLessonID string) (quizModel, tea.Cmd) {
	m.quiz = nil
	m.result = nil
	m.cursor = 0
	m.answers = map[int]int{}
	id, err := strconv.ParseInt(rawLessonID, 10, 64)
	if err != nil || id <= 0 {
		m.loading = false
		m.err = fmt.Sprintf("invalid lesson id %q", rawLessonID)
		return m, nil
	}
	m.lessonID = id
	m.loading = true
	m.err = ""
	return m, m.load()
}

func (m quizModel) load() tea.Cmd {
	s, id := m.stores, m.lessonID
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		q, err := s.Quizzes.FetchQuizByLesson(context.Background(), id)
		if err != nil {
			return quizLoadedMsg{err: s.Quizzes.Selected().Err}
		}
		return quizLoadedMsg{quiz: q}
	}
}

func (m quizModel) Update(msg tea.Msg) (quizModel, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.quiz != nil {
			m.quiz = msg.quiz
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.quiz == nil {
			return m, nil
		}
		key := msg.String()
		switch key {
		case "j", "down":
			if m.cursor < len(m.quiz.Questions)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "s":
			if m.result == nil {
				res := domain.GradeQuiz(*m.quiz, m.answers)
				m.result = &res
			}
		case "x":
			m.result = nil
			m.answers = map[int]int{}
			m.cursor = 0
		default:
			if m.result != nil || len(key) != 1 || key[0] < '1' || key[0] > '9' {
				return m, nil
			}
			opt := int(key[0] - '1')
			if m.cursor < len(m.quiz.Questions) && opt < len(m.quiz.Questions[m.cursor].Options) {
				m.answers[m.cursor] = opt
				if m.cursor < len(m.quiz.Questions)-1 {
					m.cursor++
				}
			}
		}
	}
	return m, nil
}

func (m quizModel) View() string {
	if m.loading && m.quiz == nil {
		return " " + dimStyle.Render("loading quiz...")
	}
	if m.quiz == nil {
		return " " + errorStyle.Render("error: "+m.err)
	}
	q := m.quiz

	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(q.Title) + "\n")
	info := fmt.Sprintf("%d questions . %d points . pass at %d%%", len(q.Questions), q.TotalPoints(), q.PassingScore)
	if q.TimeLimit > 0 {
		info += " . " + domain.FormatDuration(q.TimeLimit*60)
	}
	b.WriteString(" " + metaStyle.Render(info) + "\n")
	if q.Description != "" {
		b.WriteString(" " + dimStyle.Render(q.Description) + "\n")
	}
	b.WriteString("\n")

	if m.result != nil {
		verdict := errorStyle.Render("not passed")
		if m.result.Passed {
			verdict = successStyle.Render("passed")
		}
		fmt.Fprintf(&b, " %s  %s\n\n", selectedStyle.Render(fmt.Sprintf("%d/%d (%.0f%%)", m.result.Score, m.result.Total, m.result.Percent)), verdict)
	}

	missed := map[int]bool{}
	if m.result != nil {
		for _, i := range m.result.Missed {
			missed[i] = true
		}
	}

	for i, qu := range q.Questions {
		marker := "  "
		if i == m.cursor && m.result == nil {
			marker = accentStyle.Render("> ")
		}
		label := normalStyle.Render(fmt.Sprintf("%d. %s", i+1, qu.Question))
		if m.result != nil {
			if missed[i] {
				label = errorStyle.Render("x ") + label
			} else {
				label = successStyle.Render("v ") + label
			}
		}
		b.WriteString(" " + marker + label + metaStyle.Render(fmt.Sprintf("  %dpt", qu.Points)) + "\n")

		chosen, answered := m.answers[i]
		for j, opt := range qu.Options {
			box := "( )"
			if answered && chosen == j {
				box = accentStyle.Render("(*)")
			}
			text := dimStyle.Render(opt.Text)
			if m.result != nil && opt.IsCorrect {
				text = successStyle.Render(opt.Text)
			}
			fmt.Fprintf(&b, "      %s %d %s\n", box, j+1, text)
			if m.result != nil && missed[i] && opt.IsCorrect && opt.Explanation != "" {
				b.WriteString("          " + metaStyle.Render(opt.Explanation) + "\n")
			}
		}
	}
	return b.String()
}
