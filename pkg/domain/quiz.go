package domain

import "sort"

// Option is one answer choice of a question.
type Option struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Question is a single quiz question.
type Question struct {
	Question string   `json:"question"`
	Points   int      `json:"points"`
	Order    int      `json:"order"`
	Options  []Option `json:"options"`
}

// Quiz is attached to a lesson. ID is nil for quizzes not yet created.
type Quiz struct {
	ID           *int64     `json:"id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	LessonID     int64      `json:"lessonId"`
	PassingScore int        `json:"passingScore"`
	TimeLimit    int        `json:"timeLimit"`
	Questions    []Question `json:"questions"`
}

// HasID reports whether the quiz carries the given server id.
func (q Quiz) HasID(id int64) bool {
	return q.ID != nil && *q.ID == id
}

// Normalize orders questions by their Order field and replaces nil
// slices with empty ones so views never have to nil-check.
func (q *Quiz) Normalize() {
	if q.Questions == nil {
		q.Questions = []Question{}
	}
	sort.SliceStable(q.Questions, func(i, j int) bool {
		return q.Questions[i].Order < q.Questions[j].Order
	})
	for i := range q.Questions {
		if q.Questions[i].Options == nil {
			q.Questions[i].Options = []Option{}
		}
	}
}

// TotalPoints sums the points of every question.
func (q Quiz) TotalPoints() int {
	total := 0
	for _, qu := range q.Questions {
		total += qu.Points
	}
	return total
}

// QuizResult is the outcome of grading one attempt.
type QuizResult struct {
	Score   int
	Total   int
	Percent float64
	Passed  bool
	// Missed holds the indexes of questions answered wrong or not at all.
	Missed []int
}

// GradeQuiz grades an attempt. answers maps a question index to the index
// of the chosen option. PassingScore is a percentage of the total points.
func GradeQuiz(q Quiz, answers map[int]int) QuizResult {
	res := QuizResult{Total: q.TotalPoints()}
	for i, qu := range q.Questions {
		choice, ok := answers[i]
		if ok && choice >= 0 && choice < len(qu.Options) && qu.Options[choice].IsCorrect {
			res.Score += qu.Points
			continue
		}
		res.Missed = append(res.Missed, i)
	}
	if res.Total > 0 {
		res.Percent = float64(res.Score) * 100 / float64(res.Total)
	}
	res.Passed = res.Total > 0 && res.Percent >= float64(q.PassingScore)
	return res
}
