package domain

import "testing"

func sampleQuiz() Quiz {
	return Quiz{
		Title:        "Go basics",
		PassingScore: 60,
		Questions: []Question{
			{Question: "zero value of int?", Points: 2, Order: 1, Options: []Option{
				{Text: "0", IsCorrect: true},
				{Text: "nil"},
			}},
			{Question: "keyword for goroutines?", Points: 3, Order: 2, Options: []Option{
				{Text: "async"},
				{Text: "go", IsCorrect: true},
			}},
		},
	}
}

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers map[int]int
		score   int
		passed  bool
		missed  int
	}{
		{"all correct", map[int]int{0: 0, 1: 1}, 5, true, 0},
		{"only last", map[int]int{1: 1}, 3, true, 1},
		{"only first", map[int]int{0: 0}, 2, false, 1},
		{"none", nil, 0, false, 2},
		{"out of range choice", map[int]int{0: 7, 1: -1}, 0, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := GradeQuiz(sampleQuiz(), tt.answers)
			if res.Score != tt.score {
				t.Errorf("Score = %d, want %d", res.Score, tt.score)
			}
			if res.Total != 5 {
				t.Errorf("Total = %d, want 5", res.Total)
			}
			if res.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v (percent %.1f)", res.Passed, tt.passed, res.Percent)
			}
			if len(res.Missed) != tt.missed {
				t.Errorf("len(Missed) = %d, want %d", len(res.Missed), tt.missed)
			}
		})
	}
}

func TestGradeQuiz_EmptyNeverPasses(t *testing.T) {
	if GradeQuiz(Quiz{PassingScore: 0}, nil).Passed {
		t.Error("quiz without questions must not pass")
	}
}

func TestQuizNormalize(t *testing.T) {
	q := Quiz{Questions: []Question{
		{Question: "b", Order: 2},
		{Question: "a", Order: 1},
	}}
	q.Normalize()
	if q.Questions[0].Question != "a" {
		t.Errorf("first question = %q, want %q", q.Questions[0].Question, "a")
	}
	for i, qu := range q.Questions {
		if qu.Options == nil {
			t.Errorf("Questions[%d].Options is nil", i)
		}
	}

	var empty Quiz
	empty.Normalize()
	if empty.Questions == nil {
		t.Error("Questions is nil after Normalize")
	}
}

func TestQuizHasID(t *testing.T) {
	id := int64(4)
	if !(Quiz{ID: &id}).HasID(4) {
		t.Error("HasID(4) = false")
	}
	if (Quiz{}).HasID(4) {
		t.Error("HasID on quiz without id = true")
	}
}
