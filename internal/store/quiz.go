package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// QuizAPI is the part of the client QuizStore uses.
type QuizAPI interface {
	ListQuizzes(ctx context.Context, page, limit int) (*domain.Page[domain.Quiz], error)
	GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error)
	GetQuizByLesson(ctx context.Context, lessonID int64) (*domain.Quiz, error)
	CreateQuiz(ctx context.Context, quiz domain.Quiz) (*domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id int64, quiz domain.Quiz) (*domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error
}

// QuizStore holds the quiz list and the quiz currently being taken or
// edited.
type QuizStore struct {
	api QuizAPI
	log zerolog.Logger

	quizzes  Slice[domain.Quiz]
	selected Value[domain.Quiz]
}

// NewQuizStore returns an empty quiz store backed by api.
func NewQuizStore(api QuizAPI, logger zerolog.Logger) *QuizStore {
	return &QuizStore{api: api, log: logger.With().Str("store", "quiz").Logger()}
}

// FetchQuizzes loads one page of quizzes.
func (s *QuizStore) FetchQuizzes(ctx context.Context, page, limit int) error {
	return s.quizzes.load(s.log, "FetchQuizzes", "Failed to fetch quizzes", func() ([]domain.Quiz, domain.Meta, error) {
		p, err := s.api.ListQuizzes(ctx, page, limit)
		if err != nil {
			return nil, domain.Meta{}, err
		}
		return p.Items, p.Meta, nil
	})
}

// FetchQuiz loads one quiz into the selected slot.
func (s *QuizStore) FetchQuiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	return s.selected.load(s.log, "FetchQuiz", "Failed to fetch quiz", func() (*domain.Quiz, error) {
		return s.api.GetQuiz(ctx, id)
	})
}

// FetchQuizByLesson loads the quiz of a lesson into the selected slot.
func (s *QuizStore) FetchQuizByLesson(ctx context.Context, lessonID int64) (*domain.Quiz, error) {
	return s.selected.load(s.log, "FetchQuizByLesson", "Failed to fetch quiz by lesson ID", func() (*domain.Quiz, error) {
		return s.api.GetQuizByLesson(ctx, lessonID)
	})
}

// CreateQuiz creates quiz on the server and appends the stored copy.
func (s *QuizStore) CreateQuiz(ctx context.Context, quiz domain.Quiz) (*domain.Quiz, error) {
	var created *domain.Quiz
	err := s.quizzes.mutate(s.log, "CreateQuiz", "Failed to create quiz",
		func() (err error) {
			created, err = s.api.CreateQuiz(ctx, quiz)
			return err
		},
		func(items []domain.Quiz) []domain.Quiz {
			return append(items, *created)
		})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateQuiz patches quiz id and replaces the local copy, if loaded.
func (s *QuizStore) UpdateQuiz(ctx context.Context, id int64, quiz domain.Quiz) (*domain.Quiz, error) {
	var updated *domain.Quiz
	err := s.quizzes.mutate(s.log, "UpdateQuiz", "Failed to update quiz",
		func() (err error) {
			updated, err = s.api.UpdateQuiz(ctx, id, quiz)
			return err
		},
		func(items []domain.Quiz) []domain.Quiz {
			for i := range items {
				if items[i].HasID(id) {
					items[i] = *updated
				}
			}
			return items
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteQuiz deletes quiz id and drops it from the local list. Deleting a
// quiz that is not loaded leaves the list as is.
func (s *QuizStore) DeleteQuiz(ctx context.Context, id int64) error {
	return s.quizzes.mutate(s.log, "DeleteQuiz", "Failed to delete quiz",
		func() error {
			return s.api.DeleteQuiz(ctx, id)
		},
		func(items []domain.Quiz) []domain.Quiz {
			kept := items[:0]
			for _, q := range items {
				if !q.HasID(id) {
					kept = append(kept, q)
				}
			}
			return kept
		})
}

// Quizzes returns the quiz list state.
func (s *QuizStore) Quizzes() State[domain.Quiz] { return s.quizzes.Snapshot() }

// Selected returns the quiz loaded by FetchQuiz or FetchQuizByLesson.
func (s *QuizStore) Selected() ValueState[domain.Quiz] { return s.selected.Snapshot() }
