package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// ListQuizzes fetches one page of quizzes.
func (c *Client) ListQuizzes(ctx context.Context, page, limit int) (*domain.Page[domain.Quiz], error) {
	var out domain.Page[domain.Quiz]
	if err := c.get(ctx, "/quizzes?"+pageQuery(page, limit), &out); err != nil {
		return nil, fmt.Errorf("client.ListQuizzes: %w", err)
	}
	return &out, nil
}

// GetQuiz fetches a quiz by ID.
func (c *Client) GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	var q domain.Quiz
	if err := c.get(ctx, "/quizzes/"+strconv.FormatInt(id, 10), &q); err != nil {
		return nil, fmt.Errorf("client.GetQuiz: %w", err)
	}
	q.Normalize()
	return &q, nil
}

// GetQuizByLesson fetches the quiz attached to a lesson.
func (c *Client) GetQuizByLesson(ctx context.Context, lessonID int64) (*domain.Quiz, error) {
	var q domain.Quiz
	if err := c.get(ctx, "/quizzes/lesson/"+strconv.FormatInt(lessonID, 10), &q); err != nil {
		return nil, fmt.Errorf("client.GetQuizByLesson: %w", err)
	}
	q.Normalize()
	return &q, nil
}

// CreateQuiz creates a new quiz and returns it with its server ID.
func (c *Client) CreateQuiz(ctx context.Context, quiz domain.Quiz) (*domain.Quiz, error) {
	var created domain.Quiz
	if err := c.post(ctx, "/quizzes", quiz, &created); err != nil {
		return nil, fmt.Errorf("client.CreateQuiz: %w", err)
	}
	created.Normalize()
	return &created, nil
}

// UpdateQuiz patches a quiz and returns the updated record.
func (c *Client) UpdateQuiz(ctx context.Context, id int64, quiz domain.Quiz) (*domain.Quiz, error) {
	var updated domain.Quiz
	if err := c.doRequest(ctx, http.MethodPatch, "/quizzes/"+strconv.FormatInt(id, 10), quiz, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateQuiz: %w", err)
	}
	updated.Normalize()
	return &updated, nil
}

// DeleteQuiz deletes a quiz by ID.
func (c *Client) DeleteQuiz(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/quizzes/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteQuiz: %w", err)
	}
	return nil
}
