package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// ListCourses fetches one page of the public catalog.
func (c *Client) ListCourses(ctx context.Context, page, limit int) (*domain.Page[domain.Course], error) {
	var out domain.Page[domain.Course]
	if err := c.get(ctx, "/courses?"+pageQuery(page, limit), &out); err != nil {
		return nil, fmt.Errorf("client.ListCourses: %w", err)
	}
	return &out, nil
}

// GetCourse fetches a single course by ID.
func (c *Client) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course
	if err := c.get(ctx, "/courses/"+strconv.FormatInt(id, 10), &course); err != nil {
		return nil, fmt.Errorf("client.GetCourse: %w", err)
	}
	return &course, nil
}

// CourseAverageRating returns the average rating and review count of a course.
func (c *Client) CourseAverageRating(ctx context.Context, id int64) (*domain.AverageRating, error) {
	var r domain.AverageRating
	if err := c.get(ctx, "/courses/"+strconv.FormatInt(id, 10)+"/ratings/average", &r); err != nil {
		return nil, fmt.Errorf("client.CourseAverageRating: %w", err)
	}
	return &r, nil
}

// MyCourses returns the courses taught by the authenticated teacher.
func (c *Client) MyCourses(ctx context.Context, page, limit int) (*domain.TeachingPage[domain.TeachingCourse], error) {
	var out domain.TeachingPage[domain.TeachingCourse]
	if err := c.get(ctx, "/courses/my-courses?"+pageQuery(page, limit), &out); err != nil {
		return nil, fmt.Errorf("client.MyCourses: %w", err)
	}
	return &out, nil
}
