package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// AllPageSize is the page size used by the "fetch everything" variants.
const AllPageSize = 100

const (
	msgCoursesFailed = "An unknown error occurred while fetching courses"
	msgUsersFailed   = "An unknown error occurred while fetching users"
	msgUnknown       = "Unknown error occurred"
)

// CourseAPI is the part of the client CourseStore uses.
type CourseAPI interface {
	ListCourses(ctx context.Context, page, limit int) (*domain.Page[domain.Course], error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	CourseAverageRating(ctx context.Context, id int64) (*domain.AverageRating, error)
	MyCourses(ctx context.Context, page, limit int) (*domain.TeachingPage[domain.TeachingCourse], error)
}

// CourseStore holds the course catalog, the signed-in teacher's courses,
// the selected course and its rating.
type CourseStore struct {
	api CourseAPI
	log zerolog.Logger

	courses  Slice[domain.Course]
	teaching Slice[domain.TeachingCourse]
	selected Value[domain.Course]
	rating   Value[domain.AverageRating]
}

// NewCourseStore returns an empty course store backed by api.
func NewCourseStore(api CourseAPI, logger zerolog.Logger) *CourseStore {
	return &CourseStore{api: api, log: logger.With().Str("store", "course").Logger()}
}

// FetchCourses loads one page of the catalog.
func (s *CourseStore) FetchCourses(ctx context.Context, page, limit int) error {
	return s.courses.load(s.log, "FetchCourses", msgCoursesFailed, func() ([]domain.Course, domain.Meta, error) {
		p, err := s.api.ListCourses(ctx, page, limit)
		if err != nil {
			return nil, domain.Meta{}, err
		}
		return p.Items, p.Meta, nil
	})
}

// FetchAllCourses loads the first AllPageSize courses.
func (s *CourseStore) FetchAllCourses(ctx context.Context) error {
	return s.courses.load(s.log, "FetchAllCourses", msgUnknown, func() ([]domain.Course, domain.Meta, error) {
		p, err := s.api.ListCourses(ctx, 1, AllPageSize)
		if err != nil {
			return nil, domain.Meta{}, err
		}
		return p.Items, p.Meta, nil
	})
}

// FetchTeacherCourses loads the courses taught by the signed-in user.
func (s *CourseStore) FetchTeacherCourses(ctx context.Context) error {
	return s.teaching.load(s.log, "FetchTeacherCourses", msgUnknown, func() ([]domain.TeachingCourse, domain.Meta, error) {
		p, err := s.api.MyCourses(ctx, 1, AllPageSize)
		if err != nil {
			return nil, domain.Meta{}, err
		}
		return p.Items, p.Meta.AsMeta(), nil
	})
}

// FetchCourse loads one course into the selected slot.
func (s *CourseStore) FetchCourse(ctx context.Context, id int64) (*domain.Course, error) {
	return s.selected.load(s.log, "FetchCourse", msgUnknown, func() (*domain.Course, error) {
		return s.api.GetCourse(ctx, id)
	})
}

// FetchRating loads the average rating of a course.
func (s *CourseStore) FetchRating(ctx context.Context, id int64) (*domain.AverageRating, error) {
	return s.rating.load(s.log, "FetchRating", msgUnknown, func() (*domain.AverageRating, error) {
		return s.api.CourseAverageRating(ctx, id)
	})
}

// Courses returns the catalog page state.
func (s *CourseStore) Courses() State[domain.Course] { return s.courses.Snapshot() }

// Teaching returns the state of the signed-in teacher's courses.
func (s *CourseStore) Teaching() State[domain.TeachingCourse] { return s.teaching.Snapshot() }

// Selected returns the course loaded by FetchCourse.
func (s *CourseStore) Selected() ValueState[domain.Course] { return s.selected.Snapshot() }

// Rating returns the rating loaded by FetchRating.
func (s *CourseStore) Rating() ValueState[domain.AverageRating] { return s.rating.Snapshot() }

// Count is the catalog size reported by the last successful list fetch.
func (s *CourseStore) Count() int {
	return s.courses.Snapshot().Meta.TotalItems
}
