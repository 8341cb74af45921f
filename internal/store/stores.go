package store

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/qkit-edu/qkit/pkg/client"
)

// Stores bundles the domain stores over one shared client.
type Stores struct {
	Courses *CourseStore
	Orders  *OrderStore
	Quizzes *QuizStore
	Users   *UserStore
}

// New creates every store on top of c.
func New(c *client.Client, logger zerolog.Logger) *Stores {
	return &Stores{
		Courses: NewCourseStore(c, logger),
		Orders:  NewOrderStore(c, logger),
		Quizzes: NewQuizStore(c, logger),
		Users:   NewUserStore(c, logger),
	}
}

// Dashboard loads the admin overview: users, orders and the course
// catalog, concurrently. Each store records its own failure; the first
// error is returned after every request has finished.
func (s *Stores) Dashboard(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Users.FetchAllUsers(ctx) })
	g.Go(func() error { return s.Orders.FetchAdminOrders(ctx, 1, AllPageSize) })
	g.Go(func() error { return s.Courses.FetchAllCourses(ctx) })
	return g.Wait()
}
