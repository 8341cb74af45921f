package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/qkit-edu/qkit/pkg/domain"
)

// pageFlags are the --page/--limit pair of the list commands.
type pageFlags struct {
	page  int
	limit int
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&p.limit, "limit", 0, "items per page (default: page_size from config)")
}

func (p pageFlags) resolve(defaultLimit int) (int, int, error) {
	if p.page < 1 {
		return 0, 0, fmt.Errorf("--page must be at least 1, got %d", p.page)
	}
	limit := p.limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		return 0, 0, fmt.Errorf("--limit must be positive, got %d", limit)
	}
	return p.page, limit, nil
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, raw)
	}
	return id, nil
}

// storeError turns the message recorded by a store into the command error.
func storeError(msg string) error {
	return errors.New(msg)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}

func (a *app) newCoursesCmd() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List the course catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			page, limit, err := pf.resolve(a.cfg.PageSize)
			if err != nil {
				return err
			}
			if err := a.stores.Courses.FetchCourses(cmd.Context(), page, limit); err != nil {
				return storeError(a.stores.Courses.Courses().Err)
			}
			st := a.stores.Courses.Courses()
			if a.jsonOutput {
				return a.printJSON(domain.Page[domain.Course]{Items: st.Items, Meta: st.Meta})
			}
			t := newTable("ID", "NAME", "LEVEL", "PRICE", "STUDENTS")
			for _, c := range st.Items {
				t.Row(strconv.FormatInt(c.ID, 10), c.Name, strings.ToLower(string(c.CourseLevel)),
					domain.FormatVND(c.EffectivePrice()), strconv.Itoa(c.TotalStudents))
			}
			fmt.Fprintln(a.out, t.String())
			fmt.Fprintf(a.out, "page %d/%d . %d total\n", page, max(st.Meta.TotalPages, 1), st.Meta.TotalItems)
			return nil
		},
	}
	pf.register(cmd)
	cmd.AddCommand(a.newRatingCmd())
	return cmd
}

func (a *app) newRatingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rating <id>",
		Short: "Show the average rating of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "course id")
			if err != nil {
				return err
			}
			if err := a.setup(false); err != nil {
				return err
			}
			r, err := a.stores.Courses.FetchRating(cmd.Context(), id)
			if err != nil {
				return storeError(a.stores.Courses.Rating().Err)
			}
			if a.jsonOutput {
				return a.printJSON(r)
			}
			fmt.Fprintf(a.out, "course %d: %.1f/5 from %d reviews\n", id, r.Average, r.Count)
			return nil
		},
	}
}

func (a *app) newMyCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-courses",
		Short: "List the courses you teach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			if err := a.stores.Courses.FetchTeacherCourses(cmd.Context()); err != nil {
				return storeError(a.stores.Courses.Teaching().Err)
			}
			st := a.stores.Courses.Teaching()
			if a.jsonOutput {
				return a.printJSON(domain.Page[domain.TeachingCourse]{Items: st.Items, Meta: st.Meta})
			}
			t := newTable("ID", "NAME", "LESSONS", "STUDENTS", "PRICE")
			for _, c := range st.Items {
				t.Row(strconv.FormatInt(c.ID, 10), c.Name, strconv.Itoa(c.TotalLessons),
					strconv.Itoa(c.TotalStudents), domain.FormatVND(domain.ParsePrice(c.Price)))
			}
			fmt.Fprintln(a.out, t.String())
			fmt.Fprintf(a.out, "%d courses\n", st.Meta.TotalItems)
			return nil
		},
	}
}

func (a *app) newOrdersCmd() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			page, limit, err := pf.resolve(a.cfg.PageSize)
			if err != nil {
				return err
			}
			if err := a.stores.Orders.FetchAdminOrders(cmd.Context(), page, limit); err != nil {
				return storeError(a.stores.Orders.Orders().Err)
			}
			st := a.stores.Orders.Orders()
			if a.jsonOutput {
				return a.printJSON(domain.DataPage[domain.Order]{Data: st.Items, Meta: st.Meta})
			}
			t := newTable("ID", "DATE", "BUYER", "STATUS", "COURSES", "TOTAL")
			for _, o := range st.Items {
				t.Row(strconv.FormatInt(o.ID, 10), o.CreatedAt, displayName(o.User.UserName, o.User.Email),
					strings.ToLower(o.Status), strconv.Itoa(len(o.Courses)), domain.FormatVND(o.TotalPrice))
			}
			fmt.Fprintln(a.out, t.String())
			fmt.Fprintf(a.out, "page %d/%d . %d total . completed revenue on this page %s\n",
				page, max(st.Meta.TotalPages, 1), st.Meta.TotalItems, domain.FormatVND(a.stores.Orders.Revenue()))
			return nil
		},
	}
	pf.register(cmd)
	return cmd
}

func (a *app) newUsersCmd() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			page, limit, err := pf.resolve(a.cfg.PageSize)
			if err != nil {
				return err
			}
			if err := a.stores.Users.FetchUsers(cmd.Context(), page, limit); err != nil {
				return storeError(a.stores.Users.Users().Err)
			}
			st := a.stores.Users.Users()
			if a.jsonOutput {
				return a.printJSON(domain.Page[domain.User]{Items: st.Items, Meta: st.Meta})
			}
			t := newTable("ID", "USERNAME", "EMAIL", "ROLE", "VERIFIED", "BLOCKED")
			for _, u := range st.Items {
				t.Row(strconv.FormatInt(u.ID, 10), u.UserName, u.Email, userRole(u),
					strconv.FormatBool(u.IsVerified), strconv.FormatBool(u.IsBlocked))
			}
			fmt.Fprintln(a.out, t.String())
			fmt.Fprintf(a.out, "page %d/%d . %d total\n", page, max(st.Meta.TotalPages, 1), st.Meta.TotalItems)
			return nil
		},
	}
	pf.register(cmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			if err := a.setup(false); err != nil {
				return err
			}
			u, err := a.stores.Users.FetchUser(cmd.Context(), id)
			if err != nil {
				return storeError(a.stores.Users.Selected().Err)
			}
			if a.jsonOutput {
				return a.printJSON(u)
			}
			fmt.Fprintf(a.out, "%s\n", displayName(u.UserName, u.Email))
			fmt.Fprintf(a.out, "  id        %d\n", u.ID)
			fmt.Fprintf(a.out, "  email     %s\n", u.Email)
			fmt.Fprintf(a.out, "  role      %s\n", userRole(*u))
			fmt.Fprintf(a.out, "  verified  %t\n", u.IsVerified)
			fmt.Fprintf(a.out, "  blocked   %t\n", u.IsBlocked)
			return nil
		},
	})
	return cmd
}

func userRole(u domain.User) string {
	if u.Role == nil {
		return roleOrDefault("")
	}
	return roleOrDefault(u.Role.Name)
}
