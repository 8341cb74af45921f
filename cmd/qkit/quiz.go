package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/qkit-edu/qkit/pkg/domain"
)

func (a *app) newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Inspect and manage lesson quizzes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a quiz",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "quiz id")
				if err != nil {
					return err
				}
				if err := a.setup(false); err != nil {
					return err
				}
				q, err := a.stores.Quizzes.FetchQuiz(cmd.Context(), id)
				if err != nil {
					return storeError(a.stores.Quizzes.Selected().Err)
				}
				return a.printQuiz(q)
			},
		},
		&cobra.Command{
			Use:   "lesson <lessonId>",
			Short: "Show the quiz of a lesson",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "lesson id")
				if err != nil {
					return err
				}
				if err := a.setup(false); err != nil {
					return err
				}
				q, err := a.stores.Quizzes.FetchQuizByLesson(cmd.Context(), id)
				if err != nil {
					return storeError(a.stores.Quizzes.Selected().Err)
				}
				return a.printQuiz(q)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a quiz",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "quiz id")
				if err != nil {
					return err
				}
				if err := a.setup(false); err != nil {
					return err
				}
				if err := a.stores.Quizzes.DeleteQuiz(cmd.Context(), id); err != nil {
					return storeError(a.stores.Quizzes.Quizzes().Err)
				}
				fmt.Fprintf(a.out, "Deleted quiz %d.\n", id)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) printQuiz(q *domain.Quiz) error {
	if a.jsonOutput {
		return a.printJSON(q)
	}
	writeQuiz(a.out, q)
	return nil
}

func writeQuiz(w io.Writer, q *domain.Quiz) {
	fmt.Fprintf(w, "%s\n", q.Title)
	if q.Description != "" {
		fmt.Fprintf(w, "  %s\n", q.Description)
	}
	fmt.Fprintf(w, "  lesson %d . %d questions . %d points . pass at %d%%", q.LessonID, len(q.Questions), q.TotalPoints(), q.PassingScore)
	if q.TimeLimit > 0 {
		fmt.Fprintf(w, " . %s", domain.FormatDuration(q.TimeLimit*60))
	}
	fmt.Fprintln(w)
	for i, qu := range q.Questions {
		fmt.Fprintf(w, "\n%d. %s (%dpt)\n", i+1, qu.Question, qu.Points)
		for j, opt := range qu.Options {
			mark := " "
			if opt.IsCorrect {
				mark = "*"
			}
			fmt.Fprintf(w, "   %s %d) %s\n", mark, j+1, opt.Text)
		}
	}
}
