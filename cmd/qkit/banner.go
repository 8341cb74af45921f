package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var learningTips = [...]string{
	"Twenty minutes a day beats a lost weekend.",
	"The roadmap is shorter than it looks. The first step is the longest.",
	"Every quiz you fail is one you will not fail twice.",
	"Reading code counts. Writing it counts more.",
	"Your next lesson is already waiting where you left it.",
	"Finish one course before buying the next. Probably.",
	"The best time to learn Go was yesterday. The second best is now.",
	"Teachers on QKIT answer faster than you think.",
}

// printSignedOut tells a signed-out user how to get in.
func printSignedOut(w io.Writer) {
	tip := learningTips[rand.IntN(len(learningTips))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("Q K I T")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(tip)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("You are not signed in. To sign in: qkit login")

	fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
