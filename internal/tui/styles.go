package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the QKIT logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "Q K I T" as a slow wave from deep navy
// (#1e3a8a) to sky blue (#60a5fa).
func renderShimmerLogo(frame int) string {
	const text = "QKIT"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		b := math.Sin(t*0.1-x*3.0)*0.5 + 0.5
		b = b*0.8 + 0.2

		r := clampByte(30 + b*(96-30))
		g := clampByte(58 + b*(165-58))
		bl := clampByte(138 + b*(250-138))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))
		if i < n-1 {
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93c5fd")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b")).
			Bold(true)

	strikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Strikethrough(true)

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#facc15"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1)
)

// roleStyle colors a role badge.
func roleStyle(role string) lipgloss.Style {
	switch role {
	case "admin":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6")).Bold(true)
	case "teacher":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
	}
}

// levelStyle colors a course level.
func levelStyle(level string) lipgloss.Style {
	switch level {
	case "ADVANCED":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	case "INTERMEDIATE":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	}
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key, label pairs.
func helpBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpView renders the key reference overlay.
func helpView() string {
	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	keys := []struct{ key, desc string }{
		{"1", "Home"},
		{"2", "Course catalog"},
		{"3", "My courses"},
		{"4", "Admin dashboard"},
		{"g", "Go to a path (/courses/12, /usersmanager ...)"},
		{"L", "Sign in / sign out"},
		{"esc", "Back"},
		{"]", "Forward"},
		{"r", "Reload the current screen"},
		{"q", "Quit"},
	}
	commands := []struct{ cmd, desc string }{
		{"qkit", "Open the terminal UI"},
		{"qkit login", "Sign in with a token or the browser"},
		{"qkit logout", "Clear your session"},
		{"qkit courses", "List the course catalog"},
		{"qkit route <path>", "Show where a path leads"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", titleStyle.Render("Q K I T   E - L E A R N I N G"))
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-8s", k.key)), descStyle.Render(k.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	return b.String()
}
