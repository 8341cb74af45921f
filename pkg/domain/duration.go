package domain

import (
	"fmt"
	"strings"
)

// FormatDuration renders a number of seconds as "1h2m3s", dropping zero
// components. Non-positive input renders as "0s".
func FormatDuration(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "0s"
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	if seconds > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}
	return b.String()
}
