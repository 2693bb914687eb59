package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// formatTime renders a relative timestamp for alert/order displays.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatEventDate renders an event start as "Sat 02 Nov 19:00".
func formatEventDate(t time.Time) string {
	if t.IsZero() {
		return "date tba"
	}
	return t.Format("Mon 02 Jan 15:04")
}

// formatMoney renders centavos as Brazilian currency, e.g. 2550 -> "R$ 25,50".
// Zero or negative means the event is free.
func formatMoney(cents int) string {
	if cents <= 0 {
		return "free"
	}
	return fmt.Sprintf("R$ %d,%02d", cents/100, cents%100)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// cleanDescription flattens an event description to a single display line:
// newlines become spaces and whitespace runs collapse.
func cleanDescription(raw string) string {
	s := strings.ReplaceAll(raw, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	parts := strings.Fields(s)
	return strings.Join(parts, " ")
}
