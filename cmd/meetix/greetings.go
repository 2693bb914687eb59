package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// taglines rotate under the help header.
var taglines = [...]string{
	"Every lecture, workshop and hack night on campus, one terminal away.",
	"Tickets, badges and certificates without leaving your shell.",
	"The events are real. The queue at the auditorium is optional.",
	"Your course credit hours, now downloadable as PDFs.",
	"Check in before the coffee runs out.",
	"Free events cost one keypress. Paid ones cost two.",
	"Somewhere on campus a workshop just opened its last spot.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("M E E T I X")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(taglines[rand.Intn(len(taglines))])

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"meetix", "Browse events (interactive TUI)"},
		{"meetix logout", "Clear your session"},
		{"meetix update", "Check for updates"},
		{"meetix terms", "Terms of Service"},
		{"meetix privacy", "Privacy Policy"},
		{"meetix --version", "Show version"},
		{"meetix help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://meetix.app")
	fmt.Printf("\n  %s\n\n", url)
}
