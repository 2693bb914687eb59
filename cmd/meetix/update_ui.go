package main

import "fmt"

// ANSI color constants for update output (no lipgloss — runs outside TUI).
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiItalic = "\033[3m"
	ansiViolet = "\033[38;2;167;139;250m" // #a78bfa
	ansiPurple = "\033[38;2;139;92;246m"  // #8b5cf6
	ansiCyan   = "\033[38;2;34;211;238m"  // #22d3ee
	ansiSlate  = "\033[38;2;136;144;160m" // #8890a0
)

// printUpdateLogo prints the spaced MEETIX wordmark in alternating violet.
func printUpdateLogo() {
	letters := "MEETIX"
	colors := [2]string{ansiViolet, ansiPurple}
	fmt.Print("\n  ")
	for i, ch := range letters {
		fmt.Printf("%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// printUpdateSuccess prints the update-complete message.
func printUpdateSuccess(oldVersion, newVersion string) {
	printUpdateLogo()
	fmt.Printf("\n  %s%s%s  %s%s→%s  %s%s%s%s\n",
		ansiSlate, oldVersion, ansiReset,
		ansiViolet, ansiBold, ansiReset,
		ansiViolet, ansiBold, newVersion, ansiReset,
	)
	fmt.Printf("\n  %s│%s %s%sYou're up to date. See you at the next event.%s\n\n",
		ansiCyan, ansiReset, ansiSlate, ansiItalic, ansiReset)
}

// printAlreadyCurrent prints the already-up-to-date message.
func printAlreadyCurrent(currentVersion string) {
	printUpdateLogo()
	fmt.Printf("\n  %s%s%s%s  %s%s✦%s  %s%scurrent%s\n",
		ansiViolet, ansiBold, currentVersion, ansiReset,
		ansiCyan, ansiBold, ansiReset,
		ansiSlate, ansiItalic, ansiReset,
	)
	fmt.Printf("\n  %s│%s %s%sNothing to update.%s\n\n",
		ansiCyan, ansiReset, ansiSlate, ansiItalic, ansiReset)
}
