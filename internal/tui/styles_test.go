package tui

import (
	"strings"
	"testing"
	"time"
)

func TestCategoryStyleKnownCategory(t *testing.T) {
	for _, cat := range []string{"palestra", "workshop", "minicurso", "hackathon", "congresso", "social"} {
		t.Run(cat, func(t *testing.T) {
			rendered := CategoryStyle(cat).Render(cat)
			if !strings.Contains(rendered, cat) {
				t.Errorf("CategoryStyle(%q).Render(%q) = %q, want to contain %q", cat, cat, rendered, cat)
			}
		})
	}
}

func TestCategoryStyleUnknownFallback(t *testing.T) {
	rendered := CategoryStyle("nonexistent-category").Render("x")
	if !strings.Contains(rendered, "x") {
		t.Errorf("CategoryStyle fallback did not render text: %q", rendered)
	}
}

func TestStatusStyleRendersAllStatuses(t *testing.T) {
	for _, status := range []string{"pending", "approved", "rejected", "something-else"} {
		t.Run(status, func(t *testing.T) {
			rendered := statusStyle(status).Render(status)
			if !strings.Contains(rendered, status) {
				t.Errorf("statusStyle(%q) did not render text: %q", status, rendered)
			}
		})
	}
}

func TestRatingStars(t *testing.T) {
	tests := []struct {
		rating     int
		wantFilled int
	}{
		{0, 0},
		{3, 3},
		{5, 5},
		{-1, 0}, // clamped
		{7, 5},  // clamped
	}
	for _, tc := range tests {
		got := ratingStars(tc.rating)
		if n := strings.Count(got, "★"); n != tc.wantFilled {
			t.Errorf("ratingStars(%d): %d filled stars, want %d", tc.rating, n, tc.wantFilled)
		}
		if n := strings.Count(got, "☆"); n != 5-tc.wantFilled {
			t.Errorf("ratingStars(%d): %d empty stars, want %d", tc.rating, n, 5-tc.wantFilled)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{0, "free"},
		{-100, "free"},
		{50, "R$ 0,50"},
		{100, "R$ 1,00"},
		{2550, "R$ 25,50"},
		{123456, "R$ 1234,56"},
		{1005, "R$ 10,05"},
	}
	for _, tc := range tests {
		if got := formatMoney(tc.cents); got != tc.want {
			t.Errorf("formatMoney(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatEventDate(t *testing.T) {
	ts := time.Date(2025, time.November, 2, 19, 0, 0, 0, time.UTC)
	got := formatEventDate(ts)
	if !strings.Contains(got, "02 Nov") || !strings.Contains(got, "19:00") {
		t.Errorf("formatEventDate = %q, want day and time", got)
	}

	if got := formatEventDate(time.Time{}); got != "date tba" {
		t.Errorf("formatEventDate(zero) = %q, want %q", got, "date tba")
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"newlines flattened", "line1\nline2\r\nline3", "line1 line2 line3"},
		{"whitespace collapsed", "a   b\t\tc", "a b c"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanDescription(tc.in); got != tc.want {
				t.Errorf("cleanDescription(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestHelpEntryFormat(t *testing.T) {
	result := helpEntry("q", "quit")
	if !strings.Contains(result, "q") {
		t.Errorf("helpEntry('q','quit') does not contain key 'q': %q", result)
	}
	if !strings.Contains(result, "quit") {
		t.Errorf("helpEntry('q','quit') does not contain label 'quit': %q", result)
	}
}

func TestHelpViewListsCommands(t *testing.T) {
	out := helpView(0)
	for _, want := range []string{"M E E T I X", "meetix logout", "meetix update", "Terms of Service"} {
		if !strings.Contains(out, want) {
			t.Errorf("helpView missing %q", want)
		}
	}
}
