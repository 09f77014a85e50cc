package formatter

import (
	"fmt"
	"strings"

	"github.com/SHoar/Wedding-AI/internal/domain/planning"
)

// BuildContextMarkdown renders a planning snapshot as the plain-text block fed to the summarizer.
// The layout is fixed; the response cache keys on its exact bytes.
func BuildContextMarkdown(s planning.Snapshot) string {
	lines := []string{
		"Wedding: " + s.Wedding.Name,
		"Date: " + orDefault(s.Wedding.Date, "unknown"),
		"Venue: " + orDefault(s.Wedding.VenueName, "unknown"),
		"",
		"Guests:",
	}

	if len(s.Guests) == 0 {
		lines = append(lines, "- No guest records provided.")
	}
	for _, g := range s.Guests {
		lines = append(lines, fmt.Sprintf("- %s | email=%s | phone=%s | plus_ones=%d | dietary=%s",
			g.Name, orDefault(g.Email, "-"), orDefault(g.Phone, "-"), g.PlusOneCount, orDefault(g.DietaryNotes, "-")))
	}

	lines = append(lines, "", "Tasks:")
	if len(s.Tasks) == 0 {
		lines = append(lines, "- No tasks provided.")
	}
	for _, t := range s.Tasks {
		lines = append(lines, fmt.Sprintf("- %s | status=%s | priority=%s",
			t.Title, orDefault(t.Status, "pending"), orDefault(t.Priority, "medium")))
	}

	lines = append(lines, "", "Guestbook:")
	if len(s.GuestbookEntries) == 0 {
		lines = append(lines, "- No guestbook entries provided.")
	}
	for _, e := range s.GuestbookEntries {
		visibility := "private"
		if e.IsPublic {
			visibility = "public"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", e.GuestName, visibility, e.Message))
	}

	return strings.Join(lines, "\n")
}

// empty strings fall back too
func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
