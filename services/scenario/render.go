package scenario

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"reservodojo/models"
)

const (
	generatedIDLayout = "2006-01-02_15-04-05"
	finishedAtLayout  = "2006-01-02 15:04:05"
	maxFilenamePart   = 40
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	filenameRejected = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// NewGeneratedID is the timestamp identifier shown to the trainee.
func NewGeneratedID(now time.Time) string {
	return now.Format(generatedIDLayout)
}

// RenderTaskText is the compact report offered for download from the web UI.
func RenderTaskText(s models.Scenario, bookingNumber, generatedID, followUp string, now time.Time) string {
	guest := "Guest: " + s.GuestName
	if s.GuestComment != "" {
		guest += " | Comment: " + s.GuestComment
	}
	lines := []string{
		fmt.Sprintf("PMS TRAINING TASK | ID: %s | Booking: %s | Finished: %s", generatedID, bookingNumber, now.Format(finishedAtLayout)),
		"",
		guest,
		"Room: " + s.RoomCategory,
		fmt.Sprintf("Guests: %d", s.GuestCount),
		fmt.Sprintf("Arrival: %s | Departure: %s | Nights: %d", s.Arrival, s.Departure, s.Nights),
		"Extras: " + s.ExtraServices,
	}
	if followUp != "" {
		lines = append(lines, "Follow-up: "+followUp)
	}
	return strings.Join(lines, "\n")
}

// RenderTaskReport is the long-form report written to the task export directory.
func RenderTaskReport(s models.Scenario, bookingNumber, generatedID, followUp string, now time.Time) string {
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%-18s%s\n", label, value)
	}

	b.WriteString("PMS TRAINING TASK\n")
	b.WriteString("=================\n\n")
	row("TASK ID:", generatedID)
	row("Booking number:", bookingNumber)
	row("Finished at:", now.Format(finishedAtLayout))
	b.WriteString("\nSCENARIO\n")
	b.WriteString("--------\n")
	row("Guest name:", s.GuestName)
	if s.GuestComment != "" {
		row("Guest comment:", s.GuestComment)
	}
	row("Room category:", s.RoomCategory)
	row("Guests:", fmt.Sprint(s.GuestCount))
	row("Arrival:", s.Arrival)
	row("Departure:", s.Departure)
	row("Nights:", fmt.Sprint(s.Nights))
	row("Extra services:", s.ExtraServices)
	if followUp != "" {
		row("Follow-up:", followUp)
	}
	return b.String()
}

// SanitizeForFilename keeps a booking number safe to embed in a file name.
func SanitizeForFilename(text string) string {
	text = strings.TrimSpace(text)
	text = whitespaceRun.ReplaceAllString(text, "_")
	text = filenameRejected.ReplaceAllString(text, "")
	if text == "" {
		return "UNKNOWN"
	}
	if len(text) > maxFilenamePart {
		text = text[:maxFilenamePart]
	}
	return text
}

// TaskFileName is PMS_Task_<generated id>_BN-<sanitized booking number>.txt.
func TaskFileName(generatedID, bookingNumber string) string {
	return fmt.Sprintf("PMS_Task_%s_BN-%s.txt", generatedID, SanitizeForFilename(bookingNumber))
}
