package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bookworm/internal/api"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (backend rejection, transport failure)
	ExitCommandError = 2 // Command error (bad flags, not logged in, local store)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// pricePrinter localizes numeric output (grouping for large prices).
var pricePrinter = message.NewPrinter(language.English)

// renderBooks writes the list in the requested format. now anchors the
// relative publish dates so output is deterministic under test.
func renderBooks(w io.Writer, books []api.Book, now time.Time, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	if len(books) == 0 {
		fmt.Fprintln(w, "No recommendations yet. Be the first to share a book!")
		return nil
	}

	for i, b := range books {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s\n", b.Title, stars(b.Rating))
		fmt.Fprintf(w, "  by @%s (tel %s)\n", b.Author.Username, b.Author.Phone)
		if b.Caption != "" {
			fmt.Fprintf(w, "  %s\n", b.Caption)
		}
		fmt.Fprintf(w, "  Price: %s | Shared %s\n",
			pricePrinter.Sprintf("%.2f", b.Price), formatPublishDate(now, b.CreatedAt))
		fmt.Fprintf(w, "  id: %s\n", b.ID)
	}
	return nil
}

// renderUser writes the signed-in identity in the requested format.
func renderUser(w io.Writer, user *api.User, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(user)
	}

	fmt.Fprintf(w, "@%s\n", user.Username)
	fmt.Fprintf(w, "  email: %s\n", user.Email)
	fmt.Fprintf(w, "  phone: %s\n", user.Phone)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  joined: %s\n", user.CreatedAt.Format("Jan 2, 2006"))
	}
	return nil
}

// stars renders a 1-5 rating as filled and outlined stars.
func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// formatPublishDate renders t relative to now, falling back to an
// absolute date once it is more than a week old.
func formatPublishDate(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return "on " + t.Format("Jan 2, 2006")
	}
}
