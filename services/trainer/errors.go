package trainer

import (
	"errors"
	"fmt"
	"strings"

	draftRepo "reservodojo/database/repository/drafts"
	taskRepo "reservodojo/database/repository/tasks"
)

var (
	ErrBookingNumberRequired = errors.New("booking number is required")
	ErrBookingNumberTooShort = errors.New("booking number must be at least 3 characters")
	ErrUnknownFormat         = errors.New("format must be compact or report")

	ErrTaskNotFound  = taskRepo.ErrTaskNotFound
	ErrDraftNotFound = draftRepo.ErrDraftNotFound
)

// ValidationError lists every problem found in a submitted trainer config.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trainer config: %s", strings.Join(e.Errors, "; "))
}
