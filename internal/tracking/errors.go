package tracking

import "errors"

var (
	// ErrGroupNotFound is returned when a group ID does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrGroupNameConflict is returned when a group name is already taken.
	ErrGroupNameConflict = errors.New("group name already exists")
)

// Client-visible validation messages for range queries.
const (
	MsgMissingParameters = "Missing parameters"
	MsgInvalidDateFormat = "Invalid date format. Use YYYY-MM-DD."
)

// ValidationError reports input that was missing or could not be parsed.
// Message is safe to return to API clients verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
