package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrNoGuests             = errors.New("config has no guests")
	ErrNoRoomCategories     = errors.New("config has no room_categories")
	ErrMissingBookingWindow = errors.New("config is missing booking_window")
	ErrInvalidBookingWindow = errors.New("booking_window is invalid")
	ErrInvalidStayLength    = errors.New("stay_length_nights is invalid")
	ErrNoCompatiblePair     = errors.New("no valid guest/room category combination")
)

// ConfigError reports input that makes generation impossible. Message is
// meant to be shown to the person editing the config as-is.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(field string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Err: err, Message: fmt.Sprintf(format, args...)}
}
