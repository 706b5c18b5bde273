package common

import (
	"errors"
	"fmt"
)

// UserVisibleError carries an HTTP status and a message that is safe to show
// to API clients.
type UserVisibleError struct {
	HttpCode int
	Message  string
	Err      error
}

func (e *UserVisibleError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.HttpCode, e.Message)
}

func (e *UserVisibleError) Unwrap() error {
	return e.Err
}

func NewUserVisibleError(httpCode int, message string) *UserVisibleError {
	return &UserVisibleError{
		HttpCode: httpCode,
		Message:  message,
	}
}

// WithCause returns a UserVisibleError that also wraps err for logging and
// errors.Is/As, without exposing it in Message.
func WithCause(httpCode int, message string, err error) *UserVisibleError {
	return &UserVisibleError{
		HttpCode: httpCode,
		Message:  message,
		Err:      err,
	}
}

func WrapErrorForResponse(err error, message string) error {
	var e *UserVisibleError
	if errors.As(err, &e) {
		return &UserVisibleError{
			HttpCode: e.HttpCode,
			Message:  fmt.Sprintf("%s: %s", message, e.Message),
			Err:      e.Err,
		}
	}
	return err
}
