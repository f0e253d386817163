package web

import (
	"net/http"

	"github.com/pkg/errors"
)

// Error is an error that knows the HTTP status it should be answered with.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps err with the status the client should receive.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf reports the status carried by err, or 500 for plain errors.
func StatusOf(err error) int {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr.Status
	}
	return http.StatusInternalServerError
}
