// Package apierr carries the HTTP status decision out of the service layer so
// handlers map errors to responses without re-deriving status codes.
package apierr

import "fmt"

// Error is the service-layer error envelope. Status is the HTTP response
// code, Code is a stable tag for logs and metrics ("plan_parse",
// "generation_timeout", "active_plan_exists"), Err is the client-visible
// cause.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
