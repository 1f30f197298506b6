package codebinge

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	ErrInvalid      = "invalid"
	ErrUnauthorized = "unauthorized"
	ErrNotFound     = "not_found"
	ErrUnavailable  = "unavailable"
	ErrTransport    = "transport"
	ErrInternal     = "internal"
)

var (
	// ErrAccessDenied is returned when the caller is not on the admin allow-list.
	ErrAccessDenied = &Error{Code: ErrUnauthorized, Message: "Unauthorized"}

	// ErrNoRecipients is returned when a newsletter has nobody to go to.
	ErrNoRecipients = &Error{Code: ErrNotFound, Message: "No active subscribers found"}

	// ErrTransportUnconfigured is returned when no mail transport has been set up.
	ErrTransportUnconfigured = &Error{Code: ErrTransport, Message: "Mail transport is not configured"}
)

type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

// Errorf returns an *Error with the given code and a formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if !errors.As(err, &e) {
		return ErrInternal
	} else if e.Code != "" {
		return e.Code
	} else if e.Err != nil {
		return ErrorCode(e.Err)
	}

	return ErrInternal
}

func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if !errors.As(err, &e) {
		return "An internal error has occurred."
	} else if e.Message != "" {
		return e.Message
	} else if e.Err != nil {
		return ErrorMessage(e.Err)
	}

	return "An internal error has occurred."
}

func (e *Error) Error() string {
	var buf bytes.Buffer

	if e.Op != "" {
		fmt.Fprintf(&buf, "%s: ", e.Op)
	}

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		if e.Code != "" {
			fmt.Fprintf(&buf, "<%s> ", e.Code)
		}
		buf.WriteString(e.Message)
	}

	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
