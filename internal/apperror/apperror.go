package apperror

import (
	"errors"
	"fmt"
)

// Code classifies a failure for callers that need to react to it
// (HTTP status mapping, retry decisions, user-facing text).
type Code string

const (
	CodeBadRequest        Code = "BAD_REQUEST"
	CodeUpstreamHTTP      Code = "UPSTREAM_HTTP_ERROR"
	CodeUpstreamTransport Code = "UPSTREAM_TRANSPORT_ERROR"
	CodeUpstreamProtocol  Code = "UPSTREAM_PROTOCOL_ERROR"
	CodeConfiguration     Code = "CONFIGURATION_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Error is the error type shared by both binaries.
type Error struct {
	Code   Code
	Reason string
	// StatusCode is the upstream HTTP status, set only for CodeUpstreamHTTP.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code Code, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

func BadRequest(reason string) *Error {
	return New(CodeBadRequest, reason, nil)
}

func UpstreamHTTP(status int, reason string, err error) *Error {
	return &Error{Code: CodeUpstreamHTTP, Reason: reason, StatusCode: status, Err: err}
}

func UpstreamTransport(reason string, err error) *Error {
	return New(CodeUpstreamTransport, reason, err)
}

func UpstreamProtocol(reason string, err error) *Error {
	return New(CodeUpstreamProtocol, reason, err)
}

func Configuration(reason string) *Error {
	return New(CodeConfiguration, reason, nil)
}

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
