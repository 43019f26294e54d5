// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package insight

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes request failures.
type ErrorKind int

const (
	// KindValidation means the request was rejected before any network call.
	KindValidation ErrorKind = iota
	// KindTransport covers unreachable hosts, context expiry and non-2xx replies.
	KindTransport
	// KindDecode means the reply body could not be parsed.
	KindDecode
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError is the single error type returned by Client calls.
// Status is the HTTP status code when a reply was received, zero otherwise.
type RequestError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Cause != nil {
		return e.Kind.String() + " error: " + msg + ": " + e.Cause.Error()
	}
	return e.Kind.String() + " error: " + msg
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ErrEmptyCompany is the cause attached to validation failures.
var ErrEmptyCompany = errors.New("company name is required")

// IsKind reports whether err is a RequestError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind == kind
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

func validationError(cause error) *RequestError {
	return &RequestError{Kind: KindValidation, Message: "invalid request", Cause: cause}
}

func transportError(status int, message string, cause error) *RequestError {
	return &RequestError{Kind: KindTransport, Status: status, Message: message, Cause: cause}
}

func decodeError(status int, cause error) *RequestError {
	return &RequestError{Kind: KindDecode, Status: status, Message: "failed to parse response", Cause: cause}
}
