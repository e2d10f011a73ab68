package backend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a request failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindRateLimited
	KindUnavailable
	KindForbidden
	KindHTTPStatus
	KindMalformed
	KindTimeout
	KindNetwork
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	case KindForbidden:
		return "forbidden"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed_response"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindCanceled:
		return "canceled"
	}
	return "unknown"
}

// Error is returned for every failed request. Status is set only for
// non-2xx responses.
type Error struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s: %v", e.Kind, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: status %d", e.Kind, e.Status)
	}
	return "backend " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user.
func (e *Error) Message() string {
	switch e.Kind {
	case KindRateLimited:
		return "Rate limit exceeded. Please wait a moment before trying again."
	case KindUnavailable:
		return "The chat service is temporarily unavailable. Please try again later."
	case KindForbidden:
		return "Access denied. The API key may be invalid or expired."
	case KindHTTPStatus:
		return fmt.Sprintf("API request failed with status %d. Please try again.", e.Status)
	case KindMalformed:
		return "Invalid response format from the chat API."
	case KindTimeout:
		return "Request timed out. Please check your internet connection and try again."
	case KindNetwork:
		return "Unable to connect to the chat service. Please check your internet connection or try again later. The service may be temporarily unavailable."
	case KindCanceled:
		return "Request cancelled."
	}
	return "An unexpected error occurred while connecting to the chat service. Please try again."
}

// classifyStatus maps a non-2xx status to an error.
func classifyStatus(status int) *Error {
	switch {
	case status == 429:
		return &Error{Kind: KindRateLimited, Status: status}
	case status >= 500:
		return &Error{Kind: KindUnavailable, Status: status}
	case status == 403:
		return &Error{Kind: KindForbidden, Status: status}
	}
	return &Error{Kind: KindHTTPStatus, Status: status}
}

// UserMessage returns the user-facing text for err. Errors that did not
// come from this package are shown as they are.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Message()
	}
	return err.Error()
}
