package model

import (
	"errors"
	"fmt"
)

// Failure classes of an outbound API call. Every error returned by the
// Dynalist client wraps exactly one of these.
var (
	// ErrTransport means no response was received.
	ErrTransport = errors.New("dynalist: transport failure")
	// ErrRejected means a well-formed response carried a non-Ok code.
	ErrRejected = errors.New("dynalist: request rejected")
	// ErrMalformedResponse means the response body could not be parsed or
	// lacked the "_code" field.
	ErrMalformedResponse = errors.New("dynalist: malformed response")
)

// APIError is an application-level rejection returned by the Dynalist API.
type APIError struct {
	Code    ResponseCode
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("dynalist: %s", e.Code)
	}
	return fmt.Sprintf("dynalist: %s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is(err, ErrRejected) match any APIError.
func (e *APIError) Unwrap() error {
	return ErrRejected
}

// IsInvalidToken reports whether the API rejected the token itself.
func (e *APIError) IsInvalidToken() bool {
	return e.Code == CodeInvalidToken
}

// IsInboxNotConfigured reports whether the account has no inbox location set.
func (e *APIError) IsInboxNotConfigured() bool {
	return e.Code == CodeNoInbox
}
