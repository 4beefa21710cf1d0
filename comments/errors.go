package comments

import (
	"errors"
	"fmt"
)

const (
	MessageInvalidCredential = "API key not valid. Please pass a valid API key."
	MessageVideoNotFound     = "No video found. Are you sure the URL is correct?"
	MessageInvalidLocator    = "Invalid URL. Please enter a valid YouTube video URL."
)

// CredentialError means the API rejected the caller's key.
type CredentialError struct {
	Reason string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("credential rejected (%s)", e.Reason)
	}
	return "credential rejected"
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ResourceNotFoundError means the video id does not match any existing video.
type ResourceNotFoundError struct {
	VideoID string
	Err     error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("video %q not found", e.VideoID)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// ProtocolDriftError means a response lacked a field the loop relies on for
// continuation. The aggregator treats it as end-of-data.
type ProtocolDriftError struct {
	Field  string
	Detail string
}

func (e *ProtocolDriftError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("response field %q unusable: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("response field %q missing", e.Field)
}

// LocatorParseError means the caller-supplied locator has no recognized shape.
type LocatorParseError struct {
	Locator string
}

func (e *LocatorParseError) Error() string {
	return fmt.Sprintf("unrecognized video locator %q", e.Locator)
}

// FetchError wraps any other failure of a page fetch or reply resolution.
type FetchError struct {
	Op    string
	Page  int
	State State
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s (page %d, state %s): %v", e.Op, e.Page, e.State, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage turns any error produced by this package or its collaborators
// into a human-readable message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var credErr *CredentialError
	var notFoundErr *ResourceNotFoundError
	var locErr *LocatorParseError
	switch {
	case errors.As(err, &credErr):
		return MessageInvalidCredential
	case errors.As(err, &notFoundErr):
		return MessageVideoNotFound
	case errors.As(err, &locErr):
		return MessageInvalidLocator
	}
	return "Failed to download comments: " + err.Error()
}
