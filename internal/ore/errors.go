package ore

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for Ore API operations.
var (
	// ErrInvalidQuery is matched by every error the search builder rejects
	// before a request is sent.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrAlreadyExecuted is returned when a search query is executed twice.
	ErrAlreadyExecuted = errors.New("search query already executed")

	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("malformed API response")

	// ErrUnknownWireValue is matched by codec errors. It signals that the
	// server speaks a vocabulary this client does not know yet.
	ErrUnknownWireValue = errors.New("unknown wire value")

	// ErrRateLimitExceeded is returned when the API answers with 429.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrNotFound is returned when the API answers with 404.
	ErrNotFound = errors.New("not found")
)

// InvalidLimitError is returned for a result limit below 1.
type InvalidLimitError struct {
	Limit int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid limit %d: must be at least 1", e.Limit)
}

// Is reports whether target is ErrInvalidQuery.
func (e *InvalidLimitError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// InvalidOffsetError is returned for a negative result offset.
type InvalidOffsetError struct {
	Offset int
}

func (e *InvalidOffsetError) Error() string {
	return fmt.Sprintf("invalid offset %d: must not be negative", e.Offset)
}

// Is reports whether target is ErrInvalidQuery.
func (e *InvalidOffsetError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// UnknownCategoryCodeError is returned when a category wire code is not
// part of the category table.
type UnknownCategoryCodeError struct {
	Code int
}

func (e *UnknownCategoryCodeError) Error() string {
	return fmt.Sprintf("unknown category code %d", e.Code)
}

// Is reports whether target is ErrUnknownWireValue.
func (e *UnknownCategoryCodeError) Is(target error) bool {
	return target == ErrUnknownWireValue
}

// UnknownCategoryTitleError is returned when a category display title is
// not part of the category table.
type UnknownCategoryTitleError struct {
	Title string
}

func (e *UnknownCategoryTitleError) Error() string {
	return fmt.Sprintf("unknown category title %q", e.Title)
}

// Is reports whether target is ErrUnknownWireValue.
func (e *UnknownCategoryTitleError) Is(target error) bool {
	return target == ErrUnknownWireValue
}

// UnknownSortCodeError is returned when a sort wire code is not part of the
// sort table.
type UnknownSortCodeError struct {
	Code int
}

func (e *UnknownSortCodeError) Error() string {
	return fmt.Sprintf("unknown sort code %d", e.Code)
}

// Is reports whether target is ErrUnknownWireValue.
func (e *UnknownSortCodeError) Is(target error) bool {
	return target == ErrUnknownWireValue
}

// UnknownSortNameError is returned for a sort name that is not recognised.
type UnknownSortNameError struct {
	Name string
}

func (e *UnknownSortNameError) Error() string {
	return fmt.Sprintf("unknown sort %q", e.Name)
}

// Is reports whether target is ErrUnknownWireValue.
func (e *UnknownSortNameError) Is(target error) bool {
	return target == ErrUnknownWireValue
}

// DecodeError locates a malformed or missing field in a response payload.
type DecodeError struct {
	// Path is the field path, e.g. "[2].recommended.channel.color".
	Path string

	// Reason describes what was wrong with the value at Path.
	Reason string

	// Err is the underlying codec or date error, if any.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode response: %s", e.Reason)
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DateParseError is returned by a DateParser that cannot read a timestamp.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse date %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("parse date %q", e.Value)
}

// Unwrap returns the underlying error.
func (e *DateParseError) Unwrap() error {
	return e.Err
}

// TransportError indicates that a request failed before a usable response
// body was received.
type TransportError struct {
	// URL is the URL that was requested.
	URL string

	// StatusCode is the HTTP status code, or 0 if no response arrived.
	StatusCode int

	// Err is the underlying error.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Is maps well-known status codes onto sentinel errors.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrRateLimitExceeded:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
