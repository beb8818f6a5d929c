package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// UnreachableMessage is shown when no response came back at all.
const UnreachableMessage = "Unable to reach the assessment platform"

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError names the missing resource; errors.Is(err, ErrNotFound) holds.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// RequestFailedError is any non-2xx reply, or a transport failure with
// StatusCode 0. Message is what a person should read.
type RequestFailedError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

func NewRequestFailedError(status int, message string) *RequestFailedError {
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "request failed"
	}
	return &RequestFailedError{StatusCode: status, Message: message}
}

// NewUnreachableError wraps a transport failure; the cause stays reachable
// through errors.Is, so context deadlines still match.
func NewUnreachableError(cause error) *RequestFailedError {
	return &RequestFailedError{Message: UnreachableMessage, Err: cause}
}

// InvalidFileTypeError is raised before any upload is attempted.
type InvalidFileTypeError struct {
	Name        string
	ContentType string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("invalid file type for %q: please upload a CSV file", e.Name)
}

func NewInvalidFileTypeError(name, contentType string) *InvalidFileTypeError {
	return &InvalidFileTypeError{Name: name, ContentType: contentType}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation matches both a single ValidationError and a ValidationErrors set.
func IsValidation(err error) bool {
	var one *ValidationError
	var many ValidationErrors
	return errors.As(err, &one) || errors.As(err, &many)
}

func IsRequestFailed(err error) bool {
	var rf *RequestFailedError
	return errors.As(err, &rf)
}

func IsInvalidFileType(err error) bool {
	var ft *InvalidFileTypeError
	return errors.As(err, &ft)
}

// AsValidationErrors normalizes either validation shape into a set.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var many ValidationErrors
	if errors.As(err, &many) {
		return many, true
	}
	var one *ValidationError
	if errors.As(err, &one) {
		return ValidationErrors{*one}, true
	}
	return nil, false
}

// Message extracts the human-readable text of err for notifications.
func Message(err error) string {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Message
	}
	return err.Error()
}
