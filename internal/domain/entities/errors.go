package entities

import (
	"fmt"
	"strings"
)

// ValidationError reports one or more field-level failures in a write body.
// The request is rejected as a whole and nothing is stored.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ParseError reports a request body that could not be decoded at all, as
// opposed to a well-formed body carrying invalid field values.
type ParseError struct {
	Message string
}

// NewParseError creates a ParseError with a formatted message.
func NewParseError(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	return e.Message
}

// NotFoundError reports a reference to an instance, collection, relationship
// or link that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewInstanceNotFound reports a missing instance by its collection path.
func NewInstanceNotFound(plural, id string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Could not find an instance with %s/%s", plural, id)}
}

// NewSegmentNotFound reports an unknown collection or relationship segment.
func NewSegmentNotFound(segment string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Could not find any instances with %s", segment)}
}

// MethodNotAllowedError reports a verb outside a route's capability set.
type MethodNotAllowedError struct {
	Method  string
	Allowed []string
}

// NewMethodNotAllowed creates a MethodNotAllowedError for a rejected verb.
func NewMethodNotAllowed(method string, allowed []string) *MethodNotAllowedError {
	return &MethodNotAllowedError{Method: method, Allowed: allowed}
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s is not supported, try %s", e.Method, strings.Join(e.Allowed, ", "))
}
