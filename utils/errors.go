package utils

import (
	"errors"
	"fmt"
)

// Error codes surfaced in HTTP error payloads.
const (
	ErrorTokenAuthFail    = 20001
	ErrorNotFound         = 20002
	ErrorInvalidArgument  = 20003
	ErrorExplicitContent  = 20004
	ErrorInternalFailure  = 20005
)

// NotFoundError indicates a referenced entity (user, want, geocoded address)
// does not exist. The enclosing operation must abort without partial writes.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Id)
}

func NewNotFoundError(resource string, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, Id: id}
}

// InvalidArgumentError indicates a malformed request field, e.g. a
// non-positive radius or an empty target user list.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

func NewInvalidArgumentError(format string, args ...interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// ExplicitContentError indicates the moderation gate flagged a user supplied
// field. Nothing is persisted when this error is returned.
type ExplicitContentError struct {
	Field    string
	Category string
}

func (e *ExplicitContentError) Error() string {
	return fmt.Sprintf("%s detected in %s. Explicit content is not allowed", e.Category, e.Field)
}

func NewExplicitContentError(field string, category string) *ExplicitContentError {
	return &ExplicitContentError{Field: field, Category: category}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

func IsExplicitContent(err error) bool {
	var e *ExplicitContentError
	return errors.As(err, &e)
}
