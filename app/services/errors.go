package services

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError reports an identifier that does not resolve to a
// stored entity.
type ResourceNotFoundError struct {
	Resource string
	Field    string
	Value    int64
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s : '%d'", e.Resource, e.Field, e.Value)
}

// BadRequestError reports a semantically invalid request.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is, or wraps, a ResourceNotFoundError.
func IsNotFound(err error) bool {
	var target *ResourceNotFoundError
	return errors.As(err, &target)
}

// IsBadRequest reports whether err is, or wraps, a BadRequestError.
func IsBadRequest(err error) bool {
	var target *BadRequestError
	return errors.As(err, &target)
}

func postNotFound(id int64) error {
	return &ResourceNotFoundError{Resource: "Post", Field: "id", Value: id}
}

func commentNotInPost() error {
	return &BadRequestError{Message: "comment does not belong to post"}
}

func commentNotFound(id int64) error {
	return &ResourceNotFoundError{Resource: "Comment", Field: "id", Value: id}
}
