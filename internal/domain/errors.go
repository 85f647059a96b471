package domain

import "errors"

var ErrNotFound = errors.New("not found")

// NotFoundError is returned by lookups when the provider reports no such
// resource. It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.ID + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
