package services

import (
	"errors"
	"fmt"
)

// ErrProductNotFound matches every NotFoundError through errors.Is.
var ErrProductNotFound = errors.New("product not found")

// NotFoundError is returned when no product has the requested id.
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
