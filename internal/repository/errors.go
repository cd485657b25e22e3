package repository

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no row carries the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = errors.New("record already exists")
)

// StoreError wraps an unexpected failure of the relational store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, errors.Cause(e.Err))
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: errors.WithStack(err)}
}
