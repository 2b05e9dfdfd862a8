package model

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when an operation runs without a current actor.
var ErrAuthRequired = errors.New("auth required: no current actor")

// ErrNotFound is returned when an order or notification id is absent from
// the acting actor's own collection.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or illegal input to create/update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a store read/write failure.
type PersistenceError struct {
	Op  string // "get" | "set"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
