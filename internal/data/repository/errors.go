package repository

import "errors"

// ErrNotFound is returned by updates and deletes that matched no live row.
// Finders return nil, nil instead.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write cannot proceed because of
// existing state, such as a seat already taken by another booking or a
// status change on a booking that is no longer pending.
var ErrConflict = errors.New("conflict")

// ErrDuplicateCode is returned when a booking's generated code is
// already taken. Callers regenerate the code and retry.
var ErrDuplicateCode = errors.New("duplicate booking code")
