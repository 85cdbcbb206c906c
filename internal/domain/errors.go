package domain

import "errors"

// ErrDuplicateSet is returned when an insert collides with an existing
// (user, set_number) pair.
var ErrDuplicateSet = errors.New("set already exists")

// ErrSetNotFound is returned when a delete targets a set the user does not own.
var ErrSetNotFound = errors.New("set not found")
