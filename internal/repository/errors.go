// Package repository defines the SQL access layer for visitors, selections
// and payments together with the error values shared by every repository.
// These sentinel values allow the service layer to tell a missing row or a
// duplicate key apart from a genuine storage failure.
package repository

import "errors"

// ErrNotFound is returned when the referenced visitor, selection or
// payment row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as adding the same (visitor, category, offering) selection twice.
var ErrDuplicate = errors.New("duplicate")
