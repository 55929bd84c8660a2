package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrDuplicate is returned by implementations when an insert violates a
// storage-level unique constraint (account email, sharing-edge pair).
// Uniqueness is enforced by the database, never by read-then-write checks,
// so concurrent inserts surface here rather than as silent duplicates.
var ErrDuplicate = errors.New("duplicate key")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
