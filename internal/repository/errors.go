// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: ErrForbidden marks an
// operation attempted on a resource owned by someone else, ErrNotFound marks
// a missing row, and ErrDuplicate marks a uniqueness violation.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as favoriting the same recipe twice or reusing a category name.
// Handlers should translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate entry")

// ErrEmailExists is returned when a registration reuses an email address.
var ErrEmailExists = errors.New("email already exists")

// assertOwner is the single ownership predicate shared by every repository.
// A resource's owner is fixed at creation, so an id comparison is sufficient.
func assertOwner(ownerID, requesterID uint64) error {
	if ownerID != requesterID {
		return ErrForbidden
	}
	return nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (server error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
