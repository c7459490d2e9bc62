// Package repository implements the MySQL persistence layer.  This file
// defines sentinel errors shared across repositories so that handlers can
// translate failure scenarios into HTTP responses with errors.Is instead of
// string matching.
package repository

import "errors"

// ErrBookingNotFound is returned when a booking id does not exist.  Handlers
// translate this into a 404 response; a repeated delete surfaces it as well,
// which makes deletion safely idempotent at the API level.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUnitNotFound is returned when a unit slug does not exist.
var ErrUnitNotFound = errors.New("unit not found")

// ErrArticleNotFound is returned when an article slug does not exist or the
// article is not published on a public lookup.
var ErrArticleNotFound = errors.New("article not found")

// ErrAdminUserNotFound is returned when no admin account matches the given
// email.  Login handlers must respond with the same 401 as a wrong password
// so the error never leaks which of the two failed.
var ErrAdminUserNotFound = errors.New("admin user not found")

// ErrDuplicate is returned when an insert violates a unique key, e.g.
// creating a unit or article under a slug that is already taken.
var ErrDuplicate = errors.New("duplicate identifier")
