// Package repositories defines the data-access layer. The sentinel errors
// below are shared across repositories and services so that handlers can
// translate failures into HTTP status codes with errors.Is instead of
// matching message strings.
package repositories

import "errors"

// ErrConflict is returned when a write collides with an existing unique
// value (email, username, storefront slug, page slug). Handlers translate
// it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when a referenced entity does not exist, or when
// a reorder entry names an entity that belongs to a different parent.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by another creator. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized is returned for bad credentials and invalid, revoked or
// expired refresh tokens. Handlers translate it into HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalid is returned for malformed input detected before any
// transaction starts. Handlers translate it into HTTP 400.
var ErrInvalid = errors.New("invalid input")
