// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/api layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a missing required field or an unknown enum value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition indicates a status change not legal from the current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrItemUnavailable indicates an item that cannot be offered in a swap
	// (wrong status, or already reserved by another pending request).
	ErrItemUnavailable = errors.New("item unavailable")

	// ErrConflict indicates a mutation blocked by a dependent record
	// (e.g. deleting an item referenced by a pending swap request).
	ErrConflict = errors.New("conflict")

	// ErrInsufficientPoints indicates a redemption costing more than the balance.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrAlreadyExists indicates a unique constraint violation (e.g. email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrForbidden indicates the caller may not act on the target entity.
	ErrForbidden = errors.New("forbidden")
)
