package domain

import "errors"

var (
	// ErrPermissionDenied means the privileged identity listing was
	// rejected by the store. It triggers the profiles-only fallback and
	// is never surfaced to the operator as an error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means the referenced entity is missing from the
	// in-memory set; the operation aborts before any remote call.
	ErrNotFound = errors.New("entity not found")

	// ErrNotPending means the entity has already left its reviewable
	// state; the transition would violate the terminal state machine.
	ErrNotPending = errors.New("entity is not pending review")

	// ErrBusy means another moderation call is still in flight.
	ErrBusy = errors.New("a moderation action is already in progress")

	// ErrConflict means the conditional store update matched no row: the
	// precondition no longer held at write time.
	ErrConflict = errors.New("state changed concurrently, no update applied")
)
