package ticketing

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPermission is returned when the bot cannot manage the channels of the guild.
	ErrMissingPermission = errors.New("missing manage channels permission")

	// ErrAlreadyExists is returned when the user already has an open ticket.
	ErrAlreadyExists = errors.New("user already has an open ticket")

	// ErrLimitReached is returned when the guild has as many open tickets as it allows.
	ErrLimitReached = errors.New("open ticket limit reached")

	// ErrTimeout is returned when no category was chosen in time.
	ErrTimeout = errors.New("timed out waiting for a category")
)

// CreationError is an unexpected failure while opening a ticket.
type CreationError struct {
	// Op is what was being done when the failure happened.
	Op string

	// Err is the cause.
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Op, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// CloseStatus is the outcome of closing a ticket.
type CloseStatus int

const (
	// CloseSuccess means the channel was deleted.
	CloseSuccess CloseStatus = iota

	// CloseMissingPermissions means the bot cannot delete the channel or read its history. Nothing was done.
	CloseMissingPermissions

	// CloseError means an unexpected failure stopped the close before the channel was deleted.
	CloseError
)

// String implements the fmt.Stringer interface.
func (s CloseStatus) String() string {
	switch s {
	case CloseSuccess:
		return "success"
	case CloseMissingPermissions:
		return "missing_permissions"
	case CloseError:
		return "error"
	}
	return fmt.Sprintf("unknown_close_status_(%d)", int(s))
}

// openOutcome is the label of an open attempt in the metrics.
func openOutcome(err error) string {
	var ce *CreationError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrMissingPermission):
		return "missing_permission"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrLimitReached):
		return "limit_reached"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.As(err, &ce):
		return "creation_error"
	}
	return "error"
}
