package booking

import "errors"

var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = errors.New("validation error")

	// ErrSlotTaken means the optimistic check or the insert constraint lost
	// the race; the customer must pick another slot.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrNotFound means the referenced booking, salon, staff or service
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the booking belongs to another salon than the
	// authenticated one.
	ErrForbidden = errors.New("booking belongs to another salon")

	// ErrAlreadyTerminal marks a transition attempted on a booking that is
	// already cancelled or no_show. Handlers treat it as a no-op success so
	// that retries and webhook replays stay harmless.
	ErrAlreadyTerminal = errors.New("booking already in a terminal state")

	// ErrInvalidTransition marks a lifecycle move the transition table
	// rejects, such as no-show on a pending booking.
	ErrInvalidTransition = errors.New("invalid status transition")
)
