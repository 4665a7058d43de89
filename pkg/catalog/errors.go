package catalog

import "errors"

var (
	// ErrSourceUnavailable means the remote catalog source could not be
	// reached or returned garbage. Recoverable: the user is asked to retry.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrInvalidChoice means Choose was called with a value outside the
	// current stage's available set (typically a stale or replayed
	// transport callback). The session stays at the same stage.
	ErrInvalidChoice = errors.New("value is not among the available choices")

	// ErrNoOptions means the current stage has zero candidate values, so
	// the dialogue cannot continue on this path.
	ErrNoOptions = errors.New("no options available at this stage")

	// ErrNotFound means a completed filter matches no record.
	ErrNotFound = errors.New("no record matches the completed selection")

	// ErrNoSession means an operation needs a live session and none
	// exists for the user.
	ErrNoSession = errors.New("no active selection session")
)
