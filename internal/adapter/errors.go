package adapter

import "errors"

var (
	// ErrCursorTooOld signals that the remote store can no longer compute an
	// incremental diff from the supplied cursor. It is a recoverable,
	// routed condition: the engine answers it with a full reconciliation,
	// never with a user-visible failure.
	ErrCursorTooOld = errors.New("change cursor too old")

	// ErrUnauthorized covers 401 responses and locally detected token
	// expiry. Fatal to the run.
	ErrUnauthorized = errors.New("remote store unauthorized")

	ErrBadRequest          = errors.New("remote store rejected request")
	ErrForbidden           = errors.New("remote store forbade request")
	ErrNotFound            = errors.New("remote resource not found")
	ErrInternalServerError = errors.New("remote store internal error")
)
