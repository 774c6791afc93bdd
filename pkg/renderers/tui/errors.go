package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// retry budget is spent.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
