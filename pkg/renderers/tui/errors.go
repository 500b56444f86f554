package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrIncomplete is returned when the user stops after a failed submit.
	ErrIncomplete = errors.New("tui: registration incomplete")
)
