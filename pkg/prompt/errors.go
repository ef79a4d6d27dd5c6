package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoElements is returned when a session starts on an empty host.
	ErrNoElements = errors.New("prompt: host has no elements")
)
