package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoTemplates is returned when there is nothing to choose from.
	ErrNoTemplates = errors.New("prompt: no templates to choose from")
)
