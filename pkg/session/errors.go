package session

import "errors"

var (
	// ErrNilRenderer reports handler construction without a renderer.
	ErrNilRenderer = errors.New("session: renderer is required")
	// ErrNilSubmit reports handler construction without a submit callback.
	ErrNilSubmit = errors.New("session: submit callback is required")
)
