package entities

import "errors"

var (
	// ErrNotFound covers both missing rows and rows owned by another user.
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)
