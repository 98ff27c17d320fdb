package app

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("not allowed to modify this record")
)
