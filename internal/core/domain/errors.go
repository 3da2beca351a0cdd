package domain

import "errors"

// Error categories. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can map any error to an HTTP status with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUpstream            = errors.New("upstream failure")
)
