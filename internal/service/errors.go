package service

import "errors"

// Sentinel errors returned by services. Handlers translate these to HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
