package domain

import "errors"

// Sentinel errors used for domain-level discrimination. Services wrap them
// with context via %w; handlers translate to HTTP status codes with
// errors.Is, so storage and SMS details never leak to clients.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)
