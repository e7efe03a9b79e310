package services

import "errors"

// Common service errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUpstream      = errors.New("fee records unavailable")
	ErrInvalidFormat = errors.New("unsupported statement format")
	ErrNoEmail       = errors.New("email address is empty")
	ErrJobNotReady   = errors.New("statement job has not completed")
	ErrNothingDue    = errors.New("no balance due")
)
