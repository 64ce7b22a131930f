package models

import "errors"

// Custom errors
var (
	ErrInvalidOdds      = errors.New("invalid odds value")
	ErrInsufficientData = errors.New("no quotes available for side")
	ErrInvalidInput     = errors.New("fee input out of range")
	ErrMalformedEvent   = errors.New("event missing required fields")
)
