package models

import "errors"

var (
	// common errors
	ErrNotFound = errors.New("not found")

	// auth-specific errors
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// assessment-specific errors
	ErrEmptyResponses = errors.New("survey responses must not be empty")
	ErrNoResults      = errors.New("no assessment results available")

	// gateway-specific errors
	ErrGatewayUnavailable = errors.New("recommendation gateway unavailable")
	ErrGatewayTimeout     = errors.New("recommendation gateway timed out")
)
