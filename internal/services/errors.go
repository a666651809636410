package services

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrNotFound covers missing entities and cross-tenant lookups alike, so
	// a workshop cannot enumerate other tenants' record IDs.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation, e.g. a taken login email.
	ErrConflict = errors.New("already exists")

	// ErrInvalidState rejects an illegal contract lifecycle transition.
	ErrInvalidState = errors.New("invalid contract state")

	// ErrForbidden rejects an operation the caller's role or ownership does
	// not permit, e.g. a workshop editing an approved report.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidCredentials keeps login failures indistinguishable between
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation marks a payload the schema accepted but domain rules reject.
	ErrValidation = errors.New("validation failed")
)
