package domain

import "errors"

var (
	// ErrAlreadyProvisioned marks a create that lost to an earlier identical
	// one. It is an idempotent no-op for webhook redelivery, not a failure.
	ErrAlreadyProvisioned = errors.New("tenant already provisioned")

	ErrInvalidRequest = errors.New("invalid provisioning request")
	ErrTenantNotFound = errors.New("tenant not found")
)
