// Package domain contains checkout initiation types.
package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidRequest = errors.New("invalid checkout request")
	// ErrUpstream signals a payment provider failure. No retry happens
	// here; the caller may re-invoke.
	ErrUpstream = errors.New("payment provider request failed")
)

type Service interface {
	// CreateSession asks the payment provider for a hosted checkout and
	// returns its redirect URL. Registration data travels as metadata on
	// the checkout artifact, with the password already hashed.
	CreateSession(ctx context.Context, req Request) (*Result, error)
}

type Request struct {
	Email            string
	Password         string
	OrganizationName string
}

type Result struct {
	SessionID   string
	RedirectURL string
}
