package domain

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid invite request")
	ErrQuotaExceeded  = errors.New("invite quota exceeded")
	ErrInvalidToken   = errors.New("invalid invite token")
	ErrTokenExpired   = errors.New("invite token expired")
	// ErrDeliveryFailed reports a mail dispatch failure. The persisted
	// token stays valid and can be resent.
	ErrDeliveryFailed = errors.New("invite delivery failed")
)
