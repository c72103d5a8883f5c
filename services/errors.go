package services

import "errors"

var (
	ErrInvalidTier         = errors.New("invalid reward title")
	ErrInvalidAmount       = errors.New("invalid reward amount")
	ErrInvalidPledge       = errors.New("invalid pledge")
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrMissingField        = errors.New("missing field")
	ErrSignatureMismatch   = errors.New("signature mismatch")
	ErrAllocationFailed    = errors.New("donor id allocation failed")
	ErrUnknownTemplate     = errors.New("no certificate template for reward title")
	ErrDonationNotFound    = errors.New("donation not found")
	ErrQueueFull           = errors.New("notification queue is full")
)
