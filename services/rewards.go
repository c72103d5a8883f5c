package services

import (
	"errors"
	"fmt"

	"sova/models"
)

const (
	msgValidReward   = "Valid reward."
	msgInvalidTitle  = "Invalid reward title."
	msgInvalidAmount = "Invalid reward amount or amount is not a multiple of the reward value."
)

// ValidationResult is the client-facing outcome of a reward check.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateReward checks a pledged amount (whole rupees) against the reward
// catalog. The returned error is nil, ErrInvalidTier or ErrInvalidAmount.
func ValidateReward(title string, amount int64) (ValidationResult, error) {
	tier, ok := models.FindRewardTier(title)
	if !ok {
		return ValidationResult{Valid: false, Message: msgInvalidTitle}, ErrInvalidTier
	}

	if amount <= 0 || amount%tier.UnitAmount != 0 {
		return ValidationResult{Valid: false, Message: msgInvalidAmount},
			fmt.Errorf("%w: %d is not a positive multiple of %d", ErrInvalidAmount, amount, tier.UnitAmount)
	}

	return ValidationResult{Valid: true, Message: msgValidReward}, nil
}

// RejectionMessage returns the client-facing message for a validation error
// anywhere in err's chain, or "" when err carries none.
func RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTier):
		return msgInvalidTitle
	case errors.Is(err, ErrInvalidAmount):
		return msgInvalidAmount
	}
	return ""
}
