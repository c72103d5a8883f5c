package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	donorIDMin = 1000000
	donorIDMax = 9999999

	defaultMaxAllocationAttempts = 100
)

// DonorIDChecker answers whether a donor id is already taken.
type DonorIDChecker interface {
	DonorIDExists(ctx context.Context, donorID string) (bool, error)
}

// IDAllocator issues 7-digit donor ids that are free at the time of the call.
// The final guarantee comes from the unique index on insert.
type IDAllocator struct {
	store       DonorIDChecker
	generate    func() (string, error)
	maxAttempts int
}

func NewIDAllocator(store DonorIDChecker) *IDAllocator {
	return &IDAllocator{
		store:       store,
		generate:    randomDonorID,
		maxAttempts: defaultMaxAllocationAttempts,
	}
}

// Allocate draws ids until one is not present in the store. A store error
// aborts immediately with ErrAllocationFailed.
func (a *IDAllocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		id, err := a.generate()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAllocationFailed, err)
		}
		exists, err := a.store.DonorIDExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAllocationFailed, err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no free id after %d attempts", ErrAllocationFailed, a.maxAttempts)
}

// randomDonorID returns a uniform random id in [1000000, 9999999].
func randomDonorID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(donorIDMax-donorIDMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+donorIDMin), nil
}
