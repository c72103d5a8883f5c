package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sova/database"
	"sova/models"
)

// SampleDonation returns a valid donation for the given donor id.
func SampleDonation(donorID string) *models.Donation {
	return &models.Donation{
		DonorID:           donorID,
		OrderID:           "order_" + donorID,
		PaymentID:         "pay_" + donorID,
		Name:              "Asha Kumari",
		Phone:             "9876543210",
		Address:           "12 Mill Road, Nashik",
		Email:             "asha@example.com",
		DonorTitle:        "Helping Hands",
		TotalContribution: 598,
		Timestamp:         time.Now().UnixMilli(),
	}
}

// SeedDonations inserts one donation per id, in order.
func SeedDonations(t *testing.T, store *database.DonationStore, ids ...string) []*models.Donation {
	t.Helper()
	var out []*models.Donation
	for _, id := range ids {
		d := SampleDonation(id)
		if err := store.Create(context.Background(), d); err != nil {
			t.Fatalf("Failed to seed donation %s: %v", id, err)
		}
		out = append(out, d)
	}
	return out
}

// SequentialIDs returns n distinct 7-digit ids starting at start.
func SequentialIDs(start, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%07d", start+i)
	}
	return ids
}
