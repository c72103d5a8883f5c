package database

import (
	"context"
	"errors"

	"sova/models"

	"gorm.io/gorm"
)

// DonationStore is the append-only donation datastore.
type DonationStore struct {
	db *gorm.DB
}

func NewDonationStore(db *gorm.DB) *DonationStore {
	return &DonationStore{db: db}
}

// DonorIDExists reports whether a donation already carries donorID.
func (s *DonationStore) DonorIDExists(ctx context.Context, donorID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Donation{}).Where("donor_id = ?", donorID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByOrderID returns the donation recorded for orderID, or nil if none.
func (s *DonationStore) FindByOrderID(ctx context.Context, orderID string) (*models.Donation, error) {
	var donation models.Donation
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// FindByDonorID returns the donation with the given public id, or nil if none.
func (s *DonationStore) FindByDonorID(ctx context.Context, donorID string) (*models.Donation, error) {
	var donation models.Donation
	err := s.db.WithContext(ctx).Where("donor_id = ?", donorID).First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// Create appends a donation. A unique-index violation is returned as
// gorm.ErrDuplicatedKey.
func (s *DonationStore) Create(ctx context.Context, donation *models.Donation) error {
	return s.db.WithContext(ctx).Create(donation).Error
}

// ListRecent returns donations, most recent first. limit <= 0 means all.
func (s *DonationStore) ListRecent(ctx context.Context, limit, offset int) ([]models.Donation, error) {
	var donations []models.Donation
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// Count returns the number of recorded donations.
func (s *DonationStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Donation{}).Count(&count).Error
	return count, err
}

// Totals returns the number of donations and the sum of their contributions.
func (s *DonationStore) Totals(ctx context.Context) (count int64, sum int64, err error) {
	var row struct {
		Count int64
		Sum   int64
	}
	err = s.db.WithContext(ctx).Model(&models.Donation{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_contribution), 0) AS sum").
		Scan(&row).Error
	return row.Count, row.Sum, err
}

// SaveCallback stores an audit entry for a gateway callback.
func (s *DonationStore) SaveCallback(ctx context.Context, callback *models.PaymentCallback) error {
	return s.db.WithContext(ctx).Create(callback).Error
}
