package models

import (
	"time"
)

// Donation - запись о завершённом и проверенном платеже.
// Никогда не изменяется и не удаляется после создания.
type Donation struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	DonorID           string    `json:"id" gorm:"column:donor_id;size:7;uniqueIndex;not null"`
	OrderID           string    `json:"orderId" gorm:"size:64;uniqueIndex;not null"`
	PaymentID         string    `json:"paymentId" gorm:"size:128;not null"`
	Name              string    `json:"name" gorm:"not null"`
	Phone             string    `json:"phone" gorm:"not null"`
	Address           string    `json:"address" gorm:"not null"`
	Email             string    `json:"email" gorm:"not null"`
	DonorTitle        string    `json:"donorTitle" gorm:"not null;index"`
	TotalContribution int64     `json:"totalContribution" gorm:"not null"`
	Timestamp         int64     `json:"timestamp" gorm:"not null"` // unix millis, server-assigned
	CreatedAt         time.Time `json:"-"`
}

// DonorView - публичное представление донора без персональных данных
type DonorView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DonorTitle        string `json:"donorTitle"`
	TotalContribution int64  `json:"totalContribution"`
	Timestamp         int64  `json:"timestamp"`
}

func (d Donation) View() DonorView {
	return DonorView{
		ID:                d.DonorID,
		Name:              d.Name,
		DonorTitle:        d.DonorTitle,
		TotalContribution: d.TotalContribution,
		Timestamp:         d.Timestamp,
	}
}

// CampaignStats - агрегированные показатели кампании
type CampaignStats struct {
	TotalDonation       int64 `json:"totalDonation"`
	TotalFarmersReached int64 `json:"totalFarmersReached"`
	TotalContributions  int64 `json:"totalContributions"`
}
