package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationStatus represents the lifecycle state of a donation
type DonationStatus string

const (
	DonationStatusPending DonationStatus = "pending"
	DonationStatusSuccess DonationStatus = "success"
	DonationStatusFailed  DonationStatus = "failed"
)

func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationStatusPending, DonationStatusSuccess, DonationStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s DonationStatus) IsTerminal() bool {
	return s == DonationStatusSuccess || s == DonationStatusFailed
}

// OutcomeStatus maps a worthy verdict to the terminal status it produces.
func OutcomeStatus(worthy bool) DonationStatus {
	if worthy {
		return DonationStatusSuccess
	}
	return DonationStatusFailed
}

// Donation is a single donation attempt, scheduled or walk-in
type Donation struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"donor_id"`
	DonorScheduleID *uuid.UUID     `gorm:"type:uuid;index" json:"donor_schedule_id,omitempty"`
	PmiCenterID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"pmi_center_id"`
	PhysicalID      uuid.UUID      `gorm:"type:uuid;not null" json:"physical_id"`
	Status          DonationStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Donor         *Donor         `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	DonorSchedule *DonorSchedule `gorm:"foreignKey:DonorScheduleID" json:"donor_schedule,omitempty"`
	PmiCenter     *PmiCenter     `gorm:"foreignKey:PmiCenterID" json:"pmi_center,omitempty"`
	Physical      *Physical      `gorm:"foreignKey:PhysicalID" json:"physical,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsPending checks if donation is waiting for finalization
func (d *Donation) IsPending() bool {
	return d.Status == DonationStatusPending
}

// IsSuccess checks if donation was collected
func (d *Donation) IsSuccess() bool {
	return d.Status == DonationStatusSuccess
}

// IsFailed checks if donor was found unfit
func (d *Donation) IsFailed() bool {
	return d.Status == DonationStatusFailed
}

// IsWalkIn reports whether the donation was recorded without a schedule.
func (d *Donation) IsWalkIn() bool {
	return d.DonorScheduleID == nil
}
