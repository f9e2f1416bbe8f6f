package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonorSchedule is a donation drive organized by a PMI center
type DonorSchedule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PmiCenterID uuid.UUID `gorm:"type:uuid;not null;index" json:"pmi_center_id"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Time        string    `gorm:"type:time;not null" json:"time"`
	Location    string    `gorm:"type:text;not null" json:"location"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	PmiCenter *PmiCenter `gorm:"foreignKey:PmiCenterID" json:"pmi_center,omitempty"`
	Donations []Donation `gorm:"foreignKey:DonorScheduleID" json:"donations,omitempty"`
}

func (DonorSchedule) TableName() string {
	return "donor_schedules"
}

func (s *DonorSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether the schedule belongs to the given center.
func (s *DonorSchedule) OwnedBy(pmiCenterID uuid.UUID) bool {
	return s.PmiCenterID == pmiCenterID
}

// ClockTime returns the schedule time trimmed to HH:MM.
func (s *DonorSchedule) ClockTime() string {
	if len(s.Time) >= 5 {
		return s.Time[:5]
	}
	return s.Time
}
