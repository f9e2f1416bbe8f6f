package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BloodStock is the aggregate bag count of one blood group at one center
type BloodStock struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PmiCenterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blood_stocks_group" json:"pmi_center_id"`
	BloodType   BloodType `gorm:"type:varchar(2);not null;uniqueIndex:idx_blood_stocks_group" json:"blood_type"`
	Rhesus      Rhesus    `gorm:"type:varchar(1);not null;uniqueIndex:idx_blood_stocks_group" json:"rhesus"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PmiCenter *PmiCenter `gorm:"foreignKey:PmiCenterID" json:"pmi_center,omitempty"`
}

func (BloodStock) TableName() string {
	return "blood_stocks"
}

func (s *BloodStock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *BloodStock) Group() BloodGroup {
	return BloodGroup{Type: s.BloodType, Rhesus: s.Rhesus}
}
