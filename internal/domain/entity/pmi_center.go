package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PmiCenter is a blood-collection facility operated by a user with the pmi role.
// The operating user's city is the center's city.
type PmiCenter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Location  string    `gorm:"type:text;not null" json:"location"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules   []DonorSchedule `gorm:"foreignKey:PmiCenterID" json:"schedules,omitempty"`
	BloodStocks []BloodStock    `gorm:"foreignKey:PmiCenterID" json:"blood_stocks,omitempty"`
}

func (PmiCenter) TableName() string {
	return "pmi_centers"
}

func (p *PmiCenter) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
