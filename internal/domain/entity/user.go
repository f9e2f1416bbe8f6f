package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized authentication table shared by donors and PMI staff
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"type:varchar(10);not null;index" json:"role"`
	Phone     *string   `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	City      *string   `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Avatar    *string   `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Donor     *Donor     `gorm:"foreignKey:UserID" json:"donor,omitempty"`
	PmiCenter *PmiCenter `gorm:"foreignKey:UserID" json:"pmi_center,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasPassword reports whether the account can log in with email and password.
// Walk-in donors and third-party-only accounts have none.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// CityName returns the user's city or an empty string.
func (u *User) CityName() string {
	if u.City == nil {
		return ""
	}
	return *u.City
}
