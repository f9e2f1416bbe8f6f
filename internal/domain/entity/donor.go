package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationCooldownMonths is the minimum number of whole months between two donations.
const DonationCooldownMonths = 4

// Donor holds donor-specific data for a user
type Donor struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BloodType    *BloodType `gorm:"type:varchar(2)" json:"blood_type,omitempty"`
	Rhesus       *Rhesus    `gorm:"type:varchar(1)" json:"rhesus,omitempty"`
	LastDonation *time.Time `gorm:"type:date" json:"last_donation,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Donations []Donation `gorm:"foreignKey:DonorID" json:"donations,omitempty"`
}

func (Donor) TableName() string {
	return "donors"
}

func (d *Donor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BloodGroup returns the donor's blood group when both parts are known.
func (d *Donor) BloodGroup() (BloodGroup, bool) {
	if d.BloodType == nil || d.Rhesus == nil {
		return BloodGroup{}, false
	}
	return BloodGroup{Type: *d.BloodType, Rhesus: *d.Rhesus}, true
}

func (d *Donor) SetBloodGroup(g BloodGroup) {
	bt, rh := g.Type, g.Rhesus
	d.BloodType = &bt
	d.Rhesus = &rh
}

// CooldownElapsed reports whether enough whole months have passed since the
// last donation for the donor to give blood on the given date.
func (d *Donor) CooldownElapsed(on time.Time) bool {
	if d.LastDonation == nil {
		return true
	}
	return MonthsBetween(*d.LastDonation, on) >= DonationCooldownMonths
}

// MonthsBetween counts complete calendar months from one date to another,
// ignoring the time of day. Jan 10 to May 10 is 4, Jan 10 to May 9 is 3.
// Each date is read in its own location. The result is negative when to is
// before from.
func MonthsBetween(from, to time.Time) int {
	from = calendarDate(from)
	to = calendarDate(to)
	if to.Before(from) {
		return -MonthsBetween(to, from)
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// calendarDate keeps only the year, month and day of t as seen in t's own location.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
