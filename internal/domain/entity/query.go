package entity

import (
	"time"

	"github.com/google/uuid"
)

// Page is a 1-based page request.
type Page struct {
	Page    int
	PerPage int
}

const DefaultPerPage = 5

// Normalize clamps the page to sane values.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ScheduleFilter is a domain-level filter for querying upcoming schedules.
// Used by repository layer to avoid coupling with delivery DTOs.
type ScheduleFilter struct {
	City        string
	PmiCenterID *uuid.UUID
	// Now is the reference instant in the application time zone.
	Now time.Time
}

// DonationFilter restricts donation listings. Nil fields are not applied.
type DonationFilter struct {
	DonorID         *uuid.UUID
	PmiCenterID     *uuid.UUID
	DonorScheduleID *uuid.UUID
	Status          *DonationStatus
}

// StockTotal is the total quantity of one blood group.
type StockTotal struct {
	BloodType BloodType
	Rhesus    Rhesus
	Total     int64
}

// MonthlyCount is the number of successful donations in one month, Period is YYYY-MM.
type MonthlyCount struct {
	Period string
	Total  int64
}

// TopDonor is a donor ranked by successful donations.
type TopDonor struct {
	DonorID   uuid.UUID
	Name      string
	Avatar    *string
	BloodType *BloodType
	Rhesus    *Rhesus
	Total     int64
}
