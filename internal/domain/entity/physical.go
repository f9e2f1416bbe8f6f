package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Physical is the physical examination recorded for a donation
type Physical struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Systolic    decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"systolic"`
	Diastolic   decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"diastolic"`
	Pulse       decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"pulse"`
	Weight      decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"weight"`
	Temperature decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"temperature"`
	Hemoglobin  decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"hemoglobin"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Physical) TableName() string {
	return "physicals"
}

func (p *Physical) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Exam carries the measured values of a physical examination.
type Exam struct {
	Systolic    decimal.Decimal
	Diastolic   decimal.Decimal
	Pulse       decimal.Decimal
	Weight      decimal.Decimal
	Temperature decimal.Decimal
	Hemoglobin  decimal.Decimal
}

// Apply copies the exam values into the physical record.
func (p *Physical) Apply(e Exam) {
	p.Systolic = decimal.NewNullDecimal(e.Systolic)
	p.Diastolic = decimal.NewNullDecimal(e.Diastolic)
	p.Pulse = decimal.NewNullDecimal(e.Pulse)
	p.Weight = decimal.NewNullDecimal(e.Weight)
	p.Temperature = decimal.NewNullDecimal(e.Temperature)
	p.Hemoglobin = decimal.NewNullDecimal(e.Hemoglobin)
}

// Examined reports whether any measurement has been recorded.
func (p *Physical) Examined() bool {
	return p.Systolic.Valid || p.Diastolic.Valid || p.Pulse.Valid ||
		p.Weight.Valid || p.Temperature.Valid || p.Hemoglobin.Valid
}
