package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// ExamRequest holds physical examination values
type ExamRequest struct {
	Systolic    *decimal.Decimal `json:"systolic" validate:"required"`
	Diastolic   *decimal.Decimal `json:"diastolic" validate:"required"`
	Pulse       *decimal.Decimal `json:"pulse" validate:"required"`
	Weight      *decimal.Decimal `json:"weight" validate:"required"`
	Temperature *decimal.Decimal `json:"temperature" validate:"required"`
	Hemoglobin  *decimal.Decimal `json:"hemoglobin" validate:"required"`
}

// FinalizeDonationRequest records the exam outcome of a registered participant
type FinalizeDonationRequest struct {
	BloodType string `json:"blood_type" validate:"required,oneof=a b ab o"`
	Rhesus    string `json:"rhesus" validate:"required,oneof=+ -"`
	ExamRequest
	Worthy *bool `json:"worthy" validate:"required"`
}

// WalkInDonationRequest records a donor who shows up without registering
type WalkInDonationRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Name            string  `json:"name" validate:"required,min=2,max=255"`
	Phone           string  `json:"phone" validate:"omitempty,min=8,max=30"`
	BloodType       string  `json:"blood_type" validate:"required,oneof=a b ab o"`
	Rhesus          string  `json:"rhesus" validate:"required,oneof=+ -"`
	DonorScheduleID *string `json:"donor_schedule_id" validate:"omitempty,uuid"`
	ExamRequest
	Worthy *bool `json:"worthy" validate:"required"`
}

// Response DTOs

type DonationResponse struct {
	ID              uuid.UUID  `json:"id"`
	DonorID         uuid.UUID  `json:"donor_id"`
	DonorScheduleID *uuid.UUID `json:"donor_schedule_id"`
	PmiCenterID     uuid.UUID  `json:"pmi_center_id"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type PhysicalResponse struct {
	Systolic    decimal.NullDecimal `json:"systolic"`
	Diastolic   decimal.NullDecimal `json:"diastolic"`
	Pulse       decimal.NullDecimal `json:"pulse"`
	Weight      decimal.NullDecimal `json:"weight"`
	Temperature decimal.NullDecimal `json:"temperature"`
	Hemoglobin  decimal.NullDecimal `json:"hemoglobin"`
}

// HistoryResponse is one row of a donation history or participant list.
// Name, Phone and Email describe the counterpart: the center for a donor,
// the donor for a center.
type HistoryResponse struct {
	ID         uuid.UUID `json:"id"`
	DonorID    uuid.UUID `json:"donor_id"`
	Status     string    `json:"status"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Location   string    `json:"location"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	BloodGroup string    `json:"blood_group"`
	IsWalkIn   bool      `json:"is_walk_in"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type HistoryDetailResponse struct {
	HistoryResponse
	Physical *PhysicalResponse `json:"physical"`
}
