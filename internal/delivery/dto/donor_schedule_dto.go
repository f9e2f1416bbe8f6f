package dto

import "github.com/google/uuid"

// Request DTOs

type CreateDonorScheduleRequest struct {
	Date     string `json:"date" validate:"required,date"` // Format: YYYY-MM-DD
	Time     string `json:"time" validate:"required,clock"` // Format: HH:MM
	Location string `json:"location" validate:"required,max=500"`
}

// UpdateDonorScheduleRequest is a partial update, nil fields are left unchanged
type UpdateDonorScheduleRequest struct {
	Date     *string `json:"date" validate:"omitempty,date"`
	Time     *string `json:"time" validate:"omitempty,clock"`
	Location *string `json:"location" validate:"omitempty,min=1,max=500"`
}

// Response DTOs

type DonorScheduleResponse struct {
	ID        uuid.UUID         `json:"id"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Location  string            `json:"location"`
	PmiCenter *PmiCenterSummary `json:"pmi_center,omitempty"`
}

// DonorScheduleDetailResponse adds the caller's eligibility when the caller is a donor
type DonorScheduleDetailResponse struct {
	DonorScheduleResponse
	LastDonation         *string `json:"last_donation,omitempty"`
	IsEligible           *bool   `json:"is_eligible,omitempty"`
	IsScheduleRegistered *bool   `json:"is_schedule_registered,omitempty"`
	IsRegistered         *bool   `json:"is_registered,omitempty"`
}
