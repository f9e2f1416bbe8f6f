package dto

import "github.com/google/uuid"

// Request DTOs

// UpdateDonorProfileRequest is a partial update, nil fields are left unchanged
type UpdateDonorProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,min=8,max=30"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	Address   *string `json:"address" validate:"omitempty"`
	BloodType *string `json:"blood_type" validate:"omitempty,oneof=a b ab o"`
	Rhesus    *string `json:"rhesus" validate:"omitempty,oneof=+ -"`
}

type UpdatePmiProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,min=8,max=30"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Address  *string `json:"address" validate:"omitempty"`
	Location *string `json:"location" validate:"omitempty"`
}

// Response DTOs

type DonorProfileResponse struct {
	UserResponse
	DonorID      uuid.UUID `json:"donor_id"`
	BloodType    string    `json:"blood_type"`
	Rhesus       string    `json:"rhesus"`
	BloodGroup   string    `json:"blood_group"`
	LastDonation *string   `json:"last_donation"`
}

type PmiProfileResponse struct {
	UserResponse
	PmiCenterID uuid.UUID `json:"pmi_center_id"`
	Location    string    `json:"location"`
}

// PmiCenterSummary is the center shown next to schedules and donations
type PmiCenterSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	City     string    `json:"city"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	Location string    `json:"location"`
}
