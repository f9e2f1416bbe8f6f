package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProvisionBloodStockRequest struct {
	BloodType string `json:"blood_type" validate:"required,oneof=a b ab o"`
	Rhesus    string `json:"rhesus" validate:"required,oneof=+ -"`
}

type BloodStockResponse struct {
	ID         uuid.UUID `json:"id"`
	BloodType  string    `json:"blood_type"`
	Rhesus     string    `json:"rhesus"`
	BloodGroup string    `json:"blood_group"`
	Quantity   int       `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}
