package dto

import "github.com/google/uuid"

type StockSummaryResponse struct {
	BloodType      string `json:"blood_type"`
	RhesusPositive int64  `json:"rhesus_positive"`
	RhesusNegative int64  `json:"rhesus_negative"`
	Total          int64  `json:"total"`
}

type MonthlyDonationResponse struct {
	Period string `json:"period"`
	Month  string `json:"month"`
	Total  int64  `json:"total"`
}

type TopDonorResponse struct {
	DonorID    uuid.UUID `json:"donor_id"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar"`
	BloodGroup string    `json:"blood_group"`
	Total      int64     `json:"total"`
}
