package handler

import (
	"encoding/json"
	"net/http"

	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/usecase"
	"blood-donation-backend/pkg/response"
	"blood-donation-backend/pkg/validator"
)

type DonationHandler struct {
	donationUsecase usecase.DonationUsecase
	validator       *validator.CustomValidator
}

func NewDonationHandler(donationUsecase usecase.DonationUsecase, validator *validator.CustomValidator) *DonationHandler {
	return &DonationHandler{
		donationUsecase: donationUsecase,
		validator:       validator,
	}
}

// RegisterForSchedule registers the calling donor on a schedule
// @Summary Register for a donor schedule
// @Description Creates a pending donation when the donor is eligible
// @Tags Donations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donor-schedules/{id}/register [post]
func (h *DonationHandler) RegisterForSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	scheduleID, ok := pathUUID(w, r, "id", "Invalid schedule ID")
	if !ok {
		return
	}

	donation, err := h.donationUsecase.RegisterForSchedule(r.Context(), userID, scheduleID)
	if err != nil {
		response.FromError(w, err, "Failed to register for donor schedule")
		return
	}

	response.Success(w, http.StatusCreated, "Registered for donor schedule successfully", donation)
}

// WalkIn records a donation for a donor who was not registered beforehand
// @Summary Record a walk-in donation
// @Tags Donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.WalkInDonationRequest true "Walk-in Donation Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /donations/walk-in [post]
func (h *DonationHandler) WalkIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.WalkInDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donation, err := h.donationUsecase.WalkIn(r.Context(), userID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to record walk-in donation")
		return
	}

	response.Success(w, http.StatusCreated, "Walk-in donation recorded successfully", donation)
}

// Finalize records the exam outcome of a registered participant
// @Summary Finalize a scheduled donation
// @Tags Donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param donorId path string true "Donor ID"
// @Param request body dto.FinalizeDonationRequest true "Finalize Donation Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donor-schedules/{id}/participants/{donorId} [put]
func (h *DonationHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	scheduleID, ok := pathUUID(w, r, "id", "Invalid schedule ID")
	if !ok {
		return
	}
	donorID, ok := pathUUID(w, r, "donorId", "Invalid donor ID")
	if !ok {
		return
	}

	var req dto.FinalizeDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donation, err := h.donationUsecase.Finalize(r.Context(), userID, scheduleID, donorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to finalize donation")
		return
	}

	response.Success(w, http.StatusOK, "Donation finalized successfully", donation)
}
