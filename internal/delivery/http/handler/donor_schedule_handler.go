package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/usecase"
	"blood-donation-backend/pkg/response"
	"blood-donation-backend/pkg/validator"
)

type DonorScheduleHandler struct {
	scheduleUsecase usecase.DonorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDonorScheduleHandler(scheduleUsecase usecase.DonorScheduleUsecase, validator *validator.CustomValidator) *DonorScheduleHandler {
	return &DonorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// ListSchedules lists upcoming donor schedules
// @Summary List upcoming donor schedules
// @Description Donors see every center, optionally narrowed by city; PMI users see their own
// @Tags Donor Schedules
// @Security BearerAuth
// @Produce json
// @Param city query string false "City"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /donor-schedules [get]
func (h *DonorScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page := pageFromRequest(r)
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	schedules, total, err := h.scheduleUsecase.List(r.Context(), userID, city, page)
	if err != nil {
		response.FromError(w, err, "Failed to get donor schedules")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Donor schedules retrieved successfully", schedules, paginationFor(page, total))
}

// GetSchedule
// @Summary Get donor schedule detail
// @Tags Donor Schedules
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donor-schedules/{id} [get]
func (h *DonorScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	scheduleID, ok := pathUUID(w, r, "id", "Invalid schedule ID")
	if !ok {
		return
	}

	schedule, err := h.scheduleUsecase.Detail(r.Context(), userID, scheduleID)
	if err != nil {
		response.FromError(w, err, "Failed to get donor schedule")
		return
	}

	response.Success(w, http.StatusOK, "Donor schedule retrieved successfully", schedule)
}

// CreateSchedule
// @Summary Create a donor schedule
// @Tags Donor Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDonorScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Response
// @Router /donor-schedules [post]
func (h *DonorScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateDonorScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create donor schedule")
		return
	}

	response.Success(w, http.StatusCreated, "Donor schedule created successfully", schedule)
}

func (h *DonorScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	scheduleID, ok := pathUUID(w, r, "id", "Invalid schedule ID")
	if !ok {
		return
	}

	var req dto.UpdateDonorScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Update(r.Context(), userID, scheduleID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update donor schedule")
		return
	}

	response.Success(w, http.StatusOK, "Donor schedule updated successfully", schedule)
}

func (h *DonorScheduleHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	scheduleID, ok := pathUUID(w, r, "id", "Invalid schedule ID")
	if !ok {
		return
	}

	page := pageFromRequest(r)
	participants, total, err := h.scheduleUsecase.Participants(r.Context(), userID, scheduleID, page)
	if err != nil {
		response.FromError(w, err, "Failed to get participants")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Participants retrieved successfully", participants, paginationFor(page, total))
}

func (h *DonorScheduleHandler) GetParticipant(w http.ResponseWriter, r *http.Request) {
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

	participant, err := h.scheduleUsecase.ParticipantDetail(r.Context(), userID, scheduleID, donorID)
	if err != nil {
		response.FromError(w, err, "Failed to get participant")
		return
	}

	response.Success(w, http.StatusOK, "Participant retrieved successfully", participant)
}
