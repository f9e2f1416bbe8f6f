package handler

import (
	"encoding/json"
	"net/http"

	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/usecase"
	"blood-donation-backend/pkg/response"
	"blood-donation-backend/pkg/validator"
)

type BloodStockHandler struct {
	stockUsecase usecase.BloodStockUsecase
	validator    *validator.CustomValidator
}

func NewBloodStockHandler(stockUsecase usecase.BloodStockUsecase, validator *validator.CustomValidator) *BloodStockHandler {
	return &BloodStockHandler{
		stockUsecase: stockUsecase,
		validator:    validator,
	}
}

func (h *BloodStockHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	stocks, err := h.stockUsecase.List(r.Context(), userID)
	if err != nil {
		response.FromError(w, err, "Failed to get blood stocks")
		return
	}

	response.Success(w, http.StatusOK, "Blood stocks retrieved successfully", stocks)
}

// ProvisionStock
// @Summary Provision a blood stock row
// @Description Opens an empty stock row for a blood group at the caller's center
// @Tags Blood Stocks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ProvisionBloodStockRequest true "Provision Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blood-stocks [post]
func (h *BloodStockHandler) ProvisionStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.ProvisionBloodStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	stock, err := h.stockUsecase.Provision(r.Context(), userID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to provision blood stock")
		return
	}

	response.Success(w, http.StatusCreated, "Blood stock provisioned successfully", stock)
}
