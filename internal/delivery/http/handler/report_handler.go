package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"blood-donation-backend/internal/usecase"
	"blood-donation-backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

// GetStockSummary
// @Summary Blood stock per blood type
// @Description PMI users see their city, donors see every center
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /reports/blood-stocks [get]
func (h *ReportHandler) GetStockSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.reportUsecase.StockSummary(r.Context(), userID)
	if err != nil {
		response.FromError(w, err, "Failed to get blood stock summary")
		return
	}

	response.Success(w, http.StatusOK, "Blood stock summary retrieved successfully", summary)
}

func (h *ReportHandler) GetDonationsByMonth(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	months, err := h.reportUsecase.DonationsByMonth(r.Context(), userID)
	if err != nil {
		response.FromError(w, err, "Failed to get monthly donations")
		return
	}

	response.Success(w, http.StatusOK, "Monthly donations retrieved successfully", months)
}

func (h *ReportHandler) GetTopDonors(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	donors, err := h.reportUsecase.TopDonors(r.Context(), userID)
	if err != nil {
		response.FromError(w, err, "Failed to get top donors")
		return
	}

	response.Success(w, http.StatusOK, "Top donors retrieved successfully", donors)
}

// GetHistories
// @Summary Donation histories of the caller
// @Tags Histories
// @Security BearerAuth
// @Produce json
// @Param status query string false "semua, pending, success or failed"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /histories [get]
func (h *ReportHandler) GetHistories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page := pageFromRequest(r)
	histories, total, err := h.reportUsecase.Histories(r.Context(), userID, r.URL.Query().Get("status"), page)
	if err != nil {
		response.FromError(w, err, "Failed to get donation histories")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Donation histories retrieved successfully", histories, paginationFor(page, total))
}

func (h *ReportHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	donationID, ok := pathUUID(w, r, "id", "Invalid donation ID")
	if !ok {
		return
	}

	history, err := h.reportUsecase.HistoryDetail(r.Context(), userID, donationID)
	if err != nil {
		response.FromError(w, err, "Failed to get donation history")
		return
	}

	response.Success(w, http.StatusOK, "Donation history retrieved successfully", history)
}

// GetLastDonation returns null data when the donor never donated
func (h *ReportHandler) GetLastDonation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	donation, err := h.reportUsecase.LastDonation(r.Context(), userID)
	if err != nil {
		response.FromError(w, err, "Failed to get last donation")
		return
	}

	response.Success(w, http.StatusOK, "Last donation retrieved successfully", donation)
}

// ExportHistories
// @Summary Export donation histories
// @Tags Histories
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "semua, pending, success or failed"
// @Success 200 {file} file
// @Router /histories/export [get]
func (h *ReportHandler) ExportHistories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	workbook, err := h.reportUsecase.ExportHistories(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		response.FromError(w, err, "Failed to export donation histories")
		return
	}

	filename := fmt.Sprintf("riwayat-donor-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(workbook)))
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}
