package handler

import (
	"net/http"

	"blood-donation-backend/internal/usecase"
	"blood-donation-backend/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetMyAuditLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page := pageFromRequest(r)
	logs, total, err := h.auditLogUsecase.GetMyAuditLogs(r.Context(), userID, page)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Audit logs retrieved successfully", logs, paginationFor(page, total))
}
