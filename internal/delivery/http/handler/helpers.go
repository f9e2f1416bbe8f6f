package handler

import (
	"net/http"
	"strconv"

	"blood-donation-backend/internal/delivery/http/middleware"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pageFromRequest reads page and per_page, falling back to the defaults on
// missing or malformed values.
func pageFromRequest(r *http.Request) entity.Page {
	page := entity.Page{}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil {
		page.PerPage = v
	}
	return page.Normalize()
}

func paginationFor(page entity.Page, total int64) *response.Pagination {
	return response.NewPagination(page.Page, page.PerPage, total)
}

// pathUUID parses a uuid route variable and writes a 400 when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, false
	}
	return userID, true
}
