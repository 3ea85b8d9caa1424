package http

import (
	"net/http"

	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /users. Admin only (gated at the router).
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.List(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve users")
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserProfile(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleListStaff handles GET /users/staff. Admin only (gated at the router).
func (h *UsersHandler) HandleListStaff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	staff, err := h.UserService.ListStaff(ctx)
	if err != nil {
		log.Error("failed to list staff", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve staff members")
		return
	}

	out := make([]userResponse, 0, len(staff))
	for _, u := range staff {
		out = append(out, toUserProfile(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
