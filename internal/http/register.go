package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /register. Unknown roles are rejected here, at the
// boundary, rather than stored as loose strings.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"validation_failed", "Name, email, and password are required")
		return
	}

	user, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password, req.Role, req.ContactInfo)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRole):
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "Invalid role")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, "duplicate_email", "Email already registered")
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Registration failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserSummary(user))
}
