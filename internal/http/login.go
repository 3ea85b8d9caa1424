package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /login. The 401 body is byte-identical whether the
// email is unknown or the password is wrong.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"validation_failed", "Email and password are required")
		return
	}

	token, user, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_credentials", "Invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  toUserSummary(user),
	})
}
