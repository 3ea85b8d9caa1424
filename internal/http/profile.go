package http

import (
	"errors"
	"net/http"

	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/internal/store"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

type ProfileHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles GET /profile for the authenticated subject.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
		return
	}

	user, err := h.AuthService.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived the account.
			httpx.WriteError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Error("profile lookup failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserProfile(user))
}
