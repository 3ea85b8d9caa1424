package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/internal/store"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

type ComplaintsHandler struct {
	ComplaintService *service.ComplaintService
}

type fileComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// HandleCreate handles POST /complaints for any authenticated role.
func (h *ComplaintsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
		return
	}

	var req fileComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Title == "" || req.Description == "" || req.Category == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"validation_failed", "Title, description, and category are required")
		return
	}

	complaint, err := h.ComplaintService.File(ctx, userID, req.Title, req.Description, req.Category)
	if err != nil {
		log.Error("failed to file complaint", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create complaint")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toComplaintResponse(complaint))
}

// HandleListAll handles GET /complaints. Admin only (gated at the router).
func (h *ComplaintsHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func() ([]domain.Complaint, error) {
		return h.ComplaintService.ListAll(r.Context())
	})
}

// HandleListMine handles GET /complaints/my-complaints.
func (h *ComplaintsHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
		return
	}
	h.writeList(w, r, func() ([]domain.Complaint, error) {
		return h.ComplaintService.ListMine(r.Context(), userID)
	})
}

// HandleListAssigned handles GET /complaints/staff-assigned for the calling
// staff member.
func (h *ComplaintsHandler) HandleListAssigned(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
		return
	}
	h.writeList(w, r, func() ([]domain.Complaint, error) {
		return h.ComplaintService.ListAssigned(r.Context(), userID)
	})
}

// HandleListUnassigned handles GET /complaints/unassigned/available.
func (h *ComplaintsHandler) HandleListUnassigned(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func() ([]domain.Complaint, error) {
		return h.ComplaintService.ListUnassigned(r.Context())
	})
}

func (h *ComplaintsHandler) writeList(
	w http.ResponseWriter,
	r *http.Request,
	list func() ([]domain.Complaint, error),
) {
	log := slogx.FromContext(r.Context())

	complaints, err := list()
	if err != nil {
		log.Error("failed to list complaints", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve complaints")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toComplaintList(complaints))
}

// HandleGet handles GET /complaints/{id}.
func (h *ComplaintsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	complaint, err := h.ComplaintService.Get(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Complaint not found")
			return
		}
		log.Error("failed to load complaint", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve complaint")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toComplaintResponse(complaint))
}

// HandleUpdateStatus handles PUT /complaints/{id}/status. Staff and admin
// only (gated at the router).
func (h *ComplaintsHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "Invalid status")
		return
	}

	complaint, err := h.ComplaintService.UpdateStatus(ctx, r.PathValue("id"), status, req.ResolutionNotes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Complaint not found")
			return
		}
		log.Error("failed to update complaint status", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update complaint")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toComplaintResponse(complaint))
}

// HandleAssign handles PUT /complaints/{id}/assign. Admin only (gated at the
// router).
func (h *ComplaintsHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.StaffID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "staff_id is required")
		return
	}

	complaint, err := h.ComplaintService.Assign(ctx, r.PathValue("id"), req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotStaff):
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "Assignee is not a staff member")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Complaint not found")
		default:
			log.Error("failed to assign complaint", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to assign complaint")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toComplaintResponse(complaint))
}
