package http

import (
	"net/http"

	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

type StatisticsHandler struct {
	ComplaintService *service.ComplaintService
}

// HandleOverview handles GET /complaints/statistics/overview. Admin only.
func (h *StatisticsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	counts, err := h.ComplaintService.Statistics(ctx)
	if err != nil {
		log.Error("failed to compute statistics", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve statistics")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, statisticsResponse{
		Total:      counts.Total,
		Open:       counts.Open,
		Assigned:   counts.Assigned,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
	})
}

// HandleCategories handles GET /complaints/statistics/categories. Admin only.
func (h *StatisticsHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	counts, err := h.ComplaintService.CategoryStatistics(ctx)
	if err != nil {
		log.Error("failed to compute category statistics", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve statistics")
		return
	}

	out := make([]categoryCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, categoryCountResponse{Category: c.Category, Count: c.Count})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
