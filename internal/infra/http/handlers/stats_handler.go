package handlers

import (
	"net/http"
	"time"

	"github.com/maisonsia/bd-crm/internal/entity"
)

type StatsHandler struct {
	Leads entity.LeadRepositoryInterface
}

func NewStatsHandler(leads entity.LeadRepositoryInterface) *StatsHandler {
	return &StatsHandler{Leads: leads}
}

// Handle returns the dashboard counters. Pending follow-ups count every lead
// with any follow-up date on or before today.
func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Leads.Stats(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
