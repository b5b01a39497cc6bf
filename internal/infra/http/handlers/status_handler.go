package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maisonsia/bd-crm/internal/usecase"
)

type StatusHandler struct {
	UpdateUC *usecase.UpdateMeetingStatusUseCase
}

func NewStatusHandler(updateUC *usecase.UpdateMeetingStatusUseCase) *StatusHandler {
	return &StatusHandler{UpdateUC: updateUC}
}

// Handle applies a meeting-status update. The response lists the follow-ups
// that the transition actually scheduled, so the caller can tell an initial
// set apart from an idempotent remark update.
func (h *StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var input usecase.UpdateMeetingStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	output, err := h.UpdateUC.Execute(r.Context(), leadID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
