package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/maisonsia/bd-crm/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if usecase.IsDomainError(err) {
		de = err.(*usecase.DomainError)
		status := http.StatusBadRequest
		if de.Code == "LEAD_NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Code: de.Code, Message: de.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL_ERROR", Message: err.Error()})
}
