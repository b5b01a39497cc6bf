package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/http/middleware"
	"github.com/maisonsia/bd-crm/internal/usecase"
)

type LeadHandler struct {
	CreateUC     *usecase.CreateLeadUseCase
	AssignUC     *usecase.AssignLeadUseCase
	RescheduleUC *usecase.RescheduleMeetingUseCase
	Leads        entity.LeadRepositoryInterface
	Logs         entity.FollowUpLogRepositoryInterface

	rateLimiter *RateLimiter
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	assignUC *usecase.AssignLeadUseCase,
	rescheduleUC *usecase.RescheduleMeetingUseCase,
	leads entity.LeadRepositoryInterface,
	logs entity.FollowUpLogRepositoryInterface,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:     createUC,
		AssignUC:     assignUC,
		RescheduleUC: rescheduleUC,
		Leads:        leads,
		Logs:         logs,
		rateLimiter:  NewRateLimiter(30, time.Minute), // 30 req/min per IP
	}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, output)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.FindRecent(r.Context(), 50)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	lead, err := h.Leads.FindByLeadID(r.Context(), leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.FindUnassigned(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) FollowUpHistory(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	logs, err := h.Logs.FindByLeadID(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type assignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	if err := h.AssignUC.Execute(r.Context(), leadID, req.AssignedTo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "lead_id": leadID, "assigned_to": req.AssignedTo})
}

func (h *LeadHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var input usecase.RescheduleMeetingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	if err := h.RescheduleUC.Execute(r.Context(), leadID, input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "lead_id": leadID})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
