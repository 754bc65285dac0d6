// HTTP handlers for the tracker service.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET    /jobs                 → filtered, scored job feed
//	POST   /jobs                 → ingest a posting
//	GET    /jobs/saved           → bookmarked jobs
//	POST   /jobs/{id}/status     → set tracked status
//	POST   /jobs/{id}/save       → toggle bookmark
//	GET    /history              → bounded status history
//	GET    /preferences          → current preference record (absent → null)
//	PUT    /preferences          → replace preferences wholesale
//	DELETE /preferences          → reset preferences
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"jobtrack/matcher-service/internal/match"
	"jobtrack/matcher-service/internal/model"
)

// Handler adapts Service to net/http.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all tracker routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/jobs", h.handleJobs)
	mux.HandleFunc("/jobs/", h.handleJobAction)
	mux.HandleFunc("/history", h.handleHistory)
	mux.HandleFunc("/preferences", h.handlePreferences)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listJobs(w, r)
	case http.MethodPost:
		h.ingestJob(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleJobAction handles /jobs/saved and POST /jobs/{id}/status|save.
func (h *Handler) handleJobAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) == 2 && parts[1] == "saved" {
		if r.Method != http.MethodGet {
			jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.listSaved(w, r)
		return
	}

	if len(parts) != 3 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID := parts[1]
	switch parts[2] {
	case "status":
		h.setStatus(w, r, jobID)
	case "save":
		h.toggleSaved(w, r, jobID)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", parts[2]), http.StatusNotFound)
	}
}

func (h *Handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getPreferences(w, r)
	case http.MethodPut:
		h.savePreferences(w, r)
	case http.MethodDelete:
		h.resetPreferences(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := match.Filters{
		Keyword:     q.Get("keyword"),
		Location:    q.Get("location"),
		Mode:        q.Get("mode"),
		Experience:  q.Get("experience"),
		Source:      q.Get("source"),
		Status:      q.Get("status"),
		MatchesOnly: q.Get("matchesOnly") == "true",
		Sort:        q.Get("sort"),
	}

	jobs, hasPrefs, err := h.svc.ListJobs(r.Context(), userID, f)
	if err != nil {
		log.Printf("[tracker] listJobs error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"jobs":           jobs,
		"hasPreferences": hasPrefs,
	})
}

func (h *Handler) ingestJob(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var job model.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	inserted, err := h.svc.IngestJob(r.Context(), job)
	if err != nil {
		writeServiceError(w, err, "ingestJob")
		return
	}
	jsonOK(w, inserted)
}

func (h *Handler) listSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	jobs, err := h.svc.ListSaved(r.Context(), userID)
	if err != nil {
		log.Printf("[tracker] listSaved error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, jobs)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		jsonError(w, "body must contain status", http.StatusBadRequest)
		return
	}

	status, err := h.svc.SetStatus(r.Context(), userID, jobID, body.Status)
	if err != nil {
		writeServiceError(w, err, "setStatus")
		return
	}
	jsonOK(w, map[string]string{"jobId": jobID, "status": string(status)})
}

func (h *Handler) toggleSaved(w http.ResponseWriter, r *http.Request, jobID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	saved, err := h.svc.ToggleSaved(r.Context(), userID, jobID)
	if err != nil {
		writeServiceError(w, err, "toggleSaved")
		return
	}
	jsonOK(w, map[string]any{"jobId": jobID, "saved": saved})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.History(r.Context(), userID)
	if err != nil {
		log.Printf("[tracker] history error: %v", err)
		jsonError(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	jsonOK(w, entries)
}

func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := h.svc.GetPreferences(r.Context(), userID)
	if err != nil {
		log.Printf("[tracker] getPreferences error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, prefs) // null when absent — the "not configured" sentinel
}

func (h *Handler) savePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var prefs model.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.svc.SavePreferences(r.Context(), userID, prefs); err != nil {
		writeServiceError(w, err, "savePreferences")
		return
	}
	jsonOK(w, prefs)
}

func (h *Handler) resetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.ResetPreferences(r.Context(), userID); err != nil {
		log.Printf("[tracker] resetPreferences error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]string{"status": "reset"})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func writeServiceError(w http.ResponseWriter, err error, op string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Msg, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicate):
		jsonError(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("[tracker] %s error: %v", op, err)
		jsonError(w, "database error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
