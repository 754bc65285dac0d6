// HTTP handlers for the résumé endpoints.
//
// Routes:
//
//	GET /resume          → stored résumé document
//	PUT /resume          → replace the document wholesale
//	GET /resume/score    → ATS report for the stored document
//	GET /resume/export   → ATS report as an .xlsx download
package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"jobtrack/matcher-service/internal/ats"
	"jobtrack/matcher-service/internal/export"
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

// RegisterRoutes mounts all résumé routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/resume", h.handleResume)
	mux.HandleFunc("/resume/", h.handleResumeAction)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getResume(w, r)
	case http.MethodPut:
		h.saveResume(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleResumeAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	switch parts[1] {
	case "score":
		h.scoreResume(w, r)
	case "export":
		h.exportReport(w, r)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", parts[1]), http.StatusNotFound)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) getResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeResumeError(w, err, "getResume")
		return
	}
	jsonOK(w, doc)
}

func (h *Handler) saveResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var doc model.Resume
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.svc.Save(r.Context(), userID, doc); err != nil {
		writeResumeError(w, err, "saveResume")
		return
	}
	jsonOK(w, doc)
}

func (h *Handler) scoreResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Score(r.Context(), userID)
	if err != nil {
		writeResumeError(w, err, "scoreResume")
		return
	}
	jsonOK(w, report)
}

func (h *Handler) exportReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeResumeError(w, err, "exportReport")
		return
	}

	f := export.ATSWorkbook(*doc, ats.Evaluate(*doc))
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ats-report.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("[resume] export write error: %v", err)
	}
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

func writeResumeError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, ErrNotFound) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	log.Printf("[resume] %s error: %v", op, err)
	jsonError(w, "database error", http.StatusInternalServerError)
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
