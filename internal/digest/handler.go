// HTTP handlers for the digest endpoints.
//
// Routes:
//
//	GET  /digest             → stored snapshot for ?date= (default today)
//	POST /digest/generate    → build if absent, else return stored snapshot
//	POST /digest/regenerate  → discard then rebuild
//	GET  /digest/export      → snapshot as an .xlsx download
package digest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"jobtrack/matcher-service/internal/export"
)

// Handler adapts Service to net/http.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all digest routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/digest", h.getDigest)
	mux.HandleFunc("/digest/", h.handleDigestAction)
}

func (h *Handler) handleDigestAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	switch parts[1] {
	case "generate":
		h.post(w, r, h.generate)
	case "regenerate":
		h.post(w, r, h.regenerate)
	case "export":
		h.exportDigest(w, r)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", parts[1]), http.StatusNotFound)
	}
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request, fn func(http.ResponseWriter, *http.Request)) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) getDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Get(r.Context(), userID, dateParam(r))
	if err != nil {
		writeDigestError(w, err, "getDigest")
		return
	}
	jsonOK(w, snap)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Build(r.Context(), userID, dateParam(r))
	if err != nil {
		writeDigestError(w, err, "generate")
		return
	}
	jsonOK(w, snap)
}

func (h *Handler) regenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Regenerate(r.Context(), userID, dateParam(r))
	if err != nil {
		writeDigestError(w, err, "regenerate")
		return
	}
	jsonOK(w, snap)
}

func (h *Handler) exportDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	date := dateParam(r)
	snap, err := h.svc.Get(r.Context(), userID, date)
	if err != nil {
		writeDigestError(w, err, "export")
		return
	}

	f := export.DigestWorkbook(*snap)
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="digest-%s.xlsx"`, date))
	if err := f.Write(w); err != nil {
		log.Printf("[digest] export write error: %v", err)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func dateParam(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return Today()
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func writeDigestError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNoDigest):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoPreferences):
		jsonError(w, err.Error(), http.StatusPreconditionFailed)
	default:
		log.Printf("[digest] %s error: %v", op, err)
		jsonError(w, "digest unavailable", http.StatusInternalServerError)
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
