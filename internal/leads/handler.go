package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mashkanta-plus/leads-api/internal/abuse"
	"github.com/mashkanta-plus/leads-api/internal/observability/metrics"
	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

// Notifier schedules a best-effort owner alert for a stored lead. It must
// never block the response path.
type Notifier interface {
	Enqueue(lead *Lead)
}

// Handler runs the intake pipeline for POST /api/leads:
// origin check, rate limit, parse, validate+sanitize, persist, respond,
// then notify in the background. Persistence must complete before the
// success response; notification never blocks or fails it.
type Handler struct {
	repo     Repository
	origin   *abuse.OriginGuard
	limiter  abuse.Limiter
	notifier Notifier
	metrics  *metrics.IntakeMetrics
	logger   *logging.Logger
}

// NewHandler creates the intake handler. notifier and m may be nil.
func NewHandler(repo Repository, origin *abuse.OriginGuard, limiter abuse.Limiter, notifier Notifier, m *metrics.IntakeMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		origin:   origin,
		limiter:  limiter,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitLead handles POST /api/leads.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	clientKey := abuse.ClientKey(r)

	if h.origin != nil && !h.origin.Allow(r) {
		h.logger.SecurityEvent("origin_rejected", "ip", clientKey, "origin", r.Header.Get("Origin"))
		h.metrics.ObserveRejected("origin")
		writeJSON(w, http.StatusForbidden, apiResponse{Success: false, Message: MsgGenericError})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(r.Context(), clientKey) {
		h.logger.SecurityEvent("rate_limited", "ip", clientKey)
		h.metrics.ObserveRejected("rate_limit")
		writeJSON(w, http.StatusTooManyRequests, apiResponse{Success: false, Message: MsgTooManyRequests})
		return
	}

	var req SubmitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Info("lead submission with malformed body", "ip", clientKey, "error", err)
		h.metrics.ObserveRejected("bad_json")
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: MsgGenericError})
		return
	}

	lead, err := req.Validate()
	if err != nil {
		// Honeypot and denylist hits are security events; the response is
		// the same generic 400 either way, so bots learn nothing.
		switch {
		case errors.Is(err, ErrHoneypotTripped):
			h.logger.SecurityEvent("honeypot", "ip", clientKey)
			h.metrics.ObserveRejected("honeypot")
		case errors.Is(err, ErrDangerousContent):
			h.logger.SecurityEvent("dangerous_content", "ip", clientKey)
			h.metrics.ObserveRejected("validation")
		default:
			h.logger.Info("lead submission failed validation", "ip", clientKey, "error", err)
			h.metrics.ObserveRejected("validation")
		}
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: UserMessage(err)})
		return
	}

	if clientKey != "unknown" {
		lead.IPAddress = clientKey
	}
	lead.UserAgent = r.UserAgent()

	stored, err := h.repo.Create(r.Context(), lead)
	if err != nil {
		// Full cause stays server-side; the client gets a generic message.
		h.logger.Error("lead persistence failed", "error", err, "ip", clientKey)
		h.metrics.ObserveRejected("storage")
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: MsgStorageError})
		return
	}

	h.logger.Info("lead stored", "lead_id", stored.ID, "mortgage_type", stored.MortgageType, "source", stored.Source)
	h.metrics.ObserveAccepted()
	writeJSON(w, http.StatusCreated, apiResponse{Success: true, Message: MsgSuccess})

	// After the response decision is final: fire-and-forget owner alert.
	if h.notifier != nil {
		h.notifier.Enqueue(stored)
	}
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
