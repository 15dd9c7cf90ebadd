package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"voicedesk/internal/config"
	"voicedesk/internal/domain"
	"voicedesk/internal/extract"
	"voicedesk/internal/httputil"
	"voicedesk/internal/service/voice"
	"voicedesk/internal/session"
)

// priceLookup is the slice of the market-data client the voice flow needs.
type priceLookup interface {
	GetPrice(ctx context.Context, exchange, symbol string) (string, error)
}

// VoiceHandler handles the voice session HTTP surface: starting and stopping
// sessions, transcript webhooks from the provider, and status polling.
type VoiceHandler struct {
	provider *voice.Client
	registry *session.Registry
	market   priceLookup
	logger   *slog.Logger
}

// NewVoiceHandler creates a new voice session handler
func NewVoiceHandler(
	provider *voice.Client,
	registry *session.Registry,
	market priceLookup,
	logger *slog.Logger,
) *VoiceHandler {
	return &VoiceHandler{
		provider: provider,
		registry: registry,
		market:   market,
		logger:   logger,
	}
}

// statusResponse is the aggregate a polling client sees: provider lifecycle
// status plus the locally derived conversation state.
type statusResponse struct {
	Status      string             `json:"status"`
	Transcript  []domain.Turn      `json:"transcript"`
	CurrentStep string             `json:"currentStep"`
	OrderData   domain.OrderRecord `json:"orderData"`
}

// StartSession starts a new voice trading session
// POST /voice/sessions
func (h *VoiceHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.provider.StartSession(r.Context())
	if err != nil {
		h.logger.Error("failed to start voice session", "error", err)
		handleError(w, err)
		return
	}

	h.registry.Create(result.SessionID, result.StreamURL)

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": result.SessionID,
		"streamUrl": result.StreamURL,
		"status":    "started",
	})
}

// StopSession ends a voice session and drops it from the registry
// DELETE /voice/sessions/{id}
func (h *VoiceHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id", "Session ID")
	if !ok {
		return
	}

	if err := h.provider.StopSession(r.Context(), id); err != nil {
		h.logger.Error("failed to stop voice session", "session_id", id, "error", err)
		handleError(w, err)
		return
	}
	h.registry.Remove(id)

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetStatus reports the aggregate session status, lazily attaching the
// current market price once exchange and symbol are both known
// GET /voice/sessions/{id}
func (h *VoiceHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id", "Session ID")
	if !ok {
		return
	}

	providerStatus, err := h.provider.FetchStatus(r.Context(), id)
	if err != nil {
		// Degrade rather than fail the poll; the client keeps polling.
		h.logger.Warn("provider status lookup failed", "session_id", id, "error", err)
		httputil.RespondJSON(w, http.StatusOK, statusResponse{
			Status:      domain.StatusError,
			Transcript:  []domain.Turn{},
			CurrentStep: "Error",
		})
		return
	}

	s, found := h.registry.Get(id)
	if !found {
		s = domain.Session{ID: id, Transcript: []domain.Turn{}}
	}

	if s.Order.HasInstrument() && s.Order.MarketPrice == "" {
		s.Order.MarketPrice = h.lookupMarketPrice(r.Context(), id, s.Order)
	}

	httputil.RespondJSON(w, http.StatusOK, statusResponse{
		Status:      providerStatus,
		Transcript:  s.Transcript,
		CurrentStep: extract.CurrentStep(s.Order),
		OrderData:   s.Order,
	})
}

// lookupMarketPrice fetches the market price under a bounded timeout and
// attaches it if the field is still empty. Any failure leaves the price
// absent; a status poll never fails because a ticker is down.
func (h *VoiceHandler) lookupMarketPrice(ctx context.Context, id string, order domain.OrderRecord) string {
	ctx, cancel := context.WithTimeout(ctx, config.PriceLookupTimeout)
	defer cancel()

	price, err := h.market.GetPrice(ctx, order.Exchange, order.Symbol)
	if err != nil || price == "" {
		if err != nil {
			h.logger.Warn("market price lookup failed",
				"session_id", id,
				"exchange", order.Exchange,
				"symbol", order.Symbol,
				"error", err,
			)
		}
		return ""
	}

	if !h.registry.AttachMarketPrice(id, price) {
		// Lost the race to a concurrent attach; report the stored value.
		if current, ok := h.registry.Get(id); ok {
			return current.Order.MarketPrice
		}
	}
	return price
}

// Webhook receives transcript updates from the voice provider and replays
// the full transcript into the order record
// POST /voice/webhook
func (h *VoiceHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var event voice.TranscriptEvent
	if err := httputil.ParseJSON(w, r, &event); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := event.Validate(); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	reqID := uuid.NewString()
	snap := h.registry.ReplaceTranscript(event.CallID, event.Transcript)

	h.logger.Info("transcript update processed",
		"request_id", reqID,
		"session_id", event.CallID,
		"turns", len(snap.Transcript),
		"step", extract.CurrentStep(snap.Order),
	)

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
