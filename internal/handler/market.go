package handler

import (
	"log/slog"
	"net/http"

	"voicedesk/internal/httputil"
	"voicedesk/internal/service/exchange"
)

// MarketHandler exposes the market-data passthrough endpoints the web UI
// uses to render venue and instrument pickers.
type MarketHandler struct {
	market *exchange.Client
	logger *slog.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(market *exchange.Client, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		market: market,
		logger: logger,
	}
}

// HealthCheck reports process liveness
// GET /health
func (h *MarketHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListExchanges returns the supported exchanges
// GET /api/exchanges
func (h *MarketHandler) ListExchanges(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string][]string{
		"exchanges": h.market.Exchanges(),
	})
}

// GetSymbols returns instruments trading on an exchange
// GET /api/symbols/{exchange}
func (h *MarketHandler) GetSymbols(w http.ResponseWriter, r *http.Request) {
	exchangeName, ok := pathParam(w, r, "exchange", "Exchange")
	if !ok {
		return
	}

	symbols, err := h.market.GetSymbols(r.Context(), exchangeName)
	if err != nil {
		h.logger.Error("failed to fetch symbols", "exchange", exchangeName, "error", err)
		handleError(w, err)
		return
	}
	if symbols == nil {
		symbols = []string{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]string{"symbols": symbols})
}

// GetPrice returns the last-traded price for a symbol on an exchange. The
// price field is null when no price is available; that is not an error.
// GET /api/price/{exchange}/{symbol}
func (h *MarketHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	exchangeName, ok := pathParam(w, r, "exchange", "Exchange")
	if !ok {
		return
	}
	symbol, ok := pathParam(w, r, "symbol", "Symbol")
	if !ok {
		return
	}

	price, err := h.market.GetPrice(r.Context(), exchangeName, symbol)
	if err != nil {
		h.logger.Error("failed to fetch price", "exchange", exchangeName, "symbol", symbol, "error", err)
		handleError(w, err)
		return
	}

	var payload *string
	if price != "" {
		payload = &price
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]*string{"price": payload})
}
