// Package exchange fetches market data from exchange public APIs, optionally
// preferring a standalone quote-aggregation service when one is configured.
package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"voicedesk/internal/config"
	"voicedesk/internal/domain"
)

// quote service response envelopes
type (
	quoteSymbols struct {
		Symbols []string `json:"symbols"`
	}
	quotePrice struct {
		Price string `json:"price"`
	}
)

// Client answers two questions about the markets: which instruments trade on
// an exchange, and what a given instrument last traded at. Lookup failures
// are reported as domain.ErrUnavailable and callers degrade, never crash.
type Client struct {
	direct *resty.Client
	quote  *resty.Client // nil when no aggregator is configured
	dir    *Directory
	logger *slog.Logger
}

// NewClient builds a market-data client over the given endpoint directory.
func NewClient(cfg *config.Config, dir *Directory, logger *slog.Logger) *Client {
	direct := resty.New().
		SetTimeout(config.ExchangeAPITimeout).
		SetHeader("User-Agent", "voicedesk/1.0")

	var quote *resty.Client
	if cfg.QuoteServiceURL != "" {
		quote = resty.New().
			SetBaseURL(cfg.QuoteServiceURL).
			SetTimeout(config.QuoteServiceTimeout)
	}

	return &Client{
		direct: direct,
		quote:  quote,
		dir:    dir,
		logger: logger,
	}
}

// Exchanges lists the supported exchange names in directory order.
func (c *Client) Exchanges() []string {
	return c.dir.Names()
}

// GetSymbols returns up to config.MaxSymbolList instruments trading on the
// exchange. The quote service is tried first when configured; on any failure
// there the exchange's own API is queried directly.
func (c *Client) GetSymbols(ctx context.Context, exchange string) ([]string, error) {
	ep, err := c.dir.Resolve(exchange)
	if err != nil {
		return nil, err
	}

	if c.quote != nil {
		var result quoteSymbols
		resp, err := c.quote.R().
			SetContext(ctx).
			SetResult(&result).
			Get(fmt.Sprintf("/symbols/%s", ep.Name))
		if err == nil && resp.IsSuccess() {
			return result.Symbols, nil
		}
		c.logger.Warn("quote service unavailable, falling back to exchange API",
			"exchange", ep.Name,
			"error", errOrStatus(resp, err),
		)
	}

	resp, err := c.direct.R().SetContext(ctx).Get(ep.SymbolsURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch symbols from %s: %v", domain.ErrUnavailable, ep.Name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s symbols endpoint returned %s", domain.ErrUnavailable, ep.Name, resp.Status())
	}

	return parseSymbols(ep.Name, resp.Body(), config.MaxSymbolList)
}

// GetPrice returns the last-traded price of symbol on the exchange as a
// decimal string, or "" when the exchange has no price for it.
func (c *Client) GetPrice(ctx context.Context, exchange, symbol string) (string, error) {
	ep, err := c.dir.Resolve(exchange)
	if err != nil {
		return "", err
	}
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", domain.ErrValidation)
	}

	if c.quote != nil {
		var result quotePrice
		resp, err := c.quote.R().
			SetContext(ctx).
			SetResult(&result).
			Get(fmt.Sprintf("/price/%s/%s", ep.Name, symbol))
		if err == nil && resp.IsSuccess() {
			return canonicalPrice(result.Price)
		}
		c.logger.Warn("quote service unavailable, falling back to exchange API",
			"exchange", ep.Name,
			"symbol", symbol,
			"error", errOrStatus(resp, err),
		)
	}

	params := map[string]string{ep.SymbolParam: symbol}
	for k, v := range ep.StaticParams {
		params[k] = v
	}

	resp, err := c.direct.R().SetContext(ctx).SetQueryParams(params).Get(ep.PriceURL)
	if err != nil {
		return "", fmt.Errorf("%w: fetch price from %s: %v", domain.ErrUnavailable, ep.Name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s ticker endpoint returned %s", domain.ErrUnavailable, ep.Name, resp.Status())
	}

	return parsePrice(ep.Name, resp.Body(), symbol)
}

// errOrStatus renders whichever of transport error or HTTP status explains a
// failed resty call.
func errOrStatus(resp *resty.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return resp.Status()
	}
	return "unknown error"
}
