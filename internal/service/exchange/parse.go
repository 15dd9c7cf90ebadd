package exchange

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"voicedesk/internal/domain"
)

// Response shapes for the slice of each exchange's public API the desk
// actually reads. Everything else in the payloads is ignored; no claim is
// made about the rest of any exchange's schema.
type (
	okxInstruments struct {
		Data []struct {
			InstID string `json:"instId"`
		} `json:"data"`
	}
	okxTickers struct {
		Data []struct {
			InstID string `json:"instId"`
			Last   string `json:"last"`
		} `json:"data"`
	}

	bybitInstruments struct {
		Result struct {
			List []struct {
				Symbol string `json:"symbol"`
			} `json:"list"`
		} `json:"result"`
	}
	bybitTickers struct {
		Result struct {
			List []struct {
				Symbol    string `json:"symbol"`
				LastPrice string `json:"lastPrice"`
			} `json:"list"`
		} `json:"result"`
	}

	binanceExchangeInfo struct {
		Symbols []struct {
			Symbol string `json:"symbol"`
		} `json:"symbols"`
	}
	binanceTicker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}

	deribitInstruments struct {
		Result []struct {
			InstrumentName string `json:"instrument_name"`
		} `json:"result"`
	}
	deribitTicker struct {
		Result struct {
			LastPrice json.Number `json:"last_price"`
		} `json:"result"`
	}
)

// parseSymbols pulls the instrument list out of an exchange response, capped
// at max entries.
func parseSymbols(exchange string, body []byte, max int) ([]string, error) {
	var symbols []string

	switch exchange {
	case "OKX":
		var payload okxInstruments
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("parse OKX instruments: %w", err)
		}
		for _, item := range payload.Data {
			symbols = append(symbols, item.InstID)
		}
	case "Bybit":
		var payload bybitInstruments
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("parse Bybit instruments: %w", err)
		}
		for _, item := range payload.Result.List {
			symbols = append(symbols, item.Symbol)
		}
	case "Binance":
		var payload binanceExchangeInfo
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("parse Binance exchange info: %w", err)
		}
		for _, item := range payload.Symbols {
			symbols = append(symbols, item.Symbol)
		}
	case "Deribit":
		var payload deribitInstruments
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("parse Deribit instruments: %w", err)
		}
		for _, item := range payload.Result {
			symbols = append(symbols, item.InstrumentName)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported exchange %q", domain.ErrValidation, exchange)
	}

	if len(symbols) > max {
		symbols = symbols[:max]
	}
	return symbols, nil
}

// parsePrice pulls the last-traded price for symbol out of a ticker
// response. A ticker that does not cover the symbol yields "" with no error;
// absence of a price is not a failure.
func parsePrice(exchange string, body []byte, symbol string) (string, error) {
	switch exchange {
	case "OKX":
		var payload okxTickers
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", fmt.Errorf("parse OKX ticker: %w", err)
		}
		for _, item := range payload.Data {
			if item.InstID == symbol {
				return canonicalPrice(item.Last)
			}
		}
		return "", nil
	case "Bybit":
		var payload bybitTickers
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", fmt.Errorf("parse Bybit ticker: %w", err)
		}
		for _, item := range payload.Result.List {
			if item.Symbol == symbol {
				return canonicalPrice(item.LastPrice)
			}
		}
		return "", nil
	case "Binance":
		// With a symbol query param Binance returns a single object, but the
		// same endpoint returns an array when unfiltered.
		if len(body) > 0 && body[0] == '[' {
			var payload []binanceTicker
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", fmt.Errorf("parse Binance tickers: %w", err)
			}
			for _, item := range payload {
				if item.Symbol == symbol {
					return canonicalPrice(item.Price)
				}
			}
			return "", nil
		}
		var payload binanceTicker
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", fmt.Errorf("parse Binance ticker: %w", err)
		}
		return canonicalPrice(payload.Price)
	case "Deribit":
		var payload deribitTicker
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", fmt.Errorf("parse Deribit ticker: %w", err)
		}
		return canonicalPrice(payload.Result.LastPrice.String())
	default:
		return "", fmt.Errorf("%w: unsupported exchange %q", domain.ErrValidation, exchange)
	}
}

// canonicalPrice normalizes an exchange's price text to a canonical decimal
// string. Unparsable or empty text counts as "no price available".
func canonicalPrice(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", nil
	}
	return d.String(), nil
}
