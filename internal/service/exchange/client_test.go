package exchange

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"voicedesk/internal/config"
	"voicedesk/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testDirectory points a single OKX-shaped endpoint at the test server.
func testDirectory(baseURL string) *Directory {
	ep := Endpoint{
		Name:        "OKX",
		SymbolsURL:  baseURL + "/instruments",
		PriceURL:    baseURL + "/ticker",
		SymbolParam: "instId",
	}
	return &Directory{
		names:  []string{"OKX"},
		byName: map[string]Endpoint{"okx": ep},
	}
}

func TestGetPriceDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ticker" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("instId"); got != "BTC-USDT" {
			t.Errorf("instId param = %q, want BTC-USDT", got)
		}
		w.Write([]byte(`{"data":[{"instId":"BTC-USDT","last":"50123.4"}]}`))
	}))
	defer srv.Close()

	c := NewClient(&config.Config{}, testDirectory(srv.URL), discardLogger())

	if _, err := c.GetPrice(context.Background(), "BINANCE", "BTC-USDT"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown exchange error = %v, want ErrValidation", err)
	}

	price, err := c.GetPrice(context.Background(), "okx", "BTC-USDT")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price != "50123.4" {
		t.Errorf("price = %q, want 50123.4", price)
	}
}

func TestGetSymbolsDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instruments" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data":[{"instId":"BTC-USDT"},{"instId":"ETH-USDT"}]}`))
	}))
	defer srv.Close()

	c := NewClient(&config.Config{}, testDirectory(srv.URL), discardLogger())

	symbols, err := c.GetSymbols(context.Background(), "OKX")
	if err != nil {
		t.Fatalf("GetSymbols: %v", err)
	}
	want := []string{"BTC-USDT", "ETH-USDT"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("symbols = %v, want %v", symbols, want)
	}
}

func TestQuoteServicePreferred(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("direct exchange API should not be hit when the quote service answers")
	}))
	defer direct.Close()

	quote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/price/OKX/BTC-USDT":
			w.Write([]byte(`{"price":"50000"}`))
		case "/symbols/OKX":
			w.Write([]byte(`{"symbols":["BTC-USDT"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer quote.Close()

	c := NewClient(&config.Config{QuoteServiceURL: quote.URL}, testDirectory(direct.URL), discardLogger())

	price, err := c.GetPrice(context.Background(), "OKX", "BTC-USDT")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price != "50000" {
		t.Errorf("price = %q, want 50000", price)
	}

	symbols, err := c.GetSymbols(context.Background(), "OKX")
	if err != nil {
		t.Fatalf("GetSymbols: %v", err)
	}
	if !reflect.DeepEqual(symbols, []string{"BTC-USDT"}) {
		t.Errorf("symbols = %v", symbols)
	}
}

func TestQuoteServiceFallsBackToDirect(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"instId":"BTC-USDT","last":"50123.4"}]}`))
	}))
	defer direct.Close()

	quote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer quote.Close()

	c := NewClient(&config.Config{QuoteServiceURL: quote.URL}, testDirectory(direct.URL), discardLogger())

	price, err := c.GetPrice(context.Background(), "OKX", "BTC-USDT")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price != "50123.4" {
		t.Errorf("price = %q, want 50123.4", price)
	}
}

func TestExchangeAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{}, testDirectory(srv.URL), discardLogger())

	if _, err := c.GetPrice(context.Background(), "OKX", "BTC-USDT"); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("price error = %v, want ErrUnavailable", err)
	}
	if _, err := c.GetSymbols(context.Background(), "OKX"); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("symbols error = %v, want ErrUnavailable", err)
	}
}
