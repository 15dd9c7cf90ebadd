package voice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voicedesk/internal/config"
	"voicedesk/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(serverURL, apiKey string) *Client {
	return NewClient(&config.Config{
		VoiceAPIKey: apiKey,
		VoiceAPIURL: serverURL,
		BaseURL:     "https://desk.example.test",
	}, discardLogger())
}

func TestStartSessionRequiresAPIKey(t *testing.T) {
	c := testClient("http://unused.test", "")

	_, err := c.StartSession(context.Background())
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestStartSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calls" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("Authorization = %q, want test-key", got)
		}

		var req startCallRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.Web {
			t.Error("request should ask for a web session")
		}
		if req.Webhook != "https://desk.example.test/voice/webhook" {
			t.Errorf("webhook = %q", req.Webhook)
		}
		if !strings.Contains(req.Task, "OTC") {
			t.Error("task prompt missing")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(startCallResponse{
			CallID:       "call-123",
			Status:       "started",
			WebSocketURL: "wss://provider.test/ws/call-123",
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, "test-key")

	result, err := c.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if result.SessionID != "call-123" {
		t.Errorf("session id = %q", result.SessionID)
	}
	if result.StreamURL != "wss://provider.test/ws/call-123" {
		t.Errorf("stream url = %q", result.StreamURL)
	}
}

func TestStartSessionFallbackStreamURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(startCallResponse{CallID: "call-456"})
	}))
	defer srv.Close()

	c := testClient(srv.URL, "test-key")

	result, err := c.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if result.StreamURL != "wss://api.bland.ai/v1/ws/call-456" {
		t.Errorf("stream url = %q, want fallback", result.StreamURL)
	}
}

func TestStartSessionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL, "test-key")

	if _, err := c.StartSession(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestStopSession(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.URL.Path != "/calls/call-123/stop" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "test-key")

	if err := c.StopSession(context.Background(), "call-123"); err != nil {
		t.Fatalf("StopSession: %v", err)
	}
	if !called {
		t.Error("provider stop endpoint never hit")
	}
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calls/call-123" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"in-progress"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "test-key")

	status, err := c.FetchStatus(context.Background(), "call-123")
	if err != nil {
		t.Fatalf("FetchStatus: %v", err)
	}
	if status != "in-progress" {
		t.Errorf("status = %q, want in-progress", status)
	}

	if _, err := c.FetchStatus(context.Background(), "missing"); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("missing call error = %v, want ErrUnavailable", err)
	}
}

func TestTranscriptEventValidate(t *testing.T) {
	ok := TranscriptEvent{
		CallID: "call-1",
		Transcript: []domain.Turn{
			{Role: domain.RoleUser, Content: "hello"},
		},
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}

	missing := TranscriptEvent{Transcript: []domain.Turn{}}
	if err := missing.Validate(); err == nil {
		t.Error("event without call id accepted")
	}
}
