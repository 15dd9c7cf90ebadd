// Package voice wraps the hosted voice-call provider: starting and stopping
// browser-based voice sessions and reading their lifecycle status. Transcript
// content arrives separately, via webhooks the provider posts back to us.
package voice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"voicedesk/internal/config"
	"voicedesk/internal/domain"
)

type webConfig struct {
	AutoConnect bool `json:"auto_connect"`
	ShowDebug   bool `json:"show_debug"`
}

// startCallRequest configures a web session: no phone leg, the caller's
// microphone connects straight from the browser.
type startCallRequest struct {
	Task            string    `json:"task"`
	Voice           string    `json:"voice"`
	ReduceLatency   bool      `json:"reduce_latency"`
	Webhook         string    `json:"webhook"`
	WaitForGreeting bool      `json:"wait_for_greeting"`
	Record          bool      `json:"record"`
	Web             bool      `json:"web"`
	WebConfig       webConfig `json:"web_config"`
}

type startCallResponse struct {
	CallID       string `json:"call_id"`
	Status       string `json:"status"`
	WebSocketURL string `json:"web_socket_url"`
}

type callStatusResponse struct {
	Status string `json:"status"`
}

// StartResult identifies a newly created voice session and the WebSocket URL
// the browser streams audio over.
type StartResult struct {
	SessionID string `json:"sessionId"`
	StreamURL string `json:"streamUrl"`
}

// Client calls the voice provider's REST API.
type Client struct {
	http       *resty.Client
	apiKey     string
	webhookURL string
	logger     *slog.Logger
}

// NewClient builds a provider client from configuration. A missing API key is
// not an error here; it surfaces as domain.ErrConfig on the first StartSession.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.VoiceAPIURL).
			SetTimeout(config.VoiceAPITimeout),
		apiKey:     cfg.VoiceAPIKey,
		webhookURL: cfg.BaseURL + "/voice/webhook",
		logger:     logger,
	}
}

// StartSession creates a web voice session with the OTC desk conversation
// task and our webhook registered for transcript updates.
func (c *Client) StartSession(ctx context.Context) (*StartResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: VOICE_API_KEY is not set", domain.ErrConfig)
	}

	req := startCallRequest{
		Task:          conversationPrompt,
		Voice:         "maya",
		ReduceLatency: true,
		Webhook:       c.webhookURL,
		Record:        false,
		Web:           true,
		WebConfig: webConfig{
			AutoConnect: true,
			ShowDebug:   false,
		},
	}

	var result startCallResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.apiKey).
		SetBody(req).
		SetResult(&result).
		Post("/calls")
	if err != nil {
		return nil, fmt.Errorf("%w: start voice session: %v", domain.ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: voice provider returned %s", domain.ErrUnavailable, resp.Status())
	}
	if result.CallID == "" {
		return nil, fmt.Errorf("%w: voice provider response missing call id", domain.ErrUnavailable)
	}

	streamURL := result.WebSocketURL
	if streamURL == "" {
		// Older provider responses omit the stream URL; its path is derivable
		// from the call id.
		streamURL = fmt.Sprintf("wss://api.bland.ai/v1/ws/%s", result.CallID)
		c.logger.Debug("using fallback stream url", "session_id", result.CallID)
	}

	c.logger.Info("voice session started", "session_id", result.CallID)
	return &StartResult{
		SessionID: result.CallID,
		StreamURL: streamURL,
	}, nil
}

// StopSession ends the voice session on the provider side.
func (c *Client) StopSession(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.apiKey).
		Post(fmt.Sprintf("/calls/%s/stop", id))
	if err != nil {
		return fmt.Errorf("%w: stop voice session: %v", domain.ErrUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: voice provider returned %s", domain.ErrUnavailable, resp.Status())
	}

	c.logger.Info("voice session stopped", "session_id", id)
	return nil
}

// FetchStatus retrieves the provider-side lifecycle status of a session.
func (c *Client) FetchStatus(ctx context.Context, id string) (string, error) {
	var result callStatusResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.apiKey).
		SetResult(&result).
		Get(fmt.Sprintf("/calls/%s", id))
	if err != nil {
		return "", fmt.Errorf("%w: fetch session status: %v", domain.ErrUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: voice provider returned %s", domain.ErrUnavailable, resp.Status())
	}

	return result.Status, nil
}
