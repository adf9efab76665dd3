package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	application "github.com/RadikAgl/events/contexts/event-management/registration-service/application"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Config carries the ambient gateway settings injected by the composition root.
type Config struct {
	BaseURL        string
	Token          string
	OwnerID        string
	RequestTimeout time.Duration
}

// Gateway is the HTTP adapter for the notification collaborator. Its contract
// is success-as-a-value: any 2xx, plus 409/422 (already accepted upstream),
// counts as delivered; every other outcome, including transport errors, is a
// failure. It never returns an error past this boundary.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	token      string
	ownerID    string
	logger     *slog.Logger
}

type sendRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &Gateway{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: defaultConnectTimeout}).DialContext,
			},
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		ownerID: cfg.OwnerID,
		logger:  application.ResolveLogger(logger),
	}
}

func (g *Gateway) Send(ctx context.Context, messageID string, email string, fullName string, code string) bool {
	body, err := json.Marshal(sendRequest{
		ID:      messageID,
		OwnerID: g.ownerID,
		Email:   email,
		Message: fmt.Sprintf("Hello, %s!\nYour confirmation code: %s", fullName, code),
	})
	if err != nil {
		g.logSendFailure(messageID, err.Error())
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		g.logSendFailure(messageID, err.Error())
		return false
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logSendFailure(messageID, err.Error())
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true
	}
	// The gateway reports an already-accepted duplicate as 409/422; treating
	// it as success avoids double-notifying the recipient.
	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity {
		return true
	}

	g.logSendFailure(messageID, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	return false
}

func (g *Gateway) logSendFailure(messageID string, reason string) {
	g.logger.Warn("notification send failed",
		"event", "notification_gateway_send_failed",
		"module", "event-management/registration-service",
		"layer", "adapter",
		"message_id", messageID,
		"error", reason,
	)
}
