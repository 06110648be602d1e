// Package notify delivers one-time passcodes and other short messages to
// customers. Delivery is fire-and-forget from the caller's point of view:
// failures are logged, never retried here.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pos-backend/pkg/logger"
)

// Config carries the SMS gateway credentials. Passed in at construction so
// the notifier holds no ambient process state.
type Config struct {
	GatewayURL string
	APIKey     string
	SenderID   string
}

type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// SMSNotifier posts messages to an HTTP SMS gateway.
type SMSNotifier struct {
	cfg    Config
	client *http.Client
}

func NewSMSNotifier(cfg Config) *SMSNotifier {
	return &SMSNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *SMSNotifier) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"from":    n.cfg.SenderID,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes messages to the log instead of delivering them. Used
// when no gateway is configured (development) and in tests.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, phone, message string) error {
	log := logger.WithComponent("notifier")
	log.Info().Str("phone", phone).Str("message", message).Msg("sms delivery skipped (no gateway configured)")
	return nil
}

// FromConfig picks the SMS gateway when configured, the log fallback
// otherwise.
func FromConfig(cfg Config) Notifier {
	if cfg.GatewayURL == "" {
		return LogNotifier{}
	}
	return NewSMSNotifier(cfg)
}
