package notification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"servicehub/config"

	"go.uber.org/zap"
)

// TwilioSMSSender delivers booking notification texts through the Twilio
// Messages API. Without TWILIO_ACCOUNT_SID configured (local development),
// sends are logged instead of delivered.
type TwilioSMSSender struct {
	Logger *zap.Logger
	client *http.Client
}

func NewTwilioSMSSender(logger *zap.Logger) *TwilioSMSSender {
	return &TwilioSMSSender{
		Logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TwilioSMSSender) SendBookingNotification(ctx context.Context, to, message string) error {
	cfg := config.AppConfig
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		s.Logger.Info("SMS send (dev mode)",
			zap.String("to", to),
			zap.String("message", message))
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", cfg.TwilioAccountSID)
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", cfg.TwilioPhoneNumber)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio rejected SMS to %s: status %d", to, resp.StatusCode)
	}
	return nil
}
