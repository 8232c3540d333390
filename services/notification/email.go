package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"servicehub/config"

	"go.uber.org/zap"
)

// SMTPEmailSender delivers booking notification emails over plain SMTP.
// Without EMAIL_USER configured (local development), sends are logged
// instead of delivered.
type SMTPEmailSender struct {
	Logger *zap.Logger
}

func NewSMTPEmailSender(logger *zap.Logger) *SMTPEmailSender {
	return &SMTPEmailSender{Logger: logger}
}

func (s *SMTPEmailSender) SendBookingNotificationEmail(ctx context.Context, to, firstName, subject, body string, details BookingDetails) error {
	cfg := config.AppConfig
	if cfg.EmailUser == "" {
		s.Logger.Info("email send (dev mode)",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body))
		return nil
	}

	msg := buildBookingEmail(cfg.EmailFrom, to, firstName, subject, body, details)
	addr := cfg.EmailHost + ":" + cfg.EmailPort
	auth := smtp.PlainAuth("", cfg.EmailUser, cfg.EmailPass, cfg.EmailHost)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, cfg.EmailFrom, []string{to}, msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email send to %s timed out: %w", to, ctx.Err())
	}
}

func buildBookingEmail(from, to, firstName, subject, body string, details BookingDetails) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"ServiceHub\" <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")

	fmt.Fprintf(&b, "Hi %s,\r\n\r\n%s\r\n", firstName, body)
	if details.ServiceName != "" {
		fmt.Fprintf(&b, "\r\nService: %s\r\n", details.ServiceName)
	}
	if details.ServiceDate != "" {
		fmt.Fprintf(&b, "Date: %s at %s\r\n", details.ServiceDate, details.ServiceTime)
	}
	if details.Address != "" {
		fmt.Fprintf(&b, "Address: %s\r\n", details.Address)
	}
	b.WriteString("\r\n— The ServiceHub Team\r\n")
	return []byte(b.String())
}
