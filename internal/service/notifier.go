package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"github.com/khan-masud/exam-station/internal/config"
)

// EmailSender and SMSSender are the outbound channels the notification
// fan-out uses. Both are best-effort: callers log failures and move on.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

type smtpEmailSender struct {
	cfg config.MailConfig
}

func NewSMTPEmailSender(cfg config.MailConfig) EmailSender {
	return &smtpEmailSender{cfg: cfg}
}

func (s *smtpEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("mail host not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type webhookSMSSender struct {
	cfg    config.SMSConfig
	client *http.Client
}

func NewWebhookSMSSender(cfg config.SMSConfig) SMSSender {
	return &webhookSMSSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *webhookSMSSender) Send(ctx context.Context, phone, message string) error {
	if s.cfg.WebhookURL == "" {
		return fmt.Errorf("sms webhook not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms webhook returned status %d", resp.StatusCode)
	}
	return nil
}
