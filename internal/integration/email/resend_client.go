// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client. A base URL in the config
// replaces the Resend API endpoint.
func NewResendClient(cfg config.EmailConfig) (*ResendClient, error) {
	client := resend.NewClient(cfg.ResendAPIKey)
	if cfg.ResendBaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.ResendBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = baseURL
	}

	return &ResendClient{
		client:    client,
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				fmt.Errorf("%w: %w", domainerror.ErrPermanentEmailFailure, err),
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			fmt.Errorf("%w: %w", domainerror.ErrTemporaryEmailFailure, err),
		)
	}

	return &adapter.SendEmailResult{
		MessageID: resp.Id,
	}, nil
}

// isPermanentError reports whether a provider error should not be retried.
// 401, 403 and 422 are permanent; rate limits and 5xx are not.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// LogSender writes emails to the log instead of sending them. It is used
// when no Resend API key is configured.
type LogSender struct {
	logf func(msg string, args ...any)
}

// NewLogSender creates a LogSender writing through logf.
func NewLogSender(logf func(msg string, args ...any)) *LogSender {
	return &LogSender{logf: logf}
}

// Send logs the email.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.logf("Email not sent, no provider configured", "to", input.To, "subject", input.Subject)
	return &adapter.SendEmailResult{MessageID: "log"}, nil
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*LogSender)(nil)
)
