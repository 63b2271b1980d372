// Package notify implements the like-notification dispatch path: composing
// the email a gift sender receives when their page is liked and handing it
// to an email transport. The transport itself is a collaborator behind the
// Mailer interface; provider mechanics (retries, headers, deliverability)
// live on the provider's side of that boundary.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mailer sends one fully rendered HTML email.
// Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// HTTPMailer delivers mail through a Resend-compatible HTTP API
// (POST {BaseURL}/emails with bearer auth). It holds no per-send state and
// is safe for concurrent use.
type HTTPMailer struct {
	// BaseURL is the API origin, e.g. "https://api.resend.com".
	BaseURL string
	// APIKey is the bearer token.
	APIKey string
	// From is the sender identity, e.g. `Christmas Greetings <onboarding@resend.dev>`.
	From string
	// Client is the HTTP client; a default with a sane timeout is used when nil.
	Client *http.Client
}

// sendRequest is the wire payload of the /emails endpoint.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the email to the provider. Any non-2xx response is an error;
// the response body is folded into the message for the logs.
func (m *HTTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	body, err := json.Marshal(sendRequest{
		From:    m.From,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("notify: encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Cap the body read; provider error payloads are small.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("notify: email provider returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
