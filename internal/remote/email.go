package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// EmailSender posts to a Resend-compatible /emails endpoint.
type EmailSender struct {
	URL    string
	APIKey string
	From   string
	HTTP   *http.Client
}

func NewEmailSender(url, apiKey, from string, timeout time.Duration) *EmailSender {
	return &EmailSender{URL: url, APIKey: apiKey, From: from, HTTP: NewHTTPClient(timeout)}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type emailResponse struct {
	ID string `json:"id"`
}

// Send delivers one message and returns the provider's message id.
func (s *EmailSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", fmt.Errorf("send email: recipient is required")
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+s.APIKey)

	var out emailResponse
	err := doJSON(ctx, s.HTTP, http.MethodPost, s.URL, h, emailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}
