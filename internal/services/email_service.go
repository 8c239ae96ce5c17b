package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type EmailService interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

const resendEndpoint = "https://api.resend.com/emails"

type ResendEmailService struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

func NewResendEmailService(apiKey, from string) *ResendEmailService {
	return &ResendEmailService{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEndpoint,
		httpClient: http.DefaultClient,
	}
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (s *ResendEmailService) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	payload := resendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Reset your FitSense password",
		HTML: fmt.Sprintf(
			`<p>We received a request to reset your password.</p>`+
				`<p><a href="%s">Reset password</a></p>`+
				`<p>If you did not request this, you can safely ignore this email.</p>`,
			resetURL,
		),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("send email: status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	return nil
}
