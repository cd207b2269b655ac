package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// ResendAPIURL is the transactional email endpoint.
const ResendAPIURL = "https://api.resend.com/emails"

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	apiKey string
	apiURL string
	client *http.Client
	logger *logger.Logger
}

func NewResendMailer(apiKey string, log *logger.Logger) *ResendMailer {
	return &ResendMailer{
		apiKey: apiKey,
		apiURL: ResendAPIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log.Named("ResendMailer"),
	}
}

// WithAPIURL points the mailer at another endpoint.
func (s *ResendMailer) WithAPIURL(url string) *ResendMailer {
	s.apiURL = url
	return s
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

func (s *ResendMailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients provided for email")
	}

	payloadBytes, err := json.Marshal(resendRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		s.logger.Error("Failed to marshal Resend request payload", zap.Error(err))
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Failed to send request to Resend", zap.Error(err))
		return fmt.Errorf("failed to send request to Resend: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("Resend API request failed", zap.Int("statusCode", resp.StatusCode), zap.ByteString("body", body))
		return fmt.Errorf("Resend API request failed with status code %d", resp.StatusCode)
	}

	var parsed resendResponse
	_ = json.Unmarshal(body, &parsed)
	s.logger.Info("Email sent via Resend", zap.Strings("to", email.To), zap.String("messageID", parsed.ID))
	return nil
}
