package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Payload is the body accepted by the contact relay.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Client forwards stored contact messages to the email relay.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(url string, log *logger.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log.Named("RelayClient"),
	}
}

// Notify posts the message; any non-2xx answer is an error.
func (c *Client) Notify(ctx context.Context, msg *domain.ContactMessage) error {
	body, err := json.Marshal(Payload{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Message: msg.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Relay returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", respBody))
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}
