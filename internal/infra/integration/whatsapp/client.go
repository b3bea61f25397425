package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/refinly/loan-referral/internal/infra/metrics"
)

const DefaultBaseURL = "https://graph.facebook.com/v13.0"

// Client sends plain-text messages through the WhatsApp Cloud API.
type Client struct {
	accessToken   string
	phoneNumberID string
	baseURL       string
	http          *http.Client
	log           *zap.Logger
}

func NewClient(accessToken, phoneNumberID, baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: timeout},
		log:           log.Named("whatsapp"),
	}
}

// Send delivers body to the recipient "to". Every failure is logged and
// reported through the result.
func (c *Client) Send(ctx context.Context, to, body string) SendResult {
	res := c.send(ctx, to, body)
	metrics.RecordWhatsAppMessage(res.Delivered)
	if !res.Delivered {
		metrics.RecordIntegrationError("whatsapp")
	}
	return res
}

func (c *Client) send(ctx context.Context, to, body string) SendResult {
	if c.phoneNumberID == "" {
		c.log.Error("phone number id is not configured")
		return SendResult{Reason: "phone number id not configured"}
	}
	if c.accessToken == "" {
		c.log.Error("access token is not configured")
		return SendResult{Reason: "access token not configured"}
	}

	payload, err := json.Marshal(textMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textPayload{Body: body},
	})
	if err != nil {
		c.log.Error("failed to encode message", zap.Error(err))
		return SendResult{Reason: err.Error()}
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.log.Error("failed to build request", zap.Error(err))
		return SendResult{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("error sending message", zap.String("to", to), zap.Error(err))
		return SendResult{Reason: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Error("api returned an error status",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return SendResult{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("http %d: %s", resp.StatusCode, string(respBody))}
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		// delivered per status code even if the body is not what we expect
		c.log.Warn("could not parse api response", zap.Error(err))
		return SendResult{Delivered: true, StatusCode: resp.StatusCode}
	}
	if result.Error != nil {
		c.log.Error("api error", zap.String("to", to), zap.String("message", result.Error.Message), zap.Int("code", result.Error.Code))
		return SendResult{StatusCode: resp.StatusCode, Reason: result.Error.Message}
	}

	var messageID string
	if len(result.Messages) > 0 {
		messageID = result.Messages[0].ID
	}

	c.log.Info("message sent", zap.String("to", to), zap.String("message_id", messageID))
	return SendResult{Delivered: true, StatusCode: resp.StatusCode, MessageID: messageID}
}
