package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"foodie-api/internal/core/httpclient"
)

// WhatsAppNotifier implements the Notifier interface against the WhatsApp
// Cloud API.
type WhatsAppNotifier struct {
	// apiURL is the Cloud API base, e.g. https://graph.facebook.com/v17.0.
	apiURL string
	// phoneNumberID is the sending business number's id.
	phoneNumberID string
	// accessToken authenticates the business account.
	accessToken string
	// client is the shared logging HTTP client.
	client *http.Client
}

// NewWhatsAppNotifier creates a new WhatsAppNotifier.
func NewWhatsAppNotifier(apiURL, phoneNumberID, accessToken string) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		apiURL:        apiURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		client:        httpclient.NewClient(15 * time.Second),
	}
}

// textMessage is the Cloud API payload for a plain text message.
type textMessage struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Text             textMessageBody `json:"text"`
}

type textMessageBody struct {
	Body string `json:"body"`
}

// Send delivers the text to the destination phone number.
func (n *WhatsAppNotifier) Send(ctx context.Context, destination, text string) error {
	payload, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		To:               destination,
		Type:             "text",
		Text:             textMessageBody{Body: text},
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", n.apiURL, n.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.accessToken)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("message rejected with status %d: %s", resp.StatusCode, body)
	}

	return nil
}
