package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotifyClient talks to the notification gateway that actually delivers
// reminders. Reminder state on a booking only flips after the gateway
// confirms delivery; the flag is delivery bookkeeping, not booking state.
type NotifyClient struct {
	baseURL    string
	httpClient *http.Client
}

type NotifyConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Delivery channels understood by the gateway
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type SendReminderRequest struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type SendReminderResponse struct {
	Delivered bool   `json:"delivered"`
	MessageID string `json:"message_id"`
}

func NewNotifyClient(cfg NotifyConfig) *NotifyClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &NotifyClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SendReminder asks the gateway to deliver one reminder. Delivered=false
// without an error means the gateway accepted the request but could not
// confirm delivery; callers must not mark the booking reminded.
func (nc *NotifyClient) SendReminder(req *SendReminderRequest) (*SendReminderResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder request: %w", err)
	}

	resp, err := nc.httpClient.Post(nc.baseURL+"/api/v1/reminders", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to send reminder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("notification gateway returned status %d", resp.StatusCode)
	}

	var result SendReminderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode reminder response: %w", err)
	}

	return &result, nil
}
