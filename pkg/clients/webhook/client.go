package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockroom/internal/config"
)

// Client pushes plain-text notifications to a chat webhook.
type Client interface {
	SendText(ctx context.Context, text string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the notifier configuration.
func NewClient(cfg config.NotifierConfig) (*APIClient, error) {
	if cfg.WebhookURL == "" {
		return nil, errors.New("webhook url must not be empty")
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{httpClient: restyClient, url: cfg.WebhookURL}, nil
}

// message is the payload accepted by Slack and Mattermost incoming webhooks.
type message struct {
	Text string `json:"text"`
}

// apiError captures a JSON error body when the webhook provides one.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendText posts text to the webhook.
func (c *APIClient) SendText(ctx context.Context, text string) error {
	if text == "" {
		return errors.New("notification text must not be empty")
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(message{Text: text}).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send webhook notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		detail := apiErr.Message
		if detail == "" {
			detail = apiErr.Error
		}
		if detail == "" {
			detail = resp.String()
		}
		return fmt.Errorf("webhook error: status=%d, message=%s", resp.StatusCode(), detail)
	}

	return nil
}
