// Package telegram delivers notifications through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gabapcia/orchwatch/internal/rewardwatch"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrAPI is returned when the Bot API answers with ok=false.
var ErrAPI = errors.New("telegram api error")

// sendMessageRequest is the body of the sendMessage method.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// apiResponse is the envelope every Bot API method returns.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

func (r apiResponse) Err() error {
	if r.OK {
		return nil
	}
	return fmt.Errorf("%w: [%d] - %s", ErrAPI, r.ErrorCode, r.Description)
}

type client struct {
	httpClient *retryablehttp.Client
	endpoint   string
	parseMode  string
}

var _ rewardwatch.Notifier = (*client)(nil)

// Option configures the client.
type Option func(*client)

// WithParseMode sets the parse_mode sent with every message, e.g. "Markdown".
func WithParseMode(mode string) Option {
	return func(c *client) {
		c.parseMode = mode
	}
}

// NewClient returns a notifier that posts to the bot identified by token on
// the Bot API served at apiURL.
func NewClient(httpClient *retryablehttp.Client, apiURL, token string, opts ...Option) *client {
	c := &client{
		httpClient: httpClient,
		endpoint:   fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(apiURL, "/"), token),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify implements rewardwatch.Notifier. subscriberID is the Telegram chat id.
func (c *client) Notify(ctx context.Context, subscriberID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                subscriberID,
		Text:                  text,
		ParseMode:             c.parseMode,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL embeds the bot token.
		return fmt.Errorf("send message to %s: %w", subscriberID, redact(err, c.endpoint))
	}
	defer res.Body.Close()

	var data apiResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)
	}

	return data.Err()
}

// redact strips endpoint from the error text.
func redact(err error, endpoint string) error {
	msg := err.Error()
	if !strings.Contains(msg, endpoint) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, endpoint, "<telegram endpoint>"))
}
