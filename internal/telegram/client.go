package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const fallbackErrorDescription = "telegram api request failed"

// APIError is returned for any Bot API call that did not produce a usable
// result: a non-2xx HTTP status or an ok:false envelope.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api: %s (status %d)", e.Description, e.StatusCode)
}

// BotAPI is the surface handlers depend on. *Client implements it; tests
// substitute fakes.
type BotAPI interface {
	GetFile(ctx context.Context, fileID string) (File, error)
	SendMessage(ctx context.Context, chatID int64, text, parseMode string) (Message, error)
	SetWebhook(ctx context.Context, url, secretToken string) error
	DeleteWebhook(ctx context.Context) error
	GetWebhookInfo(ctx context.Context) (WebhookInfo, error)
	FileDownloadURL(filePath string) string
}

// Client is a thin Bot API wrapper: one HTTP round-trip per call, no retries.
// Webhook handlers must acknowledge the platform promptly, so a failed call
// is surfaced immediately rather than retried.
type Client struct {
	token   string
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewClient(token, baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  log.With(slog.String("component", "telegram")),
	}
}

type envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

// call issues a single Bot API request: GET when payload is nil, otherwise
// POST with a JSON body. The {ok,result,description} envelope is unwrapped
// into out or an *APIError.
func (c *Client) call(ctx context.Context, method string, payload any, out any) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	var req *http.Request
	var err error
	if payload == nil {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	} else {
		var body []byte
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", method, err)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", method, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		desc := fallbackErrorDescription
		if decodeErr == nil && env.Description != "" {
			desc = env.Description
		}
		return &APIError{StatusCode: resp.StatusCode, Description: desc}
	}
	if decodeErr != nil {
		return &APIError{StatusCode: resp.StatusCode, Description: fallbackErrorDescription}
	}
	if !env.OK {
		desc := env.Description
		if desc == "" {
			desc = fallbackErrorDescription
		}
		status := env.ErrorCode
		if status == 0 {
			status = resp.StatusCode
		}
		return &APIError{StatusCode: status, Description: desc}
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}
	return nil
}

// GetFile resolves a file_id to a short-lived file path.
func (c *Client) GetFile(ctx context.Context, fileID string) (File, error) {
	var file File
	payload := map[string]any{"file_id": fileID}
	if err := c.call(ctx, "getFile", payload, &file); err != nil {
		return File{}, err
	}
	return file, nil
}

// SendMessage delivers a text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text, parseMode string) (Message, error) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}
	var msg Message
	if err := c.call(ctx, "sendMessage", payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// SetWebhook registers url as the webhook target. An empty secretToken
// leaves header authentication off.
func (c *Client) SetWebhook(ctx context.Context, url, secretToken string) error {
	payload := map[string]any{"url": url}
	if secretToken != "" {
		payload["secret_token"] = secretToken
	}
	return c.call(ctx, "setWebhook", payload, nil)
}

// DeleteWebhook clears the webhook by registering an empty URL. The upstream
// call is idempotent.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, "setWebhook", map[string]any{"url": ""}, nil)
}

// GetWebhookInfo fetches the current webhook state.
func (c *Client) GetWebhookInfo(ctx context.Context) (WebhookInfo, error) {
	var info WebhookInfo
	if err := c.call(ctx, "getWebhookInfo", nil, &info); err != nil {
		return WebhookInfo{}, err
	}
	return info, nil
}

// FileDownloadURL builds the platform's temporary download URL for a
// resolved file path. The token is embedded by the platform's convention;
// callers must keep the result out of logs and error bodies.
func (c *Client) FileDownloadURL(filePath string) string {
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)
}
