package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filelinkbot/filelink/internal/config"
	"github.com/filelinkbot/filelink/internal/telegram"
)

const (
	secretTokenHeader         = "X-Telegram-Bot-Api-Secret-Token"
	webhookMaxBodyBytes int64 = 1 << 20 // 1 MiB
	notifySendTimeout         = 30 * time.Second
)

// WebhookHandler receives Telegram update callbacks and answers file-bearing
// messages with a proxy link.
type WebhookHandler struct {
	logger *slog.Logger
	api    telegram.BotAPI
	cfg    config.TelegramConfig

	// notifyWG tracks in-flight background notification sends so tests can
	// wait for them.
	notifyWG sync.WaitGroup
}

func NewWebhookHandler(log *slog.Logger, api telegram.BotAPI, cfg config.TelegramConfig) *WebhookHandler {
	if log == nil {
		log = slog.Default()
	}
	h := &WebhookHandler{
		logger: log.With(slog.String("handler", "webhook")),
		api:    api,
		cfg:    cfg,
	}
	if cfg.SecretToken == "" {
		h.logger.Warn("SECRET_TOKEN is not set; webhook requests are accepted without authentication")
	}
	return h
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST("/webhook", h.Handle)
}

// Handle processes one update. Once authentication passes the platform
// always receives a success acknowledgment, whatever happens downstream;
// anything else would trigger update redelivery.
func (h *WebhookHandler) Handle(c echo.Context) error {
	if h.cfg.SecretToken != "" {
		if c.Request().Header.Get(secretTokenHeader) != h.cfg.SecretToken {
			h.logger.Warn("webhook secret mismatch", slog.String("remote_ip", c.RealIP()))
			return echo.NewHTTPError(http.StatusForbidden, "invalid webhook secret")
		}
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, webhookMaxBodyBytes))
	if err != nil {
		h.logger.Warn("read webhook body failed", slog.Any("error", err))
		return ack(c)
	}
	var update telegram.Update
	if err := json.Unmarshal(payload, &update); err != nil {
		h.logger.Warn("decode update failed", slog.Any("error", err))
		return ack(c)
	}
	if update.Message == nil {
		return ack(c)
	}

	chatID := update.Message.Chat.ID
	base := publicBaseURL(c, h.cfg.WorkerURL)

	media := telegram.SelectMedia(update.Message)
	if media == nil {
		h.notify(chatID, helpText(base), "")
		return ack(c)
	}

	proxyURL := fmt.Sprintf("%s/file/%s", base, media.FileID)
	name := media.FileName
	if name == "" {
		name = fmt.Sprintf("(%s)", media.Kind)
	}
	h.logger.Info("media received",
		slog.String("kind", string(media.Kind)),
		slog.String("file_id", media.FileID),
		slog.Int64("chat_id", chatID),
	)
	text := fmt.Sprintf("📎 <b>%s</b>\n%s", html.EscapeString(name), proxyURL)
	h.notify(chatID, text, "HTML")
	return ack(c)
}

func ack(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// notify sends the user-facing reply without blocking the webhook
// acknowledgment. Send failures are logged and swallowed.
func (h *WebhookHandler) notify(chatID int64, text, parseMode string) {
	h.notifyWG.Add(1)
	go func() {
		defer h.notifyWG.Done()
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("panic in notification send", slog.Any("recover", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
		defer cancel()
		if _, err := h.api.SendMessage(ctx, chatID, text, parseMode); err != nil {
			h.logger.Error("send notification failed",
				slog.Int64("chat_id", chatID),
				slog.Any("error", err),
			)
		}
	}()
}

func helpText(base string) string {
	return "Send me a file (document, photo, video, audio or voice message) " +
		"and I will reply with a stable download link.\n\n" +
		"Admin endpoints:\n" +
		base + "/setWebhook — register this webhook\n" +
		base + "/deleteWebhook — remove the webhook\n" +
		base + "/info — webhook status\n" +
		base + "/debug — configuration status"
}
