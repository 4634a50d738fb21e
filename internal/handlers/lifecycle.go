package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filelinkbot/filelink/internal/config"
	"github.com/filelinkbot/filelink/internal/telegram"
)

// LifecycleHandler manages the webhook registration on the platform side.
// Each endpoint is a single upstream call with no branching.
type LifecycleHandler struct {
	logger *slog.Logger
	api    telegram.BotAPI
	cfg    config.TelegramConfig
}

func NewLifecycleHandler(log *slog.Logger, api telegram.BotAPI, cfg config.TelegramConfig) *LifecycleHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LifecycleHandler{
		logger: log.With(slog.String("handler", "lifecycle")),
		api:    api,
		cfg:    cfg,
	}
}

func (h *LifecycleHandler) Register(e *echo.Echo) {
	e.GET("/setWebhook", h.Set)
	e.GET("/deleteWebhook", h.Delete)
	e.GET("/info", h.Info)
	e.GET("/getWebhookInfo", h.Info)
}

func (h *LifecycleHandler) Set(c echo.Context) error {
	webhookURL := publicBaseURL(c, h.cfg.WorkerURL) + "/webhook"
	if err := h.api.SetWebhook(c.Request().Context(), webhookURL, h.cfg.SecretToken); err != nil {
		return upstreamError(err)
	}
	h.logger.Info("webhook registered", slog.String("url", webhookURL))
	return c.JSON(http.StatusOK, successBody("webhook set to "+webhookURL))
}

func (h *LifecycleHandler) Delete(c echo.Context) error {
	if err := h.api.DeleteWebhook(c.Request().Context()); err != nil {
		return upstreamError(err)
	}
	h.logger.Info("webhook deleted")
	return c.JSON(http.StatusOK, successBody("webhook deleted"))
}

func (h *LifecycleHandler) Info(c echo.Context) error {
	info, err := h.api.GetWebhookInfo(c.Request().Context())
	if err != nil {
		return upstreamError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":       "success",
		"webhook_info": info,
	})
}
