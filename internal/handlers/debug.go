package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/filelinkbot/filelink/internal/config"
)

// DebugHandler reports which secrets are configured. Only presence is
// exposed; raw values never leave the process.
type DebugHandler struct {
	logger *slog.Logger
	cfg    config.TelegramConfig
}

func NewDebugHandler(log *slog.Logger, cfg config.TelegramConfig) *DebugHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DebugHandler{
		logger: log.With(slog.String("handler", "debug")),
		cfg:    cfg,
	}
}

func (h *DebugHandler) Register(e *echo.Echo) {
	e.GET("/debug", h.Handle)
}

func (h *DebugHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"env": echo.Map{
			"bot_token_set":    strconv.FormatBool(h.cfg.BotToken != ""),
			"secret_token_set": strconv.FormatBool(h.cfg.SecretToken != ""),
			"worker_url":       h.cfg.WorkerURL,
		},
	})
}
