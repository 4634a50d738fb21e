package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const aliveMessage = "filelink relay is running"

// StatusHandler answers liveness probes and every unmatched route. Unknown
// paths deliberately get a 200 "service alive" body rather than a 404.
type StatusHandler struct {
	logger *slog.Logger
}

func NewStatusHandler(log *slog.Logger) *StatusHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StatusHandler{logger: log.With(slog.String("handler", "status"))}
}

func (h *StatusHandler) Register(e *echo.Echo) {
	e.GET("/", h.Alive)
	e.GET("/ping", h.Alive)
	e.HEAD("/health", h.AliveHead)
	e.RouteNotFound("/*", h.Alive)
}

func (h *StatusHandler) Alive(c echo.Context) error {
	return c.JSON(http.StatusOK, successBody(aliveMessage))
}

func (h *StatusHandler) AliveHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
