package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handler registers one group of routes on the echo instance.
type Handler interface {
	Register(e *echo.Echo)
}

type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer assembles the echo instance: permissive CORS on every response,
// panic recovery, request logging into slog, a configuration guard that
// answers everything with a 500 while the bot token is missing, and the
// error envelope all handlers share.
func NewServer(addr string, log *slog.Logger, botToken string, handlers []Handler) *Server {
	if addr == "" {
		addr = ":8080"
	}
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(log)
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", c.RealIP()),
			)
			return nil
		},
	}))
	e.Use(configGuard(botToken))

	for _, h := range handlers {
		if h != nil {
			h.Register(e)
		}
	}

	return &Server{echo: e, addr: addr}
}

func (s *Server) Start() error                   { return s.echo.Start(s.addr) }
func (s *Server) Stop(ctx context.Context) error { return s.echo.Shutdown(ctx) }

// Echo exposes the assembled instance for in-process tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// configGuard short-circuits every request with a configuration error while
// no bot token is set. CORS preflights still pass so the failure is visible
// from browsers.
func configGuard(botToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if botToken == "" && c.Request().Method != http.MethodOptions {
				return echo.NewHTTPError(http.StatusInternalServerError, "BOT_TOKEN is not configured")
			}
			return next(c)
		}
	}
}

// errorHandler renders every error as {status:"error", message}. A method
// mismatch on a known path falls through to the liveness body, matching the
// route table's default branch.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if errors.Is(err, echo.ErrMethodNotAllowed) || errors.Is(err, echo.ErrNotFound) {
			_ = c.JSON(http.StatusOK, echo.Map{
				"status":  "success",
				"message": "filelink relay is running",
			})
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if s, ok := httpErr.Message.(string); ok && s != "" {
				message = s
			} else {
				message = http.StatusText(code)
			}
		} else {
			log.Error("unhandled error", slog.Any("error", err))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, echo.Map{"status": "error", "message": message})
	}
}
